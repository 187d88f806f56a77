package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"place-resolver/docs"
	"place-resolver/internal/cache"
	"place-resolver/internal/config"
	"place-resolver/internal/geocoder"
	"place-resolver/internal/handler"
	"place-resolver/internal/logger"
	"place-resolver/internal/repository"
	"place-resolver/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger.Init("place-resolver", config.Environment, config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database connection
	conn, err := pgxpool.New(ctx, config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	geocoderOpts := geocoder.Options{
		BaseURL:         config.GeocoderBaseURL,
		APIKey:          config.GeocodeAPIKey,
		Timeout:         config.GeocoderTimeout,
		RetryMax:        config.GeocoderRetryMax,
		BreakerFailures: config.GeocoderBreakerFailures,
		BreakerTimeout:  config.GeocoderBreakerTimeout,
		CacheTTL:        config.GeocoderCacheTTL,
	}

	// Optional remote lookup cache
	redisClient, err := cache.Open(ctx, config.RedisAddr, config.RedisPassword, config.RedisDB)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, remote lookups will not be cached")
	}
	if redisClient != nil {
		defer redisClient.Close()
		geocoderOpts.Cache = cache.NewRedisCache(redisClient)
	}

	// Initialize layers
	repo := repository.NewRepository(conn)
	remote := geocoder.NewClient(geocoderOpts)

	resolveService := service.NewResolveService(repo, remote, service.WithMaxConcurrency(config.GeocoderMaxConcurrency))

	geoCodeHandler := handler.NewGeoCodeHandler(resolveService)
	reverseGeocodeHandler := handler.NewReverseGeocodeHandler(resolveService)

	if config.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/get_geocoding", geoCodeHandler.GetGeocoding)
	r.GET("/geocode", geoCodeHandler.GeoCode)
	r.GET("/reverse-geocode", reverseGeocodeHandler.ReverseGeocode)

	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", config.ServerAddress).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
}
