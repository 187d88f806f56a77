package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Environment   string `mapstructure:"ENVIRONMENT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	DBSource      string `mapstructure:"DB_SOURCE"`

	GeocodeAPIKey           string        `mapstructure:"GEOCODE_KEYS"`
	GeocoderBaseURL         string        `mapstructure:"GEOCODER_BASE_URL"`
	GeocoderTimeout         time.Duration `mapstructure:"GEOCODER_TIMEOUT"`
	GeocoderRetryMax        int           `mapstructure:"GEOCODER_RETRY_MAX"`
	GeocoderMaxConcurrency  int           `mapstructure:"GEOCODER_MAX_CONCURRENCY"`
	GeocoderBreakerFailures uint32        `mapstructure:"GEOCODER_BREAKER_FAILURES"`
	GeocoderBreakerTimeout  time.Duration `mapstructure:"GEOCODER_BREAKER_TIMEOUT"`
	GeocoderCacheTTL        time.Duration `mapstructure:"GEOCODER_CACHE_TTL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
}

var defaults = map[string]any{
	"ENVIRONMENT":               "production",
	"LOG_LEVEL":                 "info",
	"SERVER_ADDRESS":            "0.0.0.0:8080",
	"DB_SOURCE":                 "",
	"GEOCODE_KEYS":              "",
	"GEOCODER_BASE_URL":         "https://api.geocode.earth",
	"GEOCODER_TIMEOUT":          "5s",
	"GEOCODER_RETRY_MAX":        2,
	"GEOCODER_MAX_CONCURRENCY":  0,
	"GEOCODER_BREAKER_FAILURES": 5,
	"GEOCODER_BREAKER_TIMEOUT":  "30s",
	"GEOCODER_CACHE_TTL":        "720h",
	"REDIS_ADDR":                "",
	"REDIS_PASSWORD":            "",
	"REDIS_DB":                  0,
}

// LoadConfig reads configuration from app.env in path, if present, and from environment variables.
// Environment variables take precedence over the file.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}

	if config.DBSource == "" {
		return config, fmt.Errorf("config: DB_SOURCE is required")
	}

	return config, nil
}
