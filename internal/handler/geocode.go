package handler

import (
	"context"
	"errors"
	"net/http"

	"place-resolver/internal/models"
	"place-resolver/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GeoCodeHandler handles free text and coordinate resolution requests
type GeoCodeHandler struct {
	service ResolveService
}

// ResolveService interface for dependency injection
type ResolveService interface {
	Resolve(context.Context, string) ([]models.ResolvedPlace, error)
}

// NewGeoCodeHandler creates a new geocode handler
func NewGeoCodeHandler(svc ResolveService) *GeoCodeHandler {
	return &GeoCodeHandler{service: svc}
}

// GeoCode handles GET /geocode requests
//
//	@Summary	Resolve a query to places
//	@Param		q	query	string	true	"free text or \"lat,long\""
//	@Produce	json
//	@Success	200	{array}		models.ResolvedPlace
//	@Failure	400	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/geocode [get]
func (h *GeoCodeHandler) GeoCode(c *gin.Context) {
	h.resolve(c, "q")
}

// GetGeocoding handles GET /get_geocoding requests
//
//	@Summary	Resolve a query to places
//	@Param		text_input	query	string	true	"free text or \"lat,long\""
//	@Produce	json
//	@Success	200	{array}		models.ResolvedPlace
//	@Failure	400	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/get_geocoding [get]
func (h *GeoCodeHandler) GetGeocoding(c *gin.Context) {
	h.resolve(c, "text_input")
}

func (h *GeoCodeHandler) resolve(c *gin.Context, param string) {
	query := c.Query(param)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter '" + param + "'"})
		return
	}

	places, err := h.service.Resolve(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, places)
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("handler: failed to resolve query")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
