package handler

import (
	"context"
	"net/http"
	"strconv"

	"place-resolver/internal/models"

	"github.com/gin-gonic/gin"
)

// ReverseGeocodeHandler handles reverse geocoding requests
type ReverseGeocodeHandler struct {
	service CoordinateResolver
}

// CoordinateResolver interface for dependency injection
type CoordinateResolver interface {
	ResolveCoordinates(context.Context, float64, float64) ([]models.ResolvedPlace, error)
}

// NewReverseGeocodeHandler creates a new reverse geocode handler
func NewReverseGeocodeHandler(svc CoordinateResolver) *ReverseGeocodeHandler {
	return &ReverseGeocodeHandler{service: svc}
}

// ReverseGeocode handles GET /reverse-geocode requests
//
//	@Summary	Resolve a point to places
//	@Param		lat	query	number	true	"latitude"
//	@Param		lon	query	number	true	"longitude"
//	@Produce	json
//	@Success	200	{array}		models.ResolvedPlace
//	@Failure	400	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/reverse-geocode [get]
func (h *ReverseGeocodeHandler) ReverseGeocode(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	places, err := h.service.ResolveCoordinates(c.Request.Context(), lat, lon)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, places)
}
