package handlers

import (
	"net/http"
	"strings"

	"epochzone/internal/models"
	"epochzone/internal/timezone"

	"github.com/gin-gonic/gin"
)

// TimezoneHandler handles timezone-related requests
type TimezoneHandler struct {
	service *timezone.Service
}

// NewTimezoneHandler creates a new TimezoneHandler
func NewTimezoneHandler(service *timezone.Service) *TimezoneHandler {
	return &TimezoneHandler{service: service}
}

// ListTimezones godoc
// @Summary List all timezones
// @Description Returns every IANA timezone known to the catalog, in catalog order
// @Tags timezones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.TimezoneListItem
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Router /timezones [get]
func (h *TimezoneHandler) ListTimezones(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListZones())
}

// GetTimezoneInfo godoc
// @Summary Get current timezone info
// @Description Returns the current time, UTC offset, abbreviation and DST state for a timezone
// @Tags timezones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param timezone path string true "IANA timezone name (e.g. Europe/Belgrade)"
// @Success 200 {object} models.TimezoneInfo
// @Failure 400 {object} models.ErrorResponse "Invalid timezone"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Router /time/{timezone} [get]
func (h *TimezoneHandler) GetTimezoneInfo(c *gin.Context) {
	// Wildcard params keep their leading slash
	name := strings.TrimPrefix(c.Param("timezone"), "/")

	info, err := h.service.GetZoneInfo(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}

// Convert godoc
// @Summary Convert a time between timezones
// @Description Renders one instant, given as a Unix timestamp or as a naive datetime plus source timezone, in both the source and target timezones
// @Tags timezones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.ConvertRequest true "Conversion request"
// @Success 200 {object} models.ConvertResponse
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Router /convert [post]
func (h *TimezoneHandler) Convert(c *gin.Context) {
	var req models.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.Convert(&req)
	if err != nil {
		if timezone.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to convert time"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Geolocate godoc
// @Summary Resolve a coordinate to its timezone
// @Description Returns current timezone info for the zone covering the given coordinates. Ocean points resolve to the nearest maritime zone.
// @Tags timezones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number true "Latitude (-90 to 90)"
// @Param lng query number true "Longitude (-180 to 180)"
// @Success 200 {object} models.TimezoneInfo
// @Failure 400 {object} models.ErrorResponse "Invalid coordinates"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Coordinate lookup unavailable"
// @Router /geolocate [get]
func (h *TimezoneHandler) Geolocate(c *gin.Context) {
	var query models.GeolocationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid coordinates"})
		return
	}

	info, err := h.service.ResolveCoordinates(*query.Lat, *query.Lng)
	if err != nil {
		if timezone.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to resolve coordinates"})
		return
	}

	c.JSON(http.StatusOK, info)
}
