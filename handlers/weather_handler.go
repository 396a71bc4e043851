// Package handlers maps HTTP requests to the service layer and results back
// to transport responses.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/nomiram/weather-api/errors"
	"github.com/nomiram/weather-api/logger"
	"github.com/nomiram/weather-api/types"
)

// timestampLayout is the wire format of the dt query parameter.
const timestampLayout = "2006-01-02T15:04"

// TemperatureResolver answers temperature queries; implemented by
// services.TemperatureService.
type TemperatureResolver interface {
	Resolve(ctx context.Context, city string, timestamp *time.Time, wantCurrent bool) (float64, error)
}

// WeatherHandler serves the temperature endpoints.
type WeatherHandler struct {
	resolver TemperatureResolver
}

// NewWeatherHandler creates a WeatherHandler.
func NewWeatherHandler(resolver TemperatureResolver) *WeatherHandler {
	return &WeatherHandler{resolver: resolver}
}

// CurrentTemperatureHandler handles GET /v1/current/?city=X.
func (h *WeatherHandler) CurrentTemperatureHandler(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		_ = c.Error(apperrors.ValidationFailed("city must be provided", ""))
		return
	}

	temperature, err := h.resolver.Resolve(c.Request.Context(), city, nil, true)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.TemperatureResponse{
		City:        city,
		Unit:        "celsius",
		Temperature: temperature,
	})
}

// ForecastTemperatureHandler handles GET /v1/forecast/?city=X&dt=YYYY-MM-DDTHH:MM.
func (h *WeatherHandler) ForecastTemperatureHandler(c *gin.Context) {
	log := logger.GetLogger()

	city := c.Query("city")
	dt := c.Query("dt")
	if city == "" || dt == "" {
		_ = c.Error(apperrors.ValidationFailed("city and dt must be provided", ""))
		return
	}

	timestamp, err := time.Parse(timestampLayout, dt)
	if err != nil {
		log.Debugw("Rejected malformed dt parameter", "dt", dt, "error", err)
		_ = c.Error(apperrors.ValidationFailed("dt must be in YYYY-MM-DDTHH:MM format", ""))
		return
	}

	temperature, err := h.resolver.Resolve(c.Request.Context(), city, &timestamp, false)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.TemperatureResponse{
		City:        city,
		Unit:        "celsius",
		Temperature: temperature,
	})
}
