package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nomiram/weather-api/services"
	"github.com/nomiram/weather-api/types"
)

// HealthHandler serves the health endpoint.
type HealthHandler struct {
	health *services.HealthService
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(health *services.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

// HealthCheckHandler handles GET /health. A degraded cache still answers
// 200: resolutions keep working by falling through to the provider.
func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	report := h.health.CheckHealth(c.Request.Context())

	status := http.StatusOK
	if report.Status == types.HealthStatusDown {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
