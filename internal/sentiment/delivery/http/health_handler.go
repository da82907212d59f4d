package http

import (
	"net/http"

	"golang-stock-sentiment/internal/sentiment/dto"

	"github.com/labstack/echo/v4"
)

// HealthReporter summarizes process readiness.
type HealthReporter interface {
	Health() dto.HealthResponse
}

// HealthHandler serves liveness and readiness.
type HealthHandler struct {
	reporter HealthReporter
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(reporter HealthReporter) *HealthHandler {
	return &HealthHandler{reporter: reporter}
}

// RegisterRoutes registers the health route to the Echo group.
func (h *HealthHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.GetHealth)
}

// GetHealth godoc
// @Summary Service health
// @Description Report classifier and schema readiness. Always 200 so degraded state stays observable.
// @Tags health
// @Produce  json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) GetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, h.reporter.Health())
}
