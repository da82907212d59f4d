package http

import (
	"golang-stock-sentiment/internal/sentiment/service"
	"golang-stock-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RegisterAll mounts every sentiment route on the root group and under /api/v1.
func RegisterAll(e *echo.Echo, analysis service.AnalysisService, history service.HistoryService, health HealthReporter, log *logger.Logger) {
	sentimentHandler := NewSentimentHandler(analysis, log)
	historyHandler := NewHistoryHandler(history, log)
	healthHandler := NewHealthHandler(health)

	for _, g := range []*echo.Group{e.Group(""), e.Group("/api/v1")} {
		sentimentHandler.RegisterRoutes(g)
		historyHandler.RegisterRoutes(g)
		healthHandler.RegisterRoutes(g)
	}
}
