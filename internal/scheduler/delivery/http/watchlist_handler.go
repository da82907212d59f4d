package http

import (
	"errors"
	"net/http"

	"golang-stock-sentiment/internal/scheduler/service"
	sentimentdto "golang-stock-sentiment/internal/sentiment/dto"
	"golang-stock-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// WatchlistHandler handles HTTP requests for the watchlist schedule.
type WatchlistHandler struct {
	watchlistService service.WatchlistService
	logger           *logger.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlistService service.WatchlistService, logger *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService, logger: logger}
}

// RegisterRoutes registers the watchlist routes to the Echo group.
func (h *WatchlistHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetWatchlist)
	g.POST("/run", h.RunWatchlist)
	g.POST("/:ticker/enqueue", h.EnqueueTicker)
}

// GetWatchlist godoc
// @Summary Get the watchlist
// @Description Get the scheduled tickers, cron expression and next run time
// @Tags watchlist
// @Produce  json
// @Success 200 {object} dto.WatchlistResponse
// @Router /watchlist [get]
func (h *WatchlistHandler) GetWatchlist(c echo.Context) error {
	return c.JSON(http.StatusOK, h.watchlistService.Watchlist())
}

// RunWatchlist godoc
// @Summary Enqueue the whole watchlist now
// @Description Publish an analysis request for every watchlist ticker outside its cooldown
// @Tags watchlist
// @Produce  json
// @Success 202 {object} map[string]int
// @Router /watchlist/run [post]
func (h *WatchlistHandler) RunWatchlist(c echo.Context) error {
	published := h.watchlistService.EnqueueAll(c.Request().Context())
	return c.JSON(http.StatusAccepted, echo.Map{"published": published})
}

// EnqueueTicker godoc
// @Summary Enqueue one ticker
// @Description Publish an analysis request for a single ticker
// @Tags watchlist
// @Produce  json
// @Param   ticker  path    string true    "Ticker symbol"
// @Success 202 {object} dto.EnqueueResponse
// @Success 200 {object} dto.EnqueueResponse "Skipped because of cooldown"
// @Failure 400 {object} sentimentdto.ErrorResponse
// @Failure 500 {object} sentimentdto.ErrorResponse
// @Router /watchlist/{ticker}/enqueue [post]
func (h *WatchlistHandler) EnqueueTicker(c echo.Context) error {
	resp, err := h.watchlistService.Enqueue(c.Request().Context(), c.Param("ticker"), service.OriginManual)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTicker) {
			return c.JSON(http.StatusBadRequest, sentimentdto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("Failed to enqueue ticker", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, sentimentdto.ErrorResponse{Error: "Failed to enqueue ticker"})
	}
	if !resp.Enqueued {
		return c.JSON(http.StatusOK, resp)
	}
	return c.JSON(http.StatusAccepted, resp)
}
