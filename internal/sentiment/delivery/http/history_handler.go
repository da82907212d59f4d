package http

import (
	"net/http"
	"strconv"

	"golang-stock-sentiment/internal/sentiment/service"
	"golang-stock-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HistoryHandler handles HTTP requests for stored sentiment records.
type HistoryHandler struct {
	historyService service.HistoryService
	logger         *logger.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService service.HistoryService, logger *logger.Logger) *HistoryHandler {
	return &HistoryHandler{historyService: historyService, logger: logger}
}

// RegisterRoutes registers the history routes to the Echo group.
func (h *HistoryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/history", h.GetHistory)
}

// GetHistory godoc
// @Summary Get stored sentiment records
// @Description Get the newest stored records, optionally for one ticker. At most 100 records are returned.
// @Tags history
// @Produce  json
// @Param   ticker  query    string false   "Ticker symbol"
// @Param   limit   query    int    false   "Maximum number of records (1-100)"
// @Success 200 {object} dto.HistoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /history [get]
func (h *HistoryHandler) GetHistory(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "Invalid limit")
		}
		limit = n
	}

	ctx := c.Request().Context()
	resp, err := h.historyService.GetHistory(ctx, c.QueryParam("ticker"), limit)
	if err != nil {
		if statusFor(err) == http.StatusBadRequest {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		return errorJSON(c, http.StatusInternalServerError, "Failed to get history")
	}
	return c.JSON(http.StatusOK, resp)
}
