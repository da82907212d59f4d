package http

import (
	"net/http"

	"golang-stock-sentiment/internal/sentiment/dto"
	"golang-stock-sentiment/internal/sentiment/service"
	"golang-stock-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SentimentHandler handles HTTP requests for sentiment analysis.
type SentimentHandler struct {
	analysisService service.AnalysisService
	logger          *logger.Logger
}

// NewSentimentHandler creates a new SentimentHandler.
func NewSentimentHandler(analysisService service.AnalysisService, logger *logger.Logger) *SentimentHandler {
	return &SentimentHandler{analysisService: analysisService, logger: logger}
}

// RegisterRoutes registers the sentiment routes to the Echo group.
func (h *SentimentHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/sentiment", h.GetSentiment)
	g.POST("/predict", h.Predict)
}

// GetSentiment godoc
// @Summary Analyze news sentiment for a ticker
// @Description Fetch recent news for a ticker, classify every headline and store the results
// @Tags sentiment
// @Produce  json
// @Param   ticker  query    string true    "Ticker symbol"
// @Success 200 {object} dto.AnalysisResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /sentiment [get]
func (h *SentimentHandler) GetSentiment(c echo.Context) error {
	ctx := c.Request().Context()
	result, err := h.analysisService.Analyze(ctx, c.QueryParam("ticker"))
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "Failed to analyze sentiment", logger.ErrorField(err))
		}
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Predict godoc
// @Summary Classify a single text
// @Description Run the sentiment model on arbitrary text without storing it
// @Tags sentiment
// @Accept  json
// @Produce  json
// @Param   request  body    dto.PredictRequest   true    "Text to classify"
// @Success 200 {object} dto.PredictResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /predict [post]
func (h *SentimentHandler) Predict(c echo.Context) error {
	var req dto.PredictRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request payload")
	}

	ctx := c.Request().Context()
	resp, err := h.analysisService.Predict(ctx, req.Text)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "Failed to classify text", logger.ErrorField(err))
		}
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
