package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang-stock-sentiment/internal/sentiment/dto"
	"golang-stock-sentiment/internal/sentiment/metrics"
	"golang-stock-sentiment/internal/sentiment/service"
	"golang-stock-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalysis struct {
	result  *dto.AnalysisResult
	predict *dto.PredictResponse
	err     error
	gotText string
	gotID   string
}

func (f *fakeAnalysis) Analyze(ctx context.Context, ticker string) (*dto.AnalysisResult, error) {
	f.gotID = logger.RequestIDFromContext(ctx)
	if f.err != nil {
		return nil, f.err
	}
	if _, err := service.NormalizeTicker(ticker); err != nil {
		return nil, err
	}
	return f.result, nil
}

func (f *fakeAnalysis) Predict(_ context.Context, text string) (*dto.PredictResponse, error) {
	f.gotText = text
	if f.err != nil {
		return nil, f.err
	}
	return f.predict, nil
}

type fakeHistory struct {
	resp      *dto.HistoryResponse
	err       error
	gotTicker string
	gotLimit  int
}

func (f *fakeHistory) GetHistory(_ context.Context, ticker string, limit int) (*dto.HistoryResponse, error) {
	f.gotTicker, f.gotLimit = ticker, limit
	return f.resp, f.err
}

type fakeHealth struct{ resp dto.HealthResponse }

func (f fakeHealth) Health() dto.HealthResponse { return f.resp }

func newTestServer(analysis service.AnalysisService, history service.HistoryService, health HealthReporter, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.Use(middleware.RequestID())
	e.Use(RequestContext(logger.NewNop()))
	if m != nil {
		e.Use(Metrics(m))
	}
	RegisterAll(e, analysis, history, health, logger.NewNop())
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetSentiment(t *testing.T) {
	published := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	analysis := &fakeAnalysis{result: &dto.AnalysisResult{
		Ticker:    "AAPL",
		Verdict:   "Bullish",
		Counts:    dto.SentimentCounts{Bullish: 1, TotalAnalyzed: 1},
		Persisted: true,
		Items: []dto.AnalyzedItem{
			{Headline: "Apple beats earnings", Sentiment: "Positive", Confidence: 0.9877, Source: "FMP Articles", Published: &published},
		},
	}}
	e := newTestServer(analysis, &fakeHistory{}, fakeHealth{}, nil)

	for _, path := range []string{"/sentiment?ticker=aapl", "/api/v1/sentiment?ticker=aapl"} {
		rec := do(e, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "AAPL", body["ticker"])
		assert.Equal(t, "Bullish", body["verdict"])
		assert.Equal(t, true, body["persisted"])
		counts := body["counts"].(map[string]any)
		assert.Equal(t, 1.0, counts["bullish"])
		assert.Equal(t, 0.0, counts["bearish"])
		item := body["items"].([]any)[0].(map[string]any)
		assert.Equal(t, "Apple beats earnings", item["headline"])
		assert.Equal(t, "2025-03-01T12:00:00Z", item["published"])
	}
	assert.NotEmpty(t, analysis.gotID)
}

func TestGetSentimentErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "missing ticker", target: "/sentiment", status: http.StatusBadRequest},
		{name: "blank ticker", target: "/sentiment?ticker=%20%20", status: http.StatusBadRequest},
		{name: "not ready", target: "/sentiment?ticker=AAPL", err: service.ErrServiceUnavailable, status: http.StatusServiceUnavailable},
		{name: "classification", target: "/sentiment?ticker=AAPL", err: fmt.Errorf("%w: boom", service.ErrClassificationFailed), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(&fakeAnalysis{err: tt.err, result: &dto.AnalysisResult{}}, &fakeHistory{}, fakeHealth{}, nil)
			rec := do(e, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.status, rec.Code)

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
			assert.NotContains(t, body.Error, "boom")
		})
	}
}

func TestPredict(t *testing.T) {
	analysis := &fakeAnalysis{predict: &dto.PredictResponse{Sentiment: "Neutral", Confidence: 0.99, InputPreview: "Fed holds rates..."}}
	e := newTestServer(analysis, &fakeHistory{}, fakeHealth{}, nil)

	rec := do(e, http.MethodPost, "/predict", `{"text":"Fed holds rates"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Fed holds rates", analysis.gotText)

	var body dto.PredictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Neutral", body.Sentiment)
	assert.Equal(t, "Fed holds rates...", body.InputPreview)

	rec = do(e, http.MethodPost, "/predict", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	notReady := newTestServer(&fakeAnalysis{err: service.ErrServiceUnavailable}, &fakeHistory{}, fakeHealth{}, nil)
	rec = do(notReady, http.MethodPost, "/api/v1/predict", `{"text":"x"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	invalid := newTestServer(&fakeAnalysis{err: service.ErrInvalidText}, &fakeHistory{}, fakeHealth{}, nil)
	rec = do(invalid, http.MethodPost, "/predict", `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHistory(t *testing.T) {
	created := time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC)
	history := &fakeHistory{resp: &dto.HistoryResponse{
		Count: 1,
		Records: []dto.SentimentRecordResponse{
			{ID: 7, Ticker: "AAPL", Source: "FMP Articles", Headline: "Apple beats earnings", Sentiment: "Positive", Confidence: 0.98, CreatedAt: created},
		},
	}}
	e := newTestServer(&fakeAnalysis{}, history, fakeHealth{}, nil)

	rec := do(e, http.MethodGet, "/history?ticker=aapl&limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "aapl", history.gotTicker)
	assert.Equal(t, 10, history.gotLimit)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1.0, body["count"])
	record := body["records"].([]any)[0].(map[string]any)
	assert.Equal(t, 7.0, record["id"])
	assert.Equal(t, "AAPL", record["ticker"])
	assert.Equal(t, "2025-03-02T09:30:00Z", record["created_at"])
	assert.Len(t, record, 7)

	rec = do(e, http.MethodGet, "/api/v1/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", history.gotTicker)
	assert.Equal(t, 0, history.gotLimit)

	rec = do(e, http.MethodGet, "/history?limit=ten", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	failing := newTestServer(&fakeAnalysis{}, &fakeHistory{err: fmt.Errorf("query sentiment_records error: %w", context.DeadlineExceeded)}, fakeHealth{}, nil)
	rec = do(failing, http.MethodGet, "/history", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	invalid := newTestServer(&fakeAnalysis{}, &fakeHistory{err: service.ErrInvalidTicker}, fakeHealth{}, nil)
	rec = do(invalid, http.MethodGet, "/history?ticker=%24%24%24", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHealth(t *testing.T) {
	e := newTestServer(&fakeAnalysis{}, &fakeHistory{}, fakeHealth{resp: dto.HealthResponse{
		Status: "degraded", ModelLoaded: true, ClassifierState: "ready", SchemaReady: false,
	}}, nil)

	rec := do(e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.True(t, body.ModelLoaded)
	assert.False(t, body.SchemaReady)
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	e := newTestServer(&fakeAnalysis{err: service.ErrServiceUnavailable}, &fakeHistory{}, fakeHealth{}, m)

	do(e, http.MethodGet, "/sentiment?ticker=AAPL", "")
	do(e, http.MethodGet, "/nope", "")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/sentiment", "503")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.HTTPRequestsTotal, "http_requests_total"))
}
