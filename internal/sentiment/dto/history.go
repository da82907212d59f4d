package dto

import "time"

// SentimentRecordResponse is one persisted record in the history response.
type SentimentRecordResponse struct {
	ID         uint      `json:"id"`
	Ticker     string    `json:"ticker"`
	Source     string    `json:"source"`
	Headline   string    `json:"headline"`
	Sentiment  string    `json:"sentiment"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryResponse is the response body of GET /history.
type HistoryResponse struct {
	Count   int                       `json:"count"`
	Records []SentimentRecordResponse `json:"records"`
}

// HealthResponse is the response body of GET /health.
type HealthResponse struct {
	Status          string `json:"status"`
	ModelLoaded     bool   `json:"model_loaded"`
	ClassifierState string `json:"classifier_state"`
	SchemaReady     bool   `json:"schema_ready"`
}
