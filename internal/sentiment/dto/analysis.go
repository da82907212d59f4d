package dto

import "time"

// SentimentCounts holds the verdict tallies of one analysis.
type SentimentCounts struct {
	Bullish       int `json:"bullish"`
	Bearish       int `json:"bearish"`
	Neutral       int `json:"neutral"`
	TotalAnalyzed int `json:"total_analyzed"`
}

// AnalyzedItem is one classified headline as returned to the caller.
type AnalyzedItem struct {
	Headline   string     `json:"headline"`
	Sentiment  string     `json:"sentiment"`
	Confidence float64    `json:"confidence"`
	Source     string     `json:"source"`
	Published  *time.Time `json:"published"`
}

// AnalysisResult is the response body of GET /sentiment.
type AnalysisResult struct {
	Ticker    string          `json:"ticker"`
	Verdict   string          `json:"verdict"`
	Counts    SentimentCounts `json:"counts"`
	Persisted bool            `json:"persisted"`
	Items     []AnalyzedItem  `json:"items"`
}

// PredictRequest is the request body of POST /predict.
type PredictRequest struct {
	Text string `json:"text"`
}

// PredictResponse is the response body of POST /predict.
type PredictResponse struct {
	Sentiment    string  `json:"sentiment"`
	Confidence   float64 `json:"confidence"`
	InputPreview string  `json:"input_preview"`
}

// AnalysisRequestMessage is the payload carried on the analysis request stream.
type AnalysisRequestMessage struct {
	Ticker      string    `json:"ticker"`
	RequestedAt time.Time `json:"requested_at"`
	Origin      string    `json:"origin,omitempty"`
}
