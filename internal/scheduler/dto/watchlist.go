package dto

import "time"

// WatchlistResponse describes the configured watchlist schedule.
type WatchlistResponse struct {
	Cron     string    `json:"cron"`
	Tickers  []string  `json:"tickers"`
	Cooldown string    `json:"cooldown"`
	NextRun  time.Time `json:"next_run"`
}

// EnqueueResponse is the outcome of one enqueue attempt.
type EnqueueResponse struct {
	Ticker    string `json:"ticker"`
	Enqueued  bool   `json:"enqueued"`
	MessageID string `json:"message_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
}
