package news

import (
	"context"
	"strings"
	"time"
)

// Item is a normalized news item ready for classification.
type Item struct {
	Headline    string
	SourceLabel string
	PublishedAt *time.Time

	// Text is the concatenated searchable text used by the ticker filter. It is never returned to callers.
	Text string
}

// Query selects a page of news, optionally about a ticker.
type Query struct {
	Ticker string
	Limit  int
	Page   int
}

// FailureKind classifies why a fetch produced no items.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureConfig
	FailureTransport
	FailureStatus
	FailureDecode
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureConfig:
		return "config"
	case FailureTransport:
		return "transport"
	case FailureStatus:
		return "status"
	case FailureDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// FetchResult is either a list of items or a failure. A failed result carries no items.
type FetchResult struct {
	Items   []Item
	Failure FailureKind
	Err     error
}

// Failed reports whether the fetch failed.
func (r FetchResult) Failed() bool {
	return r.Failure != FailureNone
}

func failed(kind FailureKind, err error) FetchResult {
	return FetchResult{Failure: kind, Err: err}
}

// Source is a single upstream news feed.
type Source interface {
	Name() string
	Fetch(ctx context.Context, q Query) FetchResult
}

// Fetcher returns normalized, ticker-filtered news.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) FetchResult
}

// FailureRecorder is notified about every failed source fetch.
type FailureRecorder interface {
	RecordFetchFailure(source, kind string)
}

// newItem builds an Item from a raw headline, returning false when the headline is blank.
func newItem(headline, sourceLabel string, publishedAt *time.Time, text ...string) (Item, bool) {
	headline = strings.TrimSpace(headline)
	if headline == "" {
		return Item{}, false
	}
	parts := make([]string, 0, len(text)+1)
	parts = append(parts, headline)
	for _, t := range text {
		if t = strings.TrimSpace(t); t != "" {
			parts = append(parts, t)
		}
	}
	return Item{
		Headline:    headline,
		SourceLabel: sourceLabel,
		PublishedAt: publishedAt,
		Text:        strings.Join(parts, " "),
	}, true
}
