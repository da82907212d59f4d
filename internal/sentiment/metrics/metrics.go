// Package metrics defines the Prometheus collectors of the sentiment service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors. It satisfies news.FailureRecorder and
// classifier.LatencyObserver.
type Metrics struct {
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	AnalysesTotal          *prometheus.CounterVec
	HeadlinesTotal         *prometheus.CounterVec
	FetchFailuresTotal     *prometheus.CounterVec
	PersistFailuresTotal   prometheus.Counter
	ClassificationDuration prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on reg. A nil reg uses a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route, and status.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "route"},
		),
		AnalysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentiment_analyses_total",
				Help: "Completed ticker analyses by verdict.",
			},
			[]string{"verdict"},
		),
		HeadlinesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentiment_headlines_classified_total",
				Help: "Classified headlines by label.",
			},
			[]string{"label"},
		),
		FetchFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "news_fetch_failures_total",
				Help: "News source failures by source and failure kind.",
			},
			[]string{"source", "kind"},
		),
		PersistFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sentiment_persist_failures_total",
				Help: "Analysis batches that could not be stored.",
			},
		),
		ClassificationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sentiment_classification_duration_seconds",
				Help:    "Latency of a single headline classification.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AnalysesTotal,
		m.HeadlinesTotal,
		m.FetchFailuresTotal,
		m.PersistFailuresTotal,
		m.ClassificationDuration,
	)

	return m
}

// RecordFetchFailure counts one failed news source call.
func (m *Metrics) RecordFetchFailure(source, kind string) {
	m.FetchFailuresTotal.WithLabelValues(source, kind).Inc()
}

// ObserveClassification records the latency of one model call.
func (m *Metrics) ObserveClassification(d time.Duration) {
	m.ClassificationDuration.Observe(d.Seconds())
}

// RecordAnalysis counts one finished analysis.
func (m *Metrics) RecordAnalysis(verdict string) {
	m.AnalysesTotal.WithLabelValues(verdict).Inc()
}

// RecordLabel counts one classified headline.
func (m *Metrics) RecordLabel(label string) {
	m.HeadlinesTotal.WithLabelValues(label).Inc()
}

// RecordPersistFailure counts one batch that failed to commit.
func (m *Metrics) RecordPersistFailure() {
	m.PersistFailuresTotal.Inc()
}

// Handler returns the scrape handler for the registry the collectors live on.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
