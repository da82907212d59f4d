package news

import (
	"context"

	"golang-stock-sentiment/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Aggregator queries every source concurrently and merges their items in source order,
// then applies the ticker filter. It implements Fetcher.
type Aggregator struct {
	sources  []Source
	log      *logger.Logger
	recorder FailureRecorder
}

// NewAggregator creates an Aggregator. recorder may be nil.
func NewAggregator(log *logger.Logger, recorder FailureRecorder, sources ...Source) *Aggregator {
	return &Aggregator{sources: sources, log: log, recorder: recorder}
}

// Fetch returns the merged items. The result is failed only when every source failed.
func (a *Aggregator) Fetch(ctx context.Context, q Query) FetchResult {
	if len(a.sources) == 0 {
		return FetchResult{}
	}

	results := make([]FetchResult, len(a.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range a.sources {
		g.Go(func() error {
			results[i] = src.Fetch(gctx, q)
			return nil
		})
	}
	_ = g.Wait()

	var (
		merged    []Item
		failures  int
		firstFail FetchResult
	)
	for i, res := range results {
		name := a.sources[i].Name()
		if res.Failed() {
			if failures == 0 {
				firstFail = res
			}
			failures++
			a.log.WarnContext(ctx, "News source failed, continuing without it",
				logger.StringField("source", name),
				logger.StringField("failure", res.Failure.String()),
				logger.ErrorField(res.Err))
			if a.recorder != nil {
				a.recorder.RecordFetchFailure(name, res.Failure.String())
			}
			continue
		}
		merged = append(merged, res.Items...)
	}

	if failures == len(a.sources) {
		return FetchResult{Failure: firstFail.Failure, Err: firstFail.Err}
	}

	filtered := FilterByTicker(merged, q.Ticker)
	a.log.InfoContext(ctx, "Fetched news",
		logger.StringField("ticker", q.Ticker),
		logger.IntField("fetched_count", len(merged)),
		logger.IntField("matching_count", len(filtered)))

	return FetchResult{Items: filtered}
}
