package consumer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang-stock-sentiment/internal/sentiment/dto"
	"golang-stock-sentiment/internal/sentiment/service"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"
	pkgredis "golang-stock-sentiment/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalysis struct {
	mu      sync.Mutex
	err     error
	tickers []string
}

func (f *fakeAnalysis) Analyze(_ context.Context, ticker string) (*dto.AnalysisResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tickers = append(f.tickers, ticker)
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AnalysisResult{
		Ticker:  ticker,
		Verdict: "Bullish",
		Counts:  dto.SentimentCounts{Bullish: 1, TotalAnalyzed: 1},
		Items:   []dto.AnalyzedItem{{Headline: "Apple beats earnings", Sentiment: "Positive", Confidence: 0.9, Source: "FMP Articles"}},
	}, nil
}

func (f *fakeAnalysis) Predict(context.Context, string) (*dto.PredictResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeAnalysis) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tickers...)
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) SendMessage(text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	return nil
}

func setup(t *testing.T) (*redis.Client, context.Context) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()
	require.NoError(t, pkgredis.EnsureGroup(ctx, rdb, common.RedisStreamSentimentAnalysisRequest, common.RedisStreamGroup))
	return rdb, ctx
}

func publish(t *testing.T, rdb *redis.Client, values map[string]any) {
	t.Helper()
	require.NoError(t, rdb.XAdd(context.Background(), &redis.XAddArgs{
		Stream: common.RedisStreamSentimentAnalysisRequest,
		Values: values,
	}).Err())
}

func streamLen(t *testing.T, rdb *redis.Client) int64 {
	t.Helper()
	n, err := rdb.XLen(context.Background(), common.RedisStreamSentimentAnalysisRequest).Result()
	require.NoError(t, err)
	return n
}

func newConsumer(rdb *redis.Client, analysis service.AnalysisService, notifier *fakeNotifier) *RedisConsumer {
	cfg := Config{BlockTimeout: 50 * time.Millisecond, ProcessTimeout: time.Second}
	if notifier == nil {
		return NewRedisConsumer(cfg, rdb, analysis, nil, logger.NewNop())
	}
	return NewRedisConsumer(cfg, rdb, analysis, notifier, logger.NewNop())
}

func TestProcessNextAnalyzesAndAcks(t *testing.T) {
	rdb, ctx := setup(t)
	analysis := &fakeAnalysis{}
	notifier := &fakeNotifier{}
	publish(t, rdb, map[string]any{common.RedisStreamPayloadField: `{"ticker":"AAPL","origin":"watchlist"}`})

	newConsumer(rdb, analysis, notifier).ProcessNext(ctx)

	assert.Equal(t, []string{"AAPL"}, analysis.seen())
	assert.Equal(t, int64(0), streamLen(t, rdb))
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "AAPL")
}

func TestProcessNextDropsMalformed(t *testing.T) {
	rdb, ctx := setup(t)
	analysis := &fakeAnalysis{}
	publish(t, rdb, map[string]any{"other": "x"})
	publish(t, rdb, map[string]any{common.RedisStreamPayloadField: "{not json"})

	c := newConsumer(rdb, analysis, nil)
	c.ProcessNext(ctx)
	c.ProcessNext(ctx)

	assert.Empty(t, analysis.seen())
	assert.Equal(t, int64(0), streamLen(t, rdb))
}

func TestProcessNextLeavesPendingWhenNotReady(t *testing.T) {
	rdb, ctx := setup(t)
	analysis := &fakeAnalysis{err: service.ErrServiceUnavailable}
	publish(t, rdb, map[string]any{common.RedisStreamPayloadField: `{"ticker":"MSFT"}`})

	newConsumer(rdb, analysis, nil).ProcessNext(ctx)

	assert.Equal(t, []string{"MSFT"}, analysis.seen())
	assert.Equal(t, int64(1), streamLen(t, rdb))
	pending, err := rdb.XPending(ctx, common.RedisStreamSentimentAnalysisRequest, common.RedisStreamGroup).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Count)
}

func TestProcessNextDropsInvalidTicker(t *testing.T) {
	rdb, ctx := setup(t)
	analysis := &fakeAnalysis{err: service.ErrInvalidTicker}
	publish(t, rdb, map[string]any{common.RedisStreamPayloadField: `{"ticker":""}`})

	newConsumer(rdb, analysis, nil).ProcessNext(ctx)
	assert.Equal(t, int64(0), streamLen(t, rdb))
}

func TestProcessNextEmptyStream(t *testing.T) {
	rdb, ctx := setup(t)
	analysis := &fakeAnalysis{}
	newConsumer(rdb, analysis, nil).ProcessNext(ctx)
	assert.Empty(t, analysis.seen())
}

func TestStartStop(t *testing.T) {
	rdb, ctx := setup(t)
	analysis := &fakeAnalysis{}
	c := newConsumer(rdb, analysis, nil)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	require.NoError(t, c.Start(runCtx))

	publish(t, rdb, map[string]any{common.RedisStreamPayloadField: `{"ticker":"NVDA"}`})
	require.Eventually(t, func() bool { return len(analysis.seen()) == 1 }, 2*time.Second, 10*time.Millisecond)

	c.Stop()
	assert.Equal(t, []string{"NVDA"}, analysis.seen())
}
