package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"golang-stock-sentiment/internal/scheduler/dto"
	sentimentdto "golang-stock-sentiment/internal/sentiment/dto"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

const (
	OriginSchedule = "schedule"
	OriginManual   = "manual"
)

// ErrInvalidTicker is returned for blank or malformed ticker symbols.
var ErrInvalidTicker = errors.New("ticker is required and must be a valid symbol")

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.^=:-]{1,16}$`)

// WatchlistService periodically enqueues analysis requests for the configured tickers.
type WatchlistService interface {
	Start(ctx context.Context) error
	Stop()
	EnqueueAll(ctx context.Context) int
	Enqueue(ctx context.Context, ticker, origin string) (*dto.EnqueueResponse, error)
	Watchlist() dto.WatchlistResponse
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(redisClient *redis.Client, logger *logger.Logger, cronExpr string, tickers []string, cooldown time.Duration, streamMaxLen int64) (WatchlistService, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}

	normalized := make([]string, 0, len(tickers))
	seen := make(map[string]struct{}, len(tickers))
	for _, t := range tickers {
		n, err := normalizeTicker(t)
		if err != nil {
			return nil, fmt.Errorf("invalid watchlist ticker %q: %w", t, err)
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		normalized = append(normalized, n)
	}

	return &watchlistService{
		redisClient:  redisClient,
		logger:       logger,
		cronExpr:     cronExpr,
		schedule:     schedule,
		tickers:      normalized,
		cooldown:     cooldown,
		recent:       cache.New(cooldown, time.Minute),
		streamMaxLen: streamMaxLen,
		cron:         cron.New(cron.WithParser(parser)),
	}, nil
}

type watchlistService struct {
	redisClient  *redis.Client
	logger       *logger.Logger
	cronExpr     string
	schedule     cron.Schedule
	tickers      []string
	cooldown     time.Duration
	recent       *cache.Cache
	streamMaxLen int64

	mu      sync.Mutex
	cron    *cron.Cron
	runCtx  context.Context
	started bool
}

func normalizeTicker(raw string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if !tickerPattern.MatchString(t) {
		return "", ErrInvalidTicker
	}
	return t, nil
}

// Start registers the cron job. Enqueueing uses ctx until Stop is called.
func (s *watchlistService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	s.runCtx = ctx
	if _, err := s.cron.AddFunc(s.cronExpr, func() { s.EnqueueAll(s.runCtx) }); err != nil {
		return err
	}
	s.cron.Start()
	s.started = true
	s.logger.Info("Watchlist scheduler started",
		logger.StringField("cron", s.cronExpr),
		logger.IntField("tickers", len(s.tickers)),
		logger.Field("next_run", s.schedule.Next(time.Now())))
	return nil
}

// Stop stops the cron and waits for a running enqueue to finish.
func (s *watchlistService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	<-s.cron.Stop().Done()
	s.started = false
	s.logger.Info("Watchlist scheduler stopped")
}

// EnqueueAll publishes one request per watchlist ticker and returns how many were published.
func (s *watchlistService) EnqueueAll(ctx context.Context) int {
	published := 0
	for _, t := range s.tickers {
		if ctx.Err() != nil {
			break
		}
		resp, err := s.Enqueue(ctx, t, OriginSchedule)
		if err != nil {
			continue
		}
		if resp.Enqueued {
			published++
		}
	}
	s.logger.Info("Watchlist enqueue finished", logger.IntField("published", published), logger.IntField("tickers", len(s.tickers)))
	return published
}

// Enqueue publishes a single analysis request unless the ticker was enqueued within the cooldown.
func (s *watchlistService) Enqueue(ctx context.Context, raw, origin string) (*dto.EnqueueResponse, error) {
	ticker, err := normalizeTicker(raw)
	if err != nil {
		return nil, err
	}

	if s.cooldown > 0 {
		// Add fails when the ticker is still cached, so concurrent callers cannot both publish.
		if err := s.recent.Add(ticker, origin, s.cooldown); err != nil {
			s.logger.Debug("Ticker enqueued recently, skipping", logger.StringField("ticker", ticker))
			return &dto.EnqueueResponse{Ticker: ticker, Enqueued: false, Reason: "cooldown"}, nil
		}
	}

	payload, err := json.Marshal(sentimentdto.AnalysisRequestMessage{Ticker: ticker, RequestedAt: time.Now().UTC(), Origin: origin})
	if err != nil {
		s.recent.Delete(ticker)
		return nil, err
	}

	id, err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamSentimentAnalysisRequest,
		Values: map[string]interface{}{common.RedisStreamPayloadField: payload},
		MaxLen: s.streamMaxLen,
	}).Result()
	if err != nil {
		s.logger.Error("Failed to enqueue analysis request", logger.ErrorField(err), logger.StringField("ticker", ticker))
		s.recent.Delete(ticker)
		return nil, fmt.Errorf("failed to enqueue %s: %w", ticker, err)
	}

	s.logger.Info("Analysis request published", logger.StringField("ticker", ticker), logger.StringField("message_id", id), logger.StringField("origin", origin))
	return &dto.EnqueueResponse{Ticker: ticker, Enqueued: true, MessageID: id}, nil
}

// Watchlist describes the configured schedule.
func (s *watchlistService) Watchlist() dto.WatchlistResponse {
	tickers := append([]string(nil), s.tickers...)
	sort.Strings(tickers)
	return dto.WatchlistResponse{
		Cron:     s.cronExpr,
		Tickers:  tickers,
		Cooldown: s.cooldown.String(),
		NextRun:  s.schedule.Next(time.Now()),
	}
}
