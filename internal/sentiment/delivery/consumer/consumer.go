package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"golang-stock-sentiment/internal/sentiment/dto"
	"golang-stock-sentiment/internal/sentiment/service"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"
	pkgredis "golang-stock-sentiment/pkg/redis"
	"golang-stock-sentiment/pkg/telegram"
	"golang-stock-sentiment/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// Config configures the analysis request consumer.
type Config struct {
	Consumer       string
	BlockTimeout   time.Duration
	ProcessTimeout time.Duration
	RetryInterval  time.Duration
	MaxIdle        time.Duration
}

// RedisConsumer reads analysis requests from a Redis stream and runs the pipeline for each.
type RedisConsumer struct {
	cfg         Config
	redisClient *redis.Client
	analysis    service.AnalysisService
	notifier    telegram.Notifier
	logger      *logger.Logger
	stopChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer. notifier may be nil.
func NewRedisConsumer(cfg Config, redisClient *redis.Client, analysis service.AnalysisService, notifier telegram.Notifier, log *logger.Logger) *RedisConsumer {
	if cfg.Consumer == "" {
		cfg.Consumer = common.RedisStreamConsumer
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = 2 * time.Second
	}
	if cfg.ProcessTimeout <= 0 {
		cfg.ProcessTimeout = 2 * time.Minute
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = time.Minute
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = 5 * time.Minute
	}
	return &RedisConsumer{
		cfg:         cfg,
		redisClient: redisClient,
		analysis:    analysis,
		notifier:    notifier,
		logger:      log,
		stopChan:    make(chan struct{}),
	}
}

// Start creates the consumer group and begins the read and retry loops.
func (c *RedisConsumer) Start(ctx context.Context) error {
	if err := pkgredis.EnsureGroup(ctx, c.redisClient, common.RedisStreamSentimentAnalysisRequest, common.RedisStreamGroup); err != nil {
		return err
	}
	c.logger.Info("Redis consumer started",
		logger.StringField("stream", common.RedisStreamSentimentAnalysisRequest),
		logger.StringField("consumer", c.cfg.Consumer))

	c.wg.Add(2)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for c.running(ctx) {
			c.ProcessNext(ctx)
		}
	})
	utils.GoSafe(func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.cfg.RetryInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.ProcessRetries(ctx)
			case <-ctx.Done():
				return
			case <-c.stopChan:
				return
			}
		}
	})
	return nil
}

func (c *RedisConsumer) running(ctx context.Context) bool {
	select {
	case <-c.stopChan:
		return false
	default:
		return utils.ShouldContinue(ctx, c.logger)
	}
}

// ProcessNext reads at most one new message and handles it.
func (c *RedisConsumer) ProcessNext(ctx context.Context) {
	streams, err := c.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: c.cfg.Consumer,
		Streams:  []string{common.RedisStreamSentimentAnalysisRequest, ">"},
		Count:    1,
		Block:    c.cfg.BlockTimeout,
	}).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, redis.Nil) {
			return
		}
		c.logger.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}
	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}
	c.handle(ctx, streams[0].Messages[0])
}

// ProcessRetries claims one message left pending longer than MaxIdle and handles it again.
func (c *RedisConsumer) ProcessRetries(ctx context.Context) {
	msgs, _, err := c.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   common.RedisStreamSentimentAnalysisRequest,
		Group:    common.RedisStreamGroup,
		Consumer: c.cfg.Consumer,
		MinIdle:  c.cfg.MaxIdle,
		Start:    "0",
		Count:    1,
	}).Result()
	if err != nil {
		c.logger.Error("Failed to claim pending analysis request", logger.ErrorField(err))
		return
	}
	if len(msgs) == 0 {
		return
	}
	c.logger.Info("Retrying pending analysis request", logger.StringField("message_id", msgs[0].ID))
	c.handle(ctx, msgs[0])
}

func (c *RedisConsumer) handle(ctx context.Context, msg redis.XMessage) {
	payload, ok := msg.Values[common.RedisStreamPayloadField].(string)
	if !ok {
		c.logger.Error("field 'payload' not found or not a string in stream message, dropping", logger.StringField("message_id", msg.ID))
		c.ack(ctx, msg.ID)
		return
	}

	var req dto.AnalysisRequestMessage
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		c.logger.Error("Failed to unmarshal analysis request, dropping", logger.ErrorField(err), logger.StringField("message_id", msg.ID))
		c.ack(ctx, msg.ID)
		return
	}

	processCtx, cancel := context.WithTimeout(ctx, c.cfg.ProcessTimeout)
	defer cancel()

	result, err := c.analysis.Analyze(processCtx, req.Ticker)
	switch {
	case errors.Is(err, service.ErrServiceUnavailable):
		// left pending; ProcessRetries picks it up once the model is ready
		c.logger.Warn("Classifier not ready, leaving request pending",
			logger.StringField("message_id", msg.ID),
			logger.StringField("ticker", req.Ticker))
		return
	case err != nil:
		c.logger.Error("Failed to analyze requested ticker, dropping",
			logger.ErrorField(err),
			logger.StringField("message_id", msg.ID),
			logger.StringField("ticker", req.Ticker))
		c.ack(ctx, msg.ID)
		return
	}

	c.ack(ctx, msg.ID)
	c.logger.Info("Analysis request processed",
		logger.StringField("message_id", msg.ID),
		logger.StringField("ticker", result.Ticker),
		logger.StringField("verdict", result.Verdict),
		logger.StringField("origin", req.Origin))

	if c.notifier != nil && len(result.Items) > 0 {
		if err := c.notifier.SendMessage(telegram.FormatAnalysisForTelegram(result)); err != nil {
			c.logger.Error("Failed to send telegram message", logger.ErrorField(err), logger.StringField("ticker", result.Ticker))
		}
	}
}

func (c *RedisConsumer) ack(ctx context.Context, id string) {
	stream := common.RedisStreamSentimentAnalysisRequest
	if err := c.redisClient.XAck(ctx, stream, common.RedisStreamGroup, id).Err(); err != nil {
		c.logger.Error("Failed to acknowledge analysis request", logger.ErrorField(err), logger.StringField("message_id", id))
		return
	}
	if err := c.redisClient.XDel(ctx, stream, id).Err(); err != nil {
		c.logger.Error("Failed to delete analysis request", logger.ErrorField(err), logger.StringField("message_id", id))
	}
}

// Stop ends both loops and waits for the in-flight message.
func (c *RedisConsumer) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
	c.wg.Wait()
	c.logger.Info("Redis consumer stopped")
}
