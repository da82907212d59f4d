package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/sentiment/classifier"
	"golang-stock-sentiment/internal/sentiment/dto"
	"golang-stock-sentiment/internal/sentiment/news"
	"golang-stock-sentiment/internal/sentiment/repository"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"
)

var (
	ErrInvalidTicker        = errors.New("ticker is required and must be a valid symbol")
	ErrServiceUnavailable   = errors.New("sentiment model is not ready")
	ErrInvalidText          = errors.New("text is required")
	ErrClassificationFailed = errors.New("classification failed")
)

const (
	confidencePlaces = 4
	previewLength    = 50
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.^=:-]{1,16}$`)

// Classifier classifies one text once the model is ready.
type Classifier interface {
	Ready() bool
	Classify(ctx context.Context, text string) (classifier.Prediction, error)
}

// AnalysisRecorder receives pipeline outcomes for metrics.
type AnalysisRecorder interface {
	RecordAnalysis(verdict string)
	RecordLabel(label string)
	RecordPersistFailure()
}

// AnalysisConfig holds the news page requested per analysis.
type AnalysisConfig struct {
	NewsLimit int
	NewsPage  int
}

// AnalysisService runs the fetch, classify, tally and persist pipeline.
type AnalysisService interface {
	Analyze(ctx context.Context, ticker string) (*dto.AnalysisResult, error)
	Predict(ctx context.Context, text string) (*dto.PredictResponse, error)
}

// NewAnalysisService creates a new analysis service. recorder may be nil.
func NewAnalysisService(
	cfg AnalysisConfig,
	fetcher news.Fetcher,
	clf Classifier,
	recordRepo repository.SentimentRecordRepository,
	recorder AnalysisRecorder,
	log *logger.Logger,
) AnalysisService {
	if cfg.NewsLimit <= 0 {
		cfg.NewsLimit = 20
	}
	return &analysisService{
		cfg:        cfg,
		fetcher:    fetcher,
		classifier: clf,
		recordRepo: recordRepo,
		recorder:   recorder,
		logger:     log,
	}
}

type analysisService struct {
	cfg        AnalysisConfig
	fetcher    news.Fetcher
	classifier Classifier
	recordRepo repository.SentimentRecordRepository
	recorder   AnalysisRecorder
	logger     *logger.Logger
}

// NormalizeTicker trims and uppercases a ticker, rejecting blank or malformed symbols.
func NormalizeTicker(raw string) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	if !tickerPattern.MatchString(ticker) {
		return "", ErrInvalidTicker
	}
	return ticker, nil
}

// Analyze fetches news for ticker, classifies every headline in order and stores the batch in one commit.
// A storage failure is logged and reported through Persisted; the analysis is still returned.
func (s *analysisService) Analyze(ctx context.Context, rawTicker string) (*dto.AnalysisResult, error) {
	ticker, err := NormalizeTicker(rawTicker)
	if err != nil {
		return nil, err
	}
	if !s.classifier.Ready() {
		return nil, ErrServiceUnavailable
	}

	fetched := s.fetcher.Fetch(ctx, news.Query{Ticker: ticker, Limit: s.cfg.NewsLimit, Page: s.cfg.NewsPage})
	if fetched.Failed() {
		s.logger.WarnContext(ctx, "News fetch failed, reporting no news",
			logger.StringField("ticker", ticker),
			logger.StringField("failure", fetched.Failure.String()),
			logger.ErrorField(fetched.Err))
	}
	if len(fetched.Items) == 0 || fetched.Failed() {
		s.record(VerdictNoNews, nil)
		return &dto.AnalysisResult{
			Ticker:  ticker,
			Verdict: VerdictNoNews,
			Items:   []dto.AnalyzedItem{},
		}, nil
	}

	var (
		counts  tally
		items   = make([]dto.AnalyzedItem, 0, len(fetched.Items))
		records = make([]entity.SentimentRecord, 0, len(fetched.Items))
		labels  = make([]string, 0, len(fetched.Items))
	)
	for _, item := range fetched.Items {
		headline := strings.TrimSpace(item.Headline)
		if headline == "" {
			continue
		}

		pred, err := s.classifier.Classify(ctx, headline)
		if err != nil {
			if errors.Is(err, classifier.ErrNotReady) {
				return nil, ErrServiceUnavailable
			}
			s.logger.ErrorContext(ctx, "Failed to classify headline",
				logger.StringField("ticker", ticker),
				logger.StringField("headline", headline),
				logger.ErrorField(err))
			return nil, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
		}

		counts.add(pred.Label)
		labels = append(labels, string(pred.Label))
		records = append(records, entity.SentimentRecord{
			Ticker:     ticker,
			Source:     item.SourceLabel,
			Headline:   utils.TruncateRunes(headline, entity.MaxHeadlineLength),
			Sentiment:  string(pred.Label),
			Confidence: pred.Confidence,
		})
		items = append(items, dto.AnalyzedItem{
			Headline:   headline,
			Sentiment:  string(pred.Label),
			Confidence: utils.Round(pred.Confidence, confidencePlaces),
			Source:     item.SourceLabel,
			Published:  item.PublishedAt,
		})
	}

	verdict := Verdict(counts.bullish, counts.bearish)
	if len(items) == 0 {
		verdict = VerdictNoNews
	}

	result := &dto.AnalysisResult{
		Ticker:  ticker,
		Verdict: verdict,
		Counts: dto.SentimentCounts{
			Bullish:       counts.bullish,
			Bearish:       counts.bearish,
			Neutral:       counts.neutral,
			TotalAnalyzed: counts.total(),
		},
		Items: items,
	}

	if len(records) > 0 {
		if err := s.recordRepo.InsertBatch(ctx, records); err != nil {
			s.logger.ErrorContext(ctx, "Failed to persist sentiment records",
				logger.StringField("ticker", ticker),
				logger.IntField("record_count", len(records)),
				logger.ErrorField(err))
			if s.recorder != nil {
				s.recorder.RecordPersistFailure()
			}
		} else {
			result.Persisted = true
		}
	}

	s.record(verdict, labels)
	s.logger.InfoContext(ctx, "Sentiment analysis completed",
		logger.StringField("ticker", ticker),
		logger.StringField("verdict", verdict),
		logger.IntField("bullish", counts.bullish),
		logger.IntField("bearish", counts.bearish),
		logger.IntField("neutral", counts.neutral),
		logger.BoolField("persisted", result.Persisted))

	return result, nil
}

// Predict classifies arbitrary text without touching the store.
func (s *analysisService) Predict(ctx context.Context, text string) (*dto.PredictResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidText
	}
	if !s.classifier.Ready() {
		return nil, ErrServiceUnavailable
	}

	pred, err := s.classifier.Classify(ctx, text)
	if err != nil {
		if errors.Is(err, classifier.ErrNotReady) {
			return nil, ErrServiceUnavailable
		}
		return nil, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}

	return &dto.PredictResponse{
		Sentiment:    string(pred.Label),
		Confidence:   utils.Round(pred.Confidence, confidencePlaces),
		InputPreview: utils.TruncateRunes(text, previewLength) + "...",
	}, nil
}

func (s *analysisService) record(verdict string, labels []string) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordAnalysis(verdict)
	for _, l := range labels {
		s.recorder.RecordLabel(l)
	}
}
