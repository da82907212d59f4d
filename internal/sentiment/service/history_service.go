package service

import (
	"context"
	"strings"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/sentiment/dto"
	"golang-stock-sentiment/internal/sentiment/repository"
	"golang-stock-sentiment/pkg/logger"
)

// HistoryService reads previously stored analyses.
type HistoryService interface {
	GetHistory(ctx context.Context, ticker string, limit int) (*dto.HistoryResponse, error)
}

// NewHistoryService creates a new history service.
func NewHistoryService(recordRepo repository.SentimentRecordRepository, log *logger.Logger) HistoryService {
	return &historyService{recordRepo: recordRepo, logger: log}
}

type historyService struct {
	recordRepo repository.SentimentRecordRepository
	logger     *logger.Logger
}

// GetHistory returns stored records newest first. An empty ticker means all tickers.
func (s *historyService) GetHistory(ctx context.Context, ticker string, limit int) (*dto.HistoryResponse, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker != "" {
		normalized, err := NormalizeTicker(ticker)
		if err != nil {
			return nil, err
		}
		ticker = normalized
	}

	records, err := s.recordRepo.QueryHistory(ctx, ticker, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to query sentiment history",
			logger.StringField("ticker", ticker),
			logger.ErrorField(err))
		return nil, err
	}

	resp := &dto.HistoryResponse{
		Count:   len(records),
		Records: make([]dto.SentimentRecordResponse, 0, len(records)),
	}
	for i := range records {
		resp.Records = append(resp.Records, mapToRecordResponse(&records[i]))
	}
	return resp, nil
}

func mapToRecordResponse(r *entity.SentimentRecord) dto.SentimentRecordResponse {
	return dto.SentimentRecordResponse{
		ID:         r.ID,
		Ticker:     r.Ticker,
		Source:     r.Source,
		Headline:   r.Headline,
		Sentiment:  r.Sentiment,
		Confidence: r.Confidence,
		CreatedAt:  r.CreatedAt,
	}
}
