package repository

import (
	"context"
	"fmt"
	"strings"

	"golang-stock-sentiment/internal/entity"

	"gorm.io/gorm"
)

const (
	// MaxHistoryLimit caps every history query.
	MaxHistoryLimit = 100

	defaultInsertBatchSize = 100
)

// SentimentRecordRepository is the record store gateway for analyzed headlines.
type SentimentRecordRepository interface {
	InitSchema(ctx context.Context) error
	InsertBatch(ctx context.Context, records []entity.SentimentRecord) error
	QueryHistory(ctx context.Context, ticker string, limit int) ([]entity.SentimentRecord, error)
}

// NewSentimentRecordRepository creates a new GORM-based repository.
// batchSize controls how many rows go into one INSERT statement; all statements share one transaction.
func NewSentimentRecordRepository(db *gorm.DB, batchSize int) SentimentRecordRepository {
	if batchSize <= 0 {
		batchSize = defaultInsertBatchSize
	}
	return &sentimentRecordRepository{db: db, batchSize: batchSize}
}

type sentimentRecordRepository struct {
	db        *gorm.DB
	batchSize int
}

// InitSchema creates or updates the sentiment_records table. It is safe to call repeatedly.
func (r *sentimentRecordRepository) InitSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&entity.SentimentRecord{}); err != nil {
		return fmt.Errorf("failed to migrate sentiment_records: %w", err)
	}
	return nil
}

// InsertBatch stores records in slice order inside a single transaction.
func (r *sentimentRecordRepository) InsertBatch(ctx context.Context, records []entity.SentimentRecord) error {
	if len(records) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&records, r.batchSize).Error
	})
	if err != nil {
		return fmt.Errorf("insert sentiment_records error: %w", err)
	}
	return nil
}

// QueryHistory returns the newest records first, optionally for one ticker.
// limit is clamped to MaxHistoryLimit; a non-positive limit means MaxHistoryLimit.
func (r *sentimentRecordRepository) QueryHistory(ctx context.Context, ticker string, limit int) ([]entity.SentimentRecord, error) {
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	query := r.db.WithContext(ctx).Model(&entity.SentimentRecord{})
	if ticker = strings.ToUpper(strings.TrimSpace(ticker)); ticker != "" {
		query = query.Where("ticker = ?", ticker)
	}

	var records []entity.SentimentRecord
	if err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("query sentiment_records error: %w", err)
	}
	return records, nil
}
