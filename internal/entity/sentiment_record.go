package entity

import "time"

// MaxHeadlineLength is the storage cap for SentimentRecord.Headline, in characters.
const MaxHeadlineLength = 200

// SentimentRecord is one analyzed headline. Records are insert-only.
type SentimentRecord struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	Ticker     string    `gorm:"type:varchar(16);not null;index"`
	Source     string    `gorm:"type:varchar(128)"`
	Headline   string    `gorm:"type:varchar(200)"`
	Sentiment  string    `gorm:"type:varchar(32)"`
	Confidence float64   `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

// TableName specifies the table name for the SentimentRecord model.
func (SentimentRecord) TableName() string {
	return "sentiment_records"
}
