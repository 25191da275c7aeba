package entity

import (
	"time"

	"github.com/lib/pq"
)

// SentimentLabel classifies a compound sentiment score.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Sentiment label thresholds on the compound score.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// LabelForCompound derives the sentiment label from a compound score.
func LabelForCompound(compound float64) SentimentLabel {
	switch {
	case compound >= PositiveThreshold:
		return SentimentPositive
	case compound <= NegativeThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Cluster represents a topic group discovered by one analysis run,
// mapped onto the business taxonomy.
type Cluster struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	TaxonomyID     string         `gorm:"not null" json:"taxonomy_id"`
	Label          string         `gorm:"not null" json:"label"`
	Description    string         `json:"description"`
	Keywords       pq.StringArray `gorm:"type:text[]" json:"keywords"`
	Sentiment      float64        `json:"sentiment"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
	PostCount      int            `json:"post_count"`
	AnalysisRunID  uint           `gorm:"not null" json:"analysis_run_id"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Cluster model.
func (Cluster) TableName() string {
	return "clusters"
}
