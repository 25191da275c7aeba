package entity

import (
	"time"

	"github.com/lib/pq"
)

// SourceType identifies the channel a post was collected from.
type SourceType string

const (
	SourceTwitter SourceType = "twitter"
	SourceYouTube SourceType = "youtube"
	SourceForums  SourceType = "forums"
)

// IsValid reports whether the source is one of the supported channels.
func (s SourceType) IsValid() bool {
	switch s {
	case SourceTwitter, SourceYouTube, SourceForums:
		return true
	}
	return false
}

// Post represents a collected social/forum post together with the
// sentiment and cluster fields written back by the analysis pipeline.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PostID      string     `gorm:"unique;not null" json:"post_id"`
	Source      SourceType `gorm:"not null" json:"source"`
	Content     string     `gorm:"not null" json:"content"`
	Author      string     `json:"author"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	// Fields populated by the analysis pipeline.
	SentimentCompound *float64       `json:"sentiment_compound,omitempty"`
	SentimentPositive *float64       `json:"sentiment_positive,omitempty"`
	SentimentNegative *float64       `json:"sentiment_negative,omitempty"`
	SentimentNeutral  *float64       `json:"sentiment_neutral,omitempty"`
	SentimentLabel    SentimentLabel `json:"sentiment_label,omitempty"`
	Keywords          pq.StringArray `gorm:"type:text[]" json:"keywords"`
	ClusterID         *uint          `json:"cluster_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Post model.
func (Post) TableName() string {
	return "posts"
}
