package repository

import (
	"context"

	"go-social-insights/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SentimentUpdate carries the per-post sentiment fields written back after
// an analysis run.
type SentimentUpdate struct {
	PostDBID uint
	Compound float64
	Positive float64
	Negative float64
	Neutral  float64
	Label    entity.SentimentLabel
}

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	BulkUpsert(ctx context.Context, posts []entity.Post) error
	FindAll(ctx context.Context) ([]entity.Post, error)
	Count(ctx context.Context) (int64, error)
	UpdateSentiments(ctx context.Context, updates []SentimentUpdate) error
}

// NewPostRepository creates a new GORM-based post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

type postRepository struct {
	db *gorm.DB
}

// BulkUpsert inserts posts, updating content fields when a post with the
// same external id already exists. Pipeline-derived fields are not touched.
func (r *postRepository) BulkUpsert(ctx context.Context, posts []entity.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "source", "author", "published_at", "updated_at"}),
	}).Create(&posts).Error
}

// FindAll retrieves all posts ordered by primary key.
func (r *postRepository) FindAll(ctx context.Context) ([]entity.Post, error) {
	var posts []entity.Post
	if err := r.db.WithContext(ctx).Order("id").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns the number of stored posts.
func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateSentiments writes sentiment fields for the given posts in a single
// transaction. Cluster assignments are not touched; this is the write path
// for runs whose clustering stage was skipped.
func (r *postRepository) UpdateSentiments(ctx context.Context, updates []SentimentUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			err := tx.Model(&entity.Post{}).Where("id = ?", u.PostDBID).Updates(map[string]interface{}{
				"sentiment_compound": u.Compound,
				"sentiment_positive": u.Positive,
				"sentiment_negative": u.Negative,
				"sentiment_neutral":  u.Neutral,
				"sentiment_label":    u.Label,
			}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
