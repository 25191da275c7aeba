package repository

import (
	"context"

	"go-social-insights/internal/entity"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ClusterWrite is one new cluster together with the database ids of its
// member posts.
type ClusterWrite struct {
	Cluster   entity.Cluster
	MemberIDs []uint
}

// ClusterRepository defines the interface for cluster data operations.
type ClusterRepository interface {
	FindAll(ctx context.Context) ([]entity.Cluster, error)
	// ReplaceForRun applies a full analysis result as one atomic unit:
	// previous clusters and post assignments are removed and the new ones
	// written inside a single transaction, so a failure leaves the old
	// state entirely intact.
	ReplaceForRun(ctx context.Context, writes []ClusterWrite, sentiments []SentimentUpdate) error
}

// NewClusterRepository creates a new GORM-based cluster repository.
func NewClusterRepository(db *gorm.DB) ClusterRepository {
	return &clusterRepository{db: db}
}

type clusterRepository struct {
	db *gorm.DB
}

// FindAll retrieves all clusters ordered by descending size.
func (r *clusterRepository) FindAll(ctx context.Context) ([]entity.Cluster, error) {
	var clusters []entity.Cluster
	if err := r.db.WithContext(ctx).Order("post_count DESC, id").Find(&clusters).Error; err != nil {
		return nil, err
	}
	return clusters, nil
}

// ReplaceForRun replaces all clusters and post assignments with the given
// result set in one transaction.
func (r *clusterRepository) ReplaceForRun(ctx context.Context, writes []ClusterWrite, sentiments []SentimentUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Clear prior assignments before dropping their clusters.
		err := tx.Model(&entity.Post{}).Where("cluster_id IS NOT NULL").Updates(map[string]interface{}{
			"cluster_id": nil,
			"keywords":   pq.StringArray{},
		}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("1 = 1").Delete(&entity.Cluster{}).Error; err != nil {
			return err
		}

		for i := range writes {
			if err := tx.Create(&writes[i].Cluster).Error; err != nil {
				return err
			}
			if len(writes[i].MemberIDs) == 0 {
				continue
			}
			err := tx.Model(&entity.Post{}).Where("id IN ?", writes[i].MemberIDs).Updates(map[string]interface{}{
				"cluster_id": writes[i].Cluster.ID,
				"keywords":   writes[i].Cluster.Keywords,
			}).Error
			if err != nil {
				return err
			}
		}

		for _, u := range sentiments {
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
