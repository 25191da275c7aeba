package repository

import (
	"context"
	"time"

	"go-social-insights/pkg/common"

	"github.com/redis/go-redis/v9"
)

// RunLockRepository is the advisory lock guaranteeing that at most one
// analysis run executes at a time. Without it two concurrent runs could
// interleave their replace phases.
type RunLockRepository interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// NewRunLockRepository creates a Redis-backed run lock.
func NewRunLockRepository(client *redis.Client) RunLockRepository {
	return &runLockRepository{client: client}
}

type runLockRepository struct {
	client *redis.Client
}

// Acquire attempts to take the lock. The TTL bounds staleness if the
// process dies while holding it.
func (r *runLockRepository) Acquire(ctx context.Context) (bool, error) {
	return r.client.SetNX(ctx, common.RedisKeyAnalysisRunLock,
		time.Now().UTC().Format(time.RFC3339), common.AnalysisRunLockTTL).Result()
}

// Release drops the lock.
func (r *runLockRepository) Release(ctx context.Context) error {
	return r.client.Del(ctx, common.RedisKeyAnalysisRunLock).Err()
}
