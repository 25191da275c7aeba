package service

import (
	"context"
	"time"

	"go-social-insights/internal/entity"
	"go-social-insights/internal/insights/repository"
	"go-social-insights/pkg/common"
	"go-social-insights/pkg/logger"

	"github.com/patrickmn/go-cache"
)

// ClusterService defines the interface for reading clusters.
type ClusterService interface {
	GetAllClusters(ctx context.Context) ([]entity.Cluster, error)
}

// NewClusterService creates a cluster query service. Listings are cached
// briefly; the orchestrator invalidates the cache after a successful run.
func NewClusterService(clusterRepo repository.ClusterRepository, clusterCache *cache.Cache, cacheTTL time.Duration, log *logger.Logger) ClusterService {
	return &clusterService{
		clusterRepo:  clusterRepo,
		clusterCache: clusterCache,
		cacheTTL:     cacheTTL,
		logger:       log,
	}
}

type clusterService struct {
	clusterRepo  repository.ClusterRepository
	clusterCache *cache.Cache
	cacheTTL     time.Duration
	logger       *logger.Logger
}

// GetAllClusters retrieves all clusters, serving from cache when possible.
func (s *clusterService) GetAllClusters(ctx context.Context) ([]entity.Cluster, error) {
	if cached, found := s.clusterCache.Get(common.CacheKeyClusters); found {
		if clusters, ok := cached.([]entity.Cluster); ok {
			return clusters, nil
		}
	}

	clusters, err := s.clusterRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	s.clusterCache.Set(common.CacheKeyClusters, clusters, s.cacheTTL)
	return clusters, nil
}
