package service

import (
	"context"

	"go-social-insights/internal/entity"
	"go-social-insights/internal/insights/dto"
	"go-social-insights/internal/insights/repository"
	"go-social-insights/pkg/logger"
)

// PostService defines the interface for managing posts.
type PostService interface {
	IngestPosts(ctx context.Context, req *dto.IngestPostsRequest) (int, error)
	GetAllPosts(ctx context.Context) ([]entity.Post, error)
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, log *logger.Logger) PostService {
	return &postService{postRepo: postRepo, logger: log}
}

type postService struct {
	postRepo repository.PostRepository
	logger   *logger.Logger
}

// IngestPosts stores a validated batch of posts, upserting on external id.
func (s *postService) IngestPosts(ctx context.Context, req *dto.IngestPostsRequest) (int, error) {
	posts := make([]entity.Post, len(req.Posts))
	for i, p := range req.Posts {
		posts[i] = entity.Post{
			PostID:      p.PostID,
			Content:     p.Content,
			Source:      entity.SourceType(p.Source),
			Author:      p.Author,
			PublishedAt: p.PublishedAt,
		}
	}

	if err := s.postRepo.BulkUpsert(ctx, posts); err != nil {
		s.logger.Error("failed to ingest posts", logger.ErrorField(err), logger.IntField("count", len(posts)))
		return 0, err
	}

	s.logger.Info("posts ingested", logger.IntField("count", len(posts)))
	return len(posts), nil
}

// GetAllPosts retrieves all posts.
func (s *postService) GetAllPosts(ctx context.Context) ([]entity.Post, error) {
	return s.postRepo.FindAll(ctx)
}
