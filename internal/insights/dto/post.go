package dto

import (
	"fmt"
	"time"

	"go-social-insights/internal/entity"
)

// IngestPostInput is one post submitted for ingestion.
type IngestPostInput struct {
	PostID      string     `json:"post_id"`
	Content     string     `json:"content"`
	Source      string     `json:"source"`
	Author      string     `json:"author,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// IngestPostsRequest is the bulk post ingestion payload.
type IngestPostsRequest struct {
	Posts []IngestPostInput `json:"posts"`
}

// Validate checks the ingestion payload against the accepted schema.
func (r *IngestPostsRequest) Validate() error {
	if len(r.Posts) == 0 {
		return fmt.Errorf("posts must not be empty")
	}
	seen := make(map[string]struct{}, len(r.Posts))
	for i, p := range r.Posts {
		if p.PostID == "" {
			return fmt.Errorf("posts[%d]: post_id is required", i)
		}
		if _, dup := seen[p.PostID]; dup {
			return fmt.Errorf("posts[%d]: duplicate post_id %q", i, p.PostID)
		}
		seen[p.PostID] = struct{}{}
		if p.Content == "" {
			return fmt.Errorf("posts[%d]: content is required", i)
		}
		if !entity.SourceType(p.Source).IsValid() {
			return fmt.Errorf("posts[%d]: unknown source %q", i, p.Source)
		}
	}
	return nil
}

// IngestPostsResponse reports how many posts were stored.
type IngestPostsResponse struct {
	Ingested int `json:"ingested"`
}
