package dto

import (
	"fmt"

	"go-social-insights/internal/entity"
)

// PostInput is one post submitted for analysis.
type PostInput struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	Source      string `json:"source"`
	Author      string `json:"author,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// AnalyzeRequest is the payload for the analysis endpoint.
type AnalyzeRequest struct {
	Posts []PostInput `json:"posts"`
}

// SentimentScore carries the component scores from the polarity scorer.
type SentimentScore struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// PostResult is the per-post analysis output.
type PostResult struct {
	ID             string         `json:"id"`
	Sentiment      SentimentScore `json:"sentiment"`
	SentimentLabel string         `json:"sentimentLabel"`
	Keywords       []string       `json:"keywords"`
}

// ClusterResult is one discovered topic cluster mapped onto the taxonomy.
type ClusterResult struct {
	TaxonomyID     string   `json:"taxonomyId"`
	Label          string   `json:"label"`
	Description    string   `json:"description"`
	Keywords       []string `json:"keywords"`
	Sentiment      float64  `json:"sentiment"`
	SentimentLabel string   `json:"sentimentLabel"`
	PostCount      int      `json:"postCount"`
	PostIDs        []string `json:"postIds"`
}

// AnalyzeResponse is the full pipeline output. ClusteringSkipped is set to a
// non-fatal failure reason when clustering could not proceed; sentiment is
// computed either way.
type AnalyzeResponse struct {
	Clusters          []ClusterResult      `json:"clusters"`
	Posts             []PostResult         `json:"posts"`
	PostsAnalyzed     int                  `json:"postsAnalyzed"`
	ProcessingTimeMs  int64                `json:"processingTimeMs"`
	ClusteringSkipped entity.FailureReason `json:"clusteringSkipped,omitempty"`
}

// ErrorResponse represents a structured error with a reason code, distinct
// from a transport-level error.
type ErrorResponse struct {
	Error  string               `json:"error"`
	Reason entity.FailureReason `json:"reason"`
}

// ValidationError reports a request schema violation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the request against the single accepted schema. There are
// no field-name fallbacks: anything that does not conform is rejected.
func (r *AnalyzeRequest) Validate(maxPosts, maxContentLength int) error {
	if len(r.Posts) > maxPosts {
		return &ValidationError{Message: fmt.Sprintf("batch exceeds maximum of %d posts", maxPosts)}
	}

	seen := make(map[string]struct{}, len(r.Posts))
	for i, p := range r.Posts {
		if p.ID == "" {
			return &ValidationError{Message: fmt.Sprintf("posts[%d]: id is required", i)}
		}
		if _, dup := seen[p.ID]; dup {
			return &ValidationError{Message: fmt.Sprintf("posts[%d]: duplicate id %q", i, p.ID)}
		}
		seen[p.ID] = struct{}{}

		if p.Content == "" {
			return &ValidationError{Message: fmt.Sprintf("posts[%d]: content is required", i)}
		}
		if len(p.Content) > maxContentLength {
			return &ValidationError{Message: fmt.Sprintf("posts[%d]: content exceeds %d characters", i, maxContentLength)}
		}
		if !entity.SourceType(p.Source).IsValid() {
			return &ValidationError{Message: fmt.Sprintf("posts[%d]: unknown source %q", i, p.Source)}
		}
	}
	return nil
}
