package dto

import (
	"time"

	"go-social-insights/internal/entity"
)

// RunResponse is the API representation of an analysis run.
type RunResponse struct {
	ID              uint       `json:"id"`
	Status          string     `json:"status"`
	PostsAnalyzed   int        `json:"posts_analyzed"`
	ClustersCreated int        `json:"clusters_created"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	DurationMs      int64      `json:"duration_ms"`
	Error           *string    `json:"error,omitempty"`
}

// RunStats is the per-run summary stored alongside a completed run.
type RunStats struct {
	ClusterSizes []int `json:"cluster_sizes"`
}

// FromRunEntity maps an entity.AnalysisRun to its API representation.
func FromRunEntity(run *entity.AnalysisRun) *RunResponse {
	resp := &RunResponse{
		ID:              run.ID,
		Status:          string(run.Status),
		PostsAnalyzed:   run.PostsAnalyzed,
		ClustersCreated: run.ClustersCreated,
		StartedAt:       run.StartedAt,
		DurationMs:      run.DurationMs,
	}
	if run.CompletedAt.Valid {
		t := run.CompletedAt.Time
		resp.CompletedAt = &t
	}
	if run.ErrorMessage.Valid {
		msg := run.ErrorMessage.String
		resp.Error = &msg
	}
	return resp
}
