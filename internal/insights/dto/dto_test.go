package dto

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-social-insights/internal/entity"
)

func TestIngestPostsRequest_Validate(t *testing.T) {
	valid := IngestPostsRequest{Posts: []IngestPostInput{
		{PostID: "p1", Content: "battery range", Source: "twitter"},
		{PostID: "p2", Content: "sleeper comfort", Source: "forums"},
	}}
	assert.NoError(t, valid.Validate())

	empty := IngestPostsRequest{}
	assert.EqualError(t, empty.Validate(), "posts must not be empty")

	missing := valid
	missing.Posts = append([]IngestPostInput(nil), valid.Posts...)
	missing.Posts[0].PostID = ""
	assert.Contains(t, missing.Validate().Error(), "post_id is required")

	dup := valid
	dup.Posts = append([]IngestPostInput(nil), valid.Posts...)
	dup.Posts[1].PostID = "p1"
	assert.Contains(t, dup.Validate().Error(), `duplicate post_id "p1"`)

	badSource := valid
	badSource.Posts = append([]IngestPostInput(nil), valid.Posts...)
	badSource.Posts[0].Source = "myspace"
	assert.Contains(t, badSource.Validate().Error(), `unknown source "myspace"`)
}

func TestFromRunEntity(t *testing.T) {
	started := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	completed := started.Add(3 * time.Second)
	run := &entity.AnalysisRun{
		ID:              42,
		Status:          entity.RunStatusCompleted,
		PostsAnalyzed:   10,
		ClustersCreated: 3,
		StartedAt:       started,
		CompletedAt:     sql.NullTime{Time: completed, Valid: true},
		DurationMs:      3000,
	}

	resp := FromRunEntity(run)
	assert.Equal(t, uint(42), resp.ID)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 10, resp.PostsAnalyzed)
	assert.Equal(t, 3, resp.ClustersCreated)
	require.NotNil(t, resp.CompletedAt)
	assert.Equal(t, completed, *resp.CompletedAt)
	assert.Nil(t, resp.Error)
}

func TestFromRunEntity_FailedRun(t *testing.T) {
	run := &entity.AnalysisRun{
		ID:           7,
		Status:       entity.RunStatusFailed,
		StartedAt:    time.Now(),
		ErrorMessage: sql.NullString{String: "downstream_unreachable: connection refused", Valid: true},
	}

	resp := FromRunEntity(run)
	assert.Equal(t, "failed", resp.Status)
	assert.Nil(t, resp.CompletedAt)
	require.NotNil(t, resp.Error)
	assert.Contains(t, *resp.Error, "downstream_unreachable")
}
