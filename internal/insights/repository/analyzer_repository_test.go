package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analysisdto "go-social-insights/internal/analysis/dto"
	"go-social-insights/internal/entity"
	insightsconfig "go-social-insights/internal/insights/config"
	"go-social-insights/pkg/logger"
)

func newTestAnalyzerRepo(t *testing.T, baseURL string) AnalyzerRepository {
	t.Helper()
	cfg := &insightsconfig.Config{
		Analyzer: insightsconfig.Analyzer{
			BaseURL:             baseURL,
			ConnectTimeout:      "1s",
			ReadTimeout:         "5s",
			MaxRequestPerMinute: 6000,
		},
	}
	repo, err := NewAnalyzerRepository(cfg, logger.NewNop())
	require.NoError(t, err)
	return repo
}

func analyzeRequest() *analysisdto.AnalyzeRequest {
	return &analysisdto.AnalyzeRequest{
		Posts: []analysisdto.PostInput{
			{ID: "p1", Content: "battery range", Source: "twitter"},
		},
	}
}

func TestAnalyzerRepository_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/analysis", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req analysisdto.AnalyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Posts, 1)

		_ = json.NewEncoder(w).Encode(analysisdto.AnalyzeResponse{
			Posts:         []analysisdto.PostResult{{ID: "p1"}},
			PostsAnalyzed: 1,
		})
	}))
	defer srv.Close()

	repo := newTestAnalyzerRepo(t, srv.URL)
	resp, err := repo.Analyze(context.Background(), analyzeRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.PostsAnalyzed)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "p1", resp.Posts[0].ID)
}

func TestAnalyzerRepository_StructuredErrorKeepsReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(analysisdto.ErrorResponse{
			Error:  "posts[0]: unknown source",
			Reason: entity.ReasonInvalidInput,
		})
	}))
	defer srv.Close()

	repo := newTestAnalyzerRepo(t, srv.URL)
	_, err := repo.Analyze(context.Background(), analyzeRequest())
	require.Error(t, err)

	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, entity.ReasonInvalidInput, analysisErr.Reason)
	assert.Contains(t, analysisErr.Message, "unknown source")
}

func TestAnalyzerRepository_OpaqueErrorIsUnexpected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	repo := newTestAnalyzerRepo(t, srv.URL)
	_, err := repo.Analyze(context.Background(), analyzeRequest())

	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, entity.ReasonUnexpected, analysisErr.Reason)
	assert.Contains(t, analysisErr.Message, "502")
}

func TestAnalyzerRepository_UnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	repo := newTestAnalyzerRepo(t, srv.URL)
	_, err := repo.Analyze(context.Background(), analyzeRequest())

	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, entity.ReasonDownstreamUnreachable, analysisErr.Reason)
}

func TestAnalyzerRepository_MalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"clusters": not json`))
	}))
	defer srv.Close()

	repo := newTestAnalyzerRepo(t, srv.URL)
	_, err := repo.Analyze(context.Background(), analyzeRequest())

	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, entity.ReasonUnexpected, analysisErr.Reason)
	assert.Contains(t, analysisErr.Message, "malformed analysis response")
}
