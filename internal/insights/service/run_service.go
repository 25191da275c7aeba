package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	analysisdto "go-social-insights/internal/analysis/dto"
	"go-social-insights/internal/entity"
	"go-social-insights/internal/insights/config"
	"go-social-insights/internal/insights/dto"
	"go-social-insights/internal/insights/repository"
	"go-social-insights/pkg/common"
	"go-social-insights/pkg/logger"
	"go-social-insights/pkg/telegram"

	"github.com/patrickmn/go-cache"
	"gorm.io/datatypes"
)

// ErrRunInProgress is returned when a trigger arrives while another run
// holds the lock. No run record is created in that case.
var ErrRunInProgress = errors.New("an analysis run is already in progress")

// RunService is the top-level workflow for analysis runs: it drives the
// remote pipeline and reconciles results against persisted state under the
// replace-on-success rule.
type RunService interface {
	TriggerRun(ctx context.Context) (*entity.AnalysisRun, error)
	GetRun(ctx context.Context, id uint) (*entity.AnalysisRun, error)
	ListRuns(ctx context.Context) ([]entity.AnalysisRun, error)
}

// NewRunService creates the run orchestrator.
func NewRunService(
	cfg *config.Config,
	postRepo repository.PostRepository,
	clusterRepo repository.ClusterRepository,
	runRepo repository.AnalysisRunRepository,
	analyzerRepo repository.AnalyzerRepository,
	lockRepo repository.RunLockRepository,
	notifier telegram.Notifier,
	clusterCache *cache.Cache,
	log *logger.Logger,
) RunService {
	return &runService{
		cfg:          cfg,
		postRepo:     postRepo,
		clusterRepo:  clusterRepo,
		runRepo:      runRepo,
		analyzerRepo: analyzerRepo,
		lockRepo:     lockRepo,
		notifier:     notifier,
		clusterCache: clusterCache,
		logger:       log,
	}
}

type runService struct {
	cfg          *config.Config
	postRepo     repository.PostRepository
	clusterRepo  repository.ClusterRepository
	runRepo      repository.AnalysisRunRepository
	analyzerRepo repository.AnalyzerRepository
	lockRepo     repository.RunLockRepository
	notifier     telegram.Notifier
	clusterCache *cache.Cache
	logger       *logger.Logger
}

// TriggerRun executes one full analysis run. New results replace prior ones
// only after they have been fully computed and validated; any failure leaves
// the previous run's clusters and post assignments entirely intact.
func (s *runService) TriggerRun(ctx context.Context) (*entity.AnalysisRun, error) {
	acquired, err := s.lockRepo.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !acquired {
		return nil, ErrRunInProgress
	}
	defer func() {
		if err := s.lockRepo.Release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Error("failed to release run lock", logger.ErrorField(err))
		}
	}()

	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	// There is no queueing delay in this design, so runs start in
	// processing; pending exists only for future async execution.
	run := &entity.AnalysisRun{
		Status:    entity.RunStatusProcessing,
		StartedAt: time.Now(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create analysis run: %w", err)
	}
	s.logger.Info("analysis run started", logger.Field("run_id", run.ID), logger.IntField("posts", len(posts)))

	if len(posts) > s.cfg.Orchestrator.MaxPostsPerRun {
		s.failRun(ctx, run, entity.ReasonInvalidInput,
			fmt.Sprintf("post batch of %d exceeds maximum of %d", len(posts), s.cfg.Orchestrator.MaxPostsPerRun))
		return run, nil
	}

	// An empty analysis is not an error.
	if len(posts) == 0 {
		s.completeRun(ctx, run, 0, 0, "", nil)
		return run, nil
	}

	result, err := s.analyzerRepo.Analyze(ctx, buildAnalyzeRequest(posts))
	if err != nil {
		reason := entity.ReasonUnexpected
		var analysisErr *repository.AnalysisError
		if errors.As(err, &analysisErr) {
			reason = analysisErr.Reason
		}
		s.failRun(ctx, run, reason, err.Error())
		return run, nil
	}

	idByPostID := make(map[string]uint, len(posts))
	for _, p := range posts {
		idByPostID[p.PostID] = p.ID
	}

	sentiments, err := buildSentimentUpdates(result.Posts, idByPostID)
	if err != nil {
		s.failRun(ctx, run, entity.ReasonUnexpected, err.Error())
		return run, nil
	}

	// Clustering failures do not abort sentiment: persist scores and
	// complete the run as a partial success, leaving prior clusters alone.
	if result.ClusteringSkipped != "" {
		if err := s.postRepo.UpdateSentiments(ctx, sentiments); err != nil {
			s.failRun(ctx, run, entity.ReasonUnexpected, fmt.Sprintf("failed to persist sentiment: %v", err))
			return run, nil
		}
		s.completeRun(ctx, run, len(posts), 0, string(result.ClusteringSkipped), nil)
		return run, nil
	}

	writes, err := buildClusterWrites(result.Clusters, run.ID, idByPostID)
	if err != nil {
		s.failRun(ctx, run, entity.ReasonUnexpected, err.Error())
		return run, nil
	}

	// The single most important ordering property: compute first, replace
	// second. The replace itself is one transaction in the repository.
	if err := s.clusterRepo.ReplaceForRun(ctx, writes, sentiments); err != nil {
		s.failRun(ctx, run, entity.ReasonUnexpected, fmt.Sprintf("failed to apply analysis result: %v", err))
		return run, nil
	}

	s.clusterCache.Delete(common.CacheKeyClusters)
	s.completeRun(ctx, run, len(posts), len(writes), "", clusterSizes(writes))
	return run, nil
}

// GetRun retrieves a run by its ID.
func (s *runService) GetRun(ctx context.Context, id uint) (*entity.AnalysisRun, error) {
	return s.runRepo.FindByID(ctx, id)
}

// ListRuns retrieves all runs, newest first.
func (s *runService) ListRuns(ctx context.Context) ([]entity.AnalysisRun, error) {
	return s.runRepo.FindAll(ctx)
}

func buildAnalyzeRequest(posts []entity.Post) *analysisdto.AnalyzeRequest {
	req := &analysisdto.AnalyzeRequest{Posts: make([]analysisdto.PostInput, len(posts))}
	for i, p := range posts {
		input := analysisdto.PostInput{
			ID:      p.PostID,
			Content: p.Content,
			Source:  string(p.Source),
			Author:  p.Author,
		}
		if p.PublishedAt != nil {
			input.PublishedAt = p.PublishedAt.Format(time.RFC3339)
		}
		req.Posts[i] = input
	}
	return req
}

func buildSentimentUpdates(results []analysisdto.PostResult, idByPostID map[string]uint) ([]repository.SentimentUpdate, error) {
	updates := make([]repository.SentimentUpdate, 0, len(results))
	for _, p := range results {
		dbID, ok := idByPostID[p.ID]
		if !ok {
			return nil, fmt.Errorf("analysis response references unknown post %q", p.ID)
		}
		updates = append(updates, repository.SentimentUpdate{
			PostDBID: dbID,
			Compound: p.Sentiment.Compound,
			Positive: p.Sentiment.Positive,
			Negative: p.Sentiment.Negative,
			Neutral:  p.Sentiment.Neutral,
			Label:    entity.LabelForCompound(p.Sentiment.Compound),
		})
	}
	return updates, nil
}

func buildClusterWrites(clusters []analysisdto.ClusterResult, runID uint, idByPostID map[string]uint) ([]repository.ClusterWrite, error) {
	writes := make([]repository.ClusterWrite, 0, len(clusters))
	for _, c := range clusters {
		memberIDs := make([]uint, 0, len(c.PostIDs))
		for _, postID := range c.PostIDs {
			dbID, ok := idByPostID[postID]
			if !ok {
				return nil, fmt.Errorf("analysis response references unknown post %q", postID)
			}
			memberIDs = append(memberIDs, dbID)
		}
		writes = append(writes, repository.ClusterWrite{
			Cluster: entity.Cluster{
				TaxonomyID:     c.TaxonomyID,
				Label:          c.Label,
				Description:    c.Description,
				Keywords:       c.Keywords,
				Sentiment:      c.Sentiment,
				SentimentLabel: entity.SentimentLabel(c.SentimentLabel),
				PostCount:      c.PostCount,
				AnalysisRunID:  runID,
			},
			MemberIDs: memberIDs,
		})
	}
	return writes, nil
}

func clusterSizes(writes []repository.ClusterWrite) *dto.RunStats {
	stats := &dto.RunStats{ClusterSizes: make([]int, len(writes))}
	for i, w := range writes {
		stats.ClusterSizes[i] = len(w.MemberIDs)
	}
	return stats
}

// completeRun transitions the run to completed. A non-empty reason marks a
// partial success where clustering was skipped but sentiment was persisted.
func (s *runService) completeRun(ctx context.Context, run *entity.AnalysisRun, postsAnalyzed, clustersCreated int, reason string, stats *dto.RunStats) {
	if !run.Status.CanTransitionTo(entity.RunStatusCompleted) {
		s.logger.Error("illegal run transition", logger.Field("run_id", run.ID), logger.StringField("from", string(run.Status)))
		return
	}

	now := time.Now()
	run.Status = entity.RunStatusCompleted
	run.PostsAnalyzed = postsAnalyzed
	run.ClustersCreated = clustersCreated
	run.CompletedAt = sql.NullTime{Time: now, Valid: true}
	run.DurationMs = now.Sub(run.StartedAt).Milliseconds()
	if reason != "" {
		run.ErrorMessage = sql.NullString{String: reason, Valid: true}
	}
	if stats != nil {
		if raw, err := json.Marshal(stats); err == nil {
			run.Stats = datatypes.JSON(raw)
		}
	}

	if err := s.runRepo.Update(ctx, run); err != nil {
		s.logger.Error("failed to update analysis run", logger.ErrorField(err), logger.Field("run_id", run.ID))
		return
	}

	s.logger.Info("analysis run completed",
		logger.Field("run_id", run.ID),
		logger.IntField("posts_analyzed", postsAnalyzed),
		logger.IntField("clusters_created", clustersCreated),
		logger.StringField("clustering_skipped", reason),
	)
	s.notify(run)
}

// failRun transitions the run to failed. Previously committed clusters and
// assignments are left untouched by construction: nothing has been written
// at any call site of failRun.
func (s *runService) failRun(ctx context.Context, run *entity.AnalysisRun, reason entity.FailureReason, message string) {
	if !run.Status.CanTransitionTo(entity.RunStatusFailed) {
		s.logger.Error("illegal run transition", logger.Field("run_id", run.ID), logger.StringField("from", string(run.Status)))
		return
	}

	now := time.Now()
	run.Status = entity.RunStatusFailed
	run.CompletedAt = sql.NullTime{Time: now, Valid: true}
	run.DurationMs = now.Sub(run.StartedAt).Milliseconds()
	run.ErrorMessage = sql.NullString{String: fmt.Sprintf("%s: %s", reason, message), Valid: true}

	if err := s.runRepo.Update(ctx, run); err != nil {
		s.logger.Error("failed to update analysis run", logger.ErrorField(err), logger.Field("run_id", run.ID))
		return
	}

	s.logger.Error("analysis run failed",
		logger.Field("run_id", run.ID),
		logger.StringField("reason", string(reason)),
		logger.StringField("message", message),
	)
	s.notify(run)
}

func (s *runService) notify(run *entity.AnalysisRun) {
	if err := s.notifier.SendMessage(telegram.FormatRunSummary(run)); err != nil {
		s.logger.Warn("failed to send run notification", logger.ErrorField(err), logger.Field("run_id", run.ID))
	}
}
