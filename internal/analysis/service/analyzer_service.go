package service

import (
	"context"
	"time"

	"go-social-insights/internal/analysis/config"
	"go-social-insights/internal/analysis/dto"
	"go-social-insights/internal/entity"
	"go-social-insights/pkg/logger"
)

// AnalyzerService runs the full analysis pipeline over one post batch:
// preprocessing, vectorization, clustering, taxonomy matching and sentiment
// scoring.
type AnalyzerService interface {
	Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error)
}

// NewAnalyzerService wires the pipeline components from configuration.
func NewAnalyzerService(cfg *config.Config, log *logger.Logger) AnalyzerService {
	pre := NewPreprocessor(cfg.Analysis.DomainStopwords, cfg.Analysis.MinTokenLength)
	return &analyzerService{
		cfg:          cfg,
		logger:       log,
		preprocessor: pre,
		vectorizer:   NewVectorizer(),
		clusterer: NewClusterer(
			cfg.Analysis.MaxClusters,
			cfg.Analysis.TopKeywords,
			cfg.Analysis.MaxIterations,
			cfg.Analysis.MinVocabulary,
			cfg.Analysis.Seed,
		),
		matcher: NewTaxonomyMatcher(cfg.Taxonomy, pre),
		scorer:  NewSentimentScorer(),
	}
}

type analyzerService struct {
	cfg          *config.Config
	logger       *logger.Logger
	preprocessor *Preprocessor
	vectorizer   *Vectorizer
	clusterer    *Clusterer
	matcher      *TaxonomyMatcher
	scorer       *SentimentScorer
}

// Analyze processes one bounded post batch to completion. Sentiment is
// always computed; a degenerate clustering outcome is reported through
// ClusteringSkipped and does not fail the request.
func (s *analyzerService) Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	start := time.Now()

	resp := &dto.AnalyzeResponse{
		Clusters:      []dto.ClusterResult{},
		Posts:         []dto.PostResult{},
		PostsAnalyzed: len(req.Posts),
	}
	if len(req.Posts) == 0 {
		resp.ProcessingTimeMs = time.Since(start).Milliseconds()
		return resp, nil
	}

	// Sentiment is independent of the clustering outcome.
	postResults := make([]dto.PostResult, len(req.Posts))
	for i, p := range req.Posts {
		score := s.scorer.Score(p.Content)
		postResults[i] = dto.PostResult{
			ID:             p.ID,
			Sentiment:      score,
			SentimentLabel: string(entity.LabelForCompound(score.Compound)),
			Keywords:       []string{},
		}
	}
	resp.Posts = postResults

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	corpus := make([][]string, len(req.Posts))
	for i, p := range req.Posts {
		corpus[i] = s.preprocessor.Tokenize(p.Content)
	}

	matrix := s.vectorizer.Vectorize(corpus)
	topics, reason := s.clusterer.Cluster(corpus, matrix)
	if reason != "" {
		s.logger.Info("clustering skipped",
			logger.StringField("reason", string(reason)),
			logger.IntField("posts", len(req.Posts)),
		)
		resp.ClusteringSkipped = reason
		resp.ProcessingTimeMs = time.Since(start).Milliseconds()
		return resp, nil
	}

	for _, topic := range topics {
		taxonomyID, label, description := s.matcher.Match(topic.TopTerms)

		compounds := make([]float64, 0, len(topic.PostIndices))
		postIDs := make([]string, 0, len(topic.PostIndices))
		for _, idx := range topic.PostIndices {
			compounds = append(compounds, postResults[idx].Sentiment.Compound)
			postIDs = append(postIDs, req.Posts[idx].ID)
			postResults[idx].Keywords = topic.TopTerms
		}
		mean := s.scorer.AggregateCompound(compounds)

		resp.Clusters = append(resp.Clusters, dto.ClusterResult{
			TaxonomyID:     taxonomyID,
			Label:          label,
			Description:    description,
			Keywords:       topic.TopTerms,
			Sentiment:      mean,
			SentimentLabel: string(entity.LabelForCompound(mean)),
			PostCount:      len(topic.PostIndices),
			PostIDs:        postIDs,
		})
	}

	resp.ProcessingTimeMs = time.Since(start).Milliseconds()
	s.logger.Info("analysis completed",
		logger.IntField("posts", len(req.Posts)),
		logger.IntField("clusters", len(resp.Clusters)),
		logger.Field("duration_ms", resp.ProcessingTimeMs),
	)
	return resp, nil
}
