package config

import (
	"go-social-insights/internal/entity"
	"go-social-insights/pkg/config"
)

// Analysis holds the pipeline tuning parameters.
type Analysis struct {
	MaxClusters      int      `mapstructure:"max_clusters"`
	TopKeywords      int      `mapstructure:"top_keywords"`
	Seed             int64    `mapstructure:"seed"`
	MaxIterations    int      `mapstructure:"max_iterations"`
	MinTokenLength   int      `mapstructure:"min_token_length"`
	MinVocabulary    int      `mapstructure:"min_vocabulary"`
	MaxPostsPerBatch int      `mapstructure:"max_posts_per_batch"`
	MaxContentLength int      `mapstructure:"max_content_length"`
	DomainStopwords  []string `mapstructure:"domain_stopwords"`
}

// Config holds the full configuration for the analysis service. The taxonomy
// is parsed once at startup and consumed as an in-memory table.
type Config struct {
	App      config.App                `mapstructure:"app"`
	Logger   config.Logger             `mapstructure:"logger"`
	API      config.API                `mapstructure:"api"`
	Analysis Analysis                  `mapstructure:"analysis"`
	Taxonomy []entity.TaxonomyCategory `mapstructure:"taxonomy"`
}

// Load loads the analysis service configuration from the given path and
// applies defaults for unset tuning parameters.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.Analysis.MaxClusters == 0 {
		cfg.Analysis.MaxClusters = 4
	}
	if cfg.Analysis.TopKeywords == 0 {
		cfg.Analysis.TopKeywords = 10
	}
	if cfg.Analysis.Seed == 0 {
		cfg.Analysis.Seed = 42
	}
	if cfg.Analysis.MaxIterations == 0 {
		cfg.Analysis.MaxIterations = 100
	}
	if cfg.Analysis.MinTokenLength == 0 {
		cfg.Analysis.MinTokenLength = 3
	}
	if cfg.Analysis.MinVocabulary == 0 {
		cfg.Analysis.MinVocabulary = 3
	}
	if cfg.Analysis.MaxPostsPerBatch == 0 {
		cfg.Analysis.MaxPostsPerBatch = 5000
	}
	if cfg.Analysis.MaxContentLength == 0 {
		cfg.Analysis.MaxContentLength = 10000
	}

	return &cfg, nil
}
