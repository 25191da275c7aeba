package config

import (
	"go-social-insights/pkg/config"
)

// Analyzer holds the settings for calling the remote analysis service.
// The connect timeout is short; the read timeout is substantially longer
// because clustering cost is superlinear in corpus size.
type Analyzer struct {
	BaseURL             string `mapstructure:"base_url"`
	ConnectTimeout      string `mapstructure:"connect_timeout"`
	ReadTimeout         string `mapstructure:"read_timeout"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Orchestrator holds run orchestration settings.
type Orchestrator struct {
	MaxPostsPerRun  int    `mapstructure:"max_posts_per_run"`
	ScheduleCron    string `mapstructure:"schedule_cron"`
	PollingInterval string `mapstructure:"polling_interval"`
	ClusterCacheTTL string `mapstructure:"cluster_cache_ttl"`
}

// Telegram holds configuration for the run notifier. Notifications are
// disabled when the bot token is empty.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the insights service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	Analyzer     Analyzer        `mapstructure:"analyzer"`
	Orchestrator Orchestrator    `mapstructure:"orchestrator"`
	Telegram     Telegram        `mapstructure:"telegram"`
}

// Load loads the insights service configuration from the given path and
// applies defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.Analyzer.ConnectTimeout == "" {
		cfg.Analyzer.ConnectTimeout = "5s"
	}
	if cfg.Analyzer.ReadTimeout == "" {
		cfg.Analyzer.ReadTimeout = "5m"
	}
	if cfg.Analyzer.MaxRequestPerMinute == 0 {
		cfg.Analyzer.MaxRequestPerMinute = 10
	}
	if cfg.Orchestrator.MaxPostsPerRun == 0 {
		cfg.Orchestrator.MaxPostsPerRun = 5000
	}
	if cfg.Orchestrator.PollingInterval == "" {
		cfg.Orchestrator.PollingInterval = "30s"
	}
	if cfg.Orchestrator.ClusterCacheTTL == "" {
		cfg.Orchestrator.ClusterCacheTTL = "1m"
	}

	return &cfg, nil
}
