package service

import (
	"context"
	"errors"
	"time"

	"go-social-insights/internal/insights/config"
	"go-social-insights/pkg/logger"

	"github.com/robfig/cron/v3"
)

// RunScheduler triggers analysis runs on a cron schedule. It is optional:
// with no cron expression configured it does nothing.
type RunScheduler interface {
	Start(ctx context.Context)
}

// NewRunScheduler creates a scheduler over the given run service.
func NewRunScheduler(cfg *config.Config, runService RunService, log *logger.Logger) (RunScheduler, error) {
	pollingInterval, err := time.ParseDuration(cfg.Orchestrator.PollingInterval)
	if err != nil {
		return nil, err
	}

	s := &runScheduler{
		runService:      runService,
		logger:          log,
		cronExpression:  cfg.Orchestrator.ScheduleCron,
		pollingInterval: pollingInterval,
		cronParser:      cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
	if s.cronExpression != "" {
		if _, err := s.cronParser.Parse(s.cronExpression); err != nil {
			return nil, err
		}
	}
	return s, nil
}

type runScheduler struct {
	runService      RunService
	logger          *logger.Logger
	cronExpression  string
	pollingInterval time.Duration
	cronParser      cron.Parser
}

// Start begins the periodic trigger loop. It blocks until the context is
// cancelled.
func (s *runScheduler) Start(ctx context.Context) {
	if s.cronExpression == "" {
		s.logger.Info("run scheduler disabled: no cron expression configured")
		return
	}

	schedule, err := s.cronParser.Parse(s.cronExpression)
	if err != nil {
		s.logger.Error("invalid run schedule", logger.ErrorField(err))
		return
	}

	next := schedule.Next(time.Now())
	s.logger.Info("run scheduler started",
		logger.StringField("cron", s.cronExpression),
		logger.Field("next_run", next),
	)

	ticker := time.NewTicker(s.pollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("run scheduler stopping")
			return
		case now := <-ticker.C:
			if now.Before(next) {
				continue
			}
			s.trigger(ctx)
			next = schedule.Next(now)
		}
	}
}

func (s *runScheduler) trigger(ctx context.Context) {
	run, err := s.runService.TriggerRun(ctx)
	if err != nil {
		if errors.Is(err, ErrRunInProgress) {
			s.logger.Warn("scheduled run skipped: another run in progress")
			return
		}
		s.logger.Error("scheduled run failed to start", logger.ErrorField(err))
		return
	}
	s.logger.Info("scheduled run finished",
		logger.Field("run_id", run.ID),
		logger.StringField("status", string(run.Status)),
	)
}
