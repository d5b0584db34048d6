package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/komolbek/raadarenda-sub001/internal/jobs"
	"github.com/komolbek/raadarenda-sub001/internal/logger"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler with UTC timezone and seconds precision.
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	if _, err := s.cron.AddFunc(cfg.PurgeExpiredOTPs, s.jobs.PurgeExpiredOTPs); err != nil {
		logger.Error("Failed to register PurgeExpiredOTPs job", "error", err)
	}
	if _, err := s.cron.AddFunc(cfg.PurgeExpiredSessions, s.jobs.PurgeExpiredSessions); err != nil {
		logger.Error("Failed to register PurgeExpiredSessions job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if any jobs are registered.
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
