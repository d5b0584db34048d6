package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/config"
	"github.com/komolbek/raadarenda-sub001/internal/logger"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

// JobRunner coordinates all scheduled maintenance jobs.
type JobRunner struct {
	otpRepo     repository.OTPRepository
	sessionRepo repository.SessionRepository
	config      *config.Config
	log         *slog.Logger
}

// NewJobRunner creates a job runner with all dependencies.
func NewJobRunner(otpRepo repository.OTPRepository, sessionRepo repository.SessionRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		otpRepo:     otpRepo,
		sessionRepo: sessionRepo,
		config:      cfg,
		log:         logger.WithService("jobs"),
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			jr.log.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	jr.log.Info("Starting job", "job", jobName)
	jobFunc()
	jr.log.Info("Job completed", "job", jobName)
}

// PurgeExpiredOTPs removes one-time codes past their expiry.
func (jr *JobRunner) PurgeExpiredOTPs() {
	jr.runWithRecovery("PurgeExpiredOTPs", func() {
		ctx := context.Background()
		deleted, err := jr.otpRepo.DeleteExpired(ctx, time.Now())
		if err != nil {
			jr.log.Error("Failed to purge expired OTPs", "error", err)
			return
		}
		jr.log.Info("Purged expired OTPs", "deleted", deleted)
	})
}

// PurgeExpiredSessions removes customer sessions past their expiry.
func (jr *JobRunner) PurgeExpiredSessions() {
	jr.runWithRecovery("PurgeExpiredSessions", func() {
		ctx := context.Background()
		deleted, err := jr.sessionRepo.DeleteExpired(ctx, time.Now())
		if err != nil {
			jr.log.Error("Failed to purge expired sessions", "error", err)
			return
		}
		jr.log.Info("Purged expired sessions", "deleted", deleted)
	})
}

// RunAllNightlyJobs runs every nightly job (for manual execution).
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.PurgeExpiredOTPs()
	jr.PurgeExpiredSessions()
}
