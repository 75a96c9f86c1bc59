package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"tradein/internal/core/application/usecases/commands"
	"tradein/internal/core/ports"
)

// Schedules carries the cron expressions and grace period for all jobs.
type Schedules struct {
	TrackingSync     string
	AutoRequote      string
	AutoRequoteGrace time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	trackingSyncJob *TrackingSyncJob
	autoRequoteJob  *AutoRequoteJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	syncHandler commands.SyncTrackingCommandHandler,
	finalizeHandler commands.FinalizeAutoRequoteCommandHandler,
	orders ports.OrderRepository,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		trackingSyncJob: NewTrackingSyncJob(syncHandler, orders, schedules.TrackingSync, logger),
		autoRequoteJob: NewAutoRequoteJob(finalizeHandler, orders, schedules.AutoRequote,
			schedules.AutoRequoteGrace, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.trackingSyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start tracking sync job: %w", err)
	}

	if err := jm.autoRequoteJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.trackingSyncJob.Stop()
		return fmt.Errorf("failed to start auto-requote job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.autoRequoteJob.Stop()
	jm.trackingSyncJob.Stop()
}
