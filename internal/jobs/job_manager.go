package jobs

import (
	"fmt"
	"log/slog"

	"buyback/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reofferSweepJob *ReofferSweepJob
}

// NewJobManager creates a job manager with all required jobs wired to their
// command handlers.
func NewJobManager(
	sweepHandler commands.SweepExpiredReoffersCommandHandler,
	sweepSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reofferSweepJob: NewReofferSweepJob(sweepHandler, sweepSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.reofferSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start re-offer sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reofferSweepJob.Stop()
}
