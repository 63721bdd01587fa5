package jobs

import (
	"context"
	"log/slog"

	"buyback/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReofferSweepJob periodically auto-accepts re-offers whose response window
// has expired without a buyer decision.
type ReofferSweepJob struct {
	handler  commands.SweepExpiredReoffersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReofferSweepJob creates the sweep job. The schedule is a six-field cron
// expression with seconds, e.g. "0 */5 * * * *" for every five minutes.
func NewReofferSweepJob(
	handler commands.SweepExpiredReoffersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *ReofferSweepJob {
	return &ReofferSweepJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "reoffer_sweep_job"),
	}
}

// Start schedules the sweep. Returns an error for an invalid cron expression.
func (j *ReofferSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewSweepExpiredReoffersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Re-offer sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Re-offer sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep job.
func (j *ReofferSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Re-offer sweep job stopped")
}
