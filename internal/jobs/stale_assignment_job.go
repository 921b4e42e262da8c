package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"mealmarket/internal/core/application/usecases/commands"
)

// StaleAssignmentJob periodically expires pending assignments the driver
// never answered, returning their orders to the dispatchable pool.
type StaleAssignmentJob struct {
	handler commands.ExpireAssignmentsCommandHandler
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleAssignmentJob creates the sweep job. timeout is the pending age
// after which an assignment expires.
func NewStaleAssignmentJob(
	handler commands.ExpireAssignmentsCommandHandler,
	timeout time.Duration,
	logger *slog.Logger,
) *StaleAssignmentJob {
	return &StaleAssignmentJob{
		handler: handler,
		timeout: timeout,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stale_assignment_job"),
	}
}

// Start begins the sweep to run every minute.
func (j *StaleAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd, err := commands.NewExpireAssignmentsCommand(j.timeout)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale assignment sweep misconfigured", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Stale assignment sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale assignment job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *StaleAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale assignment job stopped")
}
