package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"mealmarket/internal/core/application/usecases/commands"
	"mealmarket/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob     *OutboxRelayJob
	staleAssignmentJob *StaleAssignmentJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	outboxRepo ports.OutboxRepository,
	notifier ports.Notifier,
	payments ports.PaymentGateway,
	expireHandler commands.ExpireAssignmentsCommandHandler,
	assignmentTimeout time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxRelayJob:     NewOutboxRelayJob(outboxRepo, notifier, payments, logger),
		staleAssignmentJob: NewStaleAssignmentJob(expireHandler, assignmentTimeout, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.staleAssignmentJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start stale assignment job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleAssignmentJob.Stop()
	jm.outboxRelayJob.Stop()
}
