// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the order lifecycle depends on.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second to drain the transactional outbox:
// notify messages go to the message bus, refund messages to the payment
// processor. Failed messages stay pending and are retried with backoff.
//
// 2. StaleAssignmentJob - Runs every minute to expire pending driver
// assignments the driver never answered, returning their orders to the
// dispatchable pool.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(
//		outboxRepo, notifier, payments, expireHandler, assignmentTimeout, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Relay failures mark the message for retry; only bookkeeping errors are logged
// - Sweep errors are logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
