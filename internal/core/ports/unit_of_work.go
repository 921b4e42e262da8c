package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Every lifecycle
// operation runs inside one: order mutation, status history, ledger entries
// and outbox messages commit together or not at all. Client code must
// explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Rolling back after a successful commit is a no-op.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction; row locks taken through it live until Commit/Rollback.
	OrderRepository() OrderRepository

	// ChefRepository returns a ChefRepository bound to the current transaction.
	ChefRepository() ChefRepository

	// DriverRepository returns a DriverRepository bound to the current transaction.
	DriverRepository() DriverRepository

	// AssignmentRepository returns an AssignmentRepository bound to the
	// current transaction.
	AssignmentRepository() AssignmentRepository

	// LedgerRepository returns a LedgerRepository bound to the current transaction.
	LedgerRepository() LedgerRepository

	// OutboxRepository returns an OutboxRepository bound to the current transaction.
	OutboxRepository() OutboxRepository
}
