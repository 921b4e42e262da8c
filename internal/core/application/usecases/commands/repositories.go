// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence. Transition handlers load the
// order under an exclusive row lock so concurrent requests against the same
// order serialize; external calls (payments, notifications) never happen
// while the lock is held; they run before the transaction or through the
// outbox after commit.
package commands

import (
	"context"

	"mealmarket/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends only on the repositories it actually
// touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ChefRepoFactory provides access to the chef repository within a transaction.
	ChefRepoFactory interface {
		ChefRepository() ports.ChefRepository
	}

	// DriverRepoFactory provides access to the driver repository within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository
	// within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// LedgerRepoFactory provides access to the ledger repository within a transaction.
	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// OutboxRepoFactory provides access to the outbox repository within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW manages transactions for plain status transitions: the order
	// row plus the outbox message announcing the change.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OutboxRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CreateOrderUoW manages transactions for order creation, which reads
	// the chef aggregate and its menu alongside the order write.
	CreateOrderUoW interface {
		TxManager
		OrderRepoFactory
		ChefRepoFactory
		OutboxRepoFactory
	}

	// CreateOrderUoWFactory creates new order creation unit of work instances.
	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}

	// DispatchUoW manages transactions for driver assignment operations,
	// spanning the order, driver and assignment aggregates.
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
		AssignmentRepoFactory
		OutboxRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// SettlementUoW manages transactions for delivery completion, which
	// credits the ledger and updates the driver's counters along with the
	// status write.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
		LedgerRepoFactory
		OutboxRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}

	// RefundUoW manages transactions for cancellation and refund operations,
	// which write reversing ledger entries and a durable refund task.
	// Cancellation also resolves any pending driver assignment, so the
	// assignment repository rides along.
	RefundUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
		LedgerRepoFactory
		OutboxRepoFactory
	}

	// RefundUoWFactory creates new refund unit of work instances.
	RefundUoWFactory interface {
		Create() RefundUoW
	}
)
