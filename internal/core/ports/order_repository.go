// Package ports defines the contracts between the domain layer and
// infrastructure: repository interfaces, the unit-of-work boundary, and the
// narrow collaborator interfaces (payments, routing, notifications).
package ports

import (
	"context"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Writes persist the aggregate row, its items, and any pending status-history
// entries as part of the enclosing transaction.
type OrderRepository interface {
	// Add persists a new order aggregate with its items and the initial
	// status-history row.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, appending any
	// status-history entries accumulated since it was loaded.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate under an exclusive row lock,
	// held until the enclosing transaction commits or rolls back. Every
	// status transition loads through this method so concurrent transition
	// attempts serialize on the order row.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
