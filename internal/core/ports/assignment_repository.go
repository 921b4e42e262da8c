package ports

import (
	"context"
	"time"

	"mealmarket/internal/core/domain/model/driver"
	"mealmarket/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for driver
// assignments. The store enforces at most one pending assignment per order
// with a partial unique index; Add surfaces a violation as a ConflictError.
type AssignmentRepository interface {
	// Add persists a new assignment.
	Add(ctx context.Context, aggregate *driver.Assignment) error

	// Update persists changes to an existing assignment.
	Update(ctx context.Context, aggregate *driver.Assignment) error

	// Get retrieves an assignment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Assignment, error)

	// GetPendingByOrder retrieves the pending assignment for an order, if
	// one exists.
	GetPendingByOrder(ctx context.Context, orderID kernel.UUID) (*driver.Assignment, error)

	// GetStalePending retrieves pending assignments created before the
	// cutoff, for the stale-assignment sweep.
	GetStalePending(ctx context.Context, cutoff time.Time) ([]*driver.Assignment, error)
}
