package ports

import (
	"context"

	"mealmarket/internal/core/domain/model/driver"
	"mealmarket/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver aggregate.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAllDispatchable retrieves the fleet snapshot eligible for dispatch:
	// available, approved, with a known location. Distance filtering and
	// ranking happen in the domain; no lock is taken.
	GetAllDispatchable(ctx context.Context) ([]*driver.Driver, error)
}
