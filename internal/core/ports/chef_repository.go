package ports

import (
	"context"

	"mealmarket/internal/core/domain/model/chef"
	"mealmarket/internal/core/domain/model/kernel"
)

// ChefRepository defines the persistence contract for chef aggregates and
// their menu items.
type ChefRepository interface {
	// Add persists a new chef aggregate.
	Add(ctx context.Context, aggregate *chef.Chef) error

	// Update persists changes to an existing chef aggregate.
	Update(ctx context.Context, aggregate *chef.Chef) error

	// Get retrieves a chef aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*chef.Chef, error)

	// GetMenuItems retrieves the named menu items. Missing identifiers make
	// the call fail with an ObjectNotFoundError naming the first absent item.
	GetMenuItems(ctx context.Context, ids []kernel.UUID) ([]*chef.MenuItem, error)
}
