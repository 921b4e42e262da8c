package ports

import (
	"context"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for the append-only
// earnings ledger. Entries are never updated or deleted; corrections are new
// reversing entries.
type LedgerRepository interface {
	// Add persists new ledger entries as part of the enclosing transaction.
	Add(ctx context.Context, entries ...*ledger.Entry) error

	// GetByOrder retrieves all entries written for an order, oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*ledger.Entry, error)
}
