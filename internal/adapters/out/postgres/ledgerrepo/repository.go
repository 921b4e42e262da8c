package ledgerrepo

import (
	"context"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// GormLedgerRepository implements ports.LedgerRepository using GORM.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Add inserts new ledger entries. There is no update path; the ledger is
// append-only.
func (r *GormLedgerRepository) Add(ctx context.Context, entries ...*ledger.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(entry))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetByOrder retrieves all entries written for an order, oldest first.
func (r *GormLedgerRepository) GetByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*ledger.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*ledger.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
