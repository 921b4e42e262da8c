package orderrepo

import (
	"context"
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its line items and the creation history row.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items, history := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	if err := db.Create(&dto).Error; err != nil {
		return err
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return err
		}
	}
	if len(history) > 0 {
		if err := db.Create(&history).Error; err != nil {
			return err
		}
	}

	return nil
}

// Update saves the order row and appends any history rows recorded since the
// aggregate was loaded. Line items are immutable and never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, _, history := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	// Select("*") forces nil driver and timestamp columns to be written,
	// which unassignment and cancellation depend on.
	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID.String())
	}

	if len(history) > 0 {
		if err := db.Create(&history).Error; err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves an order with its line items.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order holding a SELECT ... FOR UPDATE row lock
// until the surrounding transaction ends. Lifecycle transitions load through
// this so concurrent transitions on one order serialize.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, lock bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	var items []ItemDTO
	if err := r.db.WithContext(ctx).
		Find(&items, "order_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, items)
}
