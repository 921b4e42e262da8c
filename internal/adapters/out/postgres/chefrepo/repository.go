package chefrepo

import (
	"context"
	"errors"

	"mealmarket/internal/core/domain/model/chef"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormChefRepository implements ports.ChefRepository using GORM.
type GormChefRepository struct {
	db *gorm.DB
}

// NewGormChefRepository creates a new GORM chef repository.
func NewGormChefRepository(db *gorm.DB) *GormChefRepository {
	return &GormChefRepository{db: db}
}

// Add saves a new chef to the database.
func (r *GormChefRepository) Add(ctx context.Context, aggregate *chef.Chef) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing chef to the database.
func (r *GormChefRepository) Update(ctx context.Context, aggregate *chef.Chef) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ChefDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("chef", dto.ID.String())
	}

	return nil
}

// Get retrieves a chef by ID.
func (r *GormChefRepository) Get(ctx context.Context, id kernel.UUID) (*chef.Chef, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ChefDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("chef", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMenuItems retrieves the named menu items, failing with NotFound when
// any requested identifier is missing.
func (r *GormChefRepository) GetMenuItems(
	ctx context.Context, ids []kernel.UUID,
) ([]*chef.MenuItem, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []MenuItemDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]bool, len(dtos))
	items := make([]*chef.MenuItem, 0, len(dtos))
	for _, dto := range dtos {
		item, err := menuItemToDomain(dto)
		if err != nil {
			return nil, err
		}
		found[dto.ID] = true
		items = append(items, item)
	}

	for _, id := range ids {
		if !found[id.Bytes()] {
			return nil, errs.NewObjectNotFoundError("menuItem", id.String())
		}
	}

	return items, nil
}

// AddMenuItem saves a new menu item to the database.
func (r *GormChefRepository) AddMenuItem(ctx context.Context, item *chef.MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := MenuItemDTO{
		ID:         item.ID().Bytes(),
		ChefID:     item.ChefID().Bytes(),
		Name:       item.Name(),
		PriceCents: item.PriceCents(),
		Available:  item.IsAvailable(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
