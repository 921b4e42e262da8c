// Package chefrepo persists chef profiles and their menu items. Order
// placement reads both: the chef row for the onboarding gates and the
// minimum, the menu rows for price snapshotting.
package chefrepo

import (
	"mealmarket/internal/core/domain/model/chef"
	"mealmarket/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ChefDTO is the database row for a chef.
type ChefDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string
	Active            bool
	Verified          bool
	PayoutsEnabled    bool
	MinimumOrderCents int64
	PickupLat         float64
	PickupLng         float64
}

// TableName maps the DTO to the "chefs" table.
func (ChefDTO) TableName() string {
	return "chefs"
}

// MenuItemDTO is the database row for one menu item.
type MenuItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChefID     uuid.UUID `gorm:"type:uuid;index"`
	Name       string
	PriceCents int64
	Available  bool
}

// TableName maps the DTO to the "menu_items" table.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func fromDomain(aggregate *chef.Chef) ChefDTO {
	return ChefDTO{
		ID:                aggregate.ID().Bytes(),
		Name:              aggregate.Name(),
		Active:            aggregate.IsActive(),
		Verified:          aggregate.IsVerified(),
		PayoutsEnabled:    aggregate.PayoutsEnabled(),
		MinimumOrderCents: aggregate.MinimumOrderCents(),
		PickupLat:         aggregate.Pickup().Lat(),
		PickupLng:         aggregate.Pickup().Lng(),
	}
}

func toDomain(dto ChefDTO) (*chef.Chef, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}

	return chef.RestoreChef(
		id, dto.Name,
		dto.Active, dto.Verified, dto.PayoutsEnabled,
		dto.MinimumOrderCents, pickup,
	)
}

func menuItemToDomain(dto MenuItemDTO) (*chef.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	chefID, err := kernel.UUIDFromBytes(dto.ChefID[:])
	if err != nil {
		return nil, err
	}

	return chef.RestoreMenuItem(id, chefID, dto.Name, dto.PriceCents, dto.Available)
}
