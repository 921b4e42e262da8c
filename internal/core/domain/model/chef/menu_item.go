package chef

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"
)

// ErrMenuItemIsNotConstructed is returned when using an improperly
// initialized MenuItem.
var ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem or RestoreMenuItem")

// MenuItem is a dish a chef currently offers. Orders snapshot its price at
// creation time, so later edits to the menu never alter placed orders.
type MenuItem struct {
	id         kernel.UUID
	chefID     kernel.UUID
	name       string
	priceCents int64
	available  bool

	isConstructed bool
}

// NewMenuItem creates an available menu item for a chef.
func NewMenuItem(id, chefID kernel.UUID, name string, priceCents int64) (*MenuItem, error) {
	if err := errors.Join(id.Validate(), chefID.Validate()); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}
	if priceCents < 0 {
		return nil, errs.NewValueIsInvalidError("priceCents")
	}

	return &MenuItem{
		id:            id,
		chefID:        chefID,
		name:          name,
		priceCents:    priceCents,
		available:     true,
		isConstructed: true,
	}, nil
}

// RestoreMenuItem reconstructs a menu item from persistence.
func RestoreMenuItem(id, chefID kernel.UUID, name string, priceCents int64, available bool) (*MenuItem, error) {
	if err := errors.Join(id.Validate(), chefID.Validate()); err != nil {
		return nil, err
	}

	return &MenuItem{
		id:            id,
		chefID:        chefID,
		name:          name,
		priceCents:    priceCents,
		available:     available,
		isConstructed: true,
	}, nil
}

// Validate ensures the MenuItem was created via a constructor.
func (m *MenuItem) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMenuItemIsNotConstructed
	}
	return nil
}

func (m *MenuItem) ID() kernel.UUID     { return m.id }
func (m *MenuItem) ChefID() kernel.UUID { return m.chefID }
func (m *MenuItem) Name() string        { return m.name }
func (m *MenuItem) PriceCents() int64   { return m.priceCents }
func (m *MenuItem) IsAvailable() bool   { return m.available }

// BelongsTo reports whether the item is on the named chef's menu.
func (m *MenuItem) BelongsTo(chefID kernel.UUID) bool {
	return m.chefID.IsEqual(chefID)
}
