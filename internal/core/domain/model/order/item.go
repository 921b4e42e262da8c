package order

import (
	"errors"
	"fmt"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"
	"mealmarket/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line on an order: a reference to a menu item with the quantity and
// the unit price captured at order time. The price is a snapshot: menu price
// changes must never retroactively alter an existing order.
type Item struct { //nolint:recvcheck //using for validation
	id             kernel.UUID
	menuItemID     kernel.UUID
	name           string
	unitPriceCents int64
	quantity       int

	guard guard.ConstructorGuard
}

// NewItem creates an order line. The quantity must be positive and the unit
// price non-negative; name is the menu item's name snapshotted for display.
func NewItem(id, menuItemID kernel.UUID, name string, unitPriceCents int64, quantity int) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setIDs(id, menuItemID),
		item.setName(name),
		item.setUnitPrice(unitPriceCents),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate checks that the item was properly constructed.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the line's unique identifier.
func (i Item) ID() kernel.UUID { return i.id }

// MenuItemID returns the referenced menu item.
func (i Item) MenuItemID() kernel.UUID { return i.menuItemID }

// Name returns the menu item name snapshotted at order time.
func (i Item) Name() string { return i.name }

// UnitPriceCents returns the price snapshot taken at order time.
func (i Item) UnitPriceCents() int64 { return i.unitPriceCents }

// Quantity returns how many units were ordered.
func (i Item) Quantity() int { return i.quantity }

// LineTotalCents returns unit price times quantity.
func (i Item) LineTotalCents() int64 {
	return i.unitPriceCents * int64(i.quantity)
}

func (i *Item) setIDs(id, menuItemID kernel.UUID) error {
	if err := errors.Join(id.Validate(), menuItemID.Validate()); err != nil {
		return err
	}
	i.id = id
	i.menuItemID = menuItemID
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setUnitPrice(unitPriceCents int64) error {
	if unitPriceCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPriceCents",
			fmt.Errorf("%d is negative", unitPriceCents))
	}
	i.unitPriceCents = unitPriceCents
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

// SubtotalCents sums the line totals of a set of order items.
func SubtotalCents(items []Item) int64 {
	var subtotal int64
	for _, item := range items {
		subtotal += item.LineTotalCents()
	}
	return subtotal
}
