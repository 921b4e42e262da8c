package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired      = errors.New("at least one item is required")
	ErrQuantityIsInvalid     = errors.New("item quantity must be greater than 0")
	ErrDeliveryAddrIsMissing = errors.New("delivery address is required")
)

// ItemRequest is one requested order line: a menu item and how many of it.
// Prices are never accepted from the caller; they are snapshotted from the
// menu at creation time.
type ItemRequest struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// CreateOrderCommand represents a customer's request to place an order with
// a chef. A negative delivery fee selects the policy default.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	customerID       kernel.UUID
	chefID           kernel.UUID
	items            []ItemRequest
	deliveryPoint    kernel.GeoPoint
	deliveryAddress  string
	deliveryFeeCents int64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order. Validates
// identities, the delivery point, and that every requested line names a menu
// item with a positive quantity.
func NewCreateOrderCommand(
	orderID, customerID, chefID kernel.UUID,
	items []ItemRequest,
	deliveryPoint kernel.GeoPoint,
	deliveryAddress string,
	deliveryFeeCents int64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(orderID, customerID, chefID),
		cmd.setItems(items),
		cmd.setDelivery(deliveryPoint, deliveryAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.deliveryFeeCents = deliveryFeeCents
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// ChefID returns the chef the order is placed with.
func (c CreateOrderCommand) ChefID() kernel.UUID { return c.chefID }

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []ItemRequest { return c.items }

// DeliveryPoint returns the drop-off coordinates.
func (c CreateOrderCommand) DeliveryPoint() kernel.GeoPoint { return c.deliveryPoint }

// DeliveryAddress returns the human-readable drop-off address.
func (c CreateOrderCommand) DeliveryAddress() string { return c.deliveryAddress }

// DeliveryFeeCents returns the requested delivery fee; negative means the
// policy default applies.
func (c CreateOrderCommand) DeliveryFeeCents() int64 { return c.deliveryFeeCents }

func (c *CreateOrderCommand) setIDs(orderID, customerID, chefID kernel.UUID) error {
	if err := errors.Join(
		orderID.Validate(), customerID.Validate(), chefID.Validate()); err != nil {
		return err
	}

	c.orderID = orderID
	c.customerID = customerID
	c.chefID = chefID
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemRequest) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.MenuItemID.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return ErrQuantityIsInvalid
		}
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setDelivery(point kernel.GeoPoint, address string) error {
	if err := point.Validate(); err != nil {
		return err
	}
	if address == "" {
		return ErrDeliveryAddrIsMissing
	}

	c.deliveryPoint = point
	c.deliveryAddress = address
	return nil
}
