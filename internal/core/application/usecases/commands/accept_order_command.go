package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a chef accepting a paid order.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	chefID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command for a chef to accept an order.
func NewAcceptOrderCommand(orderID, chefID kernel.UUID) (AcceptOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), chefID.Validate()); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		orderID: orderID,
		chefID:  chefID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the order to accept.
func (c AcceptOrderCommand) OrderID() kernel.UUID { return c.orderID }

// ChefID returns the acting chef.
func (c AcceptOrderCommand) ChefID() kernel.UUID { return c.chefID }
