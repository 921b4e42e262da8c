package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/guard"
)

var ErrMarkReadyCommandIsNotConstructed = errors.New(
	"MarkReadyCommand must be created via NewMarkReadyCommand constructor",
)

// MarkReadyCommand represents a chef declaring an order ready for pickup,
// which puts it into the dispatchable pool.
type MarkReadyCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	chefID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkReadyCommand creates a command for a chef to mark an order ready.
func NewMarkReadyCommand(orderID, chefID kernel.UUID) (MarkReadyCommand, error) {
	if err := errors.Join(orderID.Validate(), chefID.Validate()); err != nil {
		return MarkReadyCommand{}, err
	}

	return MarkReadyCommand{
		orderID: orderID,
		chefID:  chefID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyCommandIsNotConstructed)
}

// OrderID returns the order that is ready.
func (c MarkReadyCommand) OrderID() kernel.UUID { return c.orderID }

// ChefID returns the acting chef.
func (c MarkReadyCommand) ChefID() kernel.UUID { return c.chefID }
