package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/guard"
)

var ErrStartPreparingCommandIsNotConstructed = errors.New(
	"StartPreparingCommand must be created via NewStartPreparingCommand constructor",
)

// StartPreparingCommand represents a chef starting to cook an accepted order.
type StartPreparingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	chefID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartPreparingCommand creates a command for a chef to start preparation.
func NewStartPreparingCommand(orderID, chefID kernel.UUID) (StartPreparingCommand, error) {
	if err := errors.Join(orderID.Validate(), chefID.Validate()); err != nil {
		return StartPreparingCommand{}, err
	}

	return StartPreparingCommand{
		orderID: orderID,
		chefID:  chefID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPreparingCommand) Validate() error {
	return c.guard.Validate(ErrStartPreparingCommandIsNotConstructed)
}

// OrderID returns the order being prepared.
func (c StartPreparingCommand) OrderID() kernel.UUID { return c.orderID }

// ChefID returns the acting chef.
func (c StartPreparingCommand) ChefID() kernel.UUID { return c.chefID }
