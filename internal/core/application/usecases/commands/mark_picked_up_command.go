package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/guard"
)

var ErrMarkPickedUpCommandIsNotConstructed = errors.New(
	"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
)

// MarkPickedUpCommand represents the assigned driver collecting the order
// from the chef.
type MarkPickedUpCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkPickedUpCommand creates a command for a driver to confirm pickup.
func NewMarkPickedUpCommand(orderID, driverID kernel.UUID) (MarkPickedUpCommand, error) {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return MarkPickedUpCommand{}, err
	}

	return MarkPickedUpCommand{
		orderID:  orderID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickedUpCommandIsNotConstructed)
}

// OrderID returns the collected order.
func (c MarkPickedUpCommand) OrderID() kernel.UUID { return c.orderID }

// DriverID returns the acting driver.
func (c MarkPickedUpCommand) DriverID() kernel.UUID { return c.driverID }
