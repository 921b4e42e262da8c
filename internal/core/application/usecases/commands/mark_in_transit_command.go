package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/guard"
)

var ErrMarkInTransitCommandIsNotConstructed = errors.New(
	"MarkInTransitCommand must be created via NewMarkInTransitCommand constructor",
)

// MarkInTransitCommand represents the assigned driver starting the drive to
// the customer.
type MarkInTransitCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkInTransitCommand creates a command for a driver to start transit.
func NewMarkInTransitCommand(orderID, driverID kernel.UUID) (MarkInTransitCommand, error) {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return MarkInTransitCommand{}, err
	}

	return MarkInTransitCommand{
		orderID:  orderID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkInTransitCommand) Validate() error {
	return c.guard.Validate(ErrMarkInTransitCommandIsNotConstructed)
}

// OrderID returns the order in transit.
func (c MarkInTransitCommand) OrderID() kernel.UUID { return c.orderID }

// DriverID returns the acting driver.
func (c MarkInTransitCommand) DriverID() kernel.UUID { return c.driverID }
