package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand represents the assigned driver completing the
// delivery, which settles the order's money into the ledger.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command for a driver to complete delivery.
func NewMarkDeliveredCommand(orderID, driverID kernel.UUID) (MarkDeliveredCommand, error) {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return MarkDeliveredCommand{
		orderID:  orderID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// OrderID returns the delivered order.
func (c MarkDeliveredCommand) OrderID() kernel.UUID { return c.orderID }

// DriverID returns the acting driver.
func (c MarkDeliveredCommand) DriverID() kernel.UUID { return c.driverID }
