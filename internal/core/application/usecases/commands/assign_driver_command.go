package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand represents a request to reserve a driver for a ready
// order. With no explicit driver the nearest dispatchable candidate within
// the search radius is chosen. The caller supplies the identifier the new
// assignment will be created under. A non-positive radius selects the
// configured default.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	assignmentID   kernel.UUID
	orderID        kernel.UUID
	driverID       *kernel.UUID
	searchRadiusKm float64

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a command to reserve a driver for an order.
func NewAssignDriverCommand(
	assignmentID, orderID kernel.UUID,
	driverID *kernel.UUID,
	searchRadiusKm float64,
) (AssignDriverCommand, error) {
	if err := errors.Join(assignmentID.Validate(), orderID.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return AssignDriverCommand{}, err
		}
	}

	return AssignDriverCommand{
		assignmentID:   assignmentID,
		orderID:        orderID,
		driverID:       driverID,
		searchRadiusKm: searchRadiusKm,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// AssignmentID returns the identifier for the assignment to create.
func (c AssignDriverCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// OrderID returns the order to dispatch.
func (c AssignDriverCommand) OrderID() kernel.UUID { return c.orderID }

// DriverID returns the explicitly requested driver, if any.
func (c AssignDriverCommand) DriverID() *kernel.UUID { return c.driverID }

// SearchRadiusKm returns the candidate search radius.
func (c AssignDriverCommand) SearchRadiusKm() float64 { return c.searchRadiusKm }
