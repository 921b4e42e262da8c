package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/guard"
)

var ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
	"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
)

// AcceptAssignmentCommand represents a driver accepting a pending delivery
// assignment.
type AcceptAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	driverID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptAssignmentCommand creates a command for a driver to accept an
// assignment.
func NewAcceptAssignmentCommand(assignmentID, driverID kernel.UUID) (AcceptAssignmentCommand, error) {
	if err := errors.Join(assignmentID.Validate(), driverID.Validate()); err != nil {
		return AcceptAssignmentCommand{}, err
	}

	return AcceptAssignmentCommand{
		assignmentID: assignmentID,
		driverID:     driverID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}

// AssignmentID returns the assignment being accepted.
func (c AcceptAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// DriverID returns the acting driver.
func (c AcceptAssignmentCommand) DriverID() kernel.UUID { return c.driverID }
