package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/guard"
)

var ErrDeclineAssignmentCommandIsNotConstructed = errors.New(
	"DeclineAssignmentCommand must be created via NewDeclineAssignmentCommand constructor",
)

// DeclineAssignmentCommand represents a driver turning down a pending
// delivery assignment. The reason is optional.
type DeclineAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	driverID     kernel.UUID
	reason       string

	guard guard.ConstructorGuard
}

// NewDeclineAssignmentCommand creates a command for a driver to decline an
// assignment.
func NewDeclineAssignmentCommand(
	assignmentID, driverID kernel.UUID, reason string,
) (DeclineAssignmentCommand, error) {
	if err := errors.Join(assignmentID.Validate(), driverID.Validate()); err != nil {
		return DeclineAssignmentCommand{}, err
	}

	return DeclineAssignmentCommand{
		assignmentID: assignmentID,
		driverID:     driverID,
		reason:       reason,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclineAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrDeclineAssignmentCommandIsNotConstructed)
}

// AssignmentID returns the assignment being declined.
func (c DeclineAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// DriverID returns the acting driver.
func (c DeclineAssignmentCommand) DriverID() kernel.UUID { return c.driverID }

// Reason returns the optional decline reason.
func (c DeclineAssignmentCommand) Reason() string { return c.reason }
