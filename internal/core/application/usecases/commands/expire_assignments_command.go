package commands

import (
	"errors"
	"time"

	"mealmarket/internal/pkg/errs"
	"mealmarket/internal/pkg/guard"
)

var ErrExpireAssignmentsCommandIsNotConstructed = errors.New(
	"ExpireAssignmentsCommand must be created via NewExpireAssignmentsCommand constructor",
)

// ExpireAssignmentsCommand sweeps pending assignments older than olderThan
// and returns their orders to the dispatchable pool.
type ExpireAssignmentsCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewExpireAssignmentsCommand creates a sweep command. olderThan must be
// positive.
func NewExpireAssignmentsCommand(olderThan time.Duration) (ExpireAssignmentsCommand, error) {
	if olderThan <= 0 {
		return ExpireAssignmentsCommand{}, errs.NewValueIsInvalidError("olderThan")
	}

	return ExpireAssignmentsCommand{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrExpireAssignmentsCommandIsNotConstructed)
}

// OlderThan returns the pending age after which an assignment expires.
func (c ExpireAssignmentsCommand) OlderThan() time.Duration { return c.olderThan }
