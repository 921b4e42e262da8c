package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"
	"mealmarket/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand represents a chef declining a paid order. A reason is
// mandatory since the customer will be refunded and notified.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	chefID  kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewRejectOrderCommand creates a command for a chef to reject an order.
func NewRejectOrderCommand(orderID, chefID kernel.UUID, reason string) (RejectOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), chefID.Validate()); err != nil {
		return RejectOrderCommand{}, err
	}
	if reason == "" {
		return RejectOrderCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return RejectOrderCommand{
		orderID: orderID,
		chefID:  chefID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

// OrderID returns the order to reject.
func (c RejectOrderCommand) OrderID() kernel.UUID { return c.orderID }

// ChefID returns the acting chef.
func (c RejectOrderCommand) ChefID() kernel.UUID { return c.chefID }

// Reason returns why the chef rejected the order.
func (c RejectOrderCommand) Reason() string { return c.reason }
