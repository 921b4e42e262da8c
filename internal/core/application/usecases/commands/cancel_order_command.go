package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/pkg/errs"
	"mealmarket/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a customer or admin cancelling an order. How
// far into the lifecycle a cancellation is allowed depends on the actor's
// role; the aggregate enforces the window.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
func NewCancelOrderCommand(
	orderID kernel.UUID, actor order.Actor, reason string,
) (CancelOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.ID.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}
	if reason == "" {
		return CancelOrderCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return CancelOrderCommand{
		orderID: orderID,
		actor:   actor,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the cancelling actor.
func (c CancelOrderCommand) Actor() order.Actor { return c.actor }

// Reason returns why the order is being cancelled.
func (c CancelOrderCommand) Reason() string { return c.reason }
