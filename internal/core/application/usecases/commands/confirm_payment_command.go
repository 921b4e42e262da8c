package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand represents the payment collaborator's confirmation
// that an order's charge was captured. Issued by the system on a processor
// callback, or by an admin reconciling manually.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to confirm an order's payment.
func NewConfirmPaymentCommand(orderID kernel.UUID, actor order.Actor) (ConfirmPaymentCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.ID.Validate()); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// OrderID returns the order whose payment was captured.
func (c ConfirmPaymentCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the confirming actor.
func (c ConfirmPaymentCommand) Actor() order.Actor { return c.actor }
