package commands

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"
	"mealmarket/internal/pkg/guard"
)

var ErrRefundOrderCommandIsNotConstructed = errors.New(
	"RefundOrderCommand must be created via NewRefundOrderCommand constructor",
)

// RefundOrderCommand represents an admin issuing a refund independent of
// cancellation. A negative amount requests the full remaining balance.
type RefundOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	adminID     kernel.UUID
	reason      string
	amountCents int64

	guard guard.ConstructorGuard
}

// NewRefundOrderCommand creates a command to refund an order.
func NewRefundOrderCommand(
	orderID, adminID kernel.UUID, reason string, amountCents int64,
) (RefundOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), adminID.Validate()); err != nil {
		return RefundOrderCommand{}, err
	}
	if reason == "" {
		return RefundOrderCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return RefundOrderCommand{
		orderID:     orderID,
		adminID:     adminID,
		reason:      reason,
		amountCents: amountCents,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefundOrderCommand) Validate() error {
	return c.guard.Validate(ErrRefundOrderCommandIsNotConstructed)
}

// OrderID returns the order to refund.
func (c RefundOrderCommand) OrderID() kernel.UUID { return c.orderID }

// AdminID returns the acting admin.
func (c RefundOrderCommand) AdminID() kernel.UUID { return c.adminID }

// Reason returns why the refund is issued.
func (c RefundOrderCommand) Reason() string { return c.reason }

// AmountCents returns the requested amount; negative means the full
// remaining balance.
func (c RefundOrderCommand) AmountCents() int64 { return c.amountCents }
