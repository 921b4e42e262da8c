package ports

import (
	"context"

	"mealmarket/internal/core/domain/model/kernel"
)

// PaymentGateway is the narrow contract with the payment processor. Both
// calls cross the network and must never run while an order row lock is
// held: intents are created before the order transaction opens, refunds are
// executed by the outbox relay after the cancelling transaction commits.
type PaymentGateway interface {
	// CreatePaymentIntent registers a charge for the order total and returns
	// the processor's payment reference.
	CreatePaymentIntent(ctx context.Context, orderID kernel.UUID, amountCents int64) (string, error)

	// Refund returns amountCents of a previously captured payment.
	Refund(ctx context.Context, paymentRef string, amountCents int64) error
}
