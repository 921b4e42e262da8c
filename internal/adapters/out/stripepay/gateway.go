// Package stripepay implements the payment gateway port on Stripe.
package stripepay

import (
	"context"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"
)

// Gateway charges and refunds orders through the Stripe API.
type Gateway struct {
	api *client.API
}

func NewGateway(apiKey string) *Gateway {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &Gateway{api: api}
}

// CreatePaymentIntent registers a charge for the order total and returns the
// intent id, which the order stores as its payment reference.
func (g *Gateway) CreatePaymentIntent(ctx context.Context, orderID kernel.UUID, amountCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.AddMetadata("order_id", orderID.String())

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", errs.NewTransientError("stripe: create payment intent", err)
	}
	return intent.ID, nil
}

// Refund returns amountCents of a previously captured payment.
func (g *Gateway) Refund(ctx context.Context, paymentRef string, amountCents int64) error {
	params := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(paymentRef),
		Amount:        stripe.Int64(amountCents),
	}

	if _, err := g.api.Refunds.New(params); err != nil {
		return errs.NewTransientError("stripe: refund", err)
	}
	return nil
}
