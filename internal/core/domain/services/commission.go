package services

import (
	"fmt"
	"math"

	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/pkg/errs"
)

// Default commission policy values, in effect unless overridden through
// configuration. Amounts are minor units (cents).
const (
	DefaultPlatformFeeRate  = 0.15
	DefaultTaxRate          = 0.08
	DefaultDeliveryFeeCents = 500
)

// CommissionPolicy holds the marketplace's money-split rates. A single policy
// instance is built at startup from configuration; per-call overrides are not
// supported so every order created under a policy gets the same split.
type CommissionPolicy struct {
	platformFeeRate  float64
	taxRate          float64
	deliveryFeeCents int64
}

// NewCommissionPolicy creates a policy with the given rates. Rates are
// fractions of the subtotal and must lie in [0, 1).
func NewCommissionPolicy(platformFeeRate, taxRate float64, deliveryFeeCents int64) (CommissionPolicy, error) {
	if platformFeeRate < 0 || platformFeeRate >= 1 {
		return CommissionPolicy{}, errs.NewValueIsOutOfRangeError(
			"platformFeeRate", platformFeeRate, 0, 1)
	}
	if taxRate < 0 || taxRate >= 1 {
		return CommissionPolicy{}, errs.NewValueIsOutOfRangeError(
			"taxRate", taxRate, 0, 1)
	}
	if deliveryFeeCents < 0 {
		return CommissionPolicy{}, errs.NewValueIsInvalidErrorWithCause(
			"deliveryFeeCents", fmt.Errorf("%d is negative", deliveryFeeCents))
	}

	return CommissionPolicy{
		platformFeeRate:  platformFeeRate,
		taxRate:          taxRate,
		deliveryFeeCents: deliveryFeeCents,
	}, nil
}

// DefaultCommissionPolicy returns the policy with the standard rates: 15%
// platform fee, 8% tax, 500 cent delivery fee.
func DefaultCommissionPolicy() CommissionPolicy {
	policy, err := NewCommissionPolicy(
		DefaultPlatformFeeRate, DefaultTaxRate, DefaultDeliveryFeeCents)
	if err != nil {
		panic(err)
	}
	return policy
}

// RefundSplit is the outcome of prorating a refund across the parties of an
// order's original breakdown.
type RefundSplit struct {
	RefundAmountCents   int64
	ChefRefundCents     int64
	PlatformRefundCents int64
}

// roundCents rounds half away from zero. The same rule is applied to every
// percentage computation so fee, tax and refund cents reconcile across calls.
func roundCents(v float64) int64 {
	return int64(math.Round(v))
}

// Calculate computes the money split for a subtotal using the policy's
// default delivery fee. Percentages are each rounded to the nearest cent
// independently before summing.
func (p CommissionPolicy) Calculate(subtotalCents int64) (order.Breakdown, error) {
	return p.CalculateWithDeliveryFee(subtotalCents, p.deliveryFeeCents)
}

// CalculateWithDeliveryFee computes the money split for a subtotal with an
// explicit delivery fee, overriding the policy default.
func (p CommissionPolicy) CalculateWithDeliveryFee(
	subtotalCents, deliveryFeeCents int64,
) (order.Breakdown, error) {
	if subtotalCents <= 0 {
		return order.Breakdown{}, errs.NewValueIsInvalidErrorWithCause(
			"subtotalCents", fmt.Errorf("%d is not positive", subtotalCents))
	}
	if deliveryFeeCents < 0 {
		return order.Breakdown{}, errs.NewValueIsInvalidErrorWithCause(
			"deliveryFeeCents", fmt.Errorf("%d is negative", deliveryFeeCents))
	}

	platformFee := roundCents(float64(subtotalCents) * p.platformFeeRate)
	chefEarnings := subtotalCents - platformFee
	tax := roundCents(float64(subtotalCents) * p.taxRate)
	total := subtotalCents + tax + deliveryFeeCents

	return order.NewBreakdown(
		subtotalCents, platformFee, chefEarnings, tax, deliveryFeeCents, total)
}

// CalculateRefund prorates a refund across the chef and platform shares of
// the order's persisted breakdown. A negative amountCents requests a full
// refund of the remaining balance. The original breakdown must always be the
// one snapshotted onto the order, never a recomputation from current rates.
func (p CommissionPolicy) CalculateRefund(
	original order.Breakdown,
	amountCents int64,
	remainingCents int64,
) (RefundSplit, error) {
	if err := original.Validate(); err != nil {
		return RefundSplit{}, err
	}
	if remainingCents < 0 || remainingCents > original.TotalCents() {
		return RefundSplit{}, errs.NewValueIsOutOfRangeError(
			"remainingCents", remainingCents, 0, original.TotalCents())
	}

	if amountCents < 0 {
		amountCents = remainingCents
	}
	if amountCents == 0 {
		return RefundSplit{}, errs.NewBusinessRuleError("nothing left to refund")
	}
	if amountCents > remainingCents {
		return RefundSplit{}, errs.NewBusinessRuleError(fmt.Sprintf(
			"refund amount %d exceeds remaining balance %d", amountCents, remainingCents))
	}

	fraction := float64(amountCents) / float64(original.TotalCents())

	return RefundSplit{
		RefundAmountCents:   amountCents,
		ChefRefundCents:     roundCents(float64(original.ChefEarningsCents()) * fraction),
		PlatformRefundCents: roundCents(float64(original.PlatformFeeCents()) * fraction),
	}, nil
}
