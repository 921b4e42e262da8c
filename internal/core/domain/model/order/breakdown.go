package order

import (
	"fmt"

	"mealmarket/internal/pkg/errs"
	"mealmarket/internal/pkg/guard"
)

// ErrBreakdownIsNotConstructed is returned when using an improperly
// initialized Breakdown.
var ErrBreakdownIsNotConstructed = errs.NewValueIsRequiredError(
	"breakdown must be created via NewBreakdown constructor")

// Breakdown is the money split of an order, snapshotted onto the order row at
// creation time. Later changes to the platform's fee or tax rates never
// retroactively alter an existing order: refunds and ledger entries are always
// computed from this persisted snapshot, not from current rates.
//
// Invariant: TotalCents = SubtotalCents + TaxCents + DeliveryFeeCents.
// Invariant: ChefEarningsCents = SubtotalCents - PlatformFeeCents.
type Breakdown struct { //nolint:recvcheck //using for validation
	subtotalCents     int64
	platformFeeCents  int64
	chefEarningsCents int64
	taxCents          int64
	deliveryFeeCents  int64
	totalCents        int64

	guard guard.ConstructorGuard
}

// NewBreakdown creates a money breakdown and verifies its arithmetic
// invariants. All amounts are in minor units (cents) and must be non-negative.
func NewBreakdown(subtotal, platformFee, chefEarnings, tax, deliveryFee, total int64) (Breakdown, error) {
	for name, v := range map[string]int64{
		"subtotalCents":    subtotal,
		"platformFeeCents": platformFee,
		"taxCents":         tax,
		"deliveryFeeCents": deliveryFee,
	} {
		if v < 0 {
			return Breakdown{}, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%d is negative", v))
		}
	}

	if total != subtotal+tax+deliveryFee {
		return Breakdown{}, errs.NewValueIsInvalidErrorWithCause("totalCents",
			fmt.Errorf("%d does not equal subtotal %d + tax %d + delivery fee %d",
				total, subtotal, tax, deliveryFee))
	}

	if chefEarnings != subtotal-platformFee {
		return Breakdown{}, errs.NewValueIsInvalidErrorWithCause("chefEarningsCents",
			fmt.Errorf("%d does not equal subtotal %d - platform fee %d",
				chefEarnings, subtotal, platformFee))
	}

	return Breakdown{
		subtotalCents:     subtotal,
		platformFeeCents:  platformFee,
		chefEarningsCents: chefEarnings,
		taxCents:          tax,
		deliveryFeeCents:  deliveryFee,
		totalCents:        total,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the breakdown was properly constructed.
func (b Breakdown) Validate() error {
	return b.guard.Validate(ErrBreakdownIsNotConstructed)
}

// SubtotalCents is the sum of item price x quantity before tax and fees.
func (b Breakdown) SubtotalCents() int64 { return b.subtotalCents }

// PlatformFeeCents is the marketplace's cut of the subtotal.
func (b Breakdown) PlatformFeeCents() int64 { return b.platformFeeCents }

// ChefEarningsCents is the subtotal minus the platform fee.
func (b Breakdown) ChefEarningsCents() int64 { return b.chefEarningsCents }

// TaxCents is the tax computed on the subtotal.
func (b Breakdown) TaxCents() int64 { return b.taxCents }

// DeliveryFeeCents is the delivery fee owed to the driver on completion.
func (b Breakdown) DeliveryFeeCents() int64 { return b.deliveryFeeCents }

// TotalCents is the amount charged to the customer.
func (b Breakdown) TotalCents() int64 { return b.totalCents }
