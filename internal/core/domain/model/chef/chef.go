package chef

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"
)

var (
	// ErrChefIsNotConstructed is returned when using an improperly
	// initialized Chef.
	ErrChefIsNotConstructed = errors.New("Chef must be created via NewChef or RestoreChef")
	// ErrNameIsRequired is returned when attempting to create a chef
	// without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Chef is the selling side of the marketplace. The order core only needs
// enough of the chef to validate order creation: whether the chef is active,
// verified, has completed payment onboarding, where pickup happens, and the
// minimum order value the chef accepts.
type Chef struct {
	id                kernel.UUID
	name              string
	active            bool
	verified          bool
	payoutsEnabled    bool
	minimumOrderCents int64
	pickup            kernel.GeoPoint

	isConstructed bool
}

// NewChef creates a chef profile. New chefs start inactive and unverified;
// onboarding flows outside the core flip those flags.
func NewChef(id kernel.UUID, name string, pickup kernel.GeoPoint, minimumOrderCents int64) (*Chef, error) {
	if err := errors.Join(id.Validate(), pickup.Validate()); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}
	if minimumOrderCents < 0 {
		return nil, errs.NewValueIsInvalidError("minimumOrderCents")
	}

	return &Chef{
		id:                id,
		name:              name,
		minimumOrderCents: minimumOrderCents,
		pickup:            pickup,
		isConstructed:     true,
	}, nil
}

// RestoreChef reconstructs a chef from persistence.
func RestoreChef(
	id kernel.UUID,
	name string,
	active, verified, payoutsEnabled bool,
	minimumOrderCents int64,
	pickup kernel.GeoPoint,
) (*Chef, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Chef{
		id:                id,
		name:              name,
		active:            active,
		verified:          verified,
		payoutsEnabled:    payoutsEnabled,
		minimumOrderCents: minimumOrderCents,
		pickup:            pickup,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Chef was created via a constructor.
func (c *Chef) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrChefIsNotConstructed
	}
	return nil
}

func (c *Chef) ID() kernel.UUID           { return c.id }
func (c *Chef) Name() string              { return c.name }
func (c *Chef) IsActive() bool            { return c.active }
func (c *Chef) IsVerified() bool          { return c.verified }
func (c *Chef) PayoutsEnabled() bool      { return c.payoutsEnabled }
func (c *Chef) MinimumOrderCents() int64  { return c.minimumOrderCents }
func (c *Chef) Pickup() kernel.GeoPoint   { return c.pickup }

// CanReceiveOrders checks the creation-time gate: the chef must be active,
// verified, and have completed payment onboarding. Returns a business-rule
// error naming the first failed gate.
func (c *Chef) CanReceiveOrders() error {
	switch {
	case !c.active:
		return errs.NewBusinessRuleError("chef is not active")
	case !c.verified:
		return errs.NewBusinessRuleError("chef is not verified")
	case !c.payoutsEnabled:
		return errs.NewBusinessRuleError("chef has not completed payment onboarding")
	default:
		return nil
	}
}

// MeetsMinimumOrder checks the subtotal against the chef's minimum.
func (c *Chef) MeetsMinimumOrder(subtotalCents int64) error {
	if subtotalCents < c.minimumOrderCents {
		return errs.NewBusinessRuleError("subtotal below chef minimum order")
	}
	return nil
}
