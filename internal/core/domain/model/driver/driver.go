package driver

import (
	"errors"
	"fmt"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"
)

var (
	// ErrDriverIsNotConstructed is returned when using an improperly
	// initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver")
	// ErrNameIsRequired is returned when attempting to create a driver
	// without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// VerificationStatus is the onboarding state of a driver. Only approved
// drivers are eligible for dispatch.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Validate checks that the status is one of the known values.
func (s VerificationStatus) Validate() error {
	switch s {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("verificationStatus",
			fmt.Errorf("%q is not a valid verification status", string(s)))
	}
}

// Driver is a delivery driver in the fleet. The aggregate carries what
// dispatch and delivery completion need: availability, verification state,
// last known location, average rating for tie-breaking, and the aggregate
// delivery counters incremented when deliveries complete.
type Driver struct {
	id                    kernel.UUID
	name                  string
	available             bool
	verificationStatus    VerificationStatus
	location              *kernel.GeoPoint
	rating                float64
	totalDeliveries       int
	deliveryEarningsCents int64

	isConstructed bool
}

// NewDriver creates a driver in the pending verification state, unavailable
// and without a known location.
func NewDriver(id kernel.UUID, name string) (*Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}

	return &Driver{
		id:                 id,
		name:               name,
		verificationStatus: VerificationPending,
		isConstructed:      true,
	}, nil
}

// RestoreDriver reconstructs a driver from persistence.
func RestoreDriver(
	id kernel.UUID,
	name string,
	available bool,
	verificationStatus VerificationStatus,
	location *kernel.GeoPoint,
	rating float64,
	totalDeliveries int,
	deliveryEarningsCents int64,
) (*Driver, error) {
	if err := errors.Join(id.Validate(), verificationStatus.Validate()); err != nil {
		return nil, err
	}

	return &Driver{
		id:                    id,
		name:                  name,
		available:             available,
		verificationStatus:    verificationStatus,
		location:              location,
		rating:                rating,
		totalDeliveries:       totalDeliveries,
		deliveryEarningsCents: deliveryEarningsCents,
		isConstructed:         true,
	}, nil
}

// Validate ensures the Driver was created via a constructor.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

func (d *Driver) ID() kernel.UUID                        { return d.id }
func (d *Driver) Name() string                           { return d.name }
func (d *Driver) IsAvailable() bool                      { return d.available }
func (d *Driver) VerificationStatus() VerificationStatus { return d.verificationStatus }
func (d *Driver) Location() *kernel.GeoPoint             { return d.location }
func (d *Driver) Rating() float64                        { return d.rating }
func (d *Driver) TotalDeliveries() int                   { return d.totalDeliveries }
func (d *Driver) DeliveryEarningsCents() int64           { return d.deliveryEarningsCents }

// IsDispatchable reports whether the driver may be considered for dispatch:
// available, approved, and with a known current location.
func (d *Driver) IsDispatchable() bool {
	return d.available && d.verificationStatus == VerificationApproved && d.location != nil
}

// SetAvailable flips the driver's availability flag.
func (d *Driver) SetAvailable(available bool) {
	d.available = available
}

// UpdateLocation records the driver's current position.
func (d *Driver) UpdateLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = &location
	return nil
}

// RecordDelivery increments the driver's aggregate delivery counters. Called
// in the same transaction as the order's DELIVERED transition.
func (d *Driver) RecordDelivery(earningsCents int64) error {
	if earningsCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("earningsCents",
			fmt.Errorf("%d is negative", earningsCents))
	}
	d.totalDeliveries++
	d.deliveryEarningsCents += earningsCents
	return nil
}
