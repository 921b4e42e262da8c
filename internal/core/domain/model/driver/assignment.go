package driver

import (
	"errors"
	"fmt"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"
)

// ErrAssignmentIsNotConstructed is returned when using an improperly
// initialized Assignment.
var ErrAssignmentIsNotConstructed = errors.New(
	"Assignment must be created via NewAssignment or RestoreAssignment")

// AssignmentStatus is the resolution state of a proposed driver-order pairing.
type AssignmentStatus string

const (
	AssignmentPending  AssignmentStatus = "pending"
	AssignmentAccepted AssignmentStatus = "accepted"
	AssignmentDeclined AssignmentStatus = "declined"
)

// Assignment is a proposed pairing of a driver with a ready order, awaiting
// the driver's confirmation. At most one assignment may be pending for a
// given order at a time; the store enforces this with a partial unique index
// and the domain re-checks it before creating a second one.
type Assignment struct {
	id                     kernel.UUID
	orderID                kernel.UUID
	driverID               kernel.UUID
	status                 AssignmentStatus
	distanceKm             float64
	estimatedPickupMinutes int
	declineReason          string
	createdAt              time.Time
	resolvedAt             *time.Time

	isConstructed bool
}

// NewAssignment creates a pending assignment with the distance captured at
// assignment time and the pickup ETA already computed by the dispatcher.
func NewAssignment(
	id, orderID, driverID kernel.UUID,
	distanceKm float64,
	estimatedPickupMinutes int,
	now time.Time,
) (*Assignment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}
	if distanceKm < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("distanceKm",
			fmt.Errorf("%f is negative", distanceKm))
	}
	if estimatedPickupMinutes < 0 {
		return nil, errs.NewValueIsInvalidError("estimatedPickupMinutes")
	}

	return &Assignment{
		id:                     id,
		orderID:                orderID,
		driverID:               driverID,
		status:                 AssignmentPending,
		distanceKm:             distanceKm,
		estimatedPickupMinutes: estimatedPickupMinutes,
		createdAt:              now,
		isConstructed:          true,
	}, nil
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(
	id, orderID, driverID kernel.UUID,
	status AssignmentStatus,
	distanceKm float64,
	estimatedPickupMinutes int,
	declineReason string,
	createdAt time.Time,
	resolvedAt *time.Time,
) (*Assignment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}

	return &Assignment{
		id:                     id,
		orderID:                orderID,
		driverID:               driverID,
		status:                 status,
		distanceKm:             distanceKm,
		estimatedPickupMinutes: estimatedPickupMinutes,
		declineReason:          declineReason,
		createdAt:              createdAt,
		resolvedAt:             resolvedAt,
		isConstructed:          true,
	}, nil
}

// Validate ensures the Assignment was created via a constructor.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

func (a *Assignment) ID() kernel.UUID             { return a.id }
func (a *Assignment) OrderID() kernel.UUID        { return a.orderID }
func (a *Assignment) DriverID() kernel.UUID       { return a.driverID }
func (a *Assignment) Status() AssignmentStatus    { return a.status }
func (a *Assignment) DistanceKm() float64         { return a.distanceKm }
func (a *Assignment) EstimatedPickupMinutes() int { return a.estimatedPickupMinutes }
func (a *Assignment) DeclineReason() string       { return a.declineReason }
func (a *Assignment) CreatedAt() time.Time        { return a.createdAt }
func (a *Assignment) ResolvedAt() *time.Time      { return a.resolvedAt }

// IsPending reports whether the assignment still awaits driver resolution.
func (a *Assignment) IsPending() bool {
	return a.status == AssignmentPending
}

// Accept resolves the assignment in favor of the driver. It succeeds only if
// the assignment belongs to driverID and is still pending; a resolved
// assignment fails with Conflict, a foreign one with Forbidden.
func (a *Assignment) Accept(driverID kernel.UUID, now time.Time) error {
	if !a.driverID.IsEqual(driverID) {
		return errs.NewForbiddenError(driverID.String(), a.id.String())
	}
	if !a.IsPending() {
		return errs.NewConflictError("assignment",
			fmt.Sprintf("already %s", a.status))
	}

	a.status = AssignmentAccepted
	at := now
	a.resolvedAt = &at
	return nil
}

// Decline resolves the assignment against the driver, with an optional
// reason. Same ownership and pending preconditions as Accept.
func (a *Assignment) Decline(driverID kernel.UUID, reason string, now time.Time) error {
	if !a.driverID.IsEqual(driverID) {
		return errs.NewForbiddenError(driverID.String(), a.id.String())
	}
	if !a.IsPending() {
		return errs.NewConflictError("assignment",
			fmt.Sprintf("already %s", a.status))
	}

	a.status = AssignmentDeclined
	a.declineReason = reason
	at := now
	a.resolvedAt = &at
	return nil
}
