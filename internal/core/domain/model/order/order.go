package order

import (
	"errors"
	"fmt"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
	// ErrReasonIsRequired is returned when a rejection or cancellation comes
	// without a reason.
	ErrReasonIsRequired = errs.NewValueIsRequiredError("reason")
)

// Order is the aggregate root of the marketplace core. It owns the status
// state machine, the money snapshot, the per-order audit log, and the driver
// reservation. Orders are created in PENDING, mutated only through validated
// transition methods, and never deleted; cancelled and refunded orders stay
// as historical records.
//
// Invariants maintained by the aggregate:
//   - TotalCents = SubtotalCents + TaxCents + DeliveryFeeCents (via Breakdown)
//   - a non-nil driver reference only in statuses permitted by CanHaveDriver
//   - every accepted transition appends exactly one history entry whose Seq
//     strictly exceeds the prior entry's
//   - cumulative refunds never exceed the persisted total
type Order struct {
	id          kernel.UUID
	orderNumber string
	customerID  kernel.UUID
	chefID      kernel.UUID
	driverID    *kernel.UUID

	items      []Item
	breakdown  Breakdown
	paymentRef string

	pickup          kernel.GeoPoint
	delivery        kernel.GeoPoint
	deliveryAddress string

	status        Status
	refundedCents int64

	createdAt   time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time

	// historySeq is the Seq of the last recorded entry; pendingHistory holds
	// entries recorded since the aggregate was loaded, for the repository to
	// append on the next commit.
	historySeq     int
	pendingHistory []HistoryEntry

	isConstructed bool
}

// NewOrder creates an order in PENDING with the money breakdown snapshotted
// onto it and the initial history row recorded for the requesting customer.
// The breakdown must already be computed from the items' subtotal; NewOrder
// cross-checks the two.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	chefID kernel.UUID,
	items []Item,
	pickup kernel.GeoPoint,
	delivery kernel.GeoPoint,
	deliveryAddress string,
	breakdown Breakdown,
	paymentRef string,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		chefID.Validate(),
		pickup.Validate(),
		delivery.Validate(),
		breakdown.Validate(),
	); err != nil {
		return nil, err
	}

	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}
	if deliveryAddress == "" {
		return nil, errs.NewValueIsRequiredError("deliveryAddress")
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if subtotal := SubtotalCents(items); subtotal != breakdown.SubtotalCents() {
		return nil, errs.NewValueIsInvalidErrorWithCause("breakdown",
			fmt.Errorf("subtotal snapshot %d does not match items subtotal %d",
				breakdown.SubtotalCents(), subtotal))
	}

	o := &Order{
		id:              id,
		orderNumber:     orderNumber,
		customerID:      customerID,
		chefID:          chefID,
		items:           items,
		breakdown:       breakdown,
		paymentRef:      paymentRef,
		pickup:          pickup,
		delivery:        delivery,
		deliveryAddress: deliveryAddress,
		status:          Pending,
		createdAt:       now,
		isConstructed:   true,
	}
	o.appendHistory(HistoryEntry{
		To:        Pending,
		ActorID:   &customerID,
		ActorRole: string(RoleCustomer),
		At:        now,
	})

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-running
// creation-time validation or recording history. historySeq must be the Seq
// of the last persisted history entry so new entries stay strictly ordered.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	chefID kernel.UUID,
	driverID *kernel.UUID,
	items []Item,
	breakdown Breakdown,
	paymentRef string,
	pickup kernel.GeoPoint,
	delivery kernel.GeoPoint,
	deliveryAddress string,
	status Status,
	refundedCents int64,
	createdAt time.Time,
	assignedAt, pickedUpAt, deliveredAt, cancelledAt *time.Time,
	historySeq int,
) (*Order, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if driverID != nil && !status.CanHaveDriver() {
		return nil, errs.NewValueIsInvalidErrorWithCause("driverID",
			fmt.Errorf("status %s cannot have an assigned driver", status))
	}

	return &Order{
		id:              id,
		orderNumber:     orderNumber,
		customerID:      customerID,
		chefID:          chefID,
		driverID:        driverID,
		items:           items,
		breakdown:       breakdown,
		paymentRef:      paymentRef,
		pickup:          pickup,
		delivery:        delivery,
		deliveryAddress: deliveryAddress,
		status:          status,
		refundedCents:   refundedCents,
		createdAt:       createdAt,
		assignedAt:      assignedAt,
		pickedUpAt:      pickedUpAt,
		deliveredAt:     deliveredAt,
		cancelledAt:     cancelledAt,
		historySeq:      historySeq,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Order was created via a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// Accessors.

func (o *Order) ID() kernel.UUID            { return o.id }
func (o *Order) OrderNumber() string        { return o.orderNumber }
func (o *Order) CustomerID() kernel.UUID    { return o.customerID }
func (o *Order) ChefID() kernel.UUID        { return o.chefID }
func (o *Order) DriverID() *kernel.UUID     { return o.driverID }
func (o *Order) Items() []Item              { return o.items }
func (o *Order) Breakdown() Breakdown       { return o.breakdown }
func (o *Order) PaymentRef() string         { return o.paymentRef }
func (o *Order) Pickup() kernel.GeoPoint    { return o.pickup }
func (o *Order) Delivery() kernel.GeoPoint  { return o.delivery }
func (o *Order) DeliveryAddress() string    { return o.deliveryAddress }
func (o *Order) Status() Status             { return o.status }
func (o *Order) RefundedCents() int64       { return o.refundedCents }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) AssignedAt() *time.Time     { return o.assignedAt }
func (o *Order) PickedUpAt() *time.Time     { return o.pickedUpAt }
func (o *Order) DeliveredAt() *time.Time    { return o.deliveredAt }
func (o *Order) CancelledAt() *time.Time    { return o.cancelledAt }
func (o *Order) HistorySeq() int            { return o.historySeq }
func (o *Order) PendingHistory() []HistoryEntry {
	out := make([]HistoryEntry, len(o.pendingHistory))
	copy(out, o.pendingHistory)
	return out
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// DriverIs reports whether the given driver is the order's assigned driver.
func (o *Order) DriverIs(driverID kernel.UUID) bool {
	return o.driverID != nil && o.driverID.IsEqual(driverID)
}

// ConfirmPayment moves PENDING -> PAYMENT_CONFIRMED when the payment
// collaborator reports capture. Only admins and the system may confirm.
func (o *Order) ConfirmPayment(actor Actor, now time.Time) error {
	if actor.Role != RoleAdmin && actor.Role != RoleSystem {
		return errs.NewForbiddenError(actor.ID.String(), o.id.String())
	}
	return o.transition(actor, PaymentConfirmed, "", now)
}

// Accept moves PAYMENT_CONFIRMED -> ACCEPTED. The acting chef must own the order.
func (o *Order) Accept(actor Actor, now time.Time) error {
	if err := o.authorizeChef(actor); err != nil {
		return err
	}
	return o.transition(actor, Accepted, "", now)
}

// Reject moves PAYMENT_CONFIRMED -> REJECTED. A reason is required.
func (o *Order) Reject(actor Actor, reason string, now time.Time) error {
	if err := o.authorizeChef(actor); err != nil {
		return err
	}
	if reason == "" {
		return ErrReasonIsRequired
	}
	return o.transition(actor, Rejected, reason, now)
}

// StartPreparing moves ACCEPTED -> PREPARING.
func (o *Order) StartPreparing(actor Actor, now time.Time) error {
	if err := o.authorizeChef(actor); err != nil {
		return err
	}
	return o.transition(actor, Preparing, "", now)
}

// MarkReady moves ACCEPTED or PREPARING -> READY_FOR_PICKUP, which makes the
// order dispatchable.
func (o *Order) MarkReady(actor Actor, now time.Time) error {
	if err := o.authorizeChef(actor); err != nil {
		return err
	}
	return o.transition(actor, ReadyForPickup, "", now)
}

// ReserveDriver records a pending driver reservation on a READY_FOR_PICKUP
// order: the driver reference and assignedAt are set and an audit row is
// appended, but the status only advances when the driver accepts.
// Fails with Conflict when a driver is already reserved and with BadRequest
// when the order is not dispatchable.
func (o *Order) ReserveDriver(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.status != ReadyForPickup {
		return errs.NewBusinessRuleErrorWithCause("order is not dispatchable",
			fmt.Errorf("status is %s, want %s", o.status, ReadyForPickup))
	}
	if o.driverID != nil {
		return errs.NewConflictError("order", "driver already assigned")
	}

	o.driverID = &driverID
	at := now
	o.assignedAt = &at
	o.appendHistory(HistoryEntry{
		From:      ReadyForPickup,
		To:        ReadyForPickup,
		ActorID:   &driverID,
		ActorRole: string(RoleSystem),
		Note:      "driver reserved, awaiting acceptance",
		At:        now,
	})
	return nil
}

// ClearReservation releases a pending driver reservation (driver declined or
// the reservation went stale) without changing the READY_FOR_PICKUP status,
// returning the order to the dispatchable pool.
func (o *Order) ClearReservation(reason string, now time.Time) error {
	if o.status != ReadyForPickup || o.driverID == nil {
		return errs.NewConflictError("order", "no pending driver reservation")
	}

	released := *o.driverID
	o.driverID = nil
	o.assignedAt = nil
	o.appendHistory(HistoryEntry{
		From:      ReadyForPickup,
		To:        ReadyForPickup,
		ActorID:   &released,
		ActorRole: string(RoleSystem),
		Note:      reason,
		At:        now,
	})
	return nil
}

// ConfirmDriver moves READY_FOR_PICKUP -> ASSIGNED_TO_DRIVER when the reserved
// driver accepts the assignment.
func (o *Order) ConfirmDriver(driverID kernel.UUID, now time.Time) error {
	if !o.DriverIs(driverID) {
		return errs.NewForbiddenError(driverID.String(), o.id.String())
	}
	return o.transition(NewActor(driverID, RoleDriver), AssignedToDriver, "", now)
}

// UnassignDriver moves ASSIGNED_TO_DRIVER back to READY_FOR_PICKUP and clears
// the driver reference, returning the order to the dispatchable pool.
func (o *Order) UnassignDriver(actor Actor, reason string, now time.Time) error {
	if err := o.transition(actor, ReadyForPickup, reason, now); err != nil {
		return err
	}
	o.driverID = nil
	o.assignedAt = nil
	return nil
}

// MarkPickedUp moves ASSIGNED_TO_DRIVER -> PICKED_UP and stamps pickedUpAt.
// Only the assigned driver may report pickup.
func (o *Order) MarkPickedUp(actor Actor, now time.Time) error {
	if err := o.authorizeDriver(actor); err != nil {
		return err
	}
	if err := o.transition(actor, PickedUp, "", now); err != nil {
		return err
	}
	at := now
	o.pickedUpAt = &at
	return nil
}

// MarkInTransit moves PICKED_UP -> IN_TRANSIT.
func (o *Order) MarkInTransit(actor Actor, now time.Time) error {
	if err := o.authorizeDriver(actor); err != nil {
		return err
	}
	return o.transition(actor, InTransit, "", now)
}

// MarkDelivered moves PICKED_UP or IN_TRANSIT -> DELIVERED and stamps
// deliveredAt. DELIVERED is terminal. The caller is responsible for writing
// the earning ledger entries in the same transaction.
func (o *Order) MarkDelivered(actor Actor, now time.Time) error {
	if err := o.authorizeDriver(actor); err != nil {
		return err
	}
	if err := o.transition(actor, Delivered, "", now); err != nil {
		return err
	}
	at := now
	o.deliveredAt = &at
	return nil
}

// Cancel moves any non-terminal state to CANCELLED. Customers may cancel only
// before fulfillment starts (PENDING, PAYMENT_CONFIRMED or ACCEPTED); admins
// may cancel from any non-terminal state. A reason is required. The driver
// reference, if any, is released.
func (o *Order) Cancel(actor Actor, reason string, now time.Time) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	switch actor.Role {
	case RoleAdmin:
		// any non-terminal state; the state graph enforces terminality below
	case RoleCustomer:
		if !actor.ID.IsEqual(o.customerID) {
			return errs.NewForbiddenError(actor.ID.String(), o.id.String())
		}
		if o.status != Pending && o.status != PaymentConfirmed && o.status != Accepted {
			return errs.NewBusinessRuleErrorWithCause("customer cancellation window closed",
				fmt.Errorf("status is %s", o.status))
		}
	default:
		return errs.NewForbiddenError(actor.ID.String(), o.id.String())
	}

	if err := o.transition(actor, Cancelled, reason, now); err != nil {
		return err
	}
	at := now
	o.cancelledAt = &at
	o.driverID = nil
	o.assignedAt = nil
	return nil
}

// RegisterRefund records amountCents of refunded money against the order.
// Fails with Conflict when the order is already fully refunded and with
// BadRequest when the amount would exceed the remaining balance.
func (o *Order) RegisterRefund(amountCents int64) error {
	if amountCents <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("refund amount",
			fmt.Errorf("%d is not greater than 0", amountCents))
	}
	total := o.breakdown.TotalCents()
	if o.refundedCents >= total {
		return errs.NewConflictError("order", "already fully refunded")
	}
	if o.refundedCents+amountCents > total {
		return errs.NewBusinessRuleErrorWithCause("refund exceeds remaining balance",
			fmt.Errorf("refunded %d + requested %d > total %d", o.refundedCents, amountCents, total))
	}

	o.refundedCents += amountCents
	return nil
}

// IsFullyRefunded reports whether the whole persisted total has been refunded.
func (o *Order) IsFullyRefunded() bool {
	return o.refundedCents >= o.breakdown.TotalCents()
}

// MarkRefunded moves CANCELLED or REJECTED -> REFUNDED once the full persisted
// total has been refunded.
func (o *Order) MarkRefunded(actor Actor, now time.Time) error {
	if !o.IsFullyRefunded() {
		return errs.NewBusinessRuleErrorWithCause("order is not fully refunded",
			fmt.Errorf("refunded %d of %d", o.refundedCents, o.breakdown.TotalCents()))
	}
	return o.transition(actor, Refunded, "", now)
}

// transition applies a validated state-graph move and appends the audit row.
func (o *Order) transition(actor Actor, to Status, note string, now time.Time) error {
	if err := o.status.ValidateTransition(to); err != nil {
		return err
	}

	from := o.status
	o.status = to
	actorID := actor.ID
	o.appendHistory(HistoryEntry{
		From:      from,
		To:        to,
		ActorID:   &actorID,
		ActorRole: string(actor.Role),
		Note:      note,
		At:        now,
	})
	return nil
}

func (o *Order) appendHistory(entry HistoryEntry) {
	o.historySeq++
	entry.Seq = o.historySeq
	o.pendingHistory = append(o.pendingHistory, entry)
}

func (o *Order) authorizeChef(actor Actor) error {
	if actor.Role != RoleChef || !actor.ID.IsEqual(o.chefID) {
		return errs.NewForbiddenError(actor.ID.String(), o.id.String())
	}
	return nil
}

func (o *Order) authorizeDriver(actor Actor) error {
	if actor.Role != RoleDriver || !o.DriverIs(actor.ID) {
		return errs.NewForbiddenError(actor.ID.String(), o.id.String())
	}
	return nil
}
