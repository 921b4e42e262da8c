package order

import (
	"errors"
	"fmt"
	"strings"

	"mealmarket/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// The set of legal transitions forms a static graph that is the single source
// of truth for the whole system: no other component may hold a second copy of
// the table.
//
// State transitions:
//
//	PENDING ──> PAYMENT_CONFIRMED ──> ACCEPTED ──> PREPARING ──> READY_FOR_PICKUP ──> ASSIGNED_TO_DRIVER ──> PICKED_UP ──> IN_TRANSIT ──> DELIVERED
//	   │               │                  │  └──────────────────────^    ^                    │                   └────────────────────────────^
//	   │               │                  │                              └────────────────────┘ (driver unassigned)
//	   └───────────────┴──────────────────┴──── CANCELLED ──> REFUNDED <── REJECTED <── PAYMENT_CONFIRMED
//
// DELIVERED and REFUNDED are terminal: they have no outgoing edges.
type Status string

const (
	// Pending is the initial status of every order, before payment capture.
	Pending Status = "PENDING"
	// PaymentConfirmed means the payment collaborator captured the funds.
	PaymentConfirmed Status = "PAYMENT_CONFIRMED"
	// Accepted means the chef committed to fulfilling the order.
	Accepted Status = "ACCEPTED"
	// Preparing means the chef started cooking.
	Preparing Status = "PREPARING"
	// ReadyForPickup means the order awaits driver dispatch.
	ReadyForPickup Status = "READY_FOR_PICKUP"
	// AssignedToDriver means a driver accepted the delivery assignment.
	AssignedToDriver Status = "ASSIGNED_TO_DRIVER"
	// PickedUp means the driver collected the order from the chef.
	PickedUp Status = "PICKED_UP"
	// InTransit means the driver is en route to the customer.
	InTransit Status = "IN_TRANSIT"
	// Delivered is the successful terminal state.
	Delivered Status = "DELIVERED"
	// Cancelled means the order was cancelled by the customer or an admin.
	Cancelled Status = "CANCELLED"
	// Rejected means the chef declined the order.
	Rejected Status = "REJECTED"
	// Refunded is the terminal state after money was returned.
	Refunded Status = "REFUNDED"
)

// ErrInvalidTransition is the sentinel for illegal state-graph moves.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a rejected transition, citing the states that
// would have been legal from the current one.
type InvalidTransitionError struct {
	From       Status
	To         Status
	ValidNexts []Status
}

func (e *InvalidTransitionError) Error() string {
	nexts := make([]string, len(e.ValidNexts))
	for i, s := range e.ValidNexts {
		nexts[i] = string(s)
	}
	return fmt.Sprintf("invalid status transition: %s -> %s (valid next states: %s)",
		e.From, e.To, strings.Join(nexts, ", "))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// transitions returns the adjacency table of the order state graph.
// The map is rebuilt on each call so callers can never mutate shared state.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:          {PaymentConfirmed, Cancelled},
		PaymentConfirmed: {Accepted, Rejected, Cancelled},
		Accepted:         {Preparing, ReadyForPickup, Cancelled},
		Preparing:        {ReadyForPickup, Cancelled},
		ReadyForPickup:   {AssignedToDriver, Cancelled},
		AssignedToDriver: {PickedUp, ReadyForPickup, Cancelled},
		PickedUp:         {InTransit, Delivered},
		InTransit:        {Delivered},
		Delivered:        {},
		Cancelled:        {Refunded},
		Rejected:         {Refunded},
		Refunded:         {},
	}
}

// AllStatuses returns every status in the graph.
func AllStatuses() []Status {
	return []Status{
		Pending, PaymentConfirmed, Accepted, Preparing, ReadyForPickup,
		AssignedToDriver, PickedUp, InTransit, Delivered, Cancelled,
		Rejected, Refunded,
	}
}

// Validate checks that the status is one of the known graph states.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the status name. Implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// CanTransition reports whether the graph has an edge from s to target.
// A status never has a self-transition.
func (s Status) CanTransition(target Status) bool {
	for _, next := range transitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateTransition fails with an InvalidTransitionError citing the valid
// next states when the graph has no edge from s to target.
func (s Status) ValidateTransition(target Status) error {
	if err := errors.Join(s.Validate(), target.Validate()); err != nil {
		return err
	}

	if !s.CanTransition(target) {
		return &InvalidTransitionError{
			From:       s,
			To:         target,
			ValidNexts: s.ValidNexts(),
		}
	}
	return nil
}

// ValidNexts returns the states reachable from s in one transition.
func (s Status) ValidNexts() []Status {
	nexts := transitions()[s]
	out := make([]Status, len(nexts))
	copy(out, nexts)
	return out
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(transitions()[s]) == 0
}

// RequiresRefund reports whether money has been captured for an order in this
// status without the delivery having completed successfully. Cancelling an
// order in such a state must trigger a refund.
func (s Status) RequiresRefund() bool {
	switch s {
	case PaymentConfirmed, Accepted, Preparing, ReadyForPickup, AssignedToDriver, PickedUp, Rejected:
		return true
	default:
		return false
	}
}

// IsActive reports whether the order is still moving toward delivery:
// neither terminal nor cancelled/rejected.
func (s Status) IsActive() bool {
	return !s.IsTerminal() && s != Cancelled && s != Rejected
}

// CanHaveDriver reports whether the status permits a non-nil assigned driver.
// A driver reference appears in READY_FOR_PICKUP while a pending assignment
// reserves the driver, and stays from acceptance through delivery.
func (s Status) CanHaveDriver() bool {
	switch s {
	case ReadyForPickup, AssignedToDriver, PickedUp, InTransit, Delivered:
		return true
	default:
		return false
	}
}
