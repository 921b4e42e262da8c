package ledger

import (
	"errors"
	"fmt"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when using an improperly initialized
// Entry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// ActorType identifies whose balance a ledger entry affects.
type ActorType string

const (
	ActorChef     ActorType = "chef"
	ActorDriver   ActorType = "driver"
	ActorPlatform ActorType = "platform"
)

// Validate checks that the actor type is one of the known values.
func (t ActorType) Validate() error {
	switch t {
	case ActorChef, ActorDriver, ActorPlatform:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("actorType",
			fmt.Errorf("%q is not a valid actor type", string(t)))
	}
}

// EntryKind classifies a ledger entry. Reversal kinds carry negative amounts
// and are written when a settled order is refunded.
type EntryKind string

const (
	KindOrderEarning    EntryKind = "order_earning"
	KindDeliveryEarning EntryKind = "delivery_earning"
	KindPlatformFee     EntryKind = "platform_fee"

	KindOrderEarningReversal    EntryKind = "order_earning_reversal"
	KindDeliveryEarningReversal EntryKind = "delivery_earning_reversal"
	KindPlatformFeeReversal     EntryKind = "platform_fee_reversal"
)

// Validate checks that the kind is one of the known values.
func (k EntryKind) Validate() error {
	switch k {
	case KindOrderEarning, KindDeliveryEarning, KindPlatformFee,
		KindOrderEarningReversal, KindDeliveryEarningReversal, KindPlatformFeeReversal:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("entryKind",
			fmt.Errorf("%q is not a valid entry kind", string(k)))
	}
}

// IsReversal reports whether the kind undoes a prior credit.
func (k EntryKind) IsReversal() bool {
	switch k {
	case KindOrderEarningReversal, KindDeliveryEarningReversal, KindPlatformFeeReversal:
		return true
	default:
		return false
	}
}

// Entry is a single immutable row in the earnings ledger. Credits carry
// positive amounts, reversals negative ones; an actor's balance is the sum of
// its entries. Entries are never updated or deleted once written.
type Entry struct {
	id          kernel.UUID
	orderID     kernel.UUID
	actorType   ActorType
	actorID     *kernel.UUID
	kind        EntryKind
	amountCents int64
	createdAt   time.Time

	isConstructed bool
}

// NewEntry creates a ledger entry. Credit kinds require a positive amount and
// reversal kinds a negative one. actorID is nil for platform entries.
func NewEntry(
	id, orderID kernel.UUID,
	actorType ActorType,
	actorID *kernel.UUID,
	kind EntryKind,
	amountCents int64,
	now time.Time,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(), orderID.Validate(), actorType.Validate(), kind.Validate()); err != nil {
		return nil, err
	}
	if actorType != ActorPlatform {
		if actorID == nil {
			return nil, errs.NewValueIsRequiredError("actorID")
		}
		if err := actorID.Validate(); err != nil {
			return nil, err
		}
	}
	if kind.IsReversal() {
		if amountCents >= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("amountCents",
				fmt.Errorf("reversal amount must be negative, got %d", amountCents))
		}
	} else if amountCents <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("amountCents",
			fmt.Errorf("credit amount must be positive, got %d", amountCents))
	}

	return &Entry{
		id:            id,
		orderID:       orderID,
		actorType:     actorType,
		actorID:       actorID,
		kind:          kind,
		amountCents:   amountCents,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreEntry reconstructs an entry from persistence.
func RestoreEntry(
	id, orderID kernel.UUID,
	actorType ActorType,
	actorID *kernel.UUID,
	kind EntryKind,
	amountCents int64,
	createdAt time.Time,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(), orderID.Validate(), actorType.Validate(), kind.Validate()); err != nil {
		return nil, err
	}

	return &Entry{
		id:            id,
		orderID:       orderID,
		actorType:     actorType,
		actorID:       actorID,
		kind:          kind,
		amountCents:   amountCents,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Entry was created via a constructor.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() kernel.UUID       { return e.id }
func (e *Entry) OrderID() kernel.UUID  { return e.orderID }
func (e *Entry) ActorType() ActorType  { return e.actorType }
func (e *Entry) ActorID() *kernel.UUID { return e.actorID }
func (e *Entry) Kind() EntryKind       { return e.kind }
func (e *Entry) AmountCents() int64    { return e.amountCents }
func (e *Entry) CreatedAt() time.Time  { return e.createdAt }
