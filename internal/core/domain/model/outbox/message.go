package outbox

import (
	"errors"
	"fmt"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"
)

// ErrMessageIsNotConstructed is returned when using an improperly
// initialized Message.
var ErrMessageIsNotConstructed = errors.New(
	"Message must be created via NewMessage or RestoreMessage")

// Kind selects the side effect a message triggers when relayed.
type Kind string

const (
	// KindNotify publishes the payload to the message bus on Topic.
	KindNotify Kind = "notify"
	// KindRefund issues a payment refund described by the payload.
	KindRefund Kind = "refund"
)

// Validate checks that the kind is one of the known values.
func (k Kind) Validate() error {
	switch k {
	case KindNotify, KindRefund:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("%q is not a valid outbox kind", string(k)))
	}
}

// Status is the relay state of an outbox message.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
)

// Message is a durable side-effect record written in the same transaction as
// the state change that caused it. A background relay picks up pending
// messages and executes them, so external calls never happen while a row
// lock is held.
type Message struct {
	id          kernel.UUID
	orderID     kernel.UUID
	kind        Kind
	topic       string
	payload     []byte
	status      Status
	attempts    int
	lastError   string
	createdAt   time.Time
	publishedAt *time.Time

	isConstructed bool
}

// NewMessage creates a pending message. Topic is required for notify
// messages and ignored for refunds.
func NewMessage(
	id, orderID kernel.UUID,
	kind Kind,
	topic string,
	payload []byte,
	now time.Time,
) (*Message, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}
	if kind == KindNotify && topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	if len(payload) == 0 {
		return nil, errs.NewValueIsRequiredError("payload")
	}

	return &Message{
		id:            id,
		orderID:       orderID,
		kind:          kind,
		topic:         topic,
		payload:       payload,
		status:        StatusPending,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreMessage reconstructs a message from persistence.
func RestoreMessage(
	id, orderID kernel.UUID,
	kind Kind,
	topic string,
	payload []byte,
	status Status,
	attempts int,
	lastError string,
	createdAt time.Time,
	publishedAt *time.Time,
) (*Message, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}

	return &Message{
		id:            id,
		orderID:       orderID,
		kind:          kind,
		topic:         topic,
		payload:       payload,
		status:        status,
		attempts:      attempts,
		lastError:     lastError,
		createdAt:     createdAt,
		publishedAt:   publishedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Message was created via a constructor.
func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) ID() kernel.UUID          { return m.id }
func (m *Message) OrderID() kernel.UUID     { return m.orderID }
func (m *Message) Kind() Kind               { return m.kind }
func (m *Message) Topic() string            { return m.topic }
func (m *Message) Payload() []byte          { return m.payload }
func (m *Message) Status() Status           { return m.status }
func (m *Message) Attempts() int            { return m.attempts }
func (m *Message) LastError() string        { return m.lastError }
func (m *Message) CreatedAt() time.Time     { return m.createdAt }
func (m *Message) PublishedAt() *time.Time  { return m.publishedAt }

// MarkPublished records a successful relay attempt.
func (m *Message) MarkPublished(now time.Time) error {
	if m.status == StatusPublished {
		return errs.NewConflictError("outbox message", "already published")
	}
	m.status = StatusPublished
	at := now
	m.publishedAt = &at
	return nil
}

// MarkFailed records a failed relay attempt. The message stays pending and
// the relay retries it with backoff based on the attempt count.
func (m *Message) MarkFailed(cause error) {
	m.attempts++
	if cause != nil {
		m.lastError = cause.Error()
	}
}
