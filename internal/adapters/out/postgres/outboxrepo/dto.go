// Package outboxrepo persists outbox messages. Messages are inserted in the
// transaction that causes them; the relay job reads pending rows back and
// marks the outcome.
package outboxrepo

import (
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// MessageDTO is the database row for an outbox message. UpdatedAt is
// maintained by GORM and drives the retry backoff window in GetPending.
type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Kind        string
	Topic       string
	Payload     []byte
	Status      string `gorm:"index"`
	Attempts    int
	LastError   string
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
	PublishedAt *time.Time
}

// TableName maps the DTO to the "outbox_messages" table.
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(message *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:          message.ID().Bytes(),
		OrderID:     message.OrderID().Bytes(),
		Kind:        string(message.Kind()),
		Topic:       message.Topic(),
		Payload:     message.Payload(),
		Status:      string(message.Status()),
		Attempts:    message.Attempts(),
		LastError:   message.LastError(),
		CreatedAt:   message.CreatedAt(),
		PublishedAt: message.PublishedAt(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(
		id, orderID,
		outbox.Kind(dto.Kind),
		dto.Topic,
		dto.Payload,
		outbox.Status(dto.Status),
		dto.Attempts,
		dto.LastError,
		dto.CreatedAt,
		dto.PublishedAt,
	)
}
