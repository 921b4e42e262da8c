package ports

import (
	"context"

	"mealmarket/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for outbox messages.
// Messages are added inside the transaction that causes them and picked up
// later by the relay job.
type OutboxRepository interface {
	// Add persists new outbox messages as part of the enclosing transaction.
	Add(ctx context.Context, messages ...*outbox.Message) error

	// Update persists the relay outcome of a message.
	Update(ctx context.Context, message *outbox.Message) error

	// GetPending retrieves up to limit pending messages ready for a relay
	// attempt, oldest first. Messages still inside their retry backoff
	// window are skipped.
	GetPending(ctx context.Context, limit int) ([]*outbox.Message, error)
}
