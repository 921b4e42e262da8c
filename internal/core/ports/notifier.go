package ports

import (
	"context"
)

// Notifier publishes lifecycle events to interested collaborators. Delivery
// is at-least-once via the outbox relay; a publish failure never affects an
// already committed order transition.
type Notifier interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}
