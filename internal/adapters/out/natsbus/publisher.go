// Package natsbus publishes lifecycle events to NATS. The outbox relay is
// the only caller; it retries failed publishes, so the publisher itself
// stays fire-and-forget.
package natsbus

import (
	"context"

	"github.com/nats-io/nats.go"
)

// Publisher implements ports.Notifier on a NATS connection.
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher creates a publisher on an established connection. The caller
// owns the connection's lifecycle.
func NewPublisher(conn *nats.Conn) *Publisher {
	return &Publisher{conn: conn}
}

// Publish sends the payload on the topic and flushes, so a broken connection
// surfaces here rather than being silently buffered.
func (p *Publisher) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.conn.Publish(topic, payload); err != nil {
		return err
	}
	return p.conn.FlushWithContext(ctx)
}
