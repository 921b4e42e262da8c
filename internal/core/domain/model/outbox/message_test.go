package outbox_test

import (
	"errors"
	"testing"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/outbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageLifecycle(t *testing.T) {
	t.Run("notify_requires_topic", func(t *testing.T) {
		_, err := outbox.NewMessage(kernel.NewUUID(), kernel.NewUUID(),
			outbox.KindNotify, "", []byte(`{}`), time.Now())
		require.Error(t, err)
	})

	t.Run("refund_without_topic", func(t *testing.T) {
		m, err := outbox.NewMessage(kernel.NewUUID(), kernel.NewUUID(),
			outbox.KindRefund, "", []byte(`{"amountCents":500}`), time.Now())
		require.NoError(t, err)
		assert.Equal(t, outbox.StatusPending, m.Status())
	})

	t.Run("mark_published_is_one_shot", func(t *testing.T) {
		m, err := outbox.NewMessage(kernel.NewUUID(), kernel.NewUUID(),
			outbox.KindNotify, "orders.delivered", []byte(`{}`), time.Now())
		require.NoError(t, err)

		require.NoError(t, m.MarkPublished(time.Now()))
		assert.NotNil(t, m.PublishedAt())

		require.Error(t, m.MarkPublished(time.Now()))
	})

	t.Run("mark_failed_counts_attempts", func(t *testing.T) {
		m, err := outbox.NewMessage(kernel.NewUUID(), kernel.NewUUID(),
			outbox.KindNotify, "orders.delivered", []byte(`{}`), time.Now())
		require.NoError(t, err)

		m.MarkFailed(errors.New("nats: connection closed"))
		m.MarkFailed(errors.New("nats: connection closed"))

		assert.Equal(t, 2, m.Attempts())
		assert.Equal(t, "nats: connection closed", m.LastError())
		assert.Equal(t, outbox.StatusPending, m.Status())
	})
}
