package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/outbox"
)

type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Add(ctx context.Context, messages ...*outbox.Message) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

func (m *MockOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, topic string, payload []byte) error {
	args := m.Called(ctx, topic, payload)
	return args.Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePaymentIntent(
	ctx context.Context, orderID kernel.UUID, amountCents int64,
) (string, error) {
	args := m.Called(ctx, orderID, amountCents)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, paymentRef string, amountCents int64) error {
	args := m.Called(ctx, paymentRef, amountCents)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pendingNotifyMessage(t *testing.T) *outbox.Message {
	t.Helper()

	message, err := outbox.NewMessage(
		kernel.NewUUID(), kernel.NewUUID(),
		outbox.KindNotify, "orders.accepted", []byte(`{"status":"ACCEPTED"}`), time.Now())
	require.NoError(t, err)
	return message
}

func pendingRefundMessage(t *testing.T, paymentRef string, amountCents int64) *outbox.Message {
	t.Helper()

	payload, err := json.Marshal(refundInstruction{
		OrderID:     kernel.NewUUID().String(),
		PaymentRef:  paymentRef,
		AmountCents: amountCents,
	})
	require.NoError(t, err)

	message, err := outbox.NewMessage(
		kernel.NewUUID(), kernel.NewUUID(), outbox.KindRefund, "", payload, time.Now())
	require.NoError(t, err)
	return message
}

func Test_OutboxRelayJob_RelayBatch_PublishesNotifyMessages(t *testing.T) {
	ctx := context.Background()

	message := pendingNotifyMessage(t)

	outboxRepo := new(MockOutboxRepository)
	notifier := new(MockNotifier)
	payments := new(MockPaymentGateway)

	outboxRepo.On("GetPending", ctx, relayBatchSize).
		Return([]*outbox.Message{message}, nil).Once()
	notifier.On("Publish", mock.Anything, "orders.accepted", message.Payload()).
		Return(nil).Once()
	outboxRepo.On("Update", ctx, message).Return(nil).Once()

	job := NewOutboxRelayJob(outboxRepo, notifier, payments, discardLogger())
	err := job.relayBatch(ctx)

	require.NoError(t, err)
	assert.Equal(t, outbox.StatusPublished, message.Status())
	assert.NotNil(t, message.PublishedAt())
	payments.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything)
	outboxRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func Test_OutboxRelayJob_RelayBatch_ExecutesRefundMessages(t *testing.T) {
	ctx := context.Background()

	message := pendingRefundMessage(t, "pi_refund_456", 5650)

	outboxRepo := new(MockOutboxRepository)
	notifier := new(MockNotifier)
	payments := new(MockPaymentGateway)

	outboxRepo.On("GetPending", ctx, relayBatchSize).
		Return([]*outbox.Message{message}, nil).Once()
	payments.On("Refund", mock.Anything, "pi_refund_456", int64(5650)).
		Return(nil).Once()
	outboxRepo.On("Update", ctx, message).Return(nil).Once()

	job := NewOutboxRelayJob(outboxRepo, notifier, payments, discardLogger())
	err := job.relayBatch(ctx)

	require.NoError(t, err)
	assert.Equal(t, outbox.StatusPublished, message.Status())
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	outboxRepo.AssertExpectations(t)
	payments.AssertExpectations(t)
}

func Test_OutboxRelayJob_RelayBatch_FailedPublishStaysPending(t *testing.T) {
	ctx := context.Background()

	message := pendingNotifyMessage(t)

	outboxRepo := new(MockOutboxRepository)
	notifier := new(MockNotifier)
	payments := new(MockPaymentGateway)

	outboxRepo.On("GetPending", ctx, relayBatchSize).
		Return([]*outbox.Message{message}, nil).Once()
	notifier.On("Publish", mock.Anything, "orders.accepted", message.Payload()).
		Return(errors.New("nats: connection closed")).Once()
	outboxRepo.On("Update", ctx, message).Return(nil).Once()

	job := NewOutboxRelayJob(outboxRepo, notifier, payments, discardLogger())
	err := job.relayBatch(ctx)

	require.NoError(t, err)
	assert.Equal(t, outbox.StatusPending, message.Status())
	assert.Equal(t, 1, message.Attempts())
	assert.Contains(t, message.LastError(), "connection closed")
	outboxRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}
