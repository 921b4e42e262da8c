package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"mealmarket/internal/core/domain/model/outbox"
	"mealmarket/internal/core/ports"
)

const (
	relayBatchSize      = 50
	relayMessageTimeout = 10 * time.Second
)

// refundInstruction mirrors the JSON payload written for refund outbox
// messages by the cancellation and refund commands.
type refundInstruction struct {
	OrderID     string `json:"orderId"`
	PaymentRef  string `json:"paymentRef"`
	AmountCents int64  `json:"amountCents"`
	Reason      string `json:"reason,omitempty"`
}

// OutboxRelayJob drains pending outbox messages every second, publishing
// notify messages to the bus and executing refund messages against the
// payment processor. Failed messages are retried with backoff by the store's
// pending query.
type OutboxRelayJob struct {
	outbox   ports.OutboxRepository
	notifier ports.Notifier
	payments ports.PaymentGateway
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob creates the relay job.
func NewOutboxRelayJob(
	outboxRepo ports.OutboxRepository,
	notifier ports.Notifier,
	payments ports.PaymentGateway,
	logger *slog.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		outbox:   outboxRepo,
		notifier: notifier,
		payments: payments,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "outbox_relay_job"),
	}
}

// Start begins the relay job to run every second.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.relayBatch(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay batch failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop stops the relay job.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) relayBatch(ctx context.Context) error {
	messages, err := j.outbox.GetPending(ctx, relayBatchSize)
	if err != nil {
		return err
	}

	for _, message := range messages {
		j.relayOne(ctx, message)
	}
	return nil
}

// relayOne executes a single message's side effect and records the outcome.
// Execution errors mark the message failed for a later retry; only the
// bookkeeping write is reported to the caller's log.
func (j *OutboxRelayJob) relayOne(ctx context.Context, message *outbox.Message) {
	execCtx, cancel := context.WithTimeout(ctx, relayMessageTimeout)
	defer cancel()

	if err := j.execute(execCtx, message); err != nil {
		j.logger.WarnContext(ctx, "Outbox message relay failed",
			"message_id", message.ID().String(),
			"kind", string(message.Kind()),
			"attempts", message.Attempts()+1,
			"error", err)
		message.MarkFailed(err)
	} else if err := message.MarkPublished(time.Now()); err != nil {
		j.logger.ErrorContext(ctx, "Outbox message cannot be marked published",
			"message_id", message.ID().String(), "error", err)
		return
	}

	if err := j.outbox.Update(ctx, message); err != nil {
		j.logger.ErrorContext(ctx, "Outbox message state update failed",
			"message_id", message.ID().String(), "error", err)
	}
}

func (j *OutboxRelayJob) execute(ctx context.Context, message *outbox.Message) error {
	switch message.Kind() {
	case outbox.KindNotify:
		return j.notifier.Publish(ctx, message.Topic(), message.Payload())
	case outbox.KindRefund:
		var task refundInstruction
		if err := json.Unmarshal(message.Payload(), &task); err != nil {
			return fmt.Errorf("decode refund payload: %w", err)
		}
		return j.payments.Refund(ctx, task.PaymentRef, task.AmountCents)
	default:
		return fmt.Errorf("unknown outbox message kind %q", message.Kind())
	}
}
