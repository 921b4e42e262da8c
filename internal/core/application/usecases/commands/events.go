package commands

import (
	"context"
	"encoding/json"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/core/domain/model/outbox"
	"mealmarket/internal/core/ports"
)

// orderEvent is the JSON payload published for every committed status
// transition, keyed by topic "orders.<event>".
type orderEvent struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
	CustomerID  string `json:"customerId"`
	ChefID      string `json:"chefId"`
	DriverID    string `json:"driverId,omitempty"`
	Reason      string `json:"reason,omitempty"`
	At          string `json:"at"`
}

// refundTask is the JSON payload of a durable refund instruction executed by
// the outbox relay against the payment processor.
type refundTask struct {
	OrderID     string `json:"orderId"`
	PaymentRef  string `json:"paymentRef"`
	AmountCents int64  `json:"amountCents"`
	Reason      string `json:"reason,omitempty"`
}

// enqueueOrderEvent writes a notify outbox message for the order's current
// state inside the caller's transaction.
func enqueueOrderEvent(
	ctx context.Context,
	repo ports.OutboxRepository,
	aggregate *order.Order,
	event, reason string,
	now time.Time,
) error {
	payload := orderEvent{
		OrderID:     aggregate.ID().String(),
		OrderNumber: aggregate.OrderNumber(),
		Status:      string(aggregate.Status()),
		CustomerID:  aggregate.CustomerID().String(),
		ChefID:      aggregate.ChefID().String(),
		Reason:      reason,
		At:          now.UTC().Format(time.RFC3339),
	}
	if aggregate.DriverID() != nil {
		payload.DriverID = aggregate.DriverID().String()
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	message, err := outbox.NewMessage(
		kernel.NewUUID(), aggregate.ID(), outbox.KindNotify, "orders."+event, raw, now)
	if err != nil {
		return err
	}

	return repo.Add(ctx, message)
}

// enqueueRefundTask writes a refund outbox message inside the caller's
// transaction. The relay executes it against the payment processor after
// commit, so the refund survives a crash between commit and execution.
func enqueueRefundTask(
	ctx context.Context,
	repo ports.OutboxRepository,
	aggregate *order.Order,
	amountCents int64,
	reason string,
	now time.Time,
) error {
	raw, err := json.Marshal(refundTask{
		OrderID:     aggregate.ID().String(),
		PaymentRef:  aggregate.PaymentRef(),
		AmountCents: amountCents,
		Reason:      reason,
	})
	if err != nil {
		return err
	}

	message, err := outbox.NewMessage(
		kernel.NewUUID(), aggregate.ID(), outbox.KindRefund, "", raw, now)
	if err != nil {
		return err
	}

	return repo.Add(ctx, message)
}
