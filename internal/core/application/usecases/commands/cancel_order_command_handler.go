package commands

import (
	"context"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/ledger"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/core/domain/services"
	"mealmarket/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order. When money has been captured
// for the current status, the remaining balance is refunded in full: the
// refund split is computed from the persisted breakdown, reversing ledger
// rows are written, and a durable refund task is enqueued for the relay. The
// payment processor is never called while the order row is locked.
type CancelOrderCommandHandler struct {
	uowFactory RefundUoWFactory
	policy     services.CommissionPolicy
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory RefundUoWFactory, policy services.CommissionPolicy,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, policy: policy}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	outboxRepo := uow.OutboxRepository()

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now()
	statusBefore := aggregate.Status()
	hadReservation := statusBefore == order.ReadyForPickup && aggregate.DriverID() != nil
	if err = aggregate.Cancel(cmd.Actor(), cmd.Reason(), now); err != nil {
		return err
	}

	if hadReservation {
		if err = releasePendingAssignment(
			ctx, uow.AssignmentRepository(), aggregate.ID(), cmd.Reason(), now); err != nil {
			return err
		}
	}

	if statusBefore.RequiresRefund() {
		if err = h.refundRemaining(
			ctx, uow.LedgerRepository(), outboxRepo, aggregate, cmd, now); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = enqueueOrderEvent(
		ctx, outboxRepo, aggregate, "cancelled", cmd.Reason(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// refundRemaining refunds the order's full remaining balance as part of the
// cancelling transaction and moves the order on to REFUNDED.
func (h *CancelOrderCommandHandler) refundRemaining(
	ctx context.Context,
	ledgerRepo ports.LedgerRepository,
	outboxRepo ports.OutboxRepository,
	aggregate *order.Order,
	cmd CancelOrderCommand,
	now time.Time,
) error {
	remaining := aggregate.Breakdown().TotalCents() - aggregate.RefundedCents()
	split, err := h.policy.CalculateRefund(aggregate.Breakdown(), -1, remaining)
	if err != nil {
		return err
	}

	if err = aggregate.RegisterRefund(split.RefundAmountCents); err != nil {
		return err
	}

	entries, err := reversalEntries(aggregate, split, now)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		if err = ledgerRepo.Add(ctx, entries...); err != nil {
			return err
		}
	}

	if err = enqueueRefundTask(
		ctx, outboxRepo, aggregate,
		split.RefundAmountCents, cmd.Reason(), now); err != nil {
		return err
	}

	if aggregate.IsFullyRefunded() {
		if err = aggregate.MarkRefunded(cmd.Actor(), now); err != nil {
			return err
		}
	}
	return nil
}

// releasePendingAssignment declines the assignment backing the cancelled
// order's driver reservation, so the row does not stay pending on an order
// nothing can dispatch anymore.
func releasePendingAssignment(
	ctx context.Context,
	assignmentRepo ports.AssignmentRepository,
	orderID kernel.UUID,
	reason string,
	now time.Time,
) error {
	pending, err := assignmentRepo.GetPendingByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if pending == nil {
		return nil
	}

	if err = pending.Decline(pending.DriverID(), reason, now); err != nil {
		return err
	}
	return assignmentRepo.Update(ctx, pending)
}

// reversalEntries builds the reversing ledger rows for the chef and platform
// shares of a refund. Shares that round to zero produce no row.
func reversalEntries(
	aggregate *order.Order, split services.RefundSplit, now time.Time,
) ([]*ledger.Entry, error) {
	var entries []*ledger.Entry
	chefID := aggregate.ChefID()

	if split.ChefRefundCents > 0 {
		entry, err := ledger.NewEntry(
			kernel.NewUUID(), aggregate.ID(), ledger.ActorChef, &chefID,
			ledger.KindOrderEarningReversal, -split.ChefRefundCents, now)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if split.PlatformRefundCents > 0 {
		entry, err := ledger.NewEntry(
			kernel.NewUUID(), aggregate.ID(), ledger.ActorPlatform, nil,
			ledger.KindPlatformFeeReversal, -split.PlatformRefundCents, now)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
