package commands

import (
	"context"
	"time"

	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/core/domain/services"
)

// RefundOrderCommandHandler issues an admin refund, partial or full, using
// the same proportional split as cancellation. The refund is prorated over
// the order's persisted breakdown, never recomputed from current rates. When
// the cumulative refunds reach the total, a cancelled or rejected order
// moves on to REFUNDED.
type RefundOrderCommandHandler struct {
	uowFactory RefundUoWFactory
	policy     services.CommissionPolicy
}

// NewRefundOrderCommandHandler creates a handler for admin refunds.
func NewRefundOrderCommandHandler(
	uowFactory RefundUoWFactory, policy services.CommissionPolicy,
) RefundOrderCommandHandler {
	return RefundOrderCommandHandler{uowFactory: uowFactory, policy: policy}
}

// Handle processes the refund command.
func (h *RefundOrderCommandHandler) Handle(ctx context.Context, cmd RefundOrderCommand) error {
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
	remaining := aggregate.Breakdown().TotalCents() - aggregate.RefundedCents()
	split, err := h.policy.CalculateRefund(aggregate.Breakdown(), cmd.AmountCents(), remaining)
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
		if err = uow.LedgerRepository().Add(ctx, entries...); err != nil {
			return err
		}
	}

	if err = enqueueRefundTask(
		ctx, outboxRepo, aggregate,
		split.RefundAmountCents, cmd.Reason(), now); err != nil {
		return err
	}

	admin := order.NewActor(cmd.AdminID(), order.RoleAdmin)
	if aggregate.IsFullyRefunded() && aggregate.Status().CanTransition(order.Refunded) {
		if err = aggregate.MarkRefunded(admin, now); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = enqueueOrderEvent(
		ctx, outboxRepo, aggregate, "refund_issued", cmd.Reason(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
