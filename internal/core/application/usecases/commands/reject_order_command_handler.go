package commands

import (
	"context"
	"time"

	"mealmarket/internal/core/domain/model/order"
)

// RejectOrderCommandHandler moves PAYMENT_CONFIRMED to REJECTED. Returning
// the captured money is a separate refund operation against the rejected
// order.
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRejectOrderCommandHandler creates a handler for chef order rejection.
func NewRejectOrderCommandHandler(uowFactory OrderUoWFactory) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the rejection command.
func (h *RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
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
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now()
	chefActor := order.NewActor(cmd.ChefID(), order.RoleChef)
	if err = aggregate.Reject(chefActor, cmd.Reason(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = enqueueOrderEvent(
		ctx, uow.OutboxRepository(), aggregate, "rejected", cmd.Reason(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
