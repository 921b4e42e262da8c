package commands

import (
	"context"
	"time"

	"mealmarket/internal/core/domain/model/order"
)

// MarkReadyCommandHandler moves ACCEPTED or PREPARING to READY_FOR_PICKUP.
// The committed "ready" event is what triggers dispatch, either through a
// consumer of the bus or an explicit assign-driver call.
type MarkReadyCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkReadyCommandHandler creates a handler for marking orders ready.
func NewMarkReadyCommandHandler(uowFactory OrderUoWFactory) MarkReadyCommandHandler {
	return MarkReadyCommandHandler{uowFactory: uowFactory}
}

// Handle processes the mark-ready command.
func (h *MarkReadyCommandHandler) Handle(ctx context.Context, cmd MarkReadyCommand) error {
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
	if err = aggregate.MarkReady(chefActor, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = enqueueOrderEvent(
		ctx, uow.OutboxRepository(), aggregate, "ready", "", now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
