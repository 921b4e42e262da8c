package commands

import (
	"context"
	"time"

	"mealmarket/internal/core/domain/model/order"
)

// StartPreparingCommandHandler moves ACCEPTED to PREPARING.
type StartPreparingCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewStartPreparingCommandHandler creates a handler for starting preparation.
func NewStartPreparingCommandHandler(uowFactory OrderUoWFactory) StartPreparingCommandHandler {
	return StartPreparingCommandHandler{uowFactory: uowFactory}
}

// Handle processes the start-preparation command.
func (h *StartPreparingCommandHandler) Handle(ctx context.Context, cmd StartPreparingCommand) error {
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
	if err = aggregate.StartPreparing(chefActor, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = enqueueOrderEvent(
		ctx, uow.OutboxRepository(), aggregate, "preparing", "", now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
