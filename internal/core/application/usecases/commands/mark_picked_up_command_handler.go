package commands

import (
	"context"
	"time"

	"mealmarket/internal/core/domain/model/order"
)

// MarkPickedUpCommandHandler moves ASSIGNED_TO_DRIVER to PICKED_UP for the
// assigned driver.
type MarkPickedUpCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkPickedUpCommandHandler creates a handler for pickup confirmation.
func NewMarkPickedUpCommandHandler(uowFactory OrderUoWFactory) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{uowFactory: uowFactory}
}

// Handle processes the pickup confirmation command.
func (h *MarkPickedUpCommandHandler) Handle(ctx context.Context, cmd MarkPickedUpCommand) error {
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
	driverActor := order.NewActor(cmd.DriverID(), order.RoleDriver)
	if err = aggregate.MarkPickedUp(driverActor, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = enqueueOrderEvent(
		ctx, uow.OutboxRepository(), aggregate, "picked_up", "", now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
