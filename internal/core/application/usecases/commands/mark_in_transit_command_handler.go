package commands

import (
	"context"
	"time"

	"mealmarket/internal/core/domain/model/order"
)

// MarkInTransitCommandHandler moves PICKED_UP to IN_TRANSIT for the assigned
// driver.
type MarkInTransitCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkInTransitCommandHandler creates a handler for transit start.
func NewMarkInTransitCommandHandler(uowFactory OrderUoWFactory) MarkInTransitCommandHandler {
	return MarkInTransitCommandHandler{uowFactory: uowFactory}
}

// Handle processes the transit start command.
func (h *MarkInTransitCommandHandler) Handle(ctx context.Context, cmd MarkInTransitCommand) error {
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
	if err = aggregate.MarkInTransit(driverActor, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = enqueueOrderEvent(
		ctx, uow.OutboxRepository(), aggregate, "in_transit", "", now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
