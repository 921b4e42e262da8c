package commands

import (
	"context"
	"time"

	"mealmarket/internal/core/domain/model/order"
)

// AcceptOrderCommandHandler moves PAYMENT_CONFIRMED to ACCEPTED on behalf of
// the owning chef.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAcceptOrderCommandHandler creates a handler for chef order acceptance.
func NewAcceptOrderCommandHandler(uowFactory OrderUoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the acceptance command.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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
	if err = aggregate.Accept(chefActor, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = enqueueOrderEvent(
		ctx, uow.OutboxRepository(), aggregate, "accepted", "", now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
