package commands

import (
	"context"
	"time"
)

// ConfirmPaymentCommandHandler moves a PENDING order to PAYMENT_CONFIRMED
// under the order row lock.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmation.
func NewConfirmPaymentCommandHandler(uowFactory OrderUoWFactory) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the payment confirmation command.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
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
	if err = aggregate.ConfirmPayment(cmd.Actor(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = enqueueOrderEvent(
		ctx, uow.OutboxRepository(), aggregate, "payment_confirmed", "", now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
