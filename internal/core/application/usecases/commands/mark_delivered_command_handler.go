package commands

import (
	"context"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/ledger"
	"mealmarket/internal/core/domain/model/order"
)

// MarkDeliveredCommandHandler completes a delivery: the order reaches its
// terminal DELIVERED state and the money becomes owed. One transaction
// carries the status write, three ledger credits (chef earning, driver
// earning, platform fee), and the driver's counter update; a failure
// anywhere discards all of it.
type MarkDeliveredCommandHandler struct {
	uowFactory SettlementUoWFactory
}

// NewMarkDeliveredCommandHandler creates a handler for delivery completion.
func NewMarkDeliveredCommandHandler(uowFactory SettlementUoWFactory) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{uowFactory: uowFactory}
}

// Handle processes the delivery completion command.
func (h *MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
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
	driverRepo := uow.DriverRepository()

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now()
	driverActor := order.NewActor(cmd.DriverID(), order.RoleDriver)
	if err = aggregate.MarkDelivered(driverActor, now); err != nil {
		return err
	}

	entries, err := settlementEntries(aggregate, cmd.DriverID(), now)
	if err != nil {
		return err
	}
	if err = uow.LedgerRepository().Add(ctx, entries...); err != nil {
		return err
	}

	theDriver, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}
	if err = theDriver.RecordDelivery(aggregate.Breakdown().DeliveryFeeCents()); err != nil {
		return err
	}
	if err = driverRepo.Update(ctx, theDriver); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = enqueueOrderEvent(
		ctx, uow.OutboxRepository(), aggregate, "delivered", "", now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// settlementEntries builds the three credits owed on successful completion,
// from the order's persisted breakdown.
func settlementEntries(
	aggregate *order.Order, driverID kernel.UUID, now time.Time,
) ([]*ledger.Entry, error) {
	chefID := aggregate.ChefID()
	breakdown := aggregate.Breakdown()

	chefEarning, err := ledger.NewEntry(
		kernel.NewUUID(), aggregate.ID(), ledger.ActorChef, &chefID,
		ledger.KindOrderEarning, breakdown.ChefEarningsCents(), now)
	if err != nil {
		return nil, err
	}

	driverEarning, err := ledger.NewEntry(
		kernel.NewUUID(), aggregate.ID(), ledger.ActorDriver, &driverID,
		ledger.KindDeliveryEarning, breakdown.DeliveryFeeCents(), now)
	if err != nil {
		return nil, err
	}

	platformFee, err := ledger.NewEntry(
		kernel.NewUUID(), aggregate.ID(), ledger.ActorPlatform, nil,
		ledger.KindPlatformFee, breakdown.PlatformFeeCents(), now)
	if err != nil {
		return nil, err
	}

	return []*ledger.Entry{chefEarning, driverEarning, platformFee}, nil
}
