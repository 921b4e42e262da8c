package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mealmarket/internal/core/domain/model/chef"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/core/domain/services"
	"mealmarket/internal/core/ports"
	"mealmarket/internal/pkg/errs"
)

// CreateOrderCommandHandler handles order placement. Menu prices are
// snapshotted onto the order lines and the commission breakdown onto the
// order row, so later menu or rate changes never alter an existing order.
//
// The payment intent is created between two transactions: a read-only one
// that validates the chef and prices the items, and a write one that
// persists the order. No row lock is ever held across the payment call.
type CreateOrderCommandHandler struct {
	uowFactory     CreateOrderUoWFactory
	policy         services.CommissionPolicy
	payments       ports.PaymentGateway
	paymentTimeout time.Duration
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory CreateOrderUoWFactory,
	policy services.CommissionPolicy,
	payments ports.PaymentGateway,
	paymentTimeout time.Duration,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:     uowFactory,
		policy:         policy,
		payments:       payments,
		paymentTimeout: paymentTimeout,
	}
}

// Handle processes the order placement command.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	theChef, items, err := h.priceOrder(ctx, cmd)
	if err != nil {
		return err
	}

	breakdown, err := h.breakdownFor(cmd, theChef, items)
	if err != nil {
		return err
	}

	paymentCtx, cancel := context.WithTimeout(ctx, h.paymentTimeout)
	defer cancel()
	paymentRef, err := h.payments.CreatePaymentIntent(
		paymentCtx, cmd.OrderID(), breakdown.TotalCents())
	if err != nil {
		return err
	}

	now := time.Now()
	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		newOrderNumber(cmd.OrderID(), now),
		cmd.CustomerID(),
		cmd.ChefID(),
		items,
		theChef.Pickup(),
		cmd.DeliveryPoint(),
		cmd.DeliveryAddress(),
		breakdown,
		paymentRef,
		now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}
	if err = enqueueOrderEvent(
		ctx, uow.OutboxRepository(), aggregate, "created", "", now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// priceOrder loads the chef and menu items in a short read transaction and
// turns the requested lines into priced order items.
func (h *CreateOrderCommandHandler) priceOrder(
	ctx context.Context, cmd CreateOrderCommand,
) (*chef.Chef, []order.Item, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	chefRepo := uow.ChefRepository()
	theChef, err := chefRepo.Get(ctx, cmd.ChefID())
	if err != nil {
		return nil, nil, err
	}
	if err = theChef.CanReceiveOrders(); err != nil {
		return nil, nil, err
	}

	ids := make([]kernel.UUID, 0, len(cmd.Items()))
	for _, line := range cmd.Items() {
		ids = append(ids, line.MenuItemID)
	}
	menuItems, err := chefRepo.GetMenuItems(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	items, err := buildItems(cmd, theChef, menuItems)
	if err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return theChef, items, nil
}

func (h *CreateOrderCommandHandler) breakdownFor(
	cmd CreateOrderCommand, theChef *chef.Chef, items []order.Item,
) (order.Breakdown, error) {
	subtotal := order.SubtotalCents(items)
	if err := theChef.MeetsMinimumOrder(subtotal); err != nil {
		return order.Breakdown{}, err
	}

	if fee := cmd.DeliveryFeeCents(); fee >= 0 {
		return h.policy.CalculateWithDeliveryFee(subtotal, fee)
	}
	return h.policy.Calculate(subtotal)
}

func buildItems(
	cmd CreateOrderCommand, theChef *chef.Chef, menuItems []*chef.MenuItem,
) ([]order.Item, error) {
	byID := make(map[kernel.UUID]*chef.MenuItem, len(menuItems))
	for _, m := range menuItems {
		byID[m.ID()] = m
	}

	items := make([]order.Item, 0, len(cmd.Items()))
	for _, line := range cmd.Items() {
		menuItem, ok := byID[line.MenuItemID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("menuItem", line.MenuItemID)
		}
		if !menuItem.BelongsTo(theChef.ID()) {
			return nil, errs.NewBusinessRuleError(fmt.Sprintf(
				"menu item %s does not belong to chef %s", menuItem.ID(), theChef.ID()))
		}
		if !menuItem.IsAvailable() {
			return nil, errs.NewBusinessRuleError(fmt.Sprintf(
				"menu item %s is not available", menuItem.Name()))
		}

		item, err := order.NewItem(
			kernel.NewUUID(), menuItem.ID(), menuItem.Name(),
			menuItem.PriceCents(), line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// newOrderNumber derives a human-readable unique order number from the
// creation date and the order's identifier.
func newOrderNumber(id kernel.UUID, now time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), short)
}
