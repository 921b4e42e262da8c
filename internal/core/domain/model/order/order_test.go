package order_test

import (
	"testing"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBreakdown(t *testing.T, subtotal int64) order.Breakdown {
	t.Helper()
	platformFee := subtotal * 15 / 100
	tax := subtotal * 8 / 100
	b, err := order.NewBreakdown(subtotal, platformFee, subtotal-platformFee, tax, 500, subtotal+tax+500)
	require.NoError(t, err)
	return b
}

func testItems(t *testing.T, unitPriceCents int64, quantity int) []order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Pad Thai", unitPriceCents, quantity)
	require.NoError(t, err)
	return []order.Item{item}
}

func testPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

type orderFixture struct {
	order    *order.Order
	customer order.Actor
	chef     order.Actor
	admin    order.Actor
	now      time.Time
}

func newOrderFixture(t *testing.T) orderFixture {
	t.Helper()
	customerID := kernel.NewUUID()
	chefID := kernel.NewUUID()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	o, err := order.NewOrder(
		kernel.NewUUID(), "MM-20250601-0001", customerID, chefID,
		testItems(t, 5000, 2),
		testPoint(t, 40.73, -73.99), testPoint(t, 40.75, -73.98), "1 Main St",
		testBreakdown(t, 10000), "pi_test_123", now,
	)
	require.NoError(t, err)

	return orderFixture{
		order:    o,
		customer: order.NewActor(customerID, order.RoleCustomer),
		chef:     order.NewActor(chefID, order.RoleChef),
		admin:    order.NewActor(kernel.NewUUID(), order.RoleAdmin),
		now:      now,
	}
}

// advanceToReady walks the fixture order to READY_FOR_PICKUP.
func (f orderFixture) advanceToReady(t *testing.T) {
	t.Helper()
	require.NoError(t, f.order.ConfirmPayment(f.admin, f.now))
	require.NoError(t, f.order.Accept(f.chef, f.now))
	require.NoError(t, f.order.StartPreparing(f.chef, f.now))
	require.NoError(t, f.order.MarkReady(f.chef, f.now))
}

func TestNewOrder(t *testing.T) {
	t.Run("starts_pending_with_initial_history_row", func(t *testing.T) {
		f := newOrderFixture(t)

		assert.Equal(t, order.Pending, f.order.Status())
		assert.Nil(t, f.order.DriverID())

		history := f.order.PendingHistory()
		require.Len(t, history, 1)
		assert.Equal(t, 1, history[0].Seq)
		assert.Equal(t, order.Status(""), history[0].From)
		assert.Equal(t, order.Pending, history[0].To)
		assert.Equal(t, string(order.RoleCustomer), history[0].ActorRole)
	})

	t.Run("breakdown_must_match_items_subtotal", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "MM-1", kernel.NewUUID(), kernel.NewUUID(),
			testItems(t, 100, 1),
			testPoint(t, 1, 1), testPoint(t, 2, 2), "addr",
			testBreakdown(t, 10000), "", time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("requires_items_number_and_address", func(t *testing.T) {
		b := testBreakdown(t, 10000)

		_, err := order.NewOrder(kernel.NewUUID(), "", kernel.NewUUID(), kernel.NewUUID(),
			testItems(t, 5000, 2), testPoint(t, 1, 1), testPoint(t, 2, 2), "addr", b, "", time.Now())
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), "MM-1", kernel.NewUUID(), kernel.NewUUID(),
			nil, testPoint(t, 1, 1), testPoint(t, 2, 2), "addr", b, "", time.Now())
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), "MM-1", kernel.NewUUID(), kernel.NewUUID(),
			testItems(t, 5000, 2), testPoint(t, 1, 1), testPoint(t, 2, 2), "", b, "", time.Now())
		require.Error(t, err)
	})
}

func TestOrder_ChefTransitions(t *testing.T) {
	t.Run("accept_requires_owning_chef", func(t *testing.T) {
		f := newOrderFixture(t)
		require.NoError(t, f.order.ConfirmPayment(f.admin, f.now))

		stranger := order.NewActor(kernel.NewUUID(), order.RoleChef)
		err := f.order.Accept(stranger, f.now)
		require.ErrorIs(t, err, errs.ErrForbidden)

		require.NoError(t, f.order.Accept(f.chef, f.now))
		assert.Equal(t, order.Accepted, f.order.Status())
	})

	t.Run("reject_requires_reason", func(t *testing.T) {
		f := newOrderFixture(t)
		require.NoError(t, f.order.ConfirmPayment(f.admin, f.now))

		err := f.order.Reject(f.chef, "", f.now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		require.NoError(t, f.order.Reject(f.chef, "out of ingredients", f.now))
		assert.Equal(t, order.Rejected, f.order.Status())
	})

	t.Run("accept_before_payment_fails_invalid_transition", func(t *testing.T) {
		f := newOrderFixture(t)

		err := f.order.Accept(f.chef, f.now)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("ready_directly_from_accepted", func(t *testing.T) {
		f := newOrderFixture(t)
		require.NoError(t, f.order.ConfirmPayment(f.admin, f.now))
		require.NoError(t, f.order.Accept(f.chef, f.now))

		require.NoError(t, f.order.MarkReady(f.chef, f.now))
		assert.Equal(t, order.ReadyForPickup, f.order.Status())
	})
}

func TestOrder_DriverReservation(t *testing.T) {
	t.Run("reserve_sets_driver_without_status_change", func(t *testing.T) {
		f := newOrderFixture(t)
		f.advanceToReady(t)
		driverID := kernel.NewUUID()

		require.NoError(t, f.order.ReserveDriver(driverID, f.now))

		assert.Equal(t, order.ReadyForPickup, f.order.Status())
		require.NotNil(t, f.order.DriverID())
		assert.True(t, f.order.DriverIs(driverID))
		assert.NotNil(t, f.order.AssignedAt())
	})

	t.Run("second_reservation_conflicts", func(t *testing.T) {
		f := newOrderFixture(t)
		f.advanceToReady(t)
		require.NoError(t, f.order.ReserveDriver(kernel.NewUUID(), f.now))

		err := f.order.ReserveDriver(kernel.NewUUID(), f.now)
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("reserve_outside_ready_fails_business_rule", func(t *testing.T) {
		f := newOrderFixture(t)

		err := f.order.ReserveDriver(kernel.NewUUID(), f.now)
		require.ErrorIs(t, err, errs.ErrBusinessRule)
	})

	t.Run("confirm_driver_advances_to_assigned", func(t *testing.T) {
		f := newOrderFixture(t)
		f.advanceToReady(t)
		driverID := kernel.NewUUID()
		require.NoError(t, f.order.ReserveDriver(driverID, f.now))

		require.NoError(t, f.order.ConfirmDriver(driverID, f.now))
		assert.Equal(t, order.AssignedToDriver, f.order.Status())
	})

	t.Run("confirm_by_other_driver_forbidden", func(t *testing.T) {
		f := newOrderFixture(t)
		f.advanceToReady(t)
		require.NoError(t, f.order.ReserveDriver(kernel.NewUUID(), f.now))

		err := f.order.ConfirmDriver(kernel.NewUUID(), f.now)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("clear_reservation_returns_to_pool", func(t *testing.T) {
		f := newOrderFixture(t)
		f.advanceToReady(t)
		require.NoError(t, f.order.ReserveDriver(kernel.NewUUID(), f.now))

		require.NoError(t, f.order.ClearReservation("driver declined", f.now))

		assert.Equal(t, order.ReadyForPickup, f.order.Status())
		assert.Nil(t, f.order.DriverID())
		assert.Nil(t, f.order.AssignedAt())
	})
}

func TestOrder_DeliveryProgress(t *testing.T) {
	setupAssigned := func(t *testing.T) (orderFixture, order.Actor) {
		f := newOrderFixture(t)
		f.advanceToReady(t)
		driverID := kernel.NewUUID()
		require.NoError(t, f.order.ReserveDriver(driverID, f.now))
		require.NoError(t, f.order.ConfirmDriver(driverID, f.now))
		return f, order.NewActor(driverID, order.RoleDriver)
	}

	t.Run("pickup_transit_delivered", func(t *testing.T) {
		f, driver := setupAssigned(t)

		require.NoError(t, f.order.MarkPickedUp(driver, f.now))
		assert.NotNil(t, f.order.PickedUpAt())

		require.NoError(t, f.order.MarkInTransit(driver, f.now))
		require.NoError(t, f.order.MarkDelivered(driver, f.now))

		assert.Equal(t, order.Delivered, f.order.Status())
		assert.NotNil(t, f.order.DeliveredAt())
	})

	t.Run("delivered_directly_from_picked_up", func(t *testing.T) {
		f, driver := setupAssigned(t)

		require.NoError(t, f.order.MarkPickedUp(driver, f.now))
		require.NoError(t, f.order.MarkDelivered(driver, f.now))
		assert.Equal(t, order.Delivered, f.order.Status())
	})

	t.Run("only_assigned_driver_may_progress", func(t *testing.T) {
		f, _ := setupAssigned(t)

		err := f.order.MarkPickedUp(order.NewActor(kernel.NewUUID(), order.RoleDriver), f.now)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("delivered_is_terminal", func(t *testing.T) {
		f, driver := setupAssigned(t)
		require.NoError(t, f.order.MarkPickedUp(driver, f.now))
		require.NoError(t, f.order.MarkDelivered(driver, f.now))

		err := f.order.Cancel(f.admin, "too late", f.now)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("customer_may_cancel_pre_acceptance", func(t *testing.T) {
		f := newOrderFixture(t)

		require.NoError(t, f.order.Cancel(f.customer, "changed my mind", f.now))
		assert.Equal(t, order.Cancelled, f.order.Status())
		assert.NotNil(t, f.order.CancelledAt())
	})

	t.Run("customer_may_cancel_accepted_order", func(t *testing.T) {
		f := newOrderFixture(t)
		require.NoError(t, f.order.ConfirmPayment(f.admin, f.now))
		require.NoError(t, f.order.Accept(f.chef, f.now))

		require.NoError(t, f.order.Cancel(f.customer, "changed my mind", f.now))
		assert.Equal(t, order.Cancelled, f.order.Status())
	})

	t.Run("customer_cannot_cancel_once_preparing", func(t *testing.T) {
		f := newOrderFixture(t)
		require.NoError(t, f.order.ConfirmPayment(f.admin, f.now))
		require.NoError(t, f.order.Accept(f.chef, f.now))
		require.NoError(t, f.order.StartPreparing(f.chef, f.now))

		err := f.order.Cancel(f.customer, "changed my mind", f.now)
		require.ErrorIs(t, err, errs.ErrBusinessRule)
	})

	t.Run("admin_may_cancel_any_non_terminal", func(t *testing.T) {
		f := newOrderFixture(t)
		f.advanceToReady(t)

		require.NoError(t, f.order.Cancel(f.admin, "chef unreachable", f.now))
		assert.Equal(t, order.Cancelled, f.order.Status())
	})

	t.Run("cancel_releases_driver", func(t *testing.T) {
		f := newOrderFixture(t)
		f.advanceToReady(t)
		driverID := kernel.NewUUID()
		require.NoError(t, f.order.ReserveDriver(driverID, f.now))
		require.NoError(t, f.order.ConfirmDriver(driverID, f.now))

		require.NoError(t, f.order.Cancel(f.admin, "customer request", f.now))
		assert.Nil(t, f.order.DriverID())
	})

	t.Run("reason_is_required", func(t *testing.T) {
		f := newOrderFixture(t)
		err := f.order.Cancel(f.customer, "", f.now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Refund(t *testing.T) {
	t.Run("register_refund_accumulates", func(t *testing.T) {
		f := newOrderFixture(t)
		total := f.order.Breakdown().TotalCents()

		require.NoError(t, f.order.RegisterRefund(total/2))
		assert.False(t, f.order.IsFullyRefunded())

		require.NoError(t, f.order.RegisterRefund(total-total/2))
		assert.True(t, f.order.IsFullyRefunded())
	})

	t.Run("refund_beyond_balance_fails", func(t *testing.T) {
		f := newOrderFixture(t)
		total := f.order.Breakdown().TotalCents()

		err := f.order.RegisterRefund(total + 1)
		require.ErrorIs(t, err, errs.ErrBusinessRule)
	})

	t.Run("duplicate_full_refund_conflicts", func(t *testing.T) {
		f := newOrderFixture(t)
		require.NoError(t, f.order.RegisterRefund(f.order.Breakdown().TotalCents()))

		err := f.order.RegisterRefund(100)
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("mark_refunded_requires_full_refund", func(t *testing.T) {
		f := newOrderFixture(t)
		require.NoError(t, f.order.Cancel(f.customer, "changed my mind", f.now))

		err := f.order.MarkRefunded(f.admin, f.now)
		require.ErrorIs(t, err, errs.ErrBusinessRule)

		require.NoError(t, f.order.RegisterRefund(f.order.Breakdown().TotalCents()))
		require.NoError(t, f.order.MarkRefunded(f.admin, f.now))
		assert.Equal(t, order.Refunded, f.order.Status())
		assert.True(t, f.order.Status().IsTerminal())
	})
}

func TestOrder_HistoryOrdering(t *testing.T) {
	f := newOrderFixture(t)
	f.advanceToReady(t)
	driverID := kernel.NewUUID()
	require.NoError(t, f.order.ReserveDriver(driverID, f.now))
	require.NoError(t, f.order.ConfirmDriver(driverID, f.now))

	history := f.order.PendingHistory()
	require.NotEmpty(t, history)
	for i := 1; i < len(history); i++ {
		assert.Greater(t, history[i].Seq, history[i-1].Seq)
	}
	assert.Equal(t, order.AssignedToDriver, history[len(history)-1].To)
}

func TestRestoreOrder(t *testing.T) {
	t.Run("driver_in_pending_status_is_invalid", func(t *testing.T) {
		driverID := kernel.NewUUID()
		_, err := order.RestoreOrder(
			kernel.NewUUID(), "MM-1", kernel.NewUUID(), kernel.NewUUID(), &driverID,
			nil, order.Breakdown{}, "", kernel.GeoPoint{}, kernel.GeoPoint{}, "addr",
			order.Pending, 0, time.Now(), nil, nil, nil, nil, 1,
		)
		require.Error(t, err)
	})

	t.Run("restored_order_continues_history_sequence", func(t *testing.T) {
		f := newOrderFixture(t)
		restored, err := order.RestoreOrder(
			f.order.ID(), f.order.OrderNumber(), f.order.CustomerID(), f.order.ChefID(), nil,
			f.order.Items(), f.order.Breakdown(), f.order.PaymentRef(),
			f.order.Pickup(), f.order.Delivery(), f.order.DeliveryAddress(),
			order.Pending, 0, f.order.CreatedAt(), nil, nil, nil, nil, 5,
		)
		require.NoError(t, err)

		require.NoError(t, restored.ConfirmPayment(f.admin, f.now))
		history := restored.PendingHistory()
		require.Len(t, history, 1)
		assert.Equal(t, 6, history[0].Seq)
	})
}
