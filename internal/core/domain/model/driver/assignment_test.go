package driver_test

import (
	"testing"
	"time"

	"mealmarket/internal/core/domain/model/driver"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingAssignment(t *testing.T) (*driver.Assignment, kernel.UUID) {
	t.Helper()
	driverID := kernel.NewUUID()
	a, err := driver.NewAssignment(
		kernel.NewUUID(), kernel.NewUUID(), driverID, 4.0, 12, time.Now())
	require.NoError(t, err)
	return a, driverID
}

func TestNewAssignment(t *testing.T) {
	t.Run("starts_pending", func(t *testing.T) {
		a, _ := newPendingAssignment(t)

		assert.Equal(t, driver.AssignmentPending, a.Status())
		assert.True(t, a.IsPending())
		assert.Nil(t, a.ResolvedAt())
		assert.InDelta(t, 4.0, a.DistanceKm(), 1e-9)
		assert.Equal(t, 12, a.EstimatedPickupMinutes())
	})

	t.Run("negative_distance_is_invalid", func(t *testing.T) {
		_, err := driver.NewAssignment(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), -1, 3, time.Now())
		require.Error(t, err)
	})
}

func TestAssignment_Accept(t *testing.T) {
	t.Run("owner_accepts_pending", func(t *testing.T) {
		a, driverID := newPendingAssignment(t)

		require.NoError(t, a.Accept(driverID, time.Now()))

		assert.Equal(t, driver.AssignmentAccepted, a.Status())
		assert.NotNil(t, a.ResolvedAt())
	})

	t.Run("foreign_driver_is_forbidden", func(t *testing.T) {
		a, _ := newPendingAssignment(t)

		err := a.Accept(kernel.NewUUID(), time.Now())
		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.True(t, a.IsPending())
	})

	t.Run("second_accept_conflicts", func(t *testing.T) {
		a, driverID := newPendingAssignment(t)
		require.NoError(t, a.Accept(driverID, time.Now()))

		err := a.Accept(driverID, time.Now())
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("accept_after_decline_conflicts", func(t *testing.T) {
		a, driverID := newPendingAssignment(t)
		require.NoError(t, a.Decline(driverID, "busy", time.Now()))

		err := a.Accept(driverID, time.Now())
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestAssignment_Decline(t *testing.T) {
	t.Run("owner_declines_with_reason", func(t *testing.T) {
		a, driverID := newPendingAssignment(t)

		require.NoError(t, a.Decline(driverID, "too far", time.Now()))

		assert.Equal(t, driver.AssignmentDeclined, a.Status())
		assert.Equal(t, "too far", a.DeclineReason())
		assert.NotNil(t, a.ResolvedAt())
	})

	t.Run("foreign_driver_is_forbidden", func(t *testing.T) {
		a, _ := newPendingAssignment(t)

		err := a.Decline(kernel.NewUUID(), "", time.Now())
		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestDriver(t *testing.T) {
	t.Run("new_driver_is_not_dispatchable", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Sam")
		require.NoError(t, err)

		assert.False(t, d.IsDispatchable())
		assert.Equal(t, driver.VerificationPending, d.VerificationStatus())
	})

	t.Run("dispatchable_requires_all_three_gates", func(t *testing.T) {
		loc, err := kernel.NewGeoPoint(40, -73)
		require.NoError(t, err)

		d, err := driver.RestoreDriver(
			kernel.NewUUID(), "Sam", true, driver.VerificationApproved, &loc, 4.8, 10, 5000)
		require.NoError(t, err)
		assert.True(t, d.IsDispatchable())

		d.SetAvailable(false)
		assert.False(t, d.IsDispatchable())

		d.SetAvailable(true)
		noLocation, err := driver.RestoreDriver(
			kernel.NewUUID(), "Kim", true, driver.VerificationApproved, nil, 4.8, 10, 5000)
		require.NoError(t, err)
		assert.False(t, noLocation.IsDispatchable())

		unapproved, err := driver.RestoreDriver(
			kernel.NewUUID(), "Lee", true, driver.VerificationPending, &loc, 4.8, 10, 5000)
		require.NoError(t, err)
		assert.False(t, unapproved.IsDispatchable())
	})

	t.Run("record_delivery_increments_counters", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Sam")
		require.NoError(t, err)

		require.NoError(t, d.RecordDelivery(500))
		require.NoError(t, d.RecordDelivery(700))

		assert.Equal(t, 2, d.TotalDeliveries())
		assert.Equal(t, int64(1200), d.DeliveryEarningsCents())
	})

	t.Run("invalid_verification_status_fails_restore", func(t *testing.T) {
		_, err := driver.RestoreDriver(
			kernel.NewUUID(), "Sam", true, driver.VerificationStatus("maybe"), nil, 0, 0, 0)
		require.Error(t, err)
	})
}
