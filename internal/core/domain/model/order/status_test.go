package order_test

import (
	"errors"
	"testing"

	"mealmarket/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adjacency mirrors the documented transition table and is compared
// exhaustively against CanTransition over every status pair.
var adjacency = map[order.Status][]order.Status{
	order.Pending:          {order.PaymentConfirmed, order.Cancelled},
	order.PaymentConfirmed: {order.Accepted, order.Rejected, order.Cancelled},
	order.Accepted:         {order.Preparing, order.ReadyForPickup, order.Cancelled},
	order.Preparing:        {order.ReadyForPickup, order.Cancelled},
	order.ReadyForPickup:   {order.AssignedToDriver, order.Cancelled},
	order.AssignedToDriver: {order.PickedUp, order.ReadyForPickup, order.Cancelled},
	order.PickedUp:         {order.InTransit, order.Delivered},
	order.InTransit:        {order.Delivered},
	order.Delivered:        {},
	order.Cancelled:        {order.Refunded},
	order.Rejected:         {order.Refunded},
	order.Refunded:         {},
}

func contains(statuses []order.Status, s order.Status) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func TestStatus_CanTransition_MatchesAdjacencyTable(t *testing.T) {
	all := order.AllStatuses()
	require.Len(t, all, 12)

	for _, from := range all {
		for _, to := range all {
			expected := contains(adjacency[from], to)
			assert.Equal(t, expected, from.CanTransition(to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestStatus_NoSelfTransitions(t *testing.T) {
	for _, s := range order.AllStatuses() {
		assert.False(t, s.CanTransition(s), "self transition for %s", s)
	}
}

func TestStatus_TerminalStates(t *testing.T) {
	for _, s := range order.AllStatuses() {
		switch s {
		case order.Delivered, order.Refunded:
			assert.True(t, s.IsTerminal(), "%s should be terminal", s)
			assert.Empty(t, s.ValidNexts(), "%s should have no outgoing edges", s)
		default:
			assert.False(t, s.IsTerminal(), "%s should not be terminal", s)
		}
	}
}

func TestStatus_RequiresRefund_Exhaustive(t *testing.T) {
	refundable := []order.Status{
		order.PaymentConfirmed, order.Accepted, order.Preparing,
		order.ReadyForPickup, order.AssignedToDriver, order.PickedUp,
		order.Rejected,
	}

	for _, s := range order.AllStatuses() {
		assert.Equal(t, contains(refundable, s), s.RequiresRefund(),
			"RequiresRefund(%s)", s)
	}
}

func TestStatus_IsActive(t *testing.T) {
	inactive := []order.Status{order.Delivered, order.Refunded, order.Cancelled, order.Rejected}

	for _, s := range order.AllStatuses() {
		assert.Equal(t, !contains(inactive, s), s.IsActive(), "IsActive(%s)", s)
	}
}

func TestStatus_ValidateTransition(t *testing.T) {
	t.Run("legal_transition_passes", func(t *testing.T) {
		require.NoError(t, order.Pending.ValidateTransition(order.PaymentConfirmed))
	})

	t.Run("illegal_transition_cites_valid_next_states", func(t *testing.T) {
		err := order.Delivered.ValidateTransition(order.Pending)

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)

		var transitionErr *order.InvalidTransitionError
		require.True(t, errors.As(err, &transitionErr))
		assert.Equal(t, order.Delivered, transitionErr.From)
		assert.Equal(t, order.Pending, transitionErr.To)
		assert.Empty(t, transitionErr.ValidNexts)
	})

	t.Run("error_message_lists_alternatives", func(t *testing.T) {
		err := order.PaymentConfirmed.ValidateTransition(order.Delivered)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ACCEPTED")
		assert.Contains(t, err.Error(), "REJECTED")
		assert.Contains(t, err.Error(), "CANCELLED")
	})

	t.Run("unknown_status_fails_validation", func(t *testing.T) {
		err := order.Status("TELEPORTED").ValidateTransition(order.Pending)
		require.Error(t, err)
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range order.AllStatuses() {
		require.NoError(t, s.Validate())
	}
	require.Error(t, order.Status("").Validate())
	require.Error(t, order.Status("bogus").Validate())
}

func TestStatus_CanHaveDriver(t *testing.T) {
	withDriver := []order.Status{
		order.ReadyForPickup, order.AssignedToDriver, order.PickedUp,
		order.InTransit, order.Delivered,
	}

	for _, s := range order.AllStatuses() {
		assert.Equal(t, contains(withDriver, s), s.CanHaveDriver(), "CanHaveDriver(%s)", s)
	}
}
