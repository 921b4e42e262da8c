package commands

import (
	"context"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
)

const expireReason = "assignment timed out"

// ExpireAssignmentsCommandHandler declines pending assignments the driver
// never answered, so their orders become dispatchable again. Each stale
// assignment is resolved in its own transaction; one failure does not block
// the rest of the sweep.
type ExpireAssignmentsCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewExpireAssignmentsCommandHandler creates a handler for the stale
// assignment sweep.
func NewExpireAssignmentsCommandHandler(uowFactory DispatchUoWFactory) ExpireAssignmentsCommandHandler {
	return ExpireAssignmentsCommandHandler{uowFactory: uowFactory}
}

// Handle processes the sweep command. Returns the first per-assignment error
// after attempting every stale assignment.
func (h *ExpireAssignmentsCommandHandler) Handle(ctx context.Context, cmd ExpireAssignmentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cutoff := time.Now().Add(-cmd.OlderThan())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	stale, err := uow.AssignmentRepository().GetStalePending(ctx, cutoff)
	if commitErr := uow.Commit(ctx); commitErr != nil && err == nil {
		err = commitErr
	}
	if err != nil {
		return err
	}

	var firstErr error
	for _, assignment := range stale {
		if err := h.expire(ctx, assignment.ID()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *ExpireAssignmentsCommandHandler) expire(ctx context.Context, assignmentID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	assignmentRepo := uow.AssignmentRepository()

	assignment, err := assignmentRepo.Get(ctx, assignmentID)
	if err != nil {
		return err
	}

	aggregate, err := orderRepo.GetForUpdate(ctx, assignment.OrderID())
	if err != nil {
		return err
	}

	// Re-read under the order lock; the driver may have resolved it in the
	// meantime, in which case there is nothing to expire.
	assignment, err = assignmentRepo.Get(ctx, assignmentID)
	if err != nil {
		return err
	}
	if !assignment.IsPending() {
		return nil
	}

	now := time.Now()
	if err = assignment.Decline(assignment.DriverID(), expireReason, now); err != nil {
		return err
	}
	if err = assignmentRepo.Update(ctx, assignment); err != nil {
		return err
	}

	// The reservation is released only while the order still holds it. An
	// order cancelled with the assignment outstanding has nothing to clear;
	// the decline above is the whole resolution.
	if aggregate.Status() == order.ReadyForPickup && aggregate.DriverIs(assignment.DriverID()) {
		if err = aggregate.ClearReservation(expireReason, now); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
		if err = enqueueOrderEvent(
			ctx, uow.OutboxRepository(), aggregate, "assignment_expired", expireReason, now); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
