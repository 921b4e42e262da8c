package commands

import (
	"context"
	"time"
)

// AcceptAssignmentCommandHandler resolves a pending assignment in the
// driver's favor and moves the order to ASSIGNED_TO_DRIVER. The assignment is
// re-read after the order row lock is acquired, so of two concurrent accepts
// exactly one sees a pending assignment and wins.
type AcceptAssignmentCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewAcceptAssignmentCommandHandler creates a handler for assignment acceptance.
func NewAcceptAssignmentCommandHandler(uowFactory DispatchUoWFactory) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the assignment acceptance command.
func (h *AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) error {
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
	assignmentRepo := uow.AssignmentRepository()

	// First read only discovers the order to lock.
	assignment, err := assignmentRepo.Get(ctx, cmd.AssignmentID())
	if err != nil {
		return err
	}

	aggregate, err := orderRepo.GetForUpdate(ctx, assignment.OrderID())
	if err != nil {
		return err
	}

	// Re-read now that the lock serializes us against a concurrent resolver.
	assignment, err = assignmentRepo.Get(ctx, cmd.AssignmentID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = assignment.Accept(cmd.DriverID(), now); err != nil {
		return err
	}
	if err = aggregate.ConfirmDriver(cmd.DriverID(), now); err != nil {
		return err
	}

	if err = assignmentRepo.Update(ctx, assignment); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = enqueueOrderEvent(
		ctx, uow.OutboxRepository(), aggregate, "driver_assigned", "", now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
