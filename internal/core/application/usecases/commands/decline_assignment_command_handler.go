package commands

import (
	"context"
	"time"
)

// DeclineAssignmentCommandHandler resolves a pending assignment against the
// driver and returns the order to the dispatchable pool.
type DeclineAssignmentCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewDeclineAssignmentCommandHandler creates a handler for assignment decline.
func NewDeclineAssignmentCommandHandler(uowFactory DispatchUoWFactory) DeclineAssignmentCommandHandler {
	return DeclineAssignmentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the assignment decline command.
func (h *DeclineAssignmentCommandHandler) Handle(ctx context.Context, cmd DeclineAssignmentCommand) error {
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

	assignment, err := assignmentRepo.Get(ctx, cmd.AssignmentID())
	if err != nil {
		return err
	}

	aggregate, err := orderRepo.GetForUpdate(ctx, assignment.OrderID())
	if err != nil {
		return err
	}

	// Re-read under the order lock; see AcceptAssignmentCommandHandler.
	assignment, err = assignmentRepo.Get(ctx, cmd.AssignmentID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = assignment.Decline(cmd.DriverID(), cmd.Reason(), now); err != nil {
		return err
	}
	if err = aggregate.ClearReservation(cmd.Reason(), now); err != nil {
		return err
	}

	if err = assignmentRepo.Update(ctx, assignment); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = enqueueOrderEvent(
		ctx, uow.OutboxRepository(), aggregate, "assignment_declined", cmd.Reason(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
