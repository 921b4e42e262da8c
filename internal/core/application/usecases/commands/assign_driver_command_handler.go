package commands

import (
	"context"
	"fmt"
	"time"

	"mealmarket/internal/core/domain/model/driver"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/core/domain/services"
	"mealmarket/internal/core/ports"
	"mealmarket/internal/pkg/errs"
)

// DefaultSearchRadiusKm bounds the candidate search when the caller does not
// specify a radius.
const DefaultSearchRadiusKm = 10.0

// AssignDriverCommandHandler reserves a driver for a ready order: it creates
// a pending assignment and stamps the driver reference onto the order, all
// under the order row lock so two concurrent calls cannot both succeed. The
// store's partial unique index on pending assignments backs up the in-domain
// check.
type AssignDriverCommandHandler struct {
	uowFactory DispatchUoWFactory
	matcher    services.DispatchMatcher
	planner    ports.RoutePlanner
}

// NewAssignDriverCommandHandler creates a handler for driver assignment. The
// planner supplies the distance and pickup ETA recorded on the assignment;
// candidate ranking stays on the matcher's great-circle math.
func NewAssignDriverCommandHandler(
	uowFactory DispatchUoWFactory, matcher services.DispatchMatcher, planner ports.RoutePlanner,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{uowFactory: uowFactory, matcher: matcher, planner: planner}
}

// Handle processes the driver assignment command.
func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
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

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if pending, err := assignmentRepo.GetPendingByOrder(ctx, cmd.OrderID()); err != nil {
		return err
	} else if pending != nil {
		return errs.NewConflictError("order",
			fmt.Sprintf("assignment %s is already pending", pending.ID()))
	}

	candidate, err := h.pickCandidate(ctx, uow, cmd, aggregate)
	if err != nil {
		return err
	}

	route, err := h.planner.DistanceAndETA(ctx, *candidate.Driver.Location(), aggregate.Pickup())
	if err != nil {
		return err
	}

	now := time.Now()
	assignment, err := driver.NewAssignment(
		cmd.AssignmentID(),
		aggregate.ID(),
		candidate.Driver.ID(),
		route.DistanceKm,
		route.Minutes,
		now,
	)
	if err != nil {
		return err
	}

	if err = aggregate.ReserveDriver(candidate.Driver.ID(), now); err != nil {
		return err
	}

	if err = assignmentRepo.Add(ctx, assignment); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = enqueueOrderEvent(
		ctx, uow.OutboxRepository(), aggregate, "assignment_offered", "", now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// pickCandidate resolves the driver to reserve: the explicitly requested one
// if given, otherwise the nearest dispatchable driver within the radius.
func (h *AssignDriverCommandHandler) pickCandidate(
	ctx context.Context, uow DispatchUoW, cmd AssignDriverCommand, aggregate *order.Order,
) (services.Candidate, error) {
	radius := cmd.SearchRadiusKm()
	if radius <= 0 {
		radius = DefaultSearchRadiusKm
	}

	if cmd.DriverID() != nil {
		requested, err := uow.DriverRepository().Get(ctx, *cmd.DriverID())
		if err != nil {
			return services.Candidate{}, err
		}
		if !requested.IsDispatchable() {
			return services.Candidate{}, errs.NewBusinessRuleError(fmt.Sprintf(
				"driver %s is not dispatchable", requested.ID()))
		}
		return services.Candidate{Driver: requested}, nil
	}

	fleet, err := uow.DriverRepository().GetAllDispatchable(ctx)
	if err != nil {
		return services.Candidate{}, err
	}

	candidate, err := h.matcher.BestCandidate(aggregate.Pickup(), fleet, radius)
	if err != nil {
		return services.Candidate{}, errs.NewObjectNotFoundErrorWithCause(
			"driver", "near pickup", err)
	}
	return candidate, nil
}
