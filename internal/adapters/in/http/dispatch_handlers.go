package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"mealmarket/internal/core/application/usecases/commands"
	"mealmarket/internal/core/application/usecases/queries"
	"mealmarket/internal/core/domain/model/kernel"
)

// AssignDriver handles POST /orders/:id/assign-driver. Without an explicit
// driver the nearest dispatchable candidate is reserved. The server
// generates the assignment identifier and returns it.
func (s *Server) AssignDriver(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req assignDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var driverID *kernel.UUID
	if req.DriverID != "" {
		id, err := kernel.UUIDFromString(req.DriverID)
		if err != nil {
			return badRequest(ctx, "Invalid driverId")
		}
		driverID = &id
	}

	radius := s.dispatchRadiusKm
	if req.RadiusKm != nil {
		radius = *req.RadiusKm
	}

	assignmentID := kernel.NewUUID()
	cmd, err := commands.NewAssignDriverCommand(assignmentID, orderID, driverID, radius)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.handlers.AssignDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, assignDriverResponse{
		AssignmentID: assignmentID.String(),
	})
}

// AcceptAssignment handles POST /assignments/:id/accept. The acting driver
// comes from the identity headers.
func (s *Server) AcceptAssignment(ctx echo.Context) error {
	assignmentID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid assignment id")
	}
	driverID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor headers")
	}

	cmd, err := commands.NewAcceptAssignmentCommand(assignmentID, driverID)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.handlers.AcceptAssignment.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeclineAssignment handles POST /assignments/:id/decline.
func (s *Server) DeclineAssignment(ctx echo.Context) error {
	assignmentID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid assignment id")
	}
	driverID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor headers")
	}

	var req reasonRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewDeclineAssignmentCommand(assignmentID, driverID, req.Reason)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.handlers.DeclineAssignment.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DriversNear handles GET /drivers/near?lat=&lng=&radius=&limit= and returns
// dispatchable drivers within the radius, nearest first.
func (s *Server) DriversNear(ctx echo.Context) error {
	lat, err := strconv.ParseFloat(ctx.QueryParam("lat"), 64)
	if err != nil {
		return badRequest(ctx, "Invalid lat")
	}
	lng, err := strconv.ParseFloat(ctx.QueryParam("lng"), 64)
	if err != nil {
		return badRequest(ctx, "Invalid lng")
	}

	radius := 0.0
	if raw := ctx.QueryParam("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(ctx, "Invalid radius")
		}
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid limit")
		}
	}

	point, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return badRequest(ctx, "Invalid coordinates")
	}

	query, err := queries.NewDriversNearQuery(point, radius, limit)
	if err != nil {
		return fail(ctx, err)
	}

	rows, err := s.handlers.DriversNear.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]nearbyDriver, 0, len(rows))
	for _, row := range rows {
		response = append(response, toNearbyDriver(row))
	}
	return ctx.JSON(http.StatusOK, response)
}
