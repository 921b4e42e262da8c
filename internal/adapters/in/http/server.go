// Package http exposes the order lifecycle over an echo server. Actor
// identity arrives in X-Actor-Id / X-Actor-Role headers; authentication is
// handled upstream.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"mealmarket/internal/core/application/usecases/commands"
	"mealmarket/internal/core/application/usecases/queries"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/pkg/errs"
)

const (
	headerActorID   = "X-Actor-Id"
	headerActorRole = "X-Actor-Role"
)

// Handlers bundles the command and query handlers the server dispatches to.
type Handlers struct {
	CreateOrder       commands.CreateOrderCommandHandler
	ConfirmPayment    commands.ConfirmPaymentCommandHandler
	AcceptOrder       commands.AcceptOrderCommandHandler
	RejectOrder       commands.RejectOrderCommandHandler
	StartPreparing    commands.StartPreparingCommandHandler
	MarkReady         commands.MarkReadyCommandHandler
	AssignDriver      commands.AssignDriverCommandHandler
	MarkPickedUp      commands.MarkPickedUpCommandHandler
	MarkInTransit     commands.MarkInTransitCommandHandler
	MarkDelivered     commands.MarkDeliveredCommandHandler
	CancelOrder       commands.CancelOrderCommandHandler
	RefundOrder       commands.RefundOrderCommandHandler
	AcceptAssignment  commands.AcceptAssignmentCommandHandler
	DeclineAssignment commands.DeclineAssignmentCommandHandler

	GetOrder    queries.GetOrderQueryHandler
	ListOrders  queries.ListOrdersQueryHandler
	DriversNear queries.DriversNearQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers         Handlers
	dispatchRadiusKm float64
}

// NewServer creates a new HTTP server with the required command and query
// handlers. dispatchRadiusKm bounds the driver search when an assign-driver
// request does not name a radius.
func NewServer(handlers Handlers, dispatchRadiusKm float64) *Server {
	return &Server{handlers: handlers, dispatchRadiusKm: dispatchRadiusKm}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", s.CreateOrder)
	e.GET("/orders", s.ListOrders)
	e.GET("/orders/:id", s.GetOrder)
	e.POST("/orders/:id/confirm-payment", s.ConfirmPayment)
	e.POST("/orders/:id/accept", s.AcceptOrder)
	e.POST("/orders/:id/reject", s.RejectOrder)
	e.POST("/orders/:id/start-preparing", s.StartPreparing)
	e.POST("/orders/:id/ready", s.MarkReady)
	e.POST("/orders/:id/assign-driver", s.AssignDriver)
	e.POST("/orders/:id/pickup", s.MarkPickedUp)
	e.POST("/orders/:id/in-transit", s.MarkInTransit)
	e.POST("/orders/:id/delivered", s.MarkDelivered)
	e.POST("/orders/:id/cancel", s.CancelOrder)
	e.POST("/orders/:id/refund", s.RefundOrder)
	e.POST("/assignments/:id/accept", s.AcceptAssignment)
	e.POST("/assignments/:id/decline", s.DeclineAssignment)
	e.GET("/drivers/near", s.DriversNear)
}

// fail maps a use case error onto the HTTP status taxonomy. Transition
// rejections and store conflicts are both 409: the request was well formed
// but lost against the order's current state.
func fail(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrConflict), errors.Is(err, order.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrBusinessRule),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrTransient):
		status = http.StatusServiceUnavailable
	}

	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// pathID parses the :id path parameter.
func pathID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// actorID parses the acting party's identity header.
func actorID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Request().Header.Get(headerActorID))
}

// actorFromHeaders parses both identity headers into a domain actor.
func actorFromHeaders(ctx echo.Context) (order.Actor, error) {
	id, err := actorID(ctx)
	if err != nil {
		return order.Actor{}, err
	}

	role := order.Role(ctx.Request().Header.Get(headerActorRole))
	switch role {
	case order.RoleCustomer, order.RoleChef, order.RoleDriver, order.RoleAdmin:
		return order.NewActor(id, role), nil
	default:
		return order.Actor{}, errs.NewValueIsInvalidError(headerActorRole)
	}
}
