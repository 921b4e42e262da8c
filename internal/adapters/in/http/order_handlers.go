package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"mealmarket/internal/core/application/usecases/commands"
	"mealmarket/internal/core/application/usecases/queries"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
)

// CreateOrder handles POST /orders. The customer places an order; the server
// generates the order identifier and returns it.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customerId")
	}
	chefID, err := kernel.UUIDFromString(req.ChefID)
	if err != nil {
		return badRequest(ctx, "Invalid chefId")
	}

	items := make([]commands.ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		menuItemID, err := kernel.UUIDFromString(item.MenuItemID)
		if err != nil {
			return badRequest(ctx, "Invalid menuItemId")
		}
		items = append(items, commands.ItemRequest{
			MenuItemID: menuItemID,
			Quantity:   item.Quantity,
		})
	}

	point, err := kernel.NewGeoPoint(req.DeliveryLat, req.DeliveryLng)
	if err != nil {
		return badRequest(ctx, "Invalid delivery coordinates")
	}

	// Absent fee means the commission policy default.
	deliveryFee := int64(-1)
	if req.DeliveryFeeCents != nil {
		deliveryFee = *req.DeliveryFeeCents
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, chefID, items, point, req.DeliveryAddress, deliveryFee)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{OrderID: orderID.String()})
}

// ConfirmPayment handles POST /orders/:id/confirm-payment.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor headers")
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID, actor)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.handlers.ConfirmPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AcceptOrder handles POST /orders/:id/accept. The acting chef comes from
// the identity headers.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	chefID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor headers")
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, chefID)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.handlers.AcceptOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrder handles POST /orders/:id/reject.
func (s *Server) RejectOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	chefID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor headers")
	}

	var req reasonRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, chefID, req.Reason)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.handlers.RejectOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StartPreparing handles POST /orders/:id/start-preparing.
func (s *Server) StartPreparing(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	chefID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor headers")
	}

	cmd, err := commands.NewStartPreparingCommand(orderID, chefID)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.handlers.StartPreparing.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkReady handles POST /orders/:id/ready.
func (s *Server) MarkReady(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	chefID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor headers")
	}

	cmd, err := commands.NewMarkReadyCommand(orderID, chefID)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.handlers.MarkReady.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkPickedUp handles POST /orders/:id/pickup. The acting driver comes from
// the identity headers.
func (s *Server) MarkPickedUp(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	driverID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor headers")
	}

	cmd, err := commands.NewMarkPickedUpCommand(orderID, driverID)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.handlers.MarkPickedUp.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkInTransit handles POST /orders/:id/in-transit.
func (s *Server) MarkInTransit(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	driverID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor headers")
	}

	cmd, err := commands.NewMarkInTransitCommand(orderID, driverID)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.handlers.MarkInTransit.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkDelivered handles POST /orders/:id/delivered.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	driverID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor headers")
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID, driverID)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.handlers.MarkDelivered.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /orders/:id/cancel. Who may cancel depends on the
// actor role and the order's state; the use case decides.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor headers")
	}

	var req reasonRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor, req.Reason)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RefundOrder handles POST /orders/:id/refund. Admin only; an absent amount
// refunds the outstanding remainder.
func (s *Server) RefundOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	adminID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor headers")
	}

	var req refundOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	amount := int64(-1)
	if req.AmountCents != nil {
		amount = *req.AmountCents
	}

	cmd, err := commands.NewRefundOrderCommand(orderID, adminID, req.Reason, amount)
	if err != nil {
		return fail(ctx, err)
	}
	if err := s.handlers.RefundOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return fail(ctx, err)
	}

	row, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderDetail(row))
}

// ListOrders handles GET /orders with optional status, customer, chef,
// driver and limit filters.
func (s *Server) ListOrders(ctx echo.Context) error {
	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		candidate := order.Status(raw)
		status = &candidate
	}

	customerID, err := optionalUUIDParam(ctx, "customer")
	if err != nil {
		return badRequest(ctx, "Invalid customer filter")
	}
	chefID, err := optionalUUIDParam(ctx, "chef")
	if err != nil {
		return badRequest(ctx, "Invalid chef filter")
	}
	driverID, err := optionalUUIDParam(ctx, "driver")
	if err != nil {
		return badRequest(ctx, "Invalid driver filter")
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid limit")
		}
	}

	query, err := queries.NewListOrdersQuery(status, customerID, chefID, driverID, limit)
	if err != nil {
		return fail(ctx, err)
	}

	rows, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]orderSummary, 0, len(rows))
	for _, row := range rows {
		response = append(response, toOrderSummary(row))
	}
	return ctx.JSON(http.StatusOK, response)
}

func optionalUUIDParam(ctx echo.Context, name string) (*kernel.UUID, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
