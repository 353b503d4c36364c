// Package http exposes the REST surface of the order lifecycle service.
// Every mutating route authenticates the acting user from request headers
// and gates the operation through the authorization capability check.
package http

import (
	"errors"
	"net/http"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler     commands.CreateOrderCommandHandler
	createBulkOrderHandler commands.CreateBulkOrderCommandHandler
	updateStatusHandler    commands.UpdateOrderStatusCommandHandler
	closeWarehouseHandler  commands.CloseWarehouseJobCommandHandler
	closeBulkBatchHandler  *commands.CloseBulkBatchCommandHandler
	recordDeliveryHandler  commands.RecordDeliveryCommandHandler

	getActiveOrdersHandler  queries.GetActiveOrdersQueryHandler
	getOrderEventsHandler   queries.GetOrderEventsQueryHandler
	getPendingGuidesHandler queries.GetPendingShippingGuidesQueryHandler

	authz ports.AuthorizationChecker
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	createBulkOrderHandler commands.CreateBulkOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	closeWarehouseHandler commands.CloseWarehouseJobCommandHandler,
	closeBulkBatchHandler *commands.CloseBulkBatchCommandHandler,
	recordDeliveryHandler commands.RecordDeliveryCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getOrderEventsHandler queries.GetOrderEventsQueryHandler,
	getPendingGuidesHandler queries.GetPendingShippingGuidesQueryHandler,
	authz ports.AuthorizationChecker,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		createBulkOrderHandler:  createBulkOrderHandler,
		updateStatusHandler:     updateStatusHandler,
		closeWarehouseHandler:   closeWarehouseHandler,
		closeBulkBatchHandler:   closeBulkBatchHandler,
		recordDeliveryHandler:   recordDeliveryHandler,
		getActiveOrdersHandler:  getActiveOrdersHandler,
		getOrderEventsHandler:   getOrderEventsHandler,
		getPendingGuidesHandler: getPendingGuidesHandler,
		authz:                   authz,
	}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.POST("/orders/bulk", s.CreateBulkOrder)
	v1.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	v1.POST("/orders/:id/warehouse-close", s.CloseWarehouse)
	v1.POST("/orders/:id/delivery", s.RecordDelivery)
	v1.POST("/bulk-batches/:id/close", s.CloseBulkBatch)

	v1.GET("/orders/active", s.GetActiveOrders)
	v1.GET("/orders/:id/events", s.GetOrderEvents)
	v1.GET("/shipping-guides/pending", s.GetPendingShippingGuides)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, ok := s.authorize(ctx, ports.ActionCreateOrder)
	if !ok {
		return nil
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return badRequest(ctx, "Invalid date: "+err.Error())
	}

	items, err := itemsFromRequest(req.Items)
	if err != nil {
		return badRequest(ctx, "Invalid items: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, req.ClientID, req.ContractID, req.LocationID, date, req.Carrier, items, actor,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// CreateBulkOrder handles POST /api/v1/orders/bulk.
func (s *Server) CreateBulkOrder(ctx echo.Context) error {
	actor, ok := s.authorize(ctx, ports.ActionCreateOrder)
	if !ok {
		return nil
	}

	var req CreateBulkOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return badRequest(ctx, "Invalid date: "+err.Error())
	}

	batchID := kernel.NewUUID()
	subOrderIDs := make([]string, 0, len(req.SubOrders))
	specs := make([]commands.SubOrderSpec, 0, len(req.SubOrders))
	for _, sub := range req.SubOrders {
		items, itemsErr := itemsFromRequest(sub.Items)
		if itemsErr != nil {
			return badRequest(ctx, "Invalid items: "+itemsErr.Error())
		}

		subID := kernel.NewUUID()
		subOrderIDs = append(subOrderIDs, subID.String())
		specs = append(specs, commands.SubOrderSpec{
			OrderID:    subID,
			ClientID:   sub.ClientID,
			ContractID: sub.ContractID,
			LocationID: sub.LocationID,
			Carrier:    sub.Carrier,
			Items:      items,
		})
	}

	cmd, err := commands.NewCreateBulkOrderCommand(batchID, date, specs, actor)
	if err != nil {
		return badRequest(ctx, "Invalid bulk order data: "+err.Error())
	}

	if handleErr := s.createBulkOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, BulkCreatedResponse{
		BatchID:     batchID.String(),
		SubOrderIDs: subOrderIDs,
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	actor, ok := s.authorize(ctx, ports.ActionUpdateStatus)
	if !ok {
		return nil
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req UpdateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	newStatus, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+req.Status)
	}

	draft, err := itemsFromRequest(req.ItemsDraft)
	if err != nil {
		return badRequest(ctx, "Invalid items draft: "+err.Error())
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, newStatus, req.Carrier, draft, actor)
	if err != nil {
		return badRequest(ctx, "Invalid status update: "+err.Error())
	}

	if handleErr := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CloseWarehouse handles POST /api/v1/orders/:id/warehouse-close.
func (s *Server) CloseWarehouse(ctx echo.Context) error {
	actor, ok := s.authorize(ctx, ports.ActionCloseWarehouse)
	if !ok {
		return nil
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req CloseWarehouseRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	draft, err := itemsFromRequest(req.ItemsDraft)
	if err != nil {
		return badRequest(ctx, "Invalid items draft: "+err.Error())
	}

	cmd, err := commands.NewCloseWarehouseJobCommand(orderID, draft, actor)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse close: "+err.Error())
	}

	if handleErr := s.closeWarehouseHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CloseBulkBatch handles POST /api/v1/bulk-batches/:id/close.
func (s *Server) CloseBulkBatch(ctx echo.Context) error {
	actor, ok := s.authorize(ctx, ports.ActionCloseBatch)
	if !ok {
		return nil
	}

	batchID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid batch id")
	}

	var req CloseBulkBatchRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	draft, err := itemsFromRequest(req.ItemsDraft)
	if err != nil {
		return badRequest(ctx, "Invalid items draft: "+err.Error())
	}

	cmd, err := commands.NewCloseBulkBatchCommand(batchID, draft, actor)
	if err != nil {
		return badRequest(ctx, "Invalid batch close: "+err.Error())
	}

	if handleErr := s.closeBulkBatchHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordDelivery handles POST /api/v1/orders/:id/delivery.
func (s *Server) RecordDelivery(ctx echo.Context) error {
	actor, ok := s.authorize(ctx, ports.ActionRecordDelivery)
	if !ok {
		return nil
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req RecordDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	outcome, err := order.StatusFromString(req.Outcome)
	if err != nil {
		return badRequest(ctx, "Invalid outcome: "+req.Outcome)
	}

	cmd, err := commands.NewRecordDeliveryCommand(orderID, outcome, req.Note, actor)
	if err != nil {
		return badRequest(ctx, "Invalid delivery record: "+err.Error())
	}

	if handleErr := s.recordDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	if _, ok := s.authorize(ctx, ports.ActionViewOrders); !ok {
		return nil
	}

	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ActiveOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = ActiveOrderResponse{
			ID:       o.ID.String(),
			Kind:     o.Kind.String(),
			Status:   o.Status.String(),
			ClientID: o.ClientID,
			Date:     o.Date.Format(time.RFC3339),
			Carrier:  o.Carrier,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderEvents handles GET /api/v1/orders/:id/events.
func (s *Server) GetOrderEvents(ctx echo.Context) error {
	if _, ok := s.authorize(ctx, ports.ActionViewOrders); !ok {
		return nil
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderEventsQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	events, err := s.getOrderEventsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OrderEventResponse, len(events))
	for i, evt := range events {
		response[i] = OrderEventResponse{
			ID:        evt.ID.String(),
			OrderID:   evt.OrderID.String(),
			Kind:      evt.Kind.String(),
			ActorID:   evt.ActorID,
			ActorName: evt.ActorName,
			At:        evt.At.Format(time.RFC3339),
			Meta:      evt.Meta,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPendingShippingGuides handles GET /api/v1/shipping-guides/pending.
func (s *Server) GetPendingShippingGuides(ctx echo.Context) error {
	if _, ok := s.authorize(ctx, ports.ActionViewOrders); !ok {
		return nil
	}

	query := queries.NewGetPendingShippingGuidesQuery()

	guides, err := s.getPendingGuidesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]PendingGuideResponse, len(guides))
	for i, g := range guides {
		response[i] = PendingGuideResponse{
			ID:         g.ID.String(),
			OrderID:    g.OrderID.String(),
			BatchID:    g.BatchID.String(),
			ClientID:   g.ClientID,
			ContractID: g.ContractID,
			CreatedAt:  g.CreatedAt.Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// authorize resolves the acting user from headers and checks the capability.
// On failure the response is already written and ok is false.
func (s *Server) authorize(ctx echo.Context, action ports.Action) (kernel.Actor, bool) {
	actor, err := kernel.NewActor(
		ctx.Request().Header.Get("X-Actor-Id"),
		ctx.Request().Header.Get("X-Actor-Role"),
		ctx.Request().Header.Get("X-Actor-Name"),
	)
	if err != nil {
		_ = ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Missing or invalid actor headers",
		})
		return kernel.Actor{}, false
	}

	if !s.authz.Can(actor, action) {
		_ = ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "Actor is not allowed to perform this operation",
		})
		return kernel.Actor{}, false
	}

	return actor, true
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps use case failures onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, commands.ErrBatchAlreadyClosed),
		errors.Is(err, order.ErrOrderIsArchived):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, order.ErrNotABulkBatch):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

// itemsFromRequest converts request item lines into domain items. Prepared
// and purchased quantities are optional and default to zero.
func itemsFromRequest(reqItems []ItemRequest) ([]order.Item, error) {
	if len(reqItems) == 0 {
		return nil, nil
	}

	items := make([]order.Item, 0, len(reqItems))
	for _, ri := range reqItems {
		key, err := kernel.NewProductKey(ri.ProductID, ri.Unit, ri.Name)
		if err != nil {
			return nil, err
		}

		prepared := kernel.ZeroQuantity()
		if ri.PreparedQty != nil {
			prepared = kernel.QuantityFromFloat(*ri.PreparedQty)
		}
		purchased := kernel.ZeroQuantity()
		if ri.PurchasedQty != nil {
			purchased = kernel.QuantityFromFloat(*ri.PurchasedQty)
		}

		item, err := order.RestoreItem(
			key, kernel.QuantityFromFloat(ri.Qty), prepared, purchased, ri.Obs,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
