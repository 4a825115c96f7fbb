package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests for the fulfillment API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	approveOrderHandler     commands.ApproveOrderCommandHandler
	rejectOrderHandler      commands.RejectOrderCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	allocateLineHandler     commands.AllocateLineCommandHandler
	dispatchLineHandler     commands.DispatchLineCommandHandler
	deliverLineHandler      commands.DeliverLineCommandHandler
	restockInventoryHandler commands.RestockInventoryCommandHandler

	// Query handlers
	getOpenOrdersHandler   queries.GetOpenOrdersQueryHandler
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler
	getStockLevelsHandler  queries.GetStockLevelsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	approveOrderHandler commands.ApproveOrderCommandHandler,
	rejectOrderHandler commands.RejectOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	allocateLineHandler commands.AllocateLineCommandHandler,
	dispatchLineHandler commands.DispatchLineCommandHandler,
	deliverLineHandler commands.DeliverLineCommandHandler,
	restockInventoryHandler commands.RestockInventoryCommandHandler,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	getStockLevelsHandler queries.GetStockLevelsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		approveOrderHandler:     approveOrderHandler,
		rejectOrderHandler:      rejectOrderHandler,
		cancelOrderHandler:      cancelOrderHandler,
		allocateLineHandler:     allocateLineHandler,
		dispatchLineHandler:     dispatchLineHandler,
		deliverLineHandler:      deliverLineHandler,
		restockInventoryHandler: restockInventoryHandler,
		getOpenOrdersHandler:    getOpenOrdersHandler,
		getOrderHistoryHandler:  getOrderHistoryHandler,
		getStockLevelsHandler:   getStockLevelsHandler,
	}
}

// RegisterRoutes attaches all API endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/approve", s.ApproveOrder)
	api.POST("/orders/:id/reject", s.RejectOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/lines/:lineId/allocate", s.AllocateLine)
	api.POST("/orders/:id/lines/:lineId/dispatch", s.DispatchLine)
	api.POST("/orders/:id/lines/:lineId/deliver", s.DeliverLine)
	api.POST("/inventory/:sku/restock", s.RestockInventory)

	api.GET("/orders/open", s.GetOpenOrders)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.GET("/inventory", s.GetStockLevels)
}

// CreateOrder handles POST /api/v1/orders - captures a new sales order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	priority, err := order.PriorityFromString(request.Priority)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	lines := make([]commands.CreateOrderLine, 0, len(request.Lines))
	for _, lineRequest := range request.Lines {
		sku, skuErr := kernel.NewSKU(lineRequest.SKU)
		if skuErr != nil {
			return s.errorResponse(ctx, skuErr)
		}

		lines = append(lines, commands.CreateOrderLine{
			LineID:    kernel.NewUUID(),
			SKU:       sku,
			Quantity:  lineRequest.Quantity,
			UnitPrice: lineRequest.UnitPrice,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		request.Customer, request.Reference,
		request.OrderDate, request.DeliveryDate,
		priority,
		request.CreatedBy,
		lines,
	)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	response := CreateOrderResponse{ID: orderID.String()}
	for _, line := range lines {
		response.Lines = append(response.Lines, CreateOrderLineResponse{
			ID:  line.LineID.String(),
			SKU: line.SKU.String(),
		})
	}

	return ctx.JSON(http.StatusCreated, response)
}

// ApproveOrder handles POST /api/v1/orders/:id/approve.
func (s *Server) ApproveOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	var request ActorRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewApproveOrderCommand(orderID, request.Actor)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if err := s.approveOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrder handles POST /api/v1/orders/:id/reject.
func (s *Server) RejectOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	var request RejectOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, request.Actor, request.Note)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if err := s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	var request ActorRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, request.Actor)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AllocateLine handles POST /api/v1/orders/:id/lines/:lineId/allocate.
func (s *Server) AllocateLine(ctx echo.Context) error {
	orderID, lineID, err := s.lineParams(ctx)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	var request AllocateLineRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	quantity, err := kernel.NewQuantity(request.Quantity)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	cmd, err := commands.NewAllocateLineCommand(orderID, lineID, quantity, request.Actor)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if err := s.allocateLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchLine handles POST /api/v1/orders/:id/lines/:lineId/dispatch.
func (s *Server) DispatchLine(ctx echo.Context) error {
	orderID, lineID, err := s.lineParams(ctx)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	var request DispatchLineRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	quantity, err := kernel.NewQuantity(request.Quantity)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	cmd, err := commands.NewDispatchLineCommand(
		orderID, lineID, quantity, request.Actor, request.TrackingID, request.Carrier)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if err := s.dispatchLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeliverLine handles POST /api/v1/orders/:id/lines/:lineId/deliver.
func (s *Server) DeliverLine(ctx echo.Context) error {
	orderID, lineID, err := s.lineParams(ctx)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	var request DeliverLineRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	quantity, err := kernel.NewQuantity(request.Quantity)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	cmd, err := commands.NewDeliverLineCommand(orderID, lineID, quantity, request.Actor)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if err := s.deliverLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RestockInventory handles POST /api/v1/inventory/:sku/restock - records a goods receipt.
func (s *Server) RestockInventory(ctx echo.Context) error {
	sku, err := kernel.NewSKU(ctx.Param("sku"))
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	var request RestockRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	quantity, err := kernel.NewQuantity(request.Quantity)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	cmd, err := commands.NewRestockInventoryCommand(sku, quantity)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if err := s.restockInventoryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOpenOrders handles GET /api/v1/orders/open - retrieves all non-terminal orders.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	query := queries.NewGetOpenOrdersQuery()

	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := make([]OpenOrderResponse, len(orders))
	for i, openOrder := range orders {
		response[i] = OpenOrderResponse{
			ID:           openOrder.ID.String(),
			Customer:     openOrder.Customer,
			Reference:    openOrder.Reference,
			Status:       openOrder.Status.String(),
			Priority:     openOrder.Priority.String(),
			DeliveryDate: openOrder.DeliveryDate,
			LineCount:    openOrder.LineCount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history - retrieves an order's audit trail.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	entries, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := make([]AuditEntryResponse, len(entries))
	for i, entry := range entries {
		var lineID *string
		if entry.LineID != nil {
			raw := entry.LineID.String()
			lineID = &raw
		}

		response[i] = AuditEntryResponse{
			Timestamp:  entry.Timestamp,
			Actor:      entry.Actor,
			FromStatus: entry.FromStatus.String(),
			ToStatus:   entry.ToStatus.String(),
			Note:       entry.Note,
			LineID:     lineID,
			Quantity:   entry.Quantity,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetStockLevels handles GET /api/v1/inventory - retrieves the ledger counters per SKU.
func (s *Server) GetStockLevels(ctx echo.Context) error {
	query := queries.NewGetStockLevelsQuery()

	levels, err := s.getStockLevelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := make([]StockLevelResponse, len(levels))
	for i, level := range levels {
		response[i] = StockLevelResponse{
			SKU:          level.SKU,
			Available:    level.Available,
			Reserved:     level.Reserved,
			InProduction: level.InProduction,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// lineParams extracts the order and line identifiers shared by the line endpoints.
func (s *Server) lineParams(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	lineID, err := kernel.UUIDFromString(ctx.Param("lineId"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	return orderID, lineID, nil
}

// errorResponse maps a use-case error to its HTTP status.
// Unknown objects are 404, business rule rejections and version conflicts are
// 409, malformed values are 400, everything else is a 500.
func (s *Server) errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrQuantityBounds),
		errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrConcurrencyConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}
