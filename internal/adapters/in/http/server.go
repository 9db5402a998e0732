// Package http provides the inbound REST adapter for the fulfillment engine.
// It translates HTTP requests into commands and queries and maps domain
// errors to status codes.
package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// actorHeader identifies who performed an operation, for log attribution.
const actorHeader = "X-Actor"

// defaultActor is recorded when a caller does not identify itself.
const defaultActor = "api"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	allocateHandler     commands.AllocateOrderCommandHandler
	deallocateHandler   commands.DeallocateOrderCommandHandler
	pickHandler         commands.PickOrderCommandHandler
	packHandler         commands.PackOrderCommandHandler
	shipHandler         commands.ShipOrderCommandHandler
	deliverHandler      commands.DeliverOrderCommandHandler
	cancelHandler       commands.CancelOrderCommandHandler
	receiveBatchHandler commands.ReceiveBatchCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	getLedgerHandler        queries.GetLedgerQueryHandler
	getLowStockItemsHandler queries.GetLowStockItemsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	allocateHandler commands.AllocateOrderCommandHandler,
	deallocateHandler commands.DeallocateOrderCommandHandler,
	pickHandler commands.PickOrderCommandHandler,
	packHandler commands.PackOrderCommandHandler,
	shipHandler commands.ShipOrderCommandHandler,
	deliverHandler commands.DeliverOrderCommandHandler,
	cancelHandler commands.CancelOrderCommandHandler,
	receiveBatchHandler commands.ReceiveBatchCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getLedgerHandler queries.GetLedgerQueryHandler,
	getLowStockItemsHandler queries.GetLowStockItemsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		allocateHandler:         allocateHandler,
		deallocateHandler:       deallocateHandler,
		pickHandler:             pickHandler,
		packHandler:             packHandler,
		shipHandler:             shipHandler,
		deliverHandler:          deliverHandler,
		cancelHandler:           cancelHandler,
		receiveBatchHandler:     receiveBatchHandler,
		getOrderHandler:         getOrderHandler,
		getLedgerHandler:        getLedgerHandler,
		getLowStockItemsHandler: getLowStockItemsHandler,
	}
}

// RegisterRoutes wires all endpoints onto the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/allocate", s.AllocateOrder)
	api.POST("/orders/:id/deallocate", s.DeallocateOrder)
	api.POST("/orders/:id/pick", s.PickOrder)
	api.POST("/orders/:id/pack", s.PackOrder)
	api.POST("/orders/:id/ship", s.ShipOrder)
	api.POST("/orders/:id/deliver", s.DeliverOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/batches", s.ReceiveBatch)
	api.GET("/ledger", s.GetLedger)
	api.GET("/items/low-stock", s.GetLowStockItems)

	e.GET("/health", s.Health)
}

// CreateOrder handles POST /api/v1/orders - registers a new customer order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lineItems := make([]commands.LineItemInput, 0, len(request.Lines))
	for _, line := range request.Lines {
		lineItems = append(lineItems, commands.LineItemInput{
			SKU: line.SKU,
			Qty: line.Qty,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, request.OrderNo, request.CustomerName, lineItems)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id - retrieves the order detail.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, orderResponse(detail))
}

// AllocateOrder handles POST /api/v1/orders/:id/allocate - reserves stock
// for the order first-expired-first-out.
func (s *Server) AllocateOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	cmd, err := commands.NewAllocateOrderCommand(orderID, actor(ctx))
	if err != nil {
		return badRequest(ctx, "Invalid allocation request: "+err.Error())
	}

	result, err := s.allocateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Failed to allocate order")
	}

	return ctx.JSON(http.StatusOK, allocationResultResponse(result))
}

// DeallocateOrder handles POST /api/v1/orders/:id/deallocate - releases the
// order's live reservations back to stock.
func (s *Server) DeallocateOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	cmd, err := commands.NewDeallocateOrderCommand(orderID, actor(ctx))
	if err != nil {
		return badRequest(ctx, "Invalid deallocation request: "+err.Error())
	}

	if err := s.deallocateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to deallocate order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PickOrder handles POST /api/v1/orders/:id/pick - records picked
// quantities and returns the discrepancy report.
func (s *Server) PickOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var request HandledLinesRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	picked, _, err := handledQuantities(request)
	if err != nil {
		return badRequest(ctx, "Invalid line reference: "+err.Error())
	}

	cmd, err := commands.NewPickOrderCommand(orderID, actor(ctx), picked)
	if err != nil {
		return badRequest(ctx, "Invalid pick data: "+err.Error())
	}

	report, err := s.pickHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Failed to pick order")
	}

	return ctx.JSON(http.StatusOK, adjustmentReportResponse(report))
}

// PackOrder handles POST /api/v1/orders/:id/pack - records packed
// quantities with optional discrepancy notes.
func (s *Server) PackOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var request HandledLinesRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	packed, notes, err := handledQuantities(request)
	if err != nil {
		return badRequest(ctx, "Invalid line reference: "+err.Error())
	}

	cmd, err := commands.NewPackOrderCommand(orderID, actor(ctx), packed, notes)
	if err != nil {
		return badRequest(ctx, "Invalid pack data: "+err.Error())
	}

	report, err := s.packHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Failed to pack order")
	}

	return ctx.JSON(http.StatusOK, adjustmentReportResponse(report))
}

// ShipOrder handles POST /api/v1/orders/:id/ship - consumes the order's
// reservations and creates its shipment.
func (s *Server) ShipOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var request ShipOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewShipOrderCommand(orderID, actor(ctx), request.Carrier, request.Address, request.Notes)
	if err != nil {
		return badRequest(ctx, "Invalid shipping data: "+err.Error())
	}

	shp, err := s.shipHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Failed to ship order")
	}

	return ctx.JSON(http.StatusCreated, shipmentResponse(shp))
}

// DeliverOrder handles POST /api/v1/orders/:id/deliver - marks the shipped
// order as delivered.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, actor(ctx))
	if err != nil {
		return badRequest(ctx, "Invalid delivery request: "+err.Error())
	}

	if err := s.deliverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to deliver order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - releases any live
// reservations and closes the order.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor(ctx))
	if err != nil {
		return badRequest(ctx, "Invalid cancellation request: "+err.Error())
	}

	if err := s.cancelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to cancel order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReceiveBatch handles POST /api/v1/batches - receives stock into a new batch.
func (s *Server) ReceiveBatch(ctx echo.Context) error {
	var request ReceiveBatchRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReceiveBatchCommand(request.SKU, request.LotNo, request.Qty, request.ExpiryDate, actor(ctx))
	if err != nil {
		return badRequest(ctx, "Invalid batch data: "+err.Error())
	}

	batchID, err := s.receiveBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Failed to receive batch")
	}

	return ctx.JSON(http.StatusCreated, ReceiveBatchResponse{BatchID: batchID.String()})
}

// GetLedger handles GET /api/v1/ledger - retrieves transaction log entries,
// newest first. Supports order_id, batch_id, type and limit query parameters.
func (s *Server) GetLedger(ctx echo.Context) error {
	var orderID, batchID *kernel.UUID
	if raw := ctx.QueryParam("order_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid order_id filter")
		}
		orderID = &id
	}
	if raw := ctx.QueryParam("batch_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid batch_id filter")
		}
		batchID = &id
	}

	entryType := ledger.UnknownType
	if raw := ctx.QueryParam("type"); raw != "" {
		var err error
		entryType, err = ledger.EntryTypeFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid type filter")
		}
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		if err := echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
			return badRequest(ctx, "Invalid limit")
		}
	}

	query, err := queries.NewGetLedgerQuery(orderID, batchID, entryType, limit)
	if err != nil {
		return badRequest(ctx, "Invalid ledger filter: "+err.Error())
	}

	entries, err := s.getLedgerHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve ledger")
	}

	response := make([]LedgerEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, ledgerEntryResponse(entry))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetLowStockItems handles GET /api/v1/items/low-stock - retrieves items at
// or below their reorder threshold.
func (s *Server) GetLowStockItems(ctx echo.Context) error {
	query := queries.NewGetLowStockItemsQuery()

	items, err := s.getLowStockItemsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve low stock items")
	}

	response := make([]LowStockItemResponse, 0, len(items))
	for _, it := range items {
		response = append(response, LowStockItemResponse{
			ID:               it.ID.String(),
			SKU:              it.SKU,
			Name:             it.Name,
			Unit:             it.Unit,
			ReorderThreshold: it.ReorderThreshold,
			TotalAvailable:   it.TotalAvailable,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func actor(ctx echo.Context) string {
	if a := ctx.Request().Header.Get(actorHeader); a != "" {
		return a
	}
	return defaultActor
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func handledQuantities(request HandledLinesRequest) (map[kernel.UUID]decimal.Decimal, map[kernel.UUID]string, error) {
	quantities := make(map[kernel.UUID]decimal.Decimal, len(request.Lines))
	notes := make(map[kernel.UUID]string)
	for _, line := range request.Lines {
		lineID, err := kernel.UUIDFromString(line.LineID)
		if err != nil {
			return nil, nil, err
		}
		quantities[lineID] = line.Qty
		if line.Note != "" {
			notes[lineID] = line.Note
		}
	}

	return quantities, notes, nil
}

func adjustmentReportResponse(report commands.AdjustmentReport) AdjustmentReportResponse {
	adjustments := make([]AdjustmentResponse, 0, len(report.Adjustments))
	for _, adj := range report.Adjustments {
		adjustments = append(adjustments, AdjustmentResponse{
			LineID:       adj.LineID.String(),
			ItemID:       adj.ItemID.String(),
			QtyAllocated: adj.QtyAllocated,
			QtyHandled:   adj.QtyHandled,
			Delta:        adj.Delta,
		})
	}

	return AdjustmentReportResponse{Adjustments: adjustments}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func domainError(ctx echo.Context, err error, message string) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrConcurrentModification):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: message + ": " + err.Error(),
	})
}
