package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// Error is the uniform error payload for all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the payload for registering a new customer order.
type CreateOrderRequest struct {
	OrderNo      string             `json:"order_no"`
	CustomerName string             `json:"customer_name"`
	Lines        []OrderLineRequest `json:"lines"`
}

// OrderLineRequest is one requested position of a new order.
type OrderLineRequest struct {
	SKU string          `json:"sku"`
	Qty decimal.Decimal `json:"qty"`
}

// HandledLineRequest reports the handled quantity for one order line
// during picking or packing. Note is only honored when packing.
type HandledLineRequest struct {
	LineID string          `json:"line_id"`
	Qty    decimal.Decimal `json:"qty"`
	Note   string          `json:"note,omitempty"`
}

// HandledLinesRequest is the payload for pick and pack operations.
type HandledLinesRequest struct {
	Lines []HandledLineRequest `json:"lines"`
}

// ShipOrderRequest is the payload for shipping an order.
type ShipOrderRequest struct {
	Carrier string `json:"carrier"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

// ReceiveBatchRequest is the payload for receiving stock into a new batch.
// ExpiryDate is optional; absent means the batch never expires.
type ReceiveBatchRequest struct {
	SKU        string     `json:"sku"`
	LotNo      string     `json:"lot_no"`
	Qty        decimal.Decimal `json:"qty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

// AllocationResultResponse reports the outcome of an allocation attempt.
type AllocationResultResponse struct {
	TotalFulfilled decimal.Decimal          `json:"total_fulfilled"`
	Lines          []AllocationLineResponse `json:"lines"`
}

// AllocationLineResponse is the per-line allocation outcome.
type AllocationLineResponse struct {
	LineID    string          `json:"line_id"`
	ItemID    string          `json:"item_id"`
	Requested decimal.Decimal `json:"requested"`
	Fulfilled decimal.Decimal `json:"fulfilled"`
}

// AdjustmentResponse is one recorded pick or pack discrepancy.
type AdjustmentResponse struct {
	LineID       string          `json:"line_id"`
	ItemID       string          `json:"item_id"`
	QtyAllocated decimal.Decimal `json:"qty_allocated"`
	QtyHandled   decimal.Decimal `json:"qty_handled"`
	Delta        decimal.Decimal `json:"delta"`
}

// AdjustmentReportResponse reports discrepancies found while picking or packing.
type AdjustmentReportResponse struct {
	Adjustments []AdjustmentResponse `json:"adjustments"`
}

// ShipmentResponse describes a created shipment.
type ShipmentResponse struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"order_id"`
	ShipmentNo  string     `json:"shipment_no"`
	TrackingNo  string     `json:"tracking_no"`
	Carrier     string     `json:"carrier"`
	Address     string     `json:"address"`
	Notes       string     `json:"notes,omitempty"`
	ShippedAt   time.Time  `json:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	Status      string     `json:"status"`
}

// ReceiveBatchResponse returns the identifier of a newly received batch.
type ReceiveBatchResponse struct {
	BatchID string `json:"batch_id"`
}

// OrderResponse is the order detail read model.
type OrderResponse struct {
	ID           string              `json:"id"`
	OrderNo      string              `json:"order_no"`
	CustomerName string              `json:"customer_name"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
	Lines        []OrderLineResponse `json:"lines"`
}

// OrderLineResponse is one line of the order detail read model.
type OrderLineResponse struct {
	ID           string               `json:"id"`
	ItemID       string               `json:"item_id"`
	SKU          string               `json:"sku"`
	QtyRequested decimal.Decimal      `json:"qty_requested"`
	QtyAllocated decimal.Decimal      `json:"qty_allocated"`
	QtyPicked    decimal.Decimal      `json:"qty_picked"`
	Allocations  []AllocationDetail   `json:"allocations"`
}

// AllocationDetail is one live reservation in the order detail read model.
type AllocationDetail struct {
	ID      string          `json:"id"`
	BatchID string          `json:"batch_id"`
	LotNo   string          `json:"lot_no"`
	Qty     decimal.Decimal `json:"qty"`
}

// LedgerEntryResponse is one transaction log entry.
type LedgerEntryResponse struct {
	ID         string          `json:"id"`
	EntryType  string          `json:"entry_type"`
	Qty        decimal.Decimal `json:"qty"`
	ItemID     string          `json:"item_id"`
	BatchID    string          `json:"batch_id"`
	OrderID    *string         `json:"order_id,omitempty"`
	ShipmentID *string         `json:"shipment_id,omitempty"`
	Actor      string          `json:"actor"`
	Note       string          `json:"note,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// LowStockItemResponse is one item at or below its reorder threshold.
type LowStockItemResponse struct {
	ID               string          `json:"id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
	TotalAvailable   decimal.Decimal `json:"total_available"`
}

func allocationResultResponse(result services.Result) AllocationResultResponse {
	lines := make([]AllocationLineResponse, 0, len(result.Lines))
	for _, line := range result.Lines {
		lines = append(lines, AllocationLineResponse{
			LineID:    line.LineID.String(),
			ItemID:    line.ItemID.String(),
			Requested: line.Requested,
			Fulfilled: line.Fulfilled,
		})
	}

	return AllocationResultResponse{
		TotalFulfilled: result.TotalFulfilled,
		Lines:          lines,
	}
}

func shipmentResponse(shp *shipment.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:          shp.ID().String(),
		OrderID:     shp.OrderID().String(),
		ShipmentNo:  shp.ShipmentNo(),
		TrackingNo:  shp.TrackingNo(),
		Carrier:     shp.Carrier(),
		Address:     shp.Address(),
		Notes:       shp.Notes(),
		ShippedAt:   shp.ShippedAt(),
		DeliveredAt: shp.DeliveredAt(),
		Status:      shp.Status().String(),
	}
}

func orderResponse(detail queries.GetOrderQueryResponse) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(detail.Lines))
	for _, line := range detail.Lines {
		allocations := make([]AllocationDetail, 0, len(line.Allocations))
		for _, alloc := range line.Allocations {
			allocations = append(allocations, AllocationDetail{
				ID:      alloc.ID.String(),
				BatchID: alloc.BatchID.String(),
				LotNo:   alloc.LotNo,
				Qty:     alloc.Qty,
			})
		}

		lines = append(lines, OrderLineResponse{
			ID:           line.ID.String(),
			ItemID:       line.ItemID.String(),
			SKU:          line.SKU,
			QtyRequested: line.QtyRequested,
			QtyAllocated: line.QtyAllocated,
			QtyPicked:    line.QtyPicked,
			Allocations:  allocations,
		})
	}

	return OrderResponse{
		ID:           detail.ID.String(),
		OrderNo:      detail.OrderNo,
		CustomerName: detail.CustomerName,
		Status:       detail.Status,
		CreatedAt:    detail.CreatedAt,
		Lines:        lines,
	}
}

func ledgerEntryResponse(entry queries.GetLedgerQueryResponse) LedgerEntryResponse {
	response := LedgerEntryResponse{
		ID:         entry.ID.String(),
		EntryType:  entry.EntryType,
		Qty:        entry.Qty,
		ItemID:     entry.ItemID.String(),
		BatchID:    entry.BatchID.String(),
		Actor:      entry.Actor,
		Note:       entry.Note,
		OccurredAt: entry.OccurredAt,
	}
	if entry.OrderID != nil {
		id := entry.OrderID.String()
		response.OrderID = &id
	}
	if entry.ShipmentID != nil {
		id := entry.ShipmentID.String()
		response.ShipmentID = &id
	}

	return response
}
