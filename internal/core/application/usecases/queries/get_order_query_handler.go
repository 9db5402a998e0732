package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler loads an order detail read model from the database.
// Uses direct SQL for read performance, bypassing the aggregate repositories.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	detail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order: %v", err)
//	    return err
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and assembles the order detail.
// Lines are sorted by ID, allocations within a line by ID.
// Returns errs.ErrObjectNotFound when no order exists with the given ID.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	response, err := h.loadHeader(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.Lines, err = h.loadLines(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) loadHeader(
	ctx context.Context,
	orderID kernel.UUID,
) (GetOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_no,
			customer_name,
			status,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var response GetOrderQueryResponse
	var id uuid.UUID
	var createdAt time.Time

	err := row.Scan(
		&id,
		&response.OrderNo,
		&response.CustomerName,
		&response.Status,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", orderID)
		}
		return GetOrderQueryResponse{}, err
	}

	headerID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.ID = headerID
	response.CreatedAt = createdAt

	return response, nil
}

func (h GetOrderQueryHandler) loadLines(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderLineResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.item_id,
			i.sku,
			l.qty_requested,
			l.qty_allocated,
			l.qty_picked
		FROM order_lines l
		JOIN items i ON i.id = l.item_id
		WHERE l.order_id = ?
		ORDER BY l.seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineResponse, 0)
	for rows.Next() {
		var line OrderLineResponse
		var lineID, itemID uuid.UUID

		err = rows.Scan(
			&lineID,
			&itemID,
			&line.SKU,
			&line.QtyRequested,
			&line.QtyAllocated,
			&line.QtyPicked,
		)
		if err != nil {
			return nil, err
		}

		line.ID, err = kernel.UUIDFromBytes(lineID[:])
		if err != nil {
			return nil, err
		}
		line.ItemID, err = kernel.UUIDFromBytes(itemID[:])
		if err != nil {
			return nil, err
		}

		line.Allocations, err = h.loadAllocations(ctx, line.ID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (h GetOrderQueryHandler) loadAllocations(
	ctx context.Context,
	lineID kernel.UUID,
) ([]AllocationResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.batch_id,
			b.lot_no,
			a.qty
		FROM allocations a
		JOIN batches b ON b.id = a.batch_id
		WHERE a.line_id = ?
		ORDER BY a.id
	`, lineID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	allocations := make([]AllocationResponse, 0)
	for rows.Next() {
		var allocation AllocationResponse
		var allocationID, batchID uuid.UUID
		var qty decimal.Decimal

		err = rows.Scan(
			&allocationID,
			&batchID,
			&allocation.LotNo,
			&qty,
		)
		if err != nil {
			return nil, err
		}

		allocation.ID, err = kernel.UUIDFromBytes(allocationID[:])
		if err != nil {
			return nil, err
		}
		allocation.BatchID, err = kernel.UUIDFromBytes(batchID[:])
		if err != nil {
			return nil, err
		}
		allocation.Qty = qty
		allocations = append(allocations, allocation)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return allocations, nil
}
