package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves a single order with its lines and live allocations.
// Used by the read side to render order detail without loading the aggregate.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderQueryHandler(db)
//
//	detail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//
//	fmt.Printf("Order %s (%s): %d lines\n", detail.OrderNo, detail.Status, len(detail.Lines))
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order's read model.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order to load.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the order detail read model.
type GetOrderQueryResponse struct {
	ID           kernel.UUID
	OrderNo      string
	CustomerName string
	Status       string
	CreatedAt    time.Time
	Lines        []OrderLineResponse
}

// OrderLineResponse is one requested line with its live allocations.
type OrderLineResponse struct {
	ID           kernel.UUID
	ItemID       kernel.UUID
	SKU          string
	QtyRequested decimal.Decimal
	QtyAllocated decimal.Decimal
	QtyPicked    decimal.Decimal
	Allocations  []AllocationResponse
}

// AllocationResponse is a live reservation of a line against a batch.
type AllocationResponse struct {
	ID      kernel.UUID
	BatchID kernel.UUID
	LotNo   string
	Qty     decimal.Decimal
}
