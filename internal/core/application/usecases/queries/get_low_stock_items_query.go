package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetLowStockItemsQueryIsNotConstructed = errors.New(
		"GetLowStockItemsQuery must be created via NewGetLowStockItemsQuery constructor",
	)
)

// GetLowStockItemsQuery retrieves items whose summed availability has
// fallen to or below their reorder threshold. Items with a zero
// threshold never report as low regardless of stock on hand.
//
// Example:
//
//	query := NewGetLowStockItemsQuery()
//	handler := NewGetLowStockItemsQueryHandler(db)
//
//	items, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get low stock items: %w", err)
//	}
//
//	for _, it := range items {
//	    fmt.Printf("%s: %s available, threshold %s\n", it.SKU, it.TotalAvailable, it.ReorderThreshold)
//	}
type GetLowStockItemsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetLowStockItemsQuery creates a parameterless low stock query.
func NewGetLowStockItemsQuery() GetLowStockItemsQuery {
	return GetLowStockItemsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetLowStockItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetLowStockItemsQueryIsNotConstructed)
}

// GetLowStockItemsQueryResponse is one item below its reorder threshold.
type GetLowStockItemsQueryResponse struct {
	ID               kernel.UUID
	SKU              string
	Name             string
	Unit             string
	ReorderThreshold decimal.Decimal
	TotalAvailable   decimal.Decimal
}
