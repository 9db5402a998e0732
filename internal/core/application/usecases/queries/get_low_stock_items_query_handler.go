package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLowStockItemsQueryHandler finds items needing replenishment.
// Availability is summed over available, non-expired batches only, the
// same view of stock the allocator sees.
//
// Example:
//
//	handler := NewGetLowStockItemsQueryHandler(db)
//	query := NewGetLowStockItemsQuery()
//
//	items, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get low stock items: %v", err)
//	    return err
//	}
type GetLowStockItemsQueryHandler struct {
	db *gorm.DB
}

// NewGetLowStockItemsQueryHandler creates a handler for low stock queries.
func NewGetLowStockItemsQueryHandler(db *gorm.DB) GetLowStockItemsQueryHandler {
	return GetLowStockItemsQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by SKU for consistent
// output. Items with no eligible batches at all count as zero available
// and report as low when their threshold is positive.
func (h GetLowStockItemsQueryHandler) Handle(
	ctx context.Context,
	query GetLowStockItemsQuery,
) ([]GetLowStockItemsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			i.id,
			i.sku,
			i.name,
			i.unit,
			i.reorder_threshold,
			COALESCE(SUM(b.available_qty), 0) AS total_available
		FROM items i
		LEFT JOIN batches b
			ON b.item_id = i.id
			AND b.status = ?
			AND (b.expiry_date IS NULL OR b.expiry_date > NOW())
		WHERE i.reorder_threshold > 0
		GROUP BY i.id, i.sku, i.name, i.unit, i.reorder_threshold
		HAVING COALESCE(SUM(b.available_qty), 0) <= i.reorder_threshold
		ORDER BY i.sku
	`, batch.Available.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]GetLowStockItemsQueryResponse, 0)
	for rows.Next() {
		var item GetLowStockItemsQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&item.SKU,
			&item.Name,
			&item.Unit,
			&item.ReorderThreshold,
			&item.TotalAvailable,
		)
		if err != nil {
			return nil, err
		}

		item.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
