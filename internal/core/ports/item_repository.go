package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ItemRepository defines the persistence contract for catalog items.
// The engine treats items as read-only; Add exists for receiving flows
// that register an item alongside its first batch, and for seeding.
type ItemRepository interface {
	// Add persists a new catalog item.
	Add(ctx context.Context, aggregate *item.Item) error

	// Get retrieves an item by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*item.Item, error)

	// GetBySKU retrieves an item by its business identity.
	GetBySKU(ctx context.Context, sku string) (*item.Item, error)

	// TotalAvailable sums the available quantity across the item's
	// eligible batches. Used for low-stock evaluation after shipping.
	TotalAvailable(ctx context.Context, id kernel.UUID) (decimal.Decimal, error)
}
