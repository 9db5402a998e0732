package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/item"

	"github.com/shopspring/decimal"
)

// LowStockNotifier publishes low-stock signals to the notification
// collaborator after shipping consumes reserved stock. Implementations
// must not fail the shipping transaction: delivery is best effort.
type LowStockNotifier interface {
	// NotifyLowStock signals that the item's summed availability has
	// reached its reorder threshold.
	NotifyLowStock(ctx context.Context, it *item.Item, totalAvailable decimal.Decimal)
}
