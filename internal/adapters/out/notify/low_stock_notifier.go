// Package notify provides outbound notification adapters.
//
// The engine publishes low stock alerts after shipping transactions
// commit. This package's adapter writes them to the structured log;
// swapping in a pager or messaging integration means implementing the
// same port.
package notify

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/item"

	"github.com/shopspring/decimal"
)

// SlogLowStockNotifier publishes low stock alerts to the structured log.
type SlogLowStockNotifier struct {
	logger *slog.Logger
}

// NewSlogLowStockNotifier creates a log-backed low stock notifier.
func NewSlogLowStockNotifier(logger *slog.Logger) *SlogLowStockNotifier {
	return &SlogLowStockNotifier{
		logger: logger.With("component", "low_stock_notifier"),
	}
}

// NotifyLowStock reports an item at or below its reorder threshold.
// Best effort: alerting must never fail the shipping flow that raised it.
func (n *SlogLowStockNotifier) NotifyLowStock(ctx context.Context, it *item.Item, available decimal.Decimal) {
	n.logger.WarnContext(ctx, "Item is at or below its reorder threshold",
		"sku", it.SKU(),
		"name", it.Name(),
		"available", available.String(),
		"threshold", it.ReorderThreshold().String(),
		"unit", it.Unit(),
	)
}
