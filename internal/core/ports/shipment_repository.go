package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipments.
type ShipmentRepository interface {
	// Add persists a new shipment.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// GetByOrder retrieves the shipment created for the given order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*shipment.Shipment, error)
}
