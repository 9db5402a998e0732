package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
)

// ShipOrderCommandHandler consumes an order's reservations and creates its
// shipment.
//
// Each live allocation becomes a negative Ship entry in the transaction
// log. Availability is not reduced again: the allocation already reserved
// the stock, the Ship entry records its permanent consumption. The
// allocations are then dropped, the shipment persisted, and the status
// moves to shipped. After commit every touched item is evaluated against
// its reorder threshold and breaches are published to the notifier.
type ShipOrderCommandHandler struct {
	uowFactory ShipmentUoWFactory
	notifier   ports.LowStockNotifier
}

// NewShipOrderCommandHandler creates a handler for shipping operations.
func NewShipOrderCommandHandler(uowFactory ShipmentUoWFactory, notifier ports.LowStockNotifier) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// lowStockAlert pairs an item with its availability at evaluation time.
// Alerts are published only after the shipping transaction commits.
type lowStockAlert struct {
	item      *item.Item
	available decimal.Decimal
}

// Handle processes the ship command and returns the created shipment.
func (h ShipOrderCommandHandler) Handle(ctx context.Context, command ShipOrderCommand) (*shipment.Shipment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}
	if _, err := ord.Status().Ship(ord.OrderNo()); err != nil {
		return nil, err
	}

	shippedAt := time.Now()
	shp, err := shipment.NewShipment(
		kernel.NewUUID(), ord.ID(), ord.OrderNo(),
		command.Carrier(), command.Address(), command.Notes(),
		shippedAt,
	)
	if err != nil {
		return nil, err
	}

	entries, touchedItems, err := h.consumptionEntries(ord, shp, command.Actor(), shippedAt)
	if err != nil {
		return nil, err
	}

	if err := ord.MarkShipped(); err != nil {
		return nil, err
	}
	if err := orderRepo.Update(ctx, ord); err != nil {
		return nil, err
	}
	if err := uow.ShipmentRepository().Add(ctx, shp); err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		if err := uow.LedgerRepository().Append(ctx, entries...); err != nil {
			return nil, err
		}
	}

	alerts, err := h.evaluateThresholds(ctx, uow, touchedItems)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, alert := range alerts {
		h.notifier.NotifyLowStock(ctx, alert.item, alert.available)
	}

	return shp, nil
}

// consumptionEntries builds one negative Ship log entry per live
// allocation. Must run before MarkShipped drops the allocations.
func (h ShipOrderCommandHandler) consumptionEntries(
	ord *order.Order,
	shp *shipment.Shipment,
	actor string,
	shippedAt time.Time,
) ([]*ledger.Entry, []kernel.UUID, error) {
	orderID := ord.ID()
	shipmentID := shp.ID()

	seen := make(map[kernel.UUID]struct{})
	var touched []kernel.UUID
	var entries []*ledger.Entry
	for _, line := range ord.Lines() {
		for _, alloc := range line.Allocations() {
			entry, err := ledger.NewEntry(
				kernel.NewUUID(),
				ledger.Ship,
				alloc.Qty().Neg(),
				line.ItemID(),
				alloc.BatchID(),
				&orderID,
				&shipmentID,
				actor,
				"",
				shippedAt,
			)
			if err != nil {
				return nil, nil, err
			}
			entries = append(entries, entry)
		}

		if len(line.Allocations()) == 0 {
			continue
		}
		if _, ok := seen[line.ItemID()]; ok {
			continue
		}
		seen[line.ItemID()] = struct{}{}
		touched = append(touched, line.ItemID())
	}

	return entries, touched, nil
}

// evaluateThresholds checks each touched item's summed availability against
// its reorder threshold inside the transaction, deferring notification to
// after commit.
func (h ShipOrderCommandHandler) evaluateThresholds(
	ctx context.Context,
	uow ShipmentUoW,
	itemIDs []kernel.UUID,
) ([]lowStockAlert, error) {
	itemRepo := uow.ItemRepository()

	var alerts []lowStockAlert
	for _, itemID := range itemIDs {
		it, err := itemRepo.Get(ctx, itemID)
		if err != nil {
			return nil, err
		}
		total, err := itemRepo.TotalAvailable(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if it.IsBelowThreshold(total) {
			alerts = append(alerts, lowStockAlert{item: it, available: total})
		}
	}

	return alerts, nil
}
