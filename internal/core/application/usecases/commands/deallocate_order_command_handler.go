package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
)

// DeallocateOrderCommandHandler reverses every live allocation of an order.
//
// For each allocation the reserved quantity is returned to its batch, a
// positive Return entry is appended to the log, and the allocation is
// removed. The order drops back to new. All of it commits atomically; an
// order with nothing allocated commits as a no-op.
type DeallocateOrderCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewDeallocateOrderCommandHandler creates a handler for deallocation operations.
func NewDeallocateOrderCommandHandler(uowFactory StockUoWFactory) DeallocateOrderCommandHandler {
	return DeallocateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deallocation command.
func (h DeallocateOrderCommandHandler) Handle(ctx context.Context, command DeallocateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if _, err := ord.Status().Deallocate(ord.OrderNo()); err != nil {
		return err
	}

	if !ord.HasLiveAllocations() {
		// second deallocation of the same order is a no-op
		return uow.Commit(ctx)
	}

	if err := releaseOrderAllocations(ctx, uow, ord, command.Actor()); err != nil {
		return err
	}

	if err := ord.ResetToNew(); err != nil {
		return err
	}
	if err := orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// releaseOrderAllocations returns reserved stock to its batches and appends
// the Return log entries. The order's lines still hold their allocations
// when this runs; the caller clears them afterwards. Shared by the
// deallocate and cancel handlers.
func releaseOrderAllocations(
	ctx context.Context,
	uow StockUoW,
	ord *order.Order,
	actor string,
) error {
	batchRepo := uow.BatchRepository()
	ledgerRepo := uow.LedgerRepository()

	batches, err := batchRepo.GetForUpdate(ctx, allocatedBatchIDsOf(ord))
	if err != nil {
		return err
	}

	now := time.Now()
	orderID := ord.ID()
	var entries []*ledger.Entry
	for _, line := range ord.Lines() {
		for _, alloc := range line.Allocations() {
			b, err := batchByID(batches, alloc.BatchID())
			if err != nil {
				return err
			}
			if err := b.Release(alloc.Qty()); err != nil {
				return err
			}

			entry, err := ledger.NewEntry(
				kernel.NewUUID(),
				ledger.Return,
				alloc.Qty(),
				line.ItemID(),
				alloc.BatchID(),
				&orderID,
				nil,
				actor,
				"",
				now,
			)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
	}

	for _, b := range batches {
		if b.AvailableQty().Equal(b.ObservedQty()) {
			continue
		}
		if err := batchRepo.UpdateAvailability(ctx, b); err != nil {
			return err
		}
	}

	return ledgerRepo.Append(ctx, entries...)
}

// allocatedBatchIDsOf collects the distinct batches referenced by the
// order's live allocations.
func allocatedBatchIDsOf(ord *order.Order) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{})
	var ids []kernel.UUID
	for _, line := range ord.Lines() {
		for _, alloc := range line.Allocations() {
			if _, ok := seen[alloc.BatchID()]; ok {
				continue
			}
			seen[alloc.BatchID()] = struct{}{}
			ids = append(ids, alloc.BatchID())
		}
	}
	return ids
}
