package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// maxAllocationAttempts bounds the internal retries after losing an
// optimistic concurrency race on batch availability.
const maxAllocationAttempts = 3

// AllocateOrderCommandHandler orchestrates the FEFO allocation of one order.
//
// Each attempt runs in its own transaction: eligible batch rows are locked,
// the allocator reserves stock in memory, then batch decrements (guarded by
// the observed quantity), the order update and the Reserve log entries are
// committed together. Losing the optimistic race rolls everything back and
// retries the whole operation up to maxAllocationAttempts times.
//
// Example:
//
//	handler := NewAllocateOrderCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if result.NothingAllocated() {
//	    log.Println("nothing available, order left as is")
//	}
type AllocateOrderCommandHandler struct {
	uowFactory StockUoWFactory
	allocator  services.Allocator
}

// NewAllocateOrderCommandHandler creates a handler for allocation operations.
func NewAllocateOrderCommandHandler(uowFactory StockUoWFactory) AllocateOrderCommandHandler {
	return AllocateOrderCommandHandler{
		uowFactory: uowFactory,
		allocator:  services.NewAllocator(),
	}
}

// Handle processes the allocation command, retrying internally on
// ConcurrentModification before surfacing it as a transient failure.
func (h AllocateOrderCommandHandler) Handle(ctx context.Context, command AllocateOrderCommand) (services.Result, error) {
	if err := command.Validate(); err != nil {
		return services.Result{}, err
	}

	var lastErr error
	for attempt := 0; attempt < maxAllocationAttempts; attempt++ {
		result, err := h.allocateOnce(ctx, command)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, errs.ErrConcurrentModification) {
			return services.Result{}, err
		}
		lastErr = err
	}

	return services.Result{}, lastErr
}

func (h AllocateOrderCommandHandler) allocateOnce(ctx context.Context, command AllocateOrderCommand) (services.Result, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Result{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	batchRepo := uow.BatchRepository()
	ledgerRepo := uow.LedgerRepository()

	ord, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return services.Result{}, err
	}
	if _, err := ord.Status().Allocate(ord.OrderNo()); err != nil {
		return services.Result{}, err
	}

	asOf := time.Now()
	eligible, err := batchRepo.GetEligibleForUpdate(ctx, itemIDsOf(ord), asOf)
	if err != nil {
		return services.Result{}, err
	}

	result, err := h.allocator.Allocate(ord, eligible, asOf)
	if err != nil {
		return services.Result{}, err
	}
	if result.NothingAllocated() {
		return result, uow.Commit(ctx)
	}

	for _, batches := range eligible {
		for _, b := range batches {
			if b.AvailableQty().Equal(b.ObservedQty()) {
				continue
			}
			if err := batchRepo.UpdateAvailability(ctx, b); err != nil {
				return services.Result{}, err
			}
		}
	}

	if err := orderRepo.Update(ctx, ord); err != nil {
		return services.Result{}, err
	}

	entries, err := reserveEntries(ord, command.Actor(), asOf)
	if err != nil {
		return services.Result{}, err
	}
	if err := ledgerRepo.Append(ctx, entries...); err != nil {
		return services.Result{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return services.Result{}, err
	}

	return result, nil
}

// itemIDsOf collects the distinct items requested by the order's lines.
func itemIDsOf(ord *order.Order) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(ord.Lines()))
	ids := make([]kernel.UUID, 0, len(ord.Lines()))
	for _, line := range ord.Lines() {
		if _, ok := seen[line.ItemID()]; ok {
			continue
		}
		seen[line.ItemID()] = struct{}{}
		ids = append(ids, line.ItemID())
	}
	return ids
}

// reserveEntries builds one Reserve log entry per fresh allocation,
// carrying the reserved quantity.
func reserveEntries(ord *order.Order, actor string, asOf time.Time) ([]*ledger.Entry, error) {
	orderID := ord.ID()
	var entries []*ledger.Entry
	for _, line := range ord.Lines() {
		for _, alloc := range line.Allocations() {
			entry, err := ledger.NewEntry(
				kernel.NewUUID(),
				ledger.Reserve,
				alloc.Qty(),
				line.ItemID(),
				alloc.BatchID(),
				&orderID,
				nil,
				actor,
				"",
				asOf,
			)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// batchByID finds a loaded batch by identifier among the locked candidates.
func batchByID(batches []*batch.Batch, id kernel.UUID) (*batch.Batch, error) {
	for _, b := range batches {
		if b.ID().IsEqual(id) {
			return b, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("batchID", id.String())
}
