package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// systemActor attributes log entries written by background sweeps.
const systemActor = "system"

// AllocatePendingOrdersCommandHandler sweeps orders awaiting stock and
// attempts to allocate each one. Each order is allocated in its own
// transaction, so one failing order does not hold up the rest.
type AllocatePendingOrdersCommandHandler struct {
	uowFactory      StockUoWFactory
	allocateHandler AllocateOrderCommandHandler
}

// NewAllocatePendingOrdersCommandHandler creates a handler for allocation sweeps.
func NewAllocatePendingOrdersCommandHandler(
	uowFactory StockUoWFactory,
	allocateHandler AllocateOrderCommandHandler,
) AllocatePendingOrdersCommandHandler {
	return AllocatePendingOrdersCommandHandler{
		uowFactory:      uowFactory,
		allocateHandler: allocateHandler,
	}
}

// Handle processes the sweep. It reads the pending set once, oldest
// first, then runs the regular allocation flow per order. Orders that
// progressed concurrently are skipped; other failures are collected and
// reported together after the sweep completes.
func (h AllocatePendingOrdersCommandHandler) Handle(ctx context.Context, command AllocatePendingOrdersCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	pendingIDs, err := h.pendingOrderIDs(ctx)
	if err != nil {
		return err
	}

	var sweepErrs []error
	for _, orderID := range pendingIDs {
		allocateCmd, err := NewAllocateOrderCommand(orderID, systemActor)
		if err != nil {
			sweepErrs = append(sweepErrs, err)
			continue
		}

		if _, err := h.allocateHandler.Handle(ctx, allocateCmd); err != nil {
			// An order allocated or cancelled between the read and the
			// attempt is not a sweep failure.
			if errors.Is(err, errs.ErrInvalidTransition) {
				continue
			}
			sweepErrs = append(sweepErrs, err)
		}
	}

	return errors.Join(sweepErrs...)
}

func (h AllocatePendingOrdersCommandHandler) pendingOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetAllInNewStatus(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(orders))
	for _, ord := range orders {
		ids = append(ids, ord.ID())
	}

	return ids, nil
}
