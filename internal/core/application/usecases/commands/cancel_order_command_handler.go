package commands

import (
	"context"
)

// CancelOrderCommandHandler abandons an order from any non-terminal state.
//
// Cancellation is the deallocation inverse followed by the terminal status:
// live reservations are returned to their batches with Return log entries,
// then the order becomes cancelled. Everything commits atomically.
type CancelOrderCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for cancellation operations.
func NewCancelOrderCommandHandler(uowFactory StockUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
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
	if _, err := ord.Status().Cancel(ord.OrderNo()); err != nil {
		return err
	}

	if ord.HasLiveAllocations() {
		if err := releaseOrderAllocations(ctx, uow, ord, command.Actor()); err != nil {
			return err
		}
	}

	if err := ord.Cancel(); err != nil {
		return err
	}
	if err := orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
