package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// CreateOrderCommandHandler registers a new customer order.
//
// Each line item's SKU is resolved against the catalog; unknown SKUs fail
// the whole command. The order is persisted in new status awaiting
// allocation.
type CreateOrderCommandHandler struct {
	uowFactory CreateOrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(uowFactory CreateOrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order registration command.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
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

	itemRepo := uow.ItemRepository()

	lines := make([]*order.Line, 0, len(command.LineItems()))
	for _, li := range command.LineItems() {
		it, err := itemRepo.GetBySKU(ctx, li.SKU)
		if err != nil {
			return err
		}

		line, err := order.NewLine(kernel.NewUUID(), it.ID(), li.Qty)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	ord, err := order.NewOrder(command.OrderID(), command.OrderNo(), command.CustomerName(), lines)
	if err != nil {
		return err
	}

	if err := uow.OrderRepository().Add(ctx, ord); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
