package commands

import (
	"context"
	"time"
)

// DeliverOrderCommandHandler confirms delivery of a shipped order.
//
// The order moves to its terminal delivered state and the shipment records
// the delivery time, in one transaction.
type DeliverOrderCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewDeliverOrderCommandHandler creates a handler for delivery confirmations.
func NewDeliverOrderCommandHandler(uowFactory ShipmentUoWFactory) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery confirmation.
func (h DeliverOrderCommandHandler) Handle(ctx context.Context, command DeliverOrderCommand) error {
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
	shipmentRepo := uow.ShipmentRepository()

	ord, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if err := ord.MarkDelivered(); err != nil {
		return err
	}

	shp, err := shipmentRepo.GetByOrder(ctx, ord.ID())
	if err != nil {
		return err
	}
	if err := shp.Deliver(time.Now()); err != nil {
		return err
	}

	if err := orderRepo.Update(ctx, ord); err != nil {
		return err
	}
	if err := shipmentRepo.Update(ctx, shp); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
