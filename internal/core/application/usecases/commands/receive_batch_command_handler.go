package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
)

// ReceiveBatchCommandHandler registers arriving stock as a new batch.
//
// The batch starts Available with its full quantity and a positive Receive
// entry is appended to the transaction log, atomically.
type ReceiveBatchCommandHandler struct {
	uowFactory ReceiveUoWFactory
}

// NewReceiveBatchCommandHandler creates a handler for receiving operations.
func NewReceiveBatchCommandHandler(uowFactory ReceiveUoWFactory) ReceiveBatchCommandHandler {
	return ReceiveBatchCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the receive command and returns the new batch's identifier.
func (h ReceiveBatchCommandHandler) Handle(ctx context.Context, command ReceiveBatchCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	it, err := uow.ItemRepository().GetBySKU(ctx, command.SKU())
	if err != nil {
		return kernel.UUID{}, err
	}

	b, err := batch.NewBatch(kernel.NewUUID(), it.ID(), command.LotNo(), command.Qty(), command.ExpiryDate())
	if err != nil {
		return kernel.UUID{}, err
	}
	if err := uow.BatchRepository().Add(ctx, b); err != nil {
		return kernel.UUID{}, err
	}

	entry, err := ledger.NewEntry(
		kernel.NewUUID(),
		ledger.Receive,
		command.Qty(),
		it.ID(),
		b.ID(),
		nil,
		nil,
		command.Actor(),
		"",
		time.Now(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err := uow.LedgerRepository().Append(ctx, entry); err != nil {
		return kernel.UUID{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return b.ID(), nil
}
