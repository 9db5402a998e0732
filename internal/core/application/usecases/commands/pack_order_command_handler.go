package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
)

// PackOrderCommandHandler records the packing of a picked order.
//
// Packed quantities overwrite each line's picked quantity; lines packed
// short or over against what was picked produce an Adjust entry carrying
// the reported note. The status moves to packed.
type PackOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPackOrderCommandHandler creates a handler for pack operations.
func NewPackOrderCommandHandler(uowFactory OrderUoWFactory) PackOrderCommandHandler {
	return PackOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pack command and returns the discrepancy report.
func (h PackOrderCommandHandler) Handle(ctx context.Context, command PackOrderCommand) (AdjustmentReport, error) {
	if err := command.Validate(); err != nil {
		return AdjustmentReport{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AdjustmentReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return AdjustmentReport{}, err
	}
	if err := ord.MarkPacked(); err != nil {
		return AdjustmentReport{}, err
	}

	var report AdjustmentReport
	var entries []*ledger.Entry
	now := time.Now()
	orderID := ord.ID()

	for _, line := range ord.Lines() {
		qty, reported := command.Packed()[line.ID()]
		if !reported {
			continue
		}

		delta := qty.Sub(line.QtyPicked())
		if err := line.SetPicked(qty); err != nil {
			return AdjustmentReport{}, err
		}
		if delta.IsZero() {
			continue
		}

		report.Adjustments = append(report.Adjustments, Adjustment{
			LineID:       line.ID(),
			ItemID:       line.ItemID(),
			QtyAllocated: line.QtyAllocated(),
			QtyHandled:   qty,
			Delta:        delta,
		})

		if len(line.Allocations()) == 0 {
			continue
		}

		note := command.Notes()[line.ID()]
		if note == "" {
			note = fmt.Sprintf("packed %s of %s picked", qty, qty.Sub(delta))
		}

		entry, err := ledger.NewEntry(
			kernel.NewUUID(),
			ledger.Adjust,
			delta,
			line.ItemID(),
			line.Allocations()[0].BatchID(),
			&orderID,
			nil,
			command.Actor(),
			note,
			now,
		)
		if err != nil {
			return AdjustmentReport{}, err
		}
		entries = append(entries, entry)
	}

	if err := orderRepo.Update(ctx, ord); err != nil {
		return AdjustmentReport{}, err
	}
	if len(entries) > 0 {
		if err := uow.LedgerRepository().Append(ctx, entries...); err != nil {
			return AdjustmentReport{}, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return AdjustmentReport{}, err
	}

	return report, nil
}
