package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// PickOrderCommandHandler records the physical pick of an allocated order.
//
// Every line's picked quantity is stored; lines whose pick deviates from
// their reservation produce an Adjust entry in the transaction log. The
// status moves to picked.
type PickOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPickOrderCommandHandler creates a handler for pick operations.
func NewPickOrderCommandHandler(uowFactory OrderUoWFactory) PickOrderCommandHandler {
	return PickOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pick command and returns the discrepancy report.
func (h PickOrderCommandHandler) Handle(ctx context.Context, command PickOrderCommand) (AdjustmentReport, error) {
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
	if err := ord.MarkPicked(); err != nil {
		return AdjustmentReport{}, err
	}

	report, entries, err := applyHandledQuantities(
		ord, command.Picked(), command.Actor(), "picked", time.Now(),
	)
	if err != nil {
		return AdjustmentReport{}, err
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

// applyHandledQuantities stores the reported quantity on each line and
// builds Adjust log entries for lines that deviate from their reservation.
// Lines absent from the handled map count as handled in full. The entries
// reference the line's first allocated batch; the note carries the detail.
func applyHandledQuantities(
	ord *order.Order,
	handled map[kernel.UUID]decimal.Decimal,
	actor, verb string,
	now time.Time,
) (AdjustmentReport, []*ledger.Entry, error) {
	var report AdjustmentReport
	var entries []*ledger.Entry
	orderID := ord.ID()

	for _, line := range ord.Lines() {
		qty, reported := handled[line.ID()]
		if !reported {
			qty = line.QtyAllocated()
		}
		if err := line.SetPicked(qty); err != nil {
			return AdjustmentReport{}, nil, err
		}

		delta := qty.Sub(line.QtyAllocated())
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
			// nothing was reserved for this line, no stock movement to adjust
			continue
		}

		entry, err := ledger.NewEntry(
			kernel.NewUUID(),
			ledger.Adjust,
			delta,
			line.ItemID(),
			line.Allocations()[0].BatchID(),
			&orderID,
			nil,
			actor,
			fmt.Sprintf("%s %s of %s allocated", verb, qty, line.QtyAllocated()),
			now,
		)
		if err != nil {
			return AdjustmentReport{}, nil, err
		}
		entries = append(entries, entry)
	}

	return report, entries, nil
}
