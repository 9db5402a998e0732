package services

import (
	"time"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/collections"

	"github.com/shopspring/decimal"
)

// LineResult reports the allocation outcome for a single order line.
// Fulfilled < Requested means the line is partially or fully unfulfilled,
// which is a reportable result, not an error.
type LineResult struct {
	LineID    kernel.UUID
	ItemID    kernel.UUID
	Requested decimal.Decimal
	Fulfilled decimal.Decimal
}

// Result reports the outcome of one allocation pass over an order.
type Result struct {
	Lines          []LineResult
	TotalFulfilled decimal.Decimal
}

// NothingAllocated reports whether the pass reserved no stock at all.
// The caller leaves such an order in its current status.
func (r Result) NothingAllocated() bool {
	return r.TotalFulfilled.IsZero()
}

// Allocator is a domain service that reserves batch stock against an
// order's lines using the First-Expired-First-Out policy.
//
// Business rules:
//   - Lines are processed in placement order (FIFO)
//   - Within a line, stock is drawn from the batch with the nearest
//     expiry date first; batches without an expiry date come last
//   - Each draw takes min(remaining, batch available)
//   - Partial fulfillment is recorded in the result, never an error
//   - The order advances to allocated only if at least one unit was
//     reserved across all lines
//
// The service mutates the order (allocations on its lines, status) and the
// batches (available quantity) in memory. Callers persist both under one
// atomic unit of work.
//
// Example usage:
//
//	allocator := services.NewAllocator()
//	result, err := allocator.Allocate(ord, eligible, time.Now())
//	if err != nil {
//	    return err
//	}
//	if result.NothingAllocated() {
//	    // surface a "nothing available" result, order stays new
//	}
type Allocator struct{}

// NewAllocator creates a new Allocator instance.
func NewAllocator() Allocator {
	return Allocator{}
}

// Allocate runs one FEFO allocation pass over the order.
//
// eligibleByItem maps each line's item to its candidate batches sorted
// ascending by (expiry date, id), with never-expiring batches last. Sorting
// is the loading repository's contract; the allocator re-checks eligibility
// as of asOf but does not re-sort.
//
// Lines are drained through a FIFO queue and candidates through a LIFO
// stack: pushing the ascending-sorted batches in reverse makes the pop
// order earliest-expiry-first.
func (a Allocator) Allocate(
	o *order.Order,
	eligibleByItem map[kernel.UUID][]*batch.Batch,
	asOf time.Time,
) (Result, error) {
	if err := o.Validate(); err != nil {
		return Result{}, err
	}

	pending, err := a.enqueueLines(o.Lines())
	if err != nil {
		return Result{}, err
	}

	result := Result{TotalFulfilled: decimal.Zero}
	for !pending.IsEmpty() {
		line, err := pending.Dequeue()
		if err != nil {
			return Result{}, err
		}

		fulfilled, err := a.allocateLine(line, eligibleByItem[line.ItemID()], asOf)
		if err != nil {
			return Result{}, err
		}

		result.Lines = append(result.Lines, LineResult{
			LineID:    line.ID(),
			ItemID:    line.ItemID(),
			Requested: line.QtyRequested(),
			Fulfilled: fulfilled,
		})
		result.TotalFulfilled = result.TotalFulfilled.Add(fulfilled)
	}

	if !result.NothingAllocated() {
		if err := o.MarkAllocated(); err != nil {
			return Result{}, err
		}
	}

	return result, nil
}

// enqueueLines loads the order's lines into a FIFO queue so they are
// served in placement order.
func (a Allocator) enqueueLines(lines []*order.Line) (*collections.Queue[*order.Line], error) {
	pending := collections.NewQueue[*order.Line](len(lines))
	for _, line := range lines {
		if err := pending.Enqueue(line); err != nil {
			return nil, err
		}
	}
	return pending, nil
}

// allocateLine draws stock for one line from its candidate batches and
// returns the fulfilled quantity.
func (a Allocator) allocateLine(line *order.Line, candidates []*batch.Batch, asOf time.Time) (decimal.Decimal, error) {
	fulfilled := decimal.Zero
	remaining := line.Remaining()
	if !remaining.IsPositive() || len(candidates) == 0 {
		return fulfilled, nil
	}

	selection, err := a.pushCandidates(candidates, asOf)
	if err != nil {
		return decimal.Zero, err
	}

	for remaining.IsPositive() && !selection.IsEmpty() {
		b, err := selection.Pop()
		if err != nil {
			return decimal.Zero, err
		}

		take := decimal.Min(remaining, b.AvailableQty())
		if !take.IsPositive() {
			continue
		}

		if err := b.Reserve(take); err != nil {
			return decimal.Zero, err
		}
		if err := line.RecordAllocation(b.ID(), take); err != nil {
			return decimal.Zero, err
		}

		fulfilled = fulfilled.Add(take)
		remaining = remaining.Sub(take)
	}

	return fulfilled, nil
}

// pushCandidates loads eligible batches onto a LIFO stack in reverse, so
// popping yields the earliest expiry first.
func (a Allocator) pushCandidates(candidates []*batch.Batch, asOf time.Time) (*collections.Stack[*batch.Batch], error) {
	selection := collections.NewStack[*batch.Batch](len(candidates))
	for i := len(candidates) - 1; i >= 0; i-- {
		b := candidates[i]
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if !b.EligibleAt(asOf) {
			continue
		}
		if err := selection.Push(b); err != nil {
			return nil, err
		}
	}
	return selection, nil
}
