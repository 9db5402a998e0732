package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through the NewLine constructor.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is one requested item on an order. It tracks how much of the request
// has been reserved (qtyAllocated, the sum of its live allocations) and how
// much warehouse staff actually picked (qtyPicked).
//
// Invariant: qtyAllocated never exceeds qtyRequested.
type Line struct {
	// id is the unique identifier for the line
	id kernel.UUID

	// itemID references the requested catalog item
	itemID kernel.UUID

	// qtyRequested is the quantity the customer ordered
	qtyRequested decimal.Decimal

	// qtyAllocated is the sum of live allocation quantities
	qtyAllocated decimal.Decimal

	// qtyPicked is the quantity physically pulled from the shelves
	qtyPicked decimal.Decimal

	// allocations are the live batch reservations backing this line
	allocations []*Allocation

	guard guard.ConstructorGuard
}

// NewLine creates a new order line with validation. The line starts with no
// allocations and nothing picked.
func NewLine(id, itemID kernel.UUID, qtyRequested decimal.Decimal) (*Line, error) {
	l := &Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setID(id),
		l.setItemID(itemID),
		l.setQtyRequested(qtyRequested),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreLine reconstructs a Line and its live allocations from persistent
// storage. The persisted qtyAllocated must equal the sum of the restored
// allocation quantities.
func RestoreLine(
	id, itemID kernel.UUID,
	qtyRequested, qtyAllocated, qtyPicked decimal.Decimal,
	allocations []*Allocation,
) (*Line, error) {
	l, err := NewLine(id, itemID, qtyRequested)
	if err != nil {
		return nil, err
	}

	sum := decimal.Zero
	for _, a := range allocations {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		sum = sum.Add(a.Qty())
	}
	if !sum.Equal(qtyAllocated) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"qtyAllocated is invalid",
			fmt.Errorf("%s does not match allocation sum %s", qtyAllocated, sum),
		)
	}
	if qtyAllocated.GreaterThan(qtyRequested) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"qtyAllocated is invalid",
			fmt.Errorf("%s exceeds requested quantity %s", qtyAllocated, qtyRequested),
		)
	}
	if qtyPicked.IsNegative() {
		return nil, errs.NewValueIsInvalidError("qtyPicked")
	}

	l.allocations = allocations
	l.qtyAllocated = qtyAllocated
	l.qtyPicked = qtyPicked
	return l, nil
}

// Validate ensures the Line was properly constructed.
func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// ItemID returns the identifier of the requested item.
func (l *Line) ItemID() kernel.UUID {
	return l.itemID
}

// QtyRequested returns the quantity the customer ordered.
func (l *Line) QtyRequested() decimal.Decimal {
	return l.qtyRequested
}

// QtyAllocated returns the sum of live allocation quantities.
func (l *Line) QtyAllocated() decimal.Decimal {
	return l.qtyAllocated
}

// QtyPicked returns the quantity physically picked.
func (l *Line) QtyPicked() decimal.Decimal {
	return l.qtyPicked
}

// Allocations returns the live batch reservations backing this line.
func (l *Line) Allocations() []*Allocation {
	return l.allocations
}

// Remaining returns the unreserved portion of the request.
func (l *Line) Remaining() decimal.Decimal {
	return l.qtyRequested.Sub(l.qtyAllocated)
}

// RecordAllocation attaches a new reservation of qty against batchID.
//
// Business rules:
//   - qty must be positive
//   - the resulting qtyAllocated must not exceed qtyRequested
func (l *Line) RecordAllocation(batchID kernel.UUID, qty decimal.Decimal) error {
	if l.qtyAllocated.Add(qty).GreaterThan(l.qtyRequested) {
		return errs.NewValueIsInvalidErrorWithCause(
			"qty is invalid",
			fmt.Errorf("allocating %s would exceed requested quantity %s", qty, l.qtyRequested),
		)
	}

	a, err := NewAllocation(kernel.NewUUID(), batchID, qty)
	if err != nil {
		return err
	}

	l.allocations = append(l.allocations, a)
	l.qtyAllocated = l.qtyAllocated.Add(qty)
	return nil
}

// ClearAllocations drops every live allocation and resets qtyAllocated to
// zero. Used when reservations are released or consumed by shipping.
func (l *Line) ClearAllocations() {
	l.allocations = nil
	l.qtyAllocated = decimal.Zero
}

// SetPicked records the quantity actually pulled for this line.
func (l *Line) SetPicked(qty decimal.Decimal) error {
	if qty.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"qty is invalid",
			fmt.Errorf("%s is negative", qty),
		)
	}
	l.qtyPicked = qty
	return nil
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	l.itemID = itemID
	return nil
}

func (l *Line) setQtyRequested(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"qtyRequested is invalid",
			fmt.Errorf("%s is not greater than 0", qty),
		)
	}
	l.qtyRequested = qty
	return nil
}
