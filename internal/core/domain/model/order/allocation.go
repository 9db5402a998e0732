package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrAllocationIsNotConstructed is returned when an Allocation instance was
// not created through the NewAllocation constructor.
var ErrAllocationIsNotConstructed = errors.New("Allocation must be created via NewAllocation constructor")

// Allocation links a portion of a line's requested quantity to a specific
// batch. It is the reservation record: the batch's available quantity has
// already been reduced by Qty when the allocation exists.
//
// Allocations are ephemeral. They are deleted when the order ships (the
// Ship transaction log entry becomes the permanent record) or when the
// order is deallocated.
type Allocation struct {
	// id is the unique identifier for the allocation
	id kernel.UUID

	// batchID references the batch the quantity was reserved from
	batchID kernel.UUID

	// qty is the reserved quantity (always positive)
	qty decimal.Decimal

	guard guard.ConstructorGuard
}

// NewAllocation creates a reservation of qty units against a batch.
func NewAllocation(id, batchID kernel.UUID, qty decimal.Decimal) (*Allocation, error) {
	a := &Allocation{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setBatchID(batchID),
		a.setQty(qty),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAllocation reconstructs an Allocation from persistent storage.
func RestoreAllocation(id, batchID kernel.UUID, qty decimal.Decimal) (*Allocation, error) {
	return NewAllocation(id, batchID, qty)
}

// Validate ensures the Allocation was properly constructed.
func (a *Allocation) Validate() error {
	if a == nil {
		return ErrAllocationIsNotConstructed
	}
	return a.guard.Validate(ErrAllocationIsNotConstructed)
}

// ID returns the allocation's unique identifier.
func (a *Allocation) ID() kernel.UUID {
	return a.id
}

// BatchID returns the identifier of the batch the quantity is reserved from.
func (a *Allocation) BatchID() kernel.UUID {
	return a.batchID
}

// Qty returns the reserved quantity.
func (a *Allocation) Qty() decimal.Decimal {
	return a.qty
}

func (a *Allocation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Allocation) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	a.batchID = batchID
	return nil
}

func (a *Allocation) setQty(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"qty is invalid",
			fmt.Errorf("%s is not greater than 0", qty),
		)
	}
	a.qty = qty
	return nil
}
