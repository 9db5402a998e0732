package batch

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrBatchIsNotConstructed is returned when a Batch instance was not created
	// through the NewBatch or RestoreBatch constructors.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")

	// ErrLotNoIsRequired is returned when attempting to create a batch without a lot number.
	ErrLotNoIsRequired = errs.NewValueIsRequiredError("lotNo")
)

// Batch represents a received lot of one item. It is the unit of stock:
// allocation reserves quantity from a batch, shipping consumes it.
//
// Batch follows these invariants:
//   - 0 <= availableQty <= receivedQty
//   - receivedQty is positive and fixed at receiving time
//   - status transitions follow the Status value object rules
//   - can only be created through NewBatch or RestoreBatch
type Batch struct {
	// id is the unique identifier for the batch
	id kernel.UUID

	// itemID references the item this batch holds stock of
	itemID kernel.UUID

	// lotNo is the supplier lot number, unique per item
	lotNo string

	// receivedQty is the quantity received into this batch
	receivedQty decimal.Decimal

	// availableQty is the quantity not yet reserved or consumed
	availableQty decimal.Decimal

	// observedQty is the available quantity at load time. Conditional
	// availability updates compare against it to detect lost races.
	observedQty decimal.Decimal

	// expiryDate is the date after which the batch is no longer eligible.
	// A nil expiry date means the batch never expires.
	expiryDate *time.Time

	// status represents the current lifecycle state of the batch
	status Status

	guard guard.ConstructorGuard
}

// NewBatch creates a freshly received Batch with validation.
//
// The new batch starts in Available status with availableQty equal to
// receivedQty. receivedQty must be positive.
func NewBatch(id, itemID kernel.UUID, lotNo string, receivedQty decimal.Decimal, expiryDate *time.Time) (*Batch, error) {
	b := &Batch{
		status: Available,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setItemID(itemID),
		b.setLotNo(lotNo),
		b.setReceivedQty(receivedQty),
	); err != nil {
		return nil, err
	}

	b.availableQty = receivedQty
	b.observedQty = receivedQty
	b.expiryDate = expiryDate
	return b, nil
}

// RestoreBatch reconstructs a Batch from persistent storage, preserving the
// persisted available quantity and status.
func RestoreBatch(
	id, itemID kernel.UUID,
	lotNo string,
	receivedQty, availableQty decimal.Decimal,
	expiryDate *time.Time,
	status Status,
) (*Batch, error) {
	b := &Batch{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setItemID(itemID),
		b.setLotNo(lotNo),
		b.setReceivedQty(receivedQty),
		b.setAvailableQty(availableQty),
		b.setStatus(status),
	); err != nil {
		return nil, err
	}

	b.observedQty = b.availableQty
	b.expiryDate = expiryDate
	return b, nil
}

// Validate ensures the Batch was properly constructed.
func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}
	return b.guard.Validate(ErrBatchIsNotConstructed)
}

// IsEqual compares two batches by their unique identifiers.
func (b *Batch) IsEqual(other *Batch) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the batch's unique identifier.
func (b *Batch) ID() kernel.UUID {
	return b.id
}

// ItemID returns the identifier of the item this batch holds.
func (b *Batch) ItemID() kernel.UUID {
	return b.itemID
}

// LotNo returns the supplier lot number.
func (b *Batch) LotNo() string {
	return b.lotNo
}

// ReceivedQty returns the quantity originally received into the batch.
func (b *Batch) ReceivedQty() decimal.Decimal {
	return b.receivedQty
}

// AvailableQty returns the quantity not yet reserved or consumed.
func (b *Batch) AvailableQty() decimal.Decimal {
	return b.availableQty
}

// ObservedQty returns the available quantity as it was when the aggregate
// was loaded. Persistence uses it as the optimistic concurrency token for
// conditional availability updates.
func (b *Batch) ObservedQty() decimal.Decimal {
	return b.observedQty
}

// ExpiryDate returns the expiry date, or nil if the batch never expires.
func (b *Batch) ExpiryDate() *time.Time {
	return b.expiryDate
}

// Status returns the current status of the batch.
func (b *Batch) Status() Status {
	return b.status
}

// IsExpiredAt reports whether the batch has passed its expiry date as of
// the given time. A batch without an expiry date never expires.
func (b *Batch) IsExpiredAt(asOf time.Time) bool {
	if b.expiryDate == nil {
		return false
	}
	return b.expiryDate.Before(asOf)
}

// EligibleAt reports whether the batch can supply allocations as of the
// given time: it must be Available, hold stock, and not be expired.
func (b *Batch) EligibleAt(asOf time.Time) bool {
	return b.status == Available &&
		b.availableQty.IsPositive() &&
		!b.IsExpiredAt(asOf)
}

// Reserve decrements the available quantity by qty.
//
// Business rules:
//   - qty must be positive
//   - qty must not exceed the current available quantity
//
// Returns an error and leaves the batch unchanged if either rule is violated.
func (b *Batch) Reserve(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"qty is invalid",
			fmt.Errorf("%s is not greater than 0", qty),
		)
	}
	if qty.GreaterThan(b.availableQty) {
		return errs.NewValueIsInvalidErrorWithCause(
			"qty is invalid",
			fmt.Errorf("%s exceeds available quantity %s of lot %s", qty, b.availableQty, b.lotNo),
		)
	}

	b.availableQty = b.availableQty.Sub(qty)
	return nil
}

// Release returns previously reserved quantity back to the batch.
//
// Business rules:
//   - qty must be positive
//   - the released quantity must not push available above received
//
// Returns an error and leaves the batch unchanged if either rule is violated.
func (b *Batch) Release(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"qty is invalid",
			fmt.Errorf("%s is not greater than 0", qty),
		)
	}
	if b.availableQty.Add(qty).GreaterThan(b.receivedQty) {
		return errs.NewValueIsInvalidErrorWithCause(
			"qty is invalid",
			fmt.Errorf("releasing %s would exceed received quantity %s of lot %s", qty, b.receivedQty, b.lotNo),
		)
	}

	b.availableQty = b.availableQty.Add(qty)
	return nil
}

// Hold moves the batch into Quarantine.
func (b *Batch) Hold() error {
	newStatus, err := b.status.Hold()
	if err != nil {
		return err
	}
	b.status = newStatus
	return nil
}

// ReleaseHold moves the batch from Quarantine back to Available.
func (b *Batch) ReleaseHold() error {
	newStatus, err := b.status.ReleaseHold()
	if err != nil {
		return err
	}
	b.status = newStatus
	return nil
}

// Expire marks the batch as Expired.
func (b *Batch) Expire() error {
	newStatus, err := b.status.Expire()
	if err != nil {
		return err
	}
	b.status = newStatus
	return nil
}

func (b *Batch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Batch) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	b.itemID = itemID
	return nil
}

func (b *Batch) setLotNo(lotNo string) error {
	if lotNo == "" {
		return ErrLotNoIsRequired
	}
	b.lotNo = lotNo
	return nil
}

func (b *Batch) setReceivedQty(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"receivedQty is invalid",
			fmt.Errorf("%s is not greater than 0", qty),
		)
	}
	b.receivedQty = qty
	return nil
}

func (b *Batch) setAvailableQty(qty decimal.Decimal) error {
	if qty.IsNegative() || qty.GreaterThan(b.receivedQty) {
		return errs.NewValueIsInvalidErrorWithCause(
			"availableQty is invalid",
			fmt.Errorf("%s is not between 0 and received quantity %s", qty, b.receivedQty),
		)
	}
	b.availableQty = qty
	return nil
}

func (b *Batch) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	b.status = status
	return nil
}
