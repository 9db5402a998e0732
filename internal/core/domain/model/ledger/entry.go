package ledger

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
	// ErrEntryIsNotConstructed is returned when an Entry instance was not
	// created through the NewEntry constructor.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

	// ErrActorIsRequired is returned when attempting to create an entry without an actor.
	ErrActorIsRequired = errs.NewValueIsRequiredError("actor")
)

// Entry is one immutable record in the stock transaction log.
//
// The quantity is signed: shipments consume stock and are negative,
// receipts, reservations and returns carry the moved amount as positive,
// adjustments go either way. Entries are never mutated or deleted once
// written.
type Entry struct {
	// id is the unique identifier for the entry
	id kernel.UUID

	// entryType classifies the movement
	entryType EntryType

	// qty is the signed moved quantity (never zero)
	qty decimal.Decimal

	// itemID references the moved item
	itemID kernel.UUID

	// batchID references the batch the movement applies to
	batchID kernel.UUID

	// orderID references the order that caused the movement (nil for receiving)
	orderID *kernel.UUID

	// shipmentID references the shipment for Ship entries (nil otherwise)
	shipmentID *kernel.UUID

	// actor identifies who triggered the movement
	actor string

	// note carries a free-form remark, such as a pack discrepancy reason
	note string

	// occurredAt is when the movement happened
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewEntry creates an immutable transaction log entry with validation.
// The quantity must be non-zero; its sign follows the entry type convention.
func NewEntry(
	id kernel.UUID,
	entryType EntryType,
	qty decimal.Decimal,
	itemID, batchID kernel.UUID,
	orderID, shipmentID *kernel.UUID,
	actor, note string,
	occurredAt time.Time,
) (*Entry, error) {
	e := &Entry{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setEntryType(entryType),
		e.setQty(qty),
		e.setItemID(itemID),
		e.setBatchID(batchID),
		e.setActor(actor),
	); err != nil {
		return nil, err
	}

	e.orderID = orderID
	e.shipmentID = shipmentID
	e.note = note
	e.occurredAt = occurredAt
	return e, nil
}

// RestoreEntry reconstructs an Entry from persistent storage.
func RestoreEntry(
	id kernel.UUID,
	entryType EntryType,
	qty decimal.Decimal,
	itemID, batchID kernel.UUID,
	orderID, shipmentID *kernel.UUID,
	actor, note string,
	occurredAt time.Time,
) (*Entry, error) {
	return NewEntry(id, entryType, qty, itemID, batchID, orderID, shipmentID, actor, note, occurredAt)
}

// Validate ensures the Entry was properly constructed.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// Type returns the movement classification.
func (e *Entry) Type() EntryType {
	return e.entryType
}

// Qty returns the signed moved quantity.
func (e *Entry) Qty() decimal.Decimal {
	return e.qty
}

// ItemID returns the identifier of the moved item.
func (e *Entry) ItemID() kernel.UUID {
	return e.itemID
}

// BatchID returns the identifier of the affected batch.
func (e *Entry) BatchID() kernel.UUID {
	return e.batchID
}

// OrderID returns the causing order's identifier, or nil for receiving.
func (e *Entry) OrderID() *kernel.UUID {
	return e.orderID
}

// ShipmentID returns the shipment identifier for Ship entries, nil otherwise.
func (e *Entry) ShipmentID() *kernel.UUID {
	return e.shipmentID
}

// Actor returns who triggered the movement.
func (e *Entry) Actor() string {
	return e.actor
}

// Note returns the free-form remark.
func (e *Entry) Note() string {
	return e.note
}

// OccurredAt returns when the movement happened.
func (e *Entry) OccurredAt() time.Time {
	return e.occurredAt
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setEntryType(entryType EntryType) error {
	if err := entryType.Validate(); err != nil {
		return err
	}
	e.entryType = entryType
	return nil
}

func (e *Entry) setQty(qty decimal.Decimal) error {
	if qty.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause(
			"qty is invalid",
			fmt.Errorf("zero quantity movements are not recorded"),
		)
	}
	e.qty = qty
	return nil
}

func (e *Entry) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	e.itemID = itemID
	return nil
}

func (e *Entry) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	e.batchID = batchID
	return nil
}

func (e *Entry) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	e.actor = actor
	return nil
}
