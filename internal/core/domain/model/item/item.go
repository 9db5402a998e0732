// Package item contains the catalog item entity.
//
// Items are created by catalog management outside the engine and are
// read-only here: the engine consults an item's identity and reorder
// threshold but never mutates it. Stock quantities live on batches, not on
// the item itself.
package item

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrSKUIsRequired is returned when attempting to create an item without a SKU.
	ErrSKUIsRequired = errs.NewValueIsRequiredError("sku")
	// ErrNameIsRequired is returned when attempting to create an item without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrReorderThresholdIsInvalid is returned when the reorder threshold is negative.
	ErrReorderThresholdIsInvalid = errs.NewValueIsInvalidError("reorder threshold")
	// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// defaultUnit is the unit of measure used when none is supplied.
const defaultUnit = "pcs"

// Item is a stock-tracked catalog entry identified by its SKU.
//
// Invariants:
//   - SKU and name are non-empty
//   - reorder threshold is never negative
//   - must be created through NewItem or RestoreItem
type Item struct {
	// id uniquely identifies the item
	id kernel.UUID
	// sku is the business identity of the item, unique across the catalog
	sku string
	// name is the human-readable item name
	name string
	// unit is the unit of measure (pcs, kg, box)
	unit string
	// reorderThreshold is the quantity level at or below which the item should be reordered
	reorderThreshold decimal.Decimal

	guard guard.ConstructorGuard
}

// NewItem creates a new Item with validation.
//
// An empty unit defaults to "pcs". The reorder threshold must not be
// negative; zero disables low-stock signaling for the item.
func NewItem(id kernel.UUID, sku, name, unit string, reorderThreshold decimal.Decimal) (*Item, error) {
	it := &Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		it.setID(id),
		it.setSKU(sku),
		it.setName(name),
		it.setUnit(unit),
		it.setReorderThreshold(reorderThreshold),
	); err != nil {
		return nil, err
	}

	return it, nil
}

// RestoreItem reconstructs an Item from persistent storage.
// It applies the same validation as NewItem.
func RestoreItem(id kernel.UUID, sku, name, unit string, reorderThreshold decimal.Decimal) (*Item, error) {
	return NewItem(id, sku, name, unit, reorderThreshold)
}

// Validate ensures the Item was properly constructed.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// SKU returns the item's business identity.
func (i *Item) SKU() string {
	return i.sku
}

// Name returns the human-readable item name.
func (i *Item) Name() string {
	return i.name
}

// Unit returns the unit of measure.
func (i *Item) Unit() string {
	return i.unit
}

// ReorderThreshold returns the low-stock threshold quantity.
func (i *Item) ReorderThreshold() decimal.Decimal {
	return i.reorderThreshold
}

// IsBelowThreshold reports whether totalAvailable has reached the reorder
// threshold. A zero threshold never triggers.
func (i *Item) IsBelowThreshold(totalAvailable decimal.Decimal) bool {
	if i.reorderThreshold.IsZero() {
		return false
	}
	return totalAvailable.LessThanOrEqual(i.reorderThreshold)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setSKU(sku string) error {
	if sku == "" {
		return ErrSKUIsRequired
	}
	i.sku = sku
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	i.name = name
	return nil
}

func (i *Item) setUnit(unit string) error {
	if unit == "" {
		unit = defaultUnit
	}
	i.unit = unit
	return nil
}

func (i *Item) setReorderThreshold(threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return ErrReorderThresholdIsInvalid
	}
	i.reorderThreshold = threshold
	return nil
}
