package commands

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrReceiveBatchCommandIsNotConstructed = errors.New(
		"ReceiveBatchCommand must be created via NewReceiveBatchCommand constructor",
	)
	ErrSKUIsRequired   = errors.New("sku is required")
	ErrLotNoIsRequired = errors.New("lotNo is required")
)

// ReceiveBatchCommand represents stock arriving at the warehouse: a new
// batch of an existing item under a supplier lot number, optionally with
// an expiry date.
type ReceiveBatchCommand struct { //nolint:recvcheck //using for validation
	sku        string
	lotNo      string
	qty        decimal.Decimal
	expiryDate *time.Time
	actor      string

	guard guard.ConstructorGuard
}

// NewReceiveBatchCommand creates a command to receive a batch of stock.
// The quantity must be positive; a nil expiry date means the stock never
// expires.
func NewReceiveBatchCommand(sku, lotNo string, qty decimal.Decimal, expiryDate *time.Time, actor string) (ReceiveBatchCommand, error) {
	command := ReceiveBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSKU(sku),
		command.setLotNo(lotNo),
		command.setQty(qty),
		command.setActor(actor),
	); err != nil {
		return ReceiveBatchCommand{}, err
	}

	command.expiryDate = expiryDate
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveBatchCommand) Validate() error {
	return c.guard.Validate(ErrReceiveBatchCommandIsNotConstructed)
}

// SKU returns the business identity of the received item.
func (c ReceiveBatchCommand) SKU() string {
	return c.sku
}

// LotNo returns the supplier lot number.
func (c ReceiveBatchCommand) LotNo() string {
	return c.lotNo
}

// Qty returns the received quantity.
func (c ReceiveBatchCommand) Qty() decimal.Decimal {
	return c.qty
}

// ExpiryDate returns the expiry date, or nil if the stock never expires.
func (c ReceiveBatchCommand) ExpiryDate() *time.Time {
	return c.expiryDate
}

// Actor returns who received the stock.
func (c ReceiveBatchCommand) Actor() string {
	return c.actor
}

func (c *ReceiveBatchCommand) setSKU(sku string) error {
	if sku == "" {
		return ErrSKUIsRequired
	}

	c.sku = sku
	return nil
}

func (c *ReceiveBatchCommand) setLotNo(lotNo string) error {
	if lotNo == "" {
		return ErrLotNoIsRequired
	}

	c.lotNo = lotNo
	return nil
}

func (c *ReceiveBatchCommand) setQty(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"qty is invalid",
			fmt.Errorf("%s is not greater than 0", qty),
		)
	}

	c.qty = qty
	return nil
}

func (c *ReceiveBatchCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
