package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPackOrderCommandIsNotConstructed = errors.New(
	"PackOrderCommand must be created via NewPackOrderCommand constructor",
)

// PackOrderCommand represents warehouse staff reporting the quantities
// actually packed for a picked order, with optional per-line remarks
// explaining discrepancies (damaged units, short picks).
type PackOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string
	packed  map[kernel.UUID]decimal.Decimal
	notes   map[kernel.UUID]string

	guard guard.ConstructorGuard
}

// NewPackOrderCommand creates a command carrying the packed quantities and
// discrepancy notes per line. Quantities must not be negative.
func NewPackOrderCommand(
	orderID kernel.UUID,
	actor string,
	packed map[kernel.UUID]decimal.Decimal,
	notes map[kernel.UUID]string,
) (PackOrderCommand, error) {
	command := PackOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setPacked(packed),
	); err != nil {
		return PackOrderCommand{}, err
	}

	command.notes = notes
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c PackOrderCommand) Validate() error {
	return c.guard.Validate(ErrPackOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being packed.
func (c PackOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who performed the pack.
func (c PackOrderCommand) Actor() string {
	return c.actor
}

// Packed returns the reported quantity per line.
func (c PackOrderCommand) Packed() map[kernel.UUID]decimal.Decimal {
	return c.packed
}

// Notes returns the per-line discrepancy remarks.
func (c PackOrderCommand) Notes() map[kernel.UUID]string {
	return c.notes
}

func (c *PackOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PackOrderCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}

func (c *PackOrderCommand) setPacked(packed map[kernel.UUID]decimal.Decimal) error {
	for lineID, qty := range packed {
		if qty.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(
				"packed is invalid",
				fmt.Errorf("%s for line %s is negative", qty, lineID.String()),
			)
		}
	}

	c.packed = packed
	return nil
}
