package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPickOrderCommandIsNotConstructed = errors.New(
	"PickOrderCommand must be created via NewPickOrderCommand constructor",
)

// PickOrderCommand represents warehouse staff reporting the quantities
// actually pulled for an allocated order. Lines absent from the picked map
// are taken as picked in full.
type PickOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string
	picked  map[kernel.UUID]decimal.Decimal

	guard guard.ConstructorGuard
}

// NewPickOrderCommand creates a command carrying the picked quantities per
// line. Quantities must not be negative.
func NewPickOrderCommand(orderID kernel.UUID, actor string, picked map[kernel.UUID]decimal.Decimal) (PickOrderCommand, error) {
	command := PickOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setPicked(picked),
	); err != nil {
		return PickOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c PickOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being picked.
func (c PickOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who performed the pick.
func (c PickOrderCommand) Actor() string {
	return c.actor
}

// Picked returns the reported quantity per line.
func (c PickOrderCommand) Picked() map[kernel.UUID]decimal.Decimal {
	return c.picked
}

func (c *PickOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PickOrderCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}

func (c *PickOrderCommand) setPicked(picked map[kernel.UUID]decimal.Decimal) error {
	for lineID, qty := range picked {
		if qty.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(
				"picked is invalid",
				fmt.Errorf("%s for line %s is negative", qty, lineID.String()),
			)
		}
	}

	c.picked = picked
	return nil
}
