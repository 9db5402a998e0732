package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDeallocateOrderCommandIsNotConstructed = errors.New(
	"DeallocateOrderCommand must be created via NewDeallocateOrderCommand constructor",
)

// DeallocateOrderCommand represents a request to release every live
// reservation held by an order, returning the stock to its batches.
// Deallocating an order with no reservations is a no-op, not an error.
type DeallocateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

// NewDeallocateOrderCommand creates a command to release an order's reservations.
func NewDeallocateOrderCommand(orderID kernel.UUID, actor string) (DeallocateOrderCommand, error) {
	command := DeallocateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
	); err != nil {
		return DeallocateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DeallocateOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeallocateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to deallocate.
func (c DeallocateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who requested the deallocation.
func (c DeallocateOrderCommand) Actor() string {
	return c.actor
}

func (c *DeallocateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DeallocateOrderCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
