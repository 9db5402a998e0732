package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAllocateOrderCommandIsNotConstructed = errors.New(
		"AllocateOrderCommand must be created via NewAllocateOrderCommand constructor",
	)
	ErrActorIsRequired = errors.New("actor is required")
)

// AllocateOrderCommand represents a request to reserve batch stock against
// an order's lines using the FEFO policy.
//
// Example:
//
//	cmd, err := NewAllocateOrderCommand(orderID, "system")
//	if err != nil {
//	    return fmt.Errorf("invalid allocation request: %w", err)
//	}
//
//	handler := NewAllocateOrderCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
type AllocateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

// NewAllocateOrderCommand creates a command to allocate stock to an order.
// Validates that the order ID is valid and the actor is not empty.
func NewAllocateOrderCommand(orderID kernel.UUID, actor string) (AllocateOrderCommand, error) {
	command := AllocateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
	); err != nil {
		return AllocateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAllocateOrderCommandIsNotConstructed if validation fails.
func (c AllocateOrderCommand) Validate() error {
	return c.guard.Validate(ErrAllocateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to allocate.
func (c AllocateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who requested the allocation.
func (c AllocateOrderCommand) Actor() string {
	return c.actor
}

func (c *AllocateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AllocateOrderCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
