package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrAllocatePendingOrdersCommandIsNotConstructed = errors.New(
	"AllocatePendingOrdersCommand must be created via NewAllocatePendingOrdersCommand constructor",
)

// AllocatePendingOrdersCommand triggers a background allocation sweep over
// all orders still awaiting stock. Orders are processed oldest first, so
// earlier orders get first claim on expiring batches.
//
// Example:
//
//	cmd := NewAllocatePendingOrdersCommand()
//	handler := NewAllocatePendingOrdersCommandHandler(uowFactory, allocateHandler)
//	err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("Allocation sweep finished with errors: %v", err)
//	}
type AllocatePendingOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewAllocatePendingOrdersCommand creates a new command to trigger an
// allocation sweep. This is a parameterless command.
func NewAllocatePendingOrdersCommand() AllocatePendingOrdersCommand {
	return AllocatePendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrAllocatePendingOrdersCommandIsNotConstructed if validation fails.
func (c *AllocatePendingOrdersCommand) Validate() error {
	return c.guard.Validate(
		ErrAllocatePendingOrdersCommandIsNotConstructed,
	)
}
