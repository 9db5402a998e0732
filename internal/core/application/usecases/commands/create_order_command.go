package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNoIsRequired      = errors.New("orderNo is required")
	ErrCustomerNameIsRequired = errors.New("customerName is required")
	ErrLineItemsAreRequired   = errors.New("at least one line item is required")
)

// LineItemInput is one requested item on a new order, identified by SKU.
type LineItemInput struct {
	SKU string
	Qty decimal.Decimal
}

// CreateOrderCommand represents a request to register a new customer order.
// The order starts in new status with nothing allocated.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "ORD-1001", "ACME Corp",
//	    []LineItemInput{{SKU: "SKU-001", Qty: decimal.NewFromInt(100)}})
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	orderNo      string
	customerName string
	lineItems    []LineItemInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates the identifiers and that every line item has a SKU and a
// positive quantity.
func NewCreateOrderCommand(orderID kernel.UUID, orderNo, customerName string, lineItems []LineItemInput) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setOrderNo(orderNo),
		command.setCustomerName(customerName),
		command.setLineItems(lineItems),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderNo returns the business order number.
func (c CreateOrderCommand) OrderNo() string {
	return c.orderNo
}

// CustomerName returns who placed the order.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// LineItems returns the requested items.
func (c CreateOrderCommand) LineItems() []LineItemInput {
	return c.lineItems
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrderNo(orderNo string) error {
	if orderNo == "" {
		return ErrOrderNoIsRequired
	}

	c.orderNo = orderNo
	return nil
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setLineItems(lineItems []LineItemInput) error {
	if len(lineItems) == 0 {
		return ErrLineItemsAreRequired
	}
	for _, li := range lineItems {
		if li.SKU == "" {
			return ErrSKUIsRequired
		}
		if !li.Qty.IsPositive() {
			return errs.NewValueIsInvalidErrorWithCause(
				"qty is invalid",
				fmt.Errorf("%s for sku %s is not greater than 0", li.Qty, li.SKU),
			)
		}
	}

	c.lineItems = lineItems
	return nil
}
