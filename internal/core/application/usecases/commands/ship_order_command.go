package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrShipOrderCommandIsNotConstructed = errors.New(
		"ShipOrderCommand must be created via NewShipOrderCommand constructor",
	)
	ErrCarrierIsRequired = errors.New("carrier is required")
	ErrAddressIsRequired = errors.New("address is required")
)

// ShipOrderCommand represents a request to hand an order's reserved stock
// to a carrier, consuming the reservations permanently.
//
// Example:
//
//	cmd, err := NewShipOrderCommand(orderID, "dock.supervisor", "DHL", "1 Warehouse Way", "")
//	if err != nil {
//	    return err
//	}
//	shp, err := handler.Handle(ctx, cmd)
type ShipOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string
	carrier string
	address string
	notes   string

	guard guard.ConstructorGuard
}

// NewShipOrderCommand creates a command to ship an order with the given
// carrier and destination.
func NewShipOrderCommand(orderID kernel.UUID, actor, carrier, address, notes string) (ShipOrderCommand, error) {
	command := ShipOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setCarrier(carrier),
		command.setAddress(address),
	); err != nil {
		return ShipOrderCommand{}, err
	}

	command.notes = notes
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to ship.
func (c ShipOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who requested the shipment.
func (c ShipOrderCommand) Actor() string {
	return c.actor
}

// Carrier returns the shipping company.
func (c ShipOrderCommand) Carrier() string {
	return c.carrier
}

// Address returns the destination address.
func (c ShipOrderCommand) Address() string {
	return c.address
}

// Notes returns the free-form handling remarks.
func (c ShipOrderCommand) Notes() string {
	return c.notes
}

func (c *ShipOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ShipOrderCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}

func (c *ShipOrderCommand) setCarrier(carrier string) error {
	if carrier == "" {
		return ErrCarrierIsRequired
	}

	c.carrier = carrier
	return nil
}

func (c *ShipOrderCommand) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}

	c.address = address
	return nil
}
