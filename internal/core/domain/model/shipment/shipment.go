package shipment

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through the NewShipment or RestoreShipment constructors.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrCarrierIsRequired is returned when attempting to create a shipment without a carrier.
	ErrCarrierIsRequired = errs.NewValueIsRequiredError("carrier")

	// ErrAddressIsRequired is returned when attempting to create a shipment without an address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
)

// shipmentNoTimestampLayout produces the timestamp suffix of a shipment number.
const shipmentNoTimestampLayout = "20060102150405"

// Shipment records the handover of an order's reserved stock to a carrier.
// There is at most one per order.
type Shipment struct {
	// id is the unique identifier for the shipment
	id kernel.UUID

	// orderID references the order this shipment fulfills
	orderID kernel.UUID

	// shipmentNo is derived from the order number plus the ship timestamp
	shipmentNo string

	// trackingNo is the globally unique carrier tracking identifier
	trackingNo string

	// carrier is the shipping company handling delivery
	carrier string

	// address is the destination address
	address string

	// notes carries free-form handling remarks
	notes string

	// shippedAt is when the shipment was created
	shippedAt time.Time

	// deliveredAt is when delivery was confirmed (nil until then)
	deliveredAt *time.Time

	// status represents the current state of the shipment
	status Status

	guard guard.ConstructorGuard
}

// NewShipment creates a Shipment for an order at the moment it ships.
//
// The shipment number is SHIP-<orderNo>-<timestamp> and the tracking number
// is a fresh UUID, making it globally unique.
func NewShipment(id, orderID kernel.UUID, orderNo, carrier, address, notes string, shippedAt time.Time) (*Shipment, error) {
	s := &Shipment{
		status: Created,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setCarrier(carrier),
		s.setAddress(address),
	); err != nil {
		return nil, err
	}
	if orderNo == "" {
		return nil, errs.NewValueIsRequiredError("orderNo")
	}

	s.shipmentNo = fmt.Sprintf("SHIP-%s-%s", orderNo, shippedAt.Format(shipmentNoTimestampLayout))
	s.trackingNo = kernel.NewUUID().String()
	s.notes = notes
	s.shippedAt = shippedAt
	return s, nil
}

// RestoreShipment reconstructs a Shipment from persistent storage.
func RestoreShipment(
	id, orderID kernel.UUID,
	shipmentNo, trackingNo, carrier, address, notes string,
	shippedAt time.Time,
	deliveredAt *time.Time,
	status Status,
) (*Shipment, error) {
	s := &Shipment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setCarrier(carrier),
		s.setAddress(address),
		s.setStatus(status),
	); err != nil {
		return nil, err
	}
	if shipmentNo == "" {
		return nil, errs.NewValueIsRequiredError("shipmentNo")
	}
	if trackingNo == "" {
		return nil, errs.NewValueIsRequiredError("trackingNo")
	}

	s.shipmentNo = shipmentNo
	s.trackingNo = trackingNo
	s.notes = notes
	s.shippedAt = shippedAt
	s.deliveredAt = deliveredAt
	return s, nil
}

// Validate ensures the Shipment was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// OrderID returns the identifier of the fulfilled order.
func (s *Shipment) OrderID() kernel.UUID {
	return s.orderID
}

// ShipmentNo returns the derived shipment number.
func (s *Shipment) ShipmentNo() string {
	return s.shipmentNo
}

// TrackingNo returns the globally unique tracking identifier.
func (s *Shipment) TrackingNo() string {
	return s.trackingNo
}

// Carrier returns the shipping company.
func (s *Shipment) Carrier() string {
	return s.carrier
}

// Address returns the destination address.
func (s *Shipment) Address() string {
	return s.address
}

// Notes returns the free-form handling remarks.
func (s *Shipment) Notes() string {
	return s.notes
}

// ShippedAt returns when the shipment was created.
func (s *Shipment) ShippedAt() time.Time {
	return s.shippedAt
}

// DeliveredAt returns when delivery was confirmed, or nil if not yet delivered.
func (s *Shipment) DeliveredAt() *time.Time {
	return s.deliveredAt
}

// Status returns the current status of the shipment.
func (s *Shipment) Status() Status {
	return s.status
}

// Depart marks the shipment as handed to the carrier.
func (s *Shipment) Depart() error {
	newStatus, err := s.status.Depart()
	if err != nil {
		return err
	}
	s.status = newStatus
	return nil
}

// Deliver confirms delivery at the given time.
func (s *Shipment) Deliver(at time.Time) error {
	newStatus, err := s.status.Deliver()
	if err != nil {
		return err
	}
	s.status = newStatus
	s.deliveredAt = &at
	return nil
}

// Cancel aborts the shipment before delivery.
func (s *Shipment) Cancel() error {
	newStatus, err := s.status.Cancel()
	if err != nil {
		return err
	}
	s.status = newStatus
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *Shipment) setCarrier(carrier string) error {
	if carrier == "" {
		return ErrCarrierIsRequired
	}
	s.carrier = carrier
	return nil
}

func (s *Shipment) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}
	s.address = address
	return nil
}

func (s *Shipment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}
