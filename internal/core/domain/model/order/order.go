package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder constructors.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderNoIsRequired is returned when attempting to create an order without a number.
	ErrOrderNoIsRequired = errs.NewValueIsRequiredError("orderNo")

	// ErrCustomerNameIsRequired is returned when attempting to create an order without a customer.
	ErrCustomerNameIsRequired = errs.NewValueIsRequiredError("customerName")

	// ErrLinesAreRequired is returned when attempting to create an order with no lines.
	ErrLinesAreRequired = errs.NewValueIsRequiredError("lines")
)

// Order represents a customer order moving through fulfillment. It is the
// aggregate root that owns its lines and governs every status transition.
//
// Order follows these invariants:
//   - Must have a unique order number and a customer name
//   - Must have at least one line
//   - Status transitions follow the Status state machine
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNo is the business order number, unique across orders
	orderNo string

	// customerName identifies who placed the order
	customerName string

	// status represents the current state in the fulfillment lifecycle
	status Status

	// lines are the requested items, in the order they were placed
	lines []*Line

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in New status with validation.
func NewOrder(id kernel.UUID, orderNo, customerName string, lines []*Line) (*Order, error) {
	o := &Order{
		status: New,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNo(orderNo),
		o.setCustomerName(customerName),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage, preserving its
// persisted status and lines.
func RestoreOrder(id kernel.UUID, orderNo, customerName string, status Status, lines []*Line) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNo(orderNo),
		o.setCustomerName(customerName),
		o.setStatus(status),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNo returns the business order number.
func (o *Order) OrderNo() string {
	return o.orderNo
}

// CustomerName returns the customer who placed the order.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Lines returns the order's lines in placement order.
func (o *Order) Lines() []*Line {
	return o.lines
}

// LineByID returns the line with the given identifier.
func (o *Order) LineByID(lineID kernel.UUID) (*Line, error) {
	for _, l := range o.lines {
		if l.ID().IsEqual(lineID) {
			return l, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("lineID", lineID.String())
}

// HasLiveAllocations reports whether any line still carries a reservation.
func (o *Order) HasLiveAllocations() bool {
	for _, l := range o.lines {
		if len(l.Allocations()) > 0 {
			return true
		}
	}
	return false
}

// TotalAllocated returns the summed reserved quantity across all lines.
func (o *Order) TotalAllocated() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.lines {
		total = total.Add(l.QtyAllocated())
	}
	return total
}

// MarkAllocated advances the order to Allocated after stock was reserved.
//
// Only legal from New. Callers advance the order only when at least one
// unit was reserved; an allocation pass that found nothing leaves the
// order in New.
func (o *Order) MarkAllocated() error {
	newStatus, err := o.status.Allocate(o.orderNo)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// ResetToNew returns a deallocated order to New and drops every live
// allocation from its lines. Legal from any non-terminal status.
func (o *Order) ResetToNew() error {
	newStatus, err := o.status.Deallocate(o.orderNo)
	if err != nil {
		return err
	}

	for _, l := range o.lines {
		l.ClearAllocations()
	}
	o.status = newStatus
	return nil
}

// MarkPicked advances the order to Picked. Only legal from Allocated.
func (o *Order) MarkPicked() error {
	newStatus, err := o.status.Pick(o.orderNo)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// MarkPacked advances the order to Packed. Only legal from Picked.
func (o *Order) MarkPacked() error {
	newStatus, err := o.status.Pack(o.orderNo)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// MarkShipped advances the order to Shipped and drops the consumed
// allocations. Legal from Allocated, Picked and Packed.
func (o *Order) MarkShipped() error {
	newStatus, err := o.status.Ship(o.orderNo)
	if err != nil {
		return err
	}

	for _, l := range o.lines {
		l.ClearAllocations()
	}
	o.status = newStatus
	return nil
}

// MarkDelivered advances the order to Delivered. Only legal from Shipped.
func (o *Order) MarkDelivered() error {
	newStatus, err := o.status.Deliver(o.orderNo)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Cancel moves the order to Cancelled and drops every live allocation.
// Legal from any non-terminal status. Callers release the reserved batch
// stock before cancelling.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel(o.orderNo)
	if err != nil {
		return err
	}

	for _, l := range o.lines {
		l.ClearAllocations()
	}
	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNo(orderNo string) error {
	if orderNo == "" {
		return ErrOrderNoIsRequired
	}
	o.orderNo = orderNo
	return nil
}

func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return ErrCustomerNameIsRequired
	}
	o.customerName = customerName
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	o.lines = lines
	return nil
}
