package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	New ──> Allocated ──> Picked ──> Packed ──> Shipped ──> Delivered
//	 ▲          │            │          │
//	 │          └────────────┴──────────┴──────> Shipped
//	 └── (deallocation resets any pre-shipment order back to New)
//
// Cancelled is reachable from every non-terminal state. Delivered and
// Cancelled are terminal: no transition is legal out of either.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status when an order is first created.
	// Orders in this status carry no reservations yet.
	New

	// Allocated indicates stock has been reserved against batches.
	// The order carries live allocations backing its lines.
	Allocated

	// Picked indicates warehouse staff pulled the allocated stock.
	Picked

	// Packed indicates the picked stock has been packed for shipping.
	Packed

	// Shipped indicates the reserved stock was consumed and a shipment
	// created. Allocations no longer exist past this point.
	Shipped

	// Delivered indicates the shipment reached the customer.
	// This is a final state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was abandoned and its reservations
	// released. This is a final state with no further transitions allowed.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		New:       "new",
		Allocated: "allocated",
		Picked:    "picked",
		Packed:    "packed",
		Shipped:   "shipped",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:       "new",
		Allocated: "allocated",
		Picked:    "picked",
		Packed:    "packed",
		Shipped:   "shipped",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// StatusFromString converts a persisted status string back to a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid order status", s),
	)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: New, Allocated, Picked, Packed, Shipped, Delivered,
// Cancelled. Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid order status", s),
		)
	}
	return nil
}

// String returns the persisted name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Allocate transitions the status to Allocated.
//
// Valid transitions:
//   - New -> Allocated
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Allocate(orderNo string) (Status, error) {
	if s != New {
		return 0, errs.NewInvalidTransitionError("allocate", orderNo, s.String())
	}
	return Allocated, nil
}

// Deallocate resets the status to New after reservations are released.
//
// Deallocation is legal from any non-terminal status. It is a reset, not a
// forward transition: the order becomes allocatable again.
func (s Status) Deallocate(orderNo string) (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewInvalidTransitionError("deallocate", orderNo, s.String())
	}
	return New, nil
}

// Pick transitions the status to Picked.
//
// Valid transitions:
//   - Allocated -> Picked
func (s Status) Pick(orderNo string) (Status, error) {
	if s != Allocated {
		return 0, errs.NewInvalidTransitionError("pick", orderNo, s.String())
	}
	return Picked, nil
}

// Pack transitions the status to Packed.
//
// Valid transitions:
//   - Picked -> Packed
func (s Status) Pack(orderNo string) (Status, error) {
	if s != Picked {
		return 0, errs.NewInvalidTransitionError("pack", orderNo, s.String())
	}
	return Packed, nil
}

// Ship transitions the status to Shipped.
//
// Valid transitions:
//   - Allocated -> Shipped
//   - Picked -> Shipped (shortcut skipping Packed)
//   - Packed -> Shipped
//
// The shortcut from Picked is intentional: privileged actors may ship
// without a separate packing step.
func (s Status) Ship(orderNo string) (Status, error) {
	if s != Allocated && s != Picked && s != Packed {
		return 0, errs.NewInvalidTransitionError("ship", orderNo, s.String())
	}
	return Shipped, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Shipped -> Delivered
//
// Delivered is a final state with no further transitions possible.
func (s Status) Deliver(orderNo string) (Status, error) {
	if s != Shipped {
		return 0, errs.NewInvalidTransitionError("deliver", orderNo, s.String())
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Cancellation is legal from any non-terminal status. Cancelled is a final
// state with no further transitions possible.
func (s Status) Cancel(orderNo string) (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewInvalidTransitionError("cancel", orderNo, s.String())
	}
	return Cancelled, nil
}
