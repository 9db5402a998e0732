package shipment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
//
// State transitions:
//
//	Created ──> InTransit ──> Delivered
//	    │           │
//	    └───────────┴──> Cancelled
//
// Delivered and Cancelled are final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Created is the initial status when the shipment is generated.
	Created

	// InTransit indicates the carrier has the shipment.
	InTransit

	// Delivered indicates the shipment reached the customer.
	Delivered

	// Cancelled indicates the shipment was aborted before delivery.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "created",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "created",
		InTransit: "in_transit",
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
		fmt.Errorf("%q is not a valid shipment status", s),
	)
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid shipment status", s),
		)
	}
	return nil
}

// String returns the persisted name of the status.
// It implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Depart transitions the status to InTransit.
//
// Valid transitions:
//   - Created -> InTransit
func (s Status) Depart() (Status, error) {
	if s != Created {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to depart", s.String()),
		)
	}
	return InTransit, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Created -> Delivered (delivery confirmation may arrive first)
//   - InTransit -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != Created && s != InTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Created -> Cancelled
//   - InTransit -> Cancelled
func (s Status) Cancel() (Status, error) {
	if s != Created && s != InTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	return Cancelled, nil
}
