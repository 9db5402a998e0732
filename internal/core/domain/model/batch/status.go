package batch

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a batch.
//
// State transitions:
//
//	Available ──┬──> Quarantine ──> Available
//	            │
//	            └──> Expired
//
// Expired is final. Quarantined stock is held back from allocation and can
// be released back to Available after inspection.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Available means the batch stock can be allocated to orders.
	Available

	// Quarantine means the batch is held back from allocation,
	// typically pending a quality inspection.
	Quarantine

	// Expired means the batch has passed its expiry date.
	// This is a final state with no further transitions allowed.
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Available:  "available",
		Quarantine: "quarantine",
		Expired:    "expired",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Available:  "available",
		Quarantine: "quarantine",
		Expired:    "expired",
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
		fmt.Errorf("%q is not a valid batch status", s),
	)
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid batch status", s),
		)
	}
	return nil
}

// String returns the persisted name of the status.
// It implements the fmt.Stringer interface and is safe to call on any
// Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Hold transitions the status to Quarantine.
//
// Valid transitions:
//   - Available -> Quarantine
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Hold() (Status, error) {
	if s != Available {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to quarantine", s.String()),
		)
	}
	return Quarantine, nil
}

// ReleaseHold transitions the status from Quarantine back to Available.
func (s Status) ReleaseHold() (Status, error) {
	if s != Quarantine {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to release from quarantine", s.String()),
		)
	}
	return Available, nil
}

// Expire transitions the status to Expired.
//
// Valid transitions:
//   - Available -> Expired
//   - Quarantine -> Expired
//
// Expired is a final state with no further transitions possible.
func (s Status) Expire() (Status, error) {
	if s != Available && s != Quarantine {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to expire", s.String()),
		)
	}
	return Expired, nil
}
