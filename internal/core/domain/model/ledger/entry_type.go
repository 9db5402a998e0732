package ledger

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// EntryType classifies a stock movement in the transaction log.
type EntryType int

const (
	// UnknownType represents an invalid or undefined entry type.
	UnknownType EntryType = iota

	// Receive records stock arriving into a new batch (positive qty).
	Receive

	// Reserve records stock being reserved for an order (positive qty,
	// the amount taken from the batch).
	Reserve

	// Return records a reservation being released back (positive qty).
	Return

	// Ship records permanent consumption of previously reserved stock
	// (negative qty, availability is not reduced again).
	Ship

	// Adjust records pick/pack discrepancies against the reserved quantity.
	Adjust
)

func getEntryTypeStrings() map[EntryType]string {
	return map[EntryType]string{
		UnknownType: "Unknown",
		Receive:     "RECEIVE",
		Reserve:     "RESERVE",
		Return:      "RETURN",
		Ship:        "SHIP",
		Adjust:      "ADJUST",
	}
}

func getValidEntryTypeStrings() map[EntryType]string {
	//nolint:exhaustive // UnknownType is intentionally excluded as it's invalid
	return map[EntryType]string{
		Receive: "RECEIVE",
		Reserve: "RESERVE",
		Return:  "RETURN",
		Ship:    "SHIP",
		Adjust:  "ADJUST",
	}
}

// EntryTypeFromString converts a persisted entry type string back to an EntryType.
func EntryTypeFromString(s string) (EntryType, error) {
	for entryType, str := range getValidEntryTypeStrings() {
		if str == s {
			return entryType, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause(
		"entry type is invalid",
		fmt.Errorf("%q is not a valid entry type", s),
	)
}

// Validate checks if the EntryType value is valid.
func (t EntryType) Validate() error {
	if _, ok := getValidEntryTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"entry type is invalid",
			fmt.Errorf("%d is not a valid entry type", t),
		)
	}
	return nil
}

// String returns the persisted name of the entry type.
// It implements the fmt.Stringer interface.
func (t EntryType) String() string {
	if str, ok := getEntryTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}
