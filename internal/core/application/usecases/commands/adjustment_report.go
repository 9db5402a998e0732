package commands

import (
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Adjustment reports one line whose handled quantity differed from the
// quantity reserved for it.
type Adjustment struct {
	LineID       kernel.UUID
	ItemID       kernel.UUID
	QtyAllocated decimal.Decimal
	QtyHandled   decimal.Decimal
	Delta        decimal.Decimal
}

// AdjustmentReport summarizes pick or pack discrepancies for the caller.
// Every discrepancy is also recorded as an Adjust entry in the transaction
// log; the report is the immediate response, the log is the audit record.
type AdjustmentReport struct {
	Adjustments []Adjustment
}

// HasDiscrepancies reports whether any line deviated from its reservation.
func (r AdjustmentReport) HasDiscrepancies() bool {
	return len(r.Adjustments) > 0
}
