// Package ledgerrepo provides data transfer objects and mapping functions for the transaction log.
// The log is append-only; this package never updates or deletes rows.
package ledgerrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryDTO represents the database structure for persisting log entries.
// Signed quantities: receipts, reservations and returns are positive,
// shipments negative, adjustments either way.
type EntryDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EntryType  string          `gorm:"type:varchar(16);not null;index"`
	Qty        decimal.Decimal `gorm:"type:numeric(18,3);not null"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatchID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID    *uuid.UUID      `gorm:"type:uuid;index"`
	ShipmentID *uuid.UUID      `gorm:"type:uuid;index"`
	Actor      string          `gorm:"type:varchar(255);not null"`
	Note       string          `gorm:"type:text"`
	OccurredAt time.Time       `gorm:"not null;index"`
}

// TableName specifies the database table name for log entries.
func (EntryDTO) TableName() string {
	return "ledger_entries"
}

// fromDomain converts a log entry to its database representation.
func fromDomain(entry *ledger.Entry) EntryDTO {
	return EntryDTO{
		ID:         entry.ID().Bytes(),
		EntryType:  entry.Type().String(),
		Qty:        entry.Qty(),
		ItemID:     entry.ItemID().Bytes(),
		BatchID:    entry.BatchID().Bytes(),
		OrderID:    optionalBytes(entry.OrderID()),
		ShipmentID: optionalBytes(entry.ShipmentID()),
		Actor:      entry.Actor(),
		Note:       entry.Note(),
		OccurredAt: entry.OccurredAt(),
	}
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}
