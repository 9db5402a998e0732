// Package batchrepo provides data transfer objects and mapping functions for batch persistence.
// This package implements the repository pattern for the batch domain aggregate and carries
// the optimistic concurrency discipline for availability updates.
package batchrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchDTO represents the database structure for persisting stock batches.
// A NULL expiry date means the batch never expires.
type BatchDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ItemID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	LotNo        string          `gorm:"type:varchar(64);not null"`
	ReceivedQty  decimal.Decimal `gorm:"type:numeric(18,3);not null"`
	AvailableQty decimal.Decimal `gorm:"type:numeric(18,3);not null"`
	ExpiryDate   *time.Time      `gorm:"index"`
	Status       string          `gorm:"type:varchar(32);not null;index"`
}

// TableName specifies the database table name for batch entities.
func (BatchDTO) TableName() string {
	return "batches"
}

// fromDomain converts a batch domain aggregate to its database representation.
func fromDomain(aggregate *batch.Batch) BatchDTO {
	return BatchDTO{
		ID:           aggregate.ID().Bytes(),
		ItemID:       aggregate.ItemID().Bytes(),
		LotNo:        aggregate.LotNo(),
		ReceivedQty:  aggregate.ReceivedQty(),
		AvailableQty: aggregate.AvailableQty(),
		ExpiryDate:   aggregate.ExpiryDate(),
		Status:       aggregate.Status().String(),
	}
}

// toDomain converts a database DTO to a batch domain aggregate.
// The restored aggregate observes the loaded availability as its
// concurrency token.
func toDomain(dto BatchDTO) (*batch.Batch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}
	status, err := batch.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return batch.RestoreBatch(id, itemID, dto.LotNo, dto.ReceivedQty, dto.AvailableQty, dto.ExpiryDate, status)
}
