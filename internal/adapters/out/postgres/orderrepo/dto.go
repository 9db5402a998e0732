// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Lines and their live allocations are stored in child tables with cascade
// delete, so removing an order removes its whole tree.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNo      string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	CustomerName string    `gorm:"type:varchar(255);not null"`
	Status       string    `gorm:"type:varchar(32);not null;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
	Lines        []LineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO represents one requested item position within an order.
// Seq preserves the position of the line within the order, so loads
// return lines in the sequence they were placed.
type LineDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Seq          int             `gorm:"not null"`
	ItemID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	QtyRequested decimal.Decimal `gorm:"type:numeric(18,3);not null"`
	QtyAllocated decimal.Decimal `gorm:"type:numeric(18,3);not null"`
	QtyPicked    decimal.Decimal `gorm:"type:numeric(18,3);not null"`
	Allocations  []AllocationDTO `gorm:"foreignKey:LineID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order line entities.
func (LineDTO) TableName() string {
	return "order_lines"
}

// AllocationDTO represents a live reservation of a line against a batch.
// Rows exist only while the reservation is live: shipping, deallocation
// and cancellation remove them.
type AllocationDTO struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LineID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatchID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Qty     decimal.Decimal `gorm:"type:numeric(18,3);not null"`
}

// TableName specifies the database table name for allocation entities.
func (AllocationDTO) TableName() string {
	return "allocations"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	lines := make([]LineDTO, 0, len(aggregate.Lines()))

	for seq, line := range aggregate.Lines() {
		lineID := line.ID().Bytes()
		allocations := make([]AllocationDTO, 0, len(line.Allocations()))
		for _, alloc := range line.Allocations() {
			allocations = append(allocations, AllocationDTO{
				ID:      alloc.ID().Bytes(),
				LineID:  lineID,
				BatchID: alloc.BatchID().Bytes(),
				Qty:     alloc.Qty(),
			})
		}

		lines = append(lines, LineDTO{
			ID:           lineID,
			OrderID:      orderID,
			Seq:          seq,
			ItemID:       line.ItemID().Bytes(),
			QtyRequested: line.QtyRequested(),
			QtyAllocated: line.QtyAllocated(),
			QtyPicked:    line.QtyPicked(),
			Allocations:  allocations,
		})
	}

	return OrderDTO{
		ID:           orderID,
		OrderNo:      aggregate.OrderNo(),
		CustomerName: aggregate.CustomerName(),
		Status:       aggregate.Status().String(),
		Lines:        lines,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lines and live allocations.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(id, dto.OrderNo, dto.CustomerName, status, lines)
}

func lineToDomain(dto LineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	allocations := make([]*order.Allocation, 0, len(dto.Allocations))
	for _, allocDTO := range dto.Allocations {
		alloc, allocErr := allocationToDomain(allocDTO)
		if allocErr != nil {
			return nil, allocErr
		}
		allocations = append(allocations, alloc)
	}

	return order.RestoreLine(id, itemID, dto.QtyRequested, dto.QtyAllocated, dto.QtyPicked, allocations)
}

func allocationToDomain(dto AllocationDTO) (*order.Allocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	batchID, err := kernel.UUIDFromBytes(dto.BatchID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreAllocation(id, batchID, dto.Qty)
}
