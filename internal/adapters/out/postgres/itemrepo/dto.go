// Package itemrepo provides data transfer objects and mapping functions for item persistence.
package itemrepo

import (
	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemDTO represents the database structure for persisting catalog items.
type ItemDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SKU              string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name             string          `gorm:"type:varchar(255);not null"`
	Unit             string          `gorm:"type:varchar(32);not null"`
	ReorderThreshold decimal.Decimal `gorm:"type:numeric(18,3);not null"`
}

// TableName specifies the database table name for item entities.
func (ItemDTO) TableName() string {
	return "items"
}

// fromDomain converts an item domain entity to its database representation.
func fromDomain(aggregate *item.Item) ItemDTO {
	return ItemDTO{
		ID:               aggregate.ID().Bytes(),
		SKU:              aggregate.SKU(),
		Name:             aggregate.Name(),
		Unit:             aggregate.Unit(),
		ReorderThreshold: aggregate.ReorderThreshold(),
	}
}

// toDomain converts a database DTO to an item domain entity.
func toDomain(dto ItemDTO) (*item.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return item.RestoreItem(id, dto.SKU, dto.Name, dto.Unit, dto.ReorderThreshold)
}
