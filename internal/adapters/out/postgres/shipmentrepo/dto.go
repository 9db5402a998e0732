// Package shipmentrepo provides data transfer objects and mapping functions for shipment persistence.
package shipmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipments.
type ShipmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ShipmentNo  string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	TrackingNo  string    `gorm:"type:varchar(64);not null"`
	Carrier     string    `gorm:"type:varchar(255);not null"`
	Address     string    `gorm:"type:varchar(512);not null"`
	Notes       string    `gorm:"type:text"`
	ShippedAt   time.Time `gorm:"not null"`
	DeliveredAt *time.Time
	Status      string `gorm:"type:varchar(32);not null;index"`
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment domain aggregate to its database representation.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:          aggregate.ID().Bytes(),
		OrderID:     aggregate.OrderID().Bytes(),
		ShipmentNo:  aggregate.ShipmentNo(),
		TrackingNo:  aggregate.TrackingNo(),
		Carrier:     aggregate.Carrier(),
		Address:     aggregate.Address(),
		Notes:       aggregate.Notes(),
		ShippedAt:   aggregate.ShippedAt(),
		DeliveredAt: aggregate.DeliveredAt(),
		Status:      aggregate.Status().String(),
	}
}

// toDomain converts a database DTO to a shipment domain aggregate.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	status, err := shipment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id, orderID,
		dto.ShipmentNo, dto.TrackingNo, dto.Carrier, dto.Address, dto.Notes,
		dto.ShippedAt, dto.DeliveredAt,
		status,
	)
}
