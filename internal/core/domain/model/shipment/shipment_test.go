package shipment_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	shippedAt := time.Date(2025, 11, 5, 14, 30, 45, 0, time.UTC)
	s, err := shipment.NewShipment(
		kernel.NewUUID(), kernel.NewUUID(),
		"ORD-1001", "DHL", "1 Warehouse Way", "fragile", shippedAt,
	)
	require.NoError(t, err)
	return s
}

func Test_NewShipment_Success(t *testing.T) {
	s := mustShipment(t)

	assert.Equal(t, "SHIP-ORD-1001-20251105143045", s.ShipmentNo())
	assert.NotEmpty(t, s.TrackingNo())
	assert.Equal(t, "DHL", s.Carrier())
	assert.Equal(t, "1 Warehouse Way", s.Address())
	assert.Equal(t, "fragile", s.Notes())
	assert.Equal(t, shipment.Created, s.Status())
	assert.Nil(t, s.DeliveredAt())
	assert.NoError(t, s.Validate())
}

func Test_NewShipment_TrackingNoIsUnique(t *testing.T) {
	a := mustShipment(t)
	b := mustShipment(t)

	assert.NotEqual(t, a.TrackingNo(), b.TrackingNo())
}

func Test_NewShipment_Errors(t *testing.T) {
	shippedAt := time.Now()

	tests := map[string]struct {
		orderNo string
		carrier string
		address string
	}{
		"empty order number": {"", "DHL", "1 Warehouse Way"},
		"empty carrier":      {"ORD-1001", "", "1 Warehouse Way"},
		"empty address":      {"ORD-1001", "DHL", ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := shipment.NewShipment(
				kernel.NewUUID(), kernel.NewUUID(),
				tc.orderNo, tc.carrier, tc.address, "", shippedAt,
			)

			require.Error(t, err)
			assert.Nil(t, s)
		})
	}
}

func Test_Shipment_Deliver(t *testing.T) {
	s := mustShipment(t)
	deliveredAt := time.Now()

	require.NoError(t, s.Deliver(deliveredAt))

	assert.Equal(t, shipment.Delivered, s.Status())
	require.NotNil(t, s.DeliveredAt())
	assert.Equal(t, deliveredAt, *s.DeliveredAt())

	assert.Error(t, s.Deliver(deliveredAt), "delivered is final")
	assert.Error(t, s.Cancel(), "delivered is final")
}

func Test_Shipment_DepartThenDeliver(t *testing.T) {
	s := mustShipment(t)

	require.NoError(t, s.Depart())
	assert.Equal(t, shipment.InTransit, s.Status())

	require.NoError(t, s.Deliver(time.Now()))
	assert.Equal(t, shipment.Delivered, s.Status())
}

func Test_Shipment_Cancel(t *testing.T) {
	s := mustShipment(t)

	require.NoError(t, s.Cancel())
	assert.Equal(t, shipment.Cancelled, s.Status())
	assert.Error(t, s.Deliver(time.Now()), "cancelled is final")
}

func Test_Shipment_Validate_NotConstructed(t *testing.T) {
	var s shipment.Shipment

	assert.ErrorIs(t, s.Validate(), shipment.ErrShipmentIsNotConstructed)
}

func Test_RestoreShipment(t *testing.T) {
	shippedAt := time.Now().Add(-time.Hour)
	deliveredAt := time.Now()

	s, err := shipment.RestoreShipment(
		kernel.NewUUID(), kernel.NewUUID(),
		"SHIP-ORD-1001-20251105143045", "c2d7e6a1", "DHL", "1 Warehouse Way", "",
		shippedAt, &deliveredAt, shipment.Delivered,
	)

	require.NoError(t, err)
	assert.Equal(t, shipment.Delivered, s.Status())
	assert.Equal(t, &deliveredAt, s.DeliveredAt())
	assert.NoError(t, s.Validate())
}
