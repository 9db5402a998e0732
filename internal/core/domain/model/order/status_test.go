package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Status_String(t *testing.T) {
	tests := map[order.Status]string{
		order.New:       "new",
		order.Allocated: "allocated",
		order.Picked:    "picked",
		order.Packed:    "packed",
		order.Shipped:   "shipped",
		order.Delivered: "delivered",
		order.Cancelled: "cancelled",
		order.Unknown:   "Unknown",
		order.Status(99): "Unknown",
	}

	for status, want := range tests {
		assert.Equal(t, want, status.String())
	}
}

func Test_Status_Validate(t *testing.T) {
	assert.NoError(t, order.New.Validate())
	assert.NoError(t, order.Cancelled.Validate())
	assert.Error(t, order.Unknown.Validate())
	assert.Error(t, order.Status(99).Validate())
}

func Test_StatusFromString(t *testing.T) {
	s, err := order.StatusFromString("packed")
	require.NoError(t, err)
	assert.Equal(t, order.Packed, s)

	_, err = order.StatusFromString("bogus")
	assert.Error(t, err)
}

func Test_Status_Transitions(t *testing.T) {
	type transition func(order.Status, string) (order.Status, error)

	allocate := func(s order.Status, no string) (order.Status, error) { return s.Allocate(no) }
	deallocate := func(s order.Status, no string) (order.Status, error) { return s.Deallocate(no) }
	pick := func(s order.Status, no string) (order.Status, error) { return s.Pick(no) }
	pack := func(s order.Status, no string) (order.Status, error) { return s.Pack(no) }
	ship := func(s order.Status, no string) (order.Status, error) { return s.Ship(no) }
	deliver := func(s order.Status, no string) (order.Status, error) { return s.Deliver(no) }
	cancel := func(s order.Status, no string) (order.Status, error) { return s.Cancel(no) }

	tests := map[string]struct {
		from  order.Status
		op    transition
		want  order.Status
		valid bool
	}{
		"allocate from new":        {order.New, allocate, order.Allocated, true},
		"allocate from allocated":  {order.Allocated, allocate, 0, false},
		"pick from allocated":      {order.Allocated, pick, order.Picked, true},
		"pick from new":            {order.New, pick, 0, false},
		"pack from picked":         {order.Picked, pack, order.Packed, true},
		"pack from allocated":      {order.Allocated, pack, 0, false},
		"ship from allocated":      {order.Allocated, ship, order.Shipped, true},
		"ship from picked":         {order.Picked, ship, order.Shipped, true},
		"ship from packed":         {order.Packed, ship, order.Shipped, true},
		"ship from new":            {order.New, ship, 0, false},
		"ship from delivered":      {order.Delivered, ship, 0, false},
		"deliver from shipped":     {order.Shipped, deliver, order.Delivered, true},
		"deliver from packed":      {order.Packed, deliver, 0, false},
		"cancel from new":          {order.New, cancel, order.Cancelled, true},
		"cancel from shipped":      {order.Shipped, cancel, order.Cancelled, true},
		"cancel from delivered":    {order.Delivered, cancel, 0, false},
		"cancel from cancelled":    {order.Cancelled, cancel, 0, false},
		"deallocate from allocated": {order.Allocated, deallocate, order.New, true},
		"deallocate from packed":    {order.Packed, deallocate, order.New, true},
		"deallocate from delivered": {order.Delivered, deallocate, 0, false},
		"deallocate from cancelled": {order.Cancelled, deallocate, 0, false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := tc.op(tc.from, "ORD-1001")

			if tc.valid {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		})
	}
}

func Test_Status_InvalidTransitionErrorNamesOrder(t *testing.T) {
	_, err := order.New.Pick("ORD-1001")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pick")
	assert.Contains(t, err.Error(), "ORD-1001")
	assert.Contains(t, err.Error(), "new")
}

func Test_Status_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.New.IsTerminal())
	assert.False(t, order.Shipped.IsTerminal())
}
