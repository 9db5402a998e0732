package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func mustLine(t *testing.T, requested int64) *order.Line {
	t.Helper()
	l, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), qty(requested))
	require.NoError(t, err)
	return l
}

func mustOrder(t *testing.T, lines ...*order.Line) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1001", "ACME Corp", lines)
	require.NoError(t, err)
	return o
}

func Test_NewOrder_Success(t *testing.T) {
	id := kernel.NewUUID()
	line := mustLine(t, 100)

	o, err := order.NewOrder(id, "ORD-1001", "ACME Corp", []*order.Line{line})

	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, id, o.ID())
	assert.Equal(t, "ORD-1001", o.OrderNo())
	assert.Equal(t, "ACME Corp", o.CustomerName())
	assert.Equal(t, order.New, o.Status())
	assert.Len(t, o.Lines(), 1)
	assert.NoError(t, o.Validate())
}

func Test_NewOrder_Errors(t *testing.T) {
	line := mustLine(t, 10)

	tests := map[string]struct {
		orderNo  string
		customer string
		lines    []*order.Line
		wantErr  error
	}{
		"empty order number": {"", "ACME Corp", []*order.Line{line}, order.ErrOrderNoIsRequired},
		"empty customer":     {"ORD-1001", "", []*order.Line{line}, order.ErrCustomerNameIsRequired},
		"no lines":           {"ORD-1001", "ACME Corp", nil, order.ErrLinesAreRequired},
		"invalid line":       {"ORD-1001", "ACME Corp", []*order.Line{{}}, order.ErrLineIsNotConstructed},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			o, err := order.NewOrder(kernel.NewUUID(), tc.orderNo, tc.customer, tc.lines)

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, o)
		})
	}
}

func Test_Line_RecordAllocation(t *testing.T) {
	line := mustLine(t, 100)
	batchID := kernel.NewUUID()

	require.NoError(t, line.RecordAllocation(batchID, qty(60)))
	require.NoError(t, line.RecordAllocation(kernel.NewUUID(), qty(40)))

	assert.True(t, qty(100).Equal(line.QtyAllocated()))
	assert.True(t, line.Remaining().IsZero())
	require.Len(t, line.Allocations(), 2)
	assert.Equal(t, batchID, line.Allocations()[0].BatchID())
	assert.True(t, qty(60).Equal(line.Allocations()[0].Qty()))
}

func Test_Line_RecordAllocation_ExceedsRequested(t *testing.T) {
	line := mustLine(t, 100)

	require.NoError(t, line.RecordAllocation(kernel.NewUUID(), qty(100)))
	err := line.RecordAllocation(kernel.NewUUID(), qty(1))

	require.Error(t, err)
	assert.True(t, qty(100).Equal(line.QtyAllocated()))
	assert.Len(t, line.Allocations(), 1)
}

func Test_Line_ClearAllocations(t *testing.T) {
	line := mustLine(t, 100)
	require.NoError(t, line.RecordAllocation(kernel.NewUUID(), qty(70)))

	line.ClearAllocations()

	assert.True(t, line.QtyAllocated().IsZero())
	assert.Empty(t, line.Allocations())
}

func Test_RestoreLine_AllocationSumMismatch(t *testing.T) {
	alloc, err := order.RestoreAllocation(kernel.NewUUID(), kernel.NewUUID(), qty(30))
	require.NoError(t, err)

	_, err = order.RestoreLine(
		kernel.NewUUID(), kernel.NewUUID(),
		qty(100), qty(40), qty(0),
		[]*order.Allocation{alloc},
	)

	require.Error(t, err)
}

func Test_Order_AllocationLifecycle(t *testing.T) {
	line := mustLine(t, 100)
	o := mustOrder(t, line)

	require.NoError(t, line.RecordAllocation(kernel.NewUUID(), qty(100)))
	require.NoError(t, o.MarkAllocated())
	assert.Equal(t, order.Allocated, o.Status())
	assert.True(t, o.HasLiveAllocations())
	assert.True(t, qty(100).Equal(o.TotalAllocated()))

	require.NoError(t, o.MarkPicked())
	require.NoError(t, o.MarkPacked())
	require.NoError(t, o.MarkShipped())
	assert.Equal(t, order.Shipped, o.Status())
	assert.False(t, o.HasLiveAllocations(), "shipping consumes the reservations")

	require.NoError(t, o.MarkDelivered())
	assert.Equal(t, order.Delivered, o.Status())
}

func Test_Order_ShipShortcutFromPicked(t *testing.T) {
	o := mustOrder(t, mustLine(t, 10))

	require.NoError(t, o.Lines()[0].RecordAllocation(kernel.NewUUID(), qty(10)))
	require.NoError(t, o.MarkAllocated())
	require.NoError(t, o.MarkPicked())

	require.NoError(t, o.MarkShipped())
	assert.Equal(t, order.Shipped, o.Status())
}

func Test_Order_ResetToNew(t *testing.T) {
	line := mustLine(t, 100)
	o := mustOrder(t, line)
	require.NoError(t, line.RecordAllocation(kernel.NewUUID(), qty(60)))
	require.NoError(t, o.MarkAllocated())

	require.NoError(t, o.ResetToNew())

	assert.Equal(t, order.New, o.Status())
	assert.False(t, o.HasLiveAllocations())
	assert.True(t, line.QtyAllocated().IsZero())
}

func Test_Order_ResetToNew_TerminalFails(t *testing.T) {
	o := mustOrder(t, mustLine(t, 10))
	require.NoError(t, o.Cancel())

	assert.Error(t, o.ResetToNew())
}

func Test_Order_Cancel(t *testing.T) {
	o := mustOrder(t, mustLine(t, 10))

	require.NoError(t, o.Cancel())
	assert.Equal(t, order.Cancelled, o.Status())

	assert.Error(t, o.MarkAllocated(), "cancelled is terminal")
	assert.Error(t, o.Cancel(), "cancelled is terminal")
}

func Test_Order_LineByID(t *testing.T) {
	line := mustLine(t, 10)
	o := mustOrder(t, line)

	found, err := o.LineByID(line.ID())
	require.NoError(t, err)
	assert.Equal(t, line, found)

	_, err = o.LineByID(kernel.NewUUID())
	assert.Error(t, err)
}

func Test_Order_Validate_NotConstructed(t *testing.T) {
	var o order.Order

	assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
}

func Test_RestoreOrder(t *testing.T) {
	line := mustLine(t, 10)
	id := kernel.NewUUID()

	o, err := order.RestoreOrder(id, "ORD-1001", "ACME Corp", order.Packed, []*order.Line{line})

	require.NoError(t, err)
	assert.Equal(t, order.Packed, o.Status())
	assert.NoError(t, o.Validate())
}
