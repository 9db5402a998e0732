package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogItem(t *testing.T, sku string) *item.Item {
	t.Helper()
	it, err := item.NewItem(kernel.NewUUID(), sku, "Penicillin 500mg", "box", decimal.NewFromInt(10))
	require.NoError(t, err)
	return it
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	widget := newCatalogItem(t, "SKU-001")
	gadget := newCatalogItem(t, "SKU-002")
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, "ORD-1001", "ACME Corp", []commands.LineItemInput{
		{SKU: "SKU-001", Qty: decimal.NewFromInt(100)},
		{SKU: "SKU-002", Qty: decimal.NewFromInt(25)},
	})
	require.NoError(t, err)

	var added *order.Order
	itemRepo := new(MockItemRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockCreateOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetBySKU", mock.Anything, "SKU-001").Return(widget, nil).Once(),
		itemRepo.On("GetBySKU", mock.Anything, "SKU-002").Return(gadget, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				added = args.Get(1).(*order.Order)
			}).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, added)
	assert.True(t, orderID.IsEqual(added.ID()))
	assert.Equal(t, "ORD-1001", added.OrderNo())
	assert.Equal(t, order.New, added.Status())
	require.Len(t, added.Lines(), 2)
	assert.True(t, widget.ID().IsEqual(added.Lines()[0].ItemID()))
	assert.True(t, decimal.NewFromInt(100).Equal(added.Lines()[0].QtyRequested()))
	assert.True(t, gadget.ID().IsEqual(added.Lines()[1].ItemID()))
	assert.True(t, decimal.NewFromInt(25).Equal(added.Lines()[1].QtyRequested()))
	itemRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownSKUFailsWholeCommand(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "ORD-1001", "ACME Corp", []commands.LineItemInput{
		{SKU: "SKU-404", Qty: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)

	itemRepo := new(MockItemRepository)
	uow := new(MockCreateOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetBySKU", mock.Anything, "SKU-404").
			Return(nil, errs.NewObjectNotFoundError("sku", "SKU-404")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "OrderRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NotConstructedCommandFails(t *testing.T) {
	factory := new(MockCreateOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}
