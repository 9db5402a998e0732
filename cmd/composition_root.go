package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAllocateOrderCommandHandler() commands.AllocateOrderCommandHandler {
	return commands.NewAllocateOrderCommandHandler(c.stockUoWFactory())
}

func (c *CompositionRoot) CreateDeallocateOrderCommandHandler() commands.DeallocateOrderCommandHandler {
	return commands.NewDeallocateOrderCommandHandler(c.stockUoWFactory())
}

func (c *CompositionRoot) CreatePickOrderCommandHandler() commands.PickOrderCommandHandler {
	return commands.NewPickOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreatePackOrderCommandHandler() commands.PackOrderCommandHandler {
	return commands.NewPackOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(c.shipmentUoWFactory(), notify.NewSlogLowStockNotifier(c.logger))
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.stockUoWFactory())
}

func (c *CompositionRoot) CreateReceiveBatchCommandHandler() commands.ReceiveBatchCommandHandler {
	var f commands.ReceiveUoWFactory = FuncReceiveUoWFactory(func() commands.ReceiveUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReceiveBatchCommandHandler(f)
}

func (c *CompositionRoot) CreateAllocatePendingOrdersCommandHandler() commands.AllocatePendingOrdersCommandHandler {
	return commands.NewAllocatePendingOrdersCommandHandler(
		c.stockUoWFactory(),
		c.CreateAllocateOrderCommandHandler(),
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLedgerQueryHandler() queries.GetLedgerQueryHandler {
	return queries.NewGetLedgerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLowStockItemsQueryHandler() queries.GetLowStockItemsQueryHandler {
	return queries.NewGetLowStockItemsQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the inbound REST adapter with all handlers wired.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAllocateOrderCommandHandler(),
		c.CreateDeallocateOrderCommandHandler(),
		c.CreatePickOrderCommandHandler(),
		c.CreatePackOrderCommandHandler(),
		c.CreateShipOrderCommandHandler(),
		c.CreateDeliverOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateReceiveBatchCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetLedgerQueryHandler(),
		c.CreateGetLowStockItemsQueryHandler(),
	)
}

// CreateJobManager assembles the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAllocatePendingOrdersCommandHandler(), c.logger)
}

func (c *CompositionRoot) stockUoWFactory() commands.StockUoWFactory {
	return FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

type FuncStockUoWFactory func() commands.StockUoW

func (f FuncStockUoWFactory) Create() commands.StockUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

type FuncReceiveUoWFactory func() commands.ReceiveUoW

func (f FuncReceiveUoWFactory) Create() commands.ReceiveUoW {
	return f()
}
