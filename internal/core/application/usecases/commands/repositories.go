// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// BatchRepoFactory provides access to the batch repository within a transaction.
	BatchRepoFactory interface {
		BatchRepository() ports.BatchRepository
	}

	// ItemRepoFactory provides access to the item repository within a transaction.
	ItemRepoFactory interface {
		ItemRepository() ports.ItemRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// LedgerRepoFactory provides access to the transaction log within a transaction.
	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// OrderUoW manages transactions for operations that touch only the
	// order aggregate and the transaction log (pick, pack).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		LedgerRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StockUoW manages transactions for operations that move stock between
	// orders and batches (allocate, deallocate, cancel).
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   batchRepo := uow.BatchRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	StockUoW interface {
		TxManager
		OrderRepoFactory
		BatchRepoFactory
		LedgerRepoFactory
	}

	// StockUoWFactory creates new stock unit of work instances.
	StockUoWFactory interface {
		Create() StockUoW
	}

	// ShipmentUoW manages transactions for shipping and delivery, which
	// coordinate orders, batches, shipments, items and the log.
	ShipmentUoW interface {
		TxManager
		OrderRepoFactory
		BatchRepoFactory
		ItemRepoFactory
		ShipmentRepoFactory
		LedgerRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// CreateOrderUoW manages transactions for registering new orders,
	// which resolve their line items against the catalog.
	CreateOrderUoW interface {
		TxManager
		OrderRepoFactory
		ItemRepoFactory
	}

	// CreateOrderUoWFactory creates new order-registration unit of work instances.
	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}

	// ReceiveUoW manages transactions for receiving stock into new batches.
	ReceiveUoW interface {
		TxManager
		ItemRepoFactory
		BatchRepoFactory
		LedgerRepoFactory
	}

	// ReceiveUoWFactory creates new receive unit of work instances.
	ReceiveUoWFactory interface {
		Create() ReceiveUoW
	}
)
