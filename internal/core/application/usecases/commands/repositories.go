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

	// InventoryRepoFactory provides access to the inventory repository within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// InventoryUoW manages transactions for ledger-only operations.
	// Used when commands only modify inventory records.
	InventoryUoW interface {
		TxManager
		InventoryRepoFactory
	}

	// InventoryUoWFactory creates new inventory unit of work instances.
	InventoryUoWFactory interface {
		Create() InventoryUoW
	}

	// UoW manages transactions across both order and inventory aggregates.
	// Used by the allocation commands, which must persist the order line
	// counters and the matching ledger movement atomically.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   inventoryRepo := uow.InventoryRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
