package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control and gives out repositories bound to the transaction,
// so an order and the inventory records it touches are persisted atomically.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction started by Begin().
	OrderRepository() OrderRepository

	// InventoryRepository returns an InventoryRepository bound to the
	// current transaction started by Begin().
	InventoryRepository() InventoryRepository
}
