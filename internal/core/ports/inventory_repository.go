package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for inventory ledger
// records, keyed by SKU.
type InventoryRepository interface {
	// Add persists a new ledger record.
	// The record must be valid and the SKU must not already exist.
	Add(ctx context.Context, record *inventory.Record) error

	// Update persists changes to an existing ledger record using its
	// optimistic concurrency version. Returns ConcurrencyConflictError when
	// the stored version no longer matches the record's.
	Update(ctx context.Context, record *inventory.Record) error

	// Get retrieves the ledger record for a SKU.
	Get(ctx context.Context, sku kernel.SKU) (*inventory.Record, error)

	// GetAll retrieves every ledger record, ordered by SKU.
	GetAll(ctx context.Context) ([]*inventory.Record, error)
}
