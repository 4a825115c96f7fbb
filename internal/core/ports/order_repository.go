// Package ports defines repository and hook interfaces for the fulfillment
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders with their
// lines and audit history.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using its
	// optimistic concurrency version. Returns ConcurrencyConflictError when
	// the stored version no longer matches the aggregate's.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, with its
	// lines and full audit history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllOpen retrieves all orders in a non-terminal status, highest
	// priority first, oldest delivery date first within a priority.
	GetAllOpen(ctx context.Context) ([]*order.Order, error)

	// GetAllAllocatable retrieves open orders eligible for allocation,
	// in the same priority order as GetAllOpen. Used by the backorder sweep.
	GetAllAllocatable(ctx context.Context) ([]*order.Order, error)
}
