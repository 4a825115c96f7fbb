package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// ReservationChange describes one SKU's reservation delta produced by an
// allocation, dispatch, or cancellation. Positive deltas add reserved stock
// downstream, negative deltas remove it.
type ReservationChange struct {
	SKU   kernel.SKU
	Delta int
}

// AllocationHook is notified after a command that moved reservations has
// committed. Implementations propagate the change to downstream systems,
// e.g. the client product catalogue's reserved quantities.
//
// Hooks run outside the command's transaction: the order and ledger state
// they observe is already durable, and a hook failure must not undo it.
// Implementations own their retry policy.
type AllocationHook interface {
	ReservationsChanged(ctx context.Context, changes []ReservationChange) error
}
