// Package order contains the sales order aggregate of the fulfillment domain.
//
// The aggregate root Order owns its lines and its append-only audit history.
// Order-level and line-level statuses are derived state: header commands
// (approve, reject, cancel) drive the Status state machine directly, while
// line progress (allocate, dispatch, deliver) drives it only through
// recomputation from the line counters. The quantity-conservation chain
// ordered >= allocated >= dispatched >= delivered holds on every line at all
// times; any mutation that would break it fails with a QuantityBoundsError
// and leaves the aggregate untouched.
//
// Moving quantities between a line and the inventory ledger is the allocation
// coordinator's job (internal/core/domain/services); this package exposes
// CanX/ApplyX method pairs so that the coordinator can order the two effects
// such that neither side is applied without the other.
package order
