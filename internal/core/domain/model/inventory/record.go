package inventory

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrRecordIsNotConstructed is returned when a Record instance was not
// created through NewRecord or RestoreRecord.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord constructor")

// Record is the inventory ledger entry for one SKU. It is the only place in
// the system where stock balances move.
//
// Record maintains these invariants at all times:
//   - available >= 0 and reserved >= 0
//   - while orders are open, reserved equals the sum of allocated minus
//     dispatched over all non-terminal order lines referencing the SKU
//     (the allocation coordinator keeps the two sides moving together)
//
// Every operation is all-or-nothing with respect to the record: the counters
// either move by the full requested quantity or not at all. Serialization
// between concurrent writers is the persistence layer's job, via the
// per-record version counter.
type Record struct {
	// sku identifies the inventory item
	sku kernel.SKU

	// available is free stock, not committed to any order line
	available int

	// reserved is stock committed to allocated-but-undispatched lines
	reserved int

	// inProduction is stock expected from production, not yet sellable
	inProduction int

	// version is the optimistic concurrency token managed by persistence
	version int

	// guard ensures the record was created via a constructor
	guard guard.ConstructorGuard
}

// NewRecord creates a ledger entry for a SKU with no reservations.
func NewRecord(sku kernel.SKU, available, inProduction int) (*Record, error) {
	if err := sku.Validate(); err != nil {
		return nil, err
	}
	if available < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("available",
			fmt.Errorf("%d is negative", available))
	}
	if inProduction < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("in production",
			fmt.Errorf("%d is negative", inProduction))
	}

	return &Record{
		sku:          sku,
		available:    available,
		inProduction: inProduction,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreRecord reconstructs a ledger entry from persistent storage,
// re-validating the counter invariants.
func RestoreRecord(sku kernel.SKU, available, reserved, inProduction, version int) (*Record, error) {
	if err := sku.Validate(); err != nil {
		return nil, err
	}
	if available < 0 || reserved < 0 || inProduction < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("inventory counters",
			fmt.Errorf("available=%d reserved=%d inProduction=%d must all be non-negative",
				available, reserved, inProduction))
	}

	return &Record{
		sku:          sku,
		available:    available,
		reserved:     reserved,
		inProduction: inProduction,
		version:      version,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// SKU returns the stock-keeping unit this record tracks.
func (r *Record) SKU() kernel.SKU {
	return r.sku
}

// Available returns the free stock quantity.
func (r *Record) Available() int {
	return r.available
}

// Reserved returns the stock committed to open order lines.
func (r *Record) Reserved() int {
	return r.reserved
}

// InProduction returns the stock expected from production.
func (r *Record) InProduction() int {
	return r.inProduction
}

// Version returns the optimistic concurrency token.
func (r *Record) Version() int {
	return r.version
}

// Validate ensures the Record instance was properly constructed.
func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

// Reserve commits qty units of free stock to an order line.
//
// Fails with InsufficientStockError if qty exceeds the available stock; the
// counters are left unchanged. On success available decreases and reserved
// increases by qty.
func (r *Record) Reserve(qty kernel.Quantity) error {
	if err := qty.Validate(); err != nil {
		return err
	}
	if qty.Value() > r.available {
		return errs.NewInsufficientStockError(r.sku.String(), qty.Value(), r.available)
	}

	r.available -= qty.Value()
	r.reserved += qty.Value()
	return nil
}

// Release reverses a reservation, returning qty units to free stock.
// Used when undispatched allocations are cancelled.
//
// Fails with InvalidTransitionError if qty exceeds the reserved stock.
func (r *Record) Release(qty kernel.Quantity) error {
	if err := qty.Validate(); err != nil {
		return err
	}
	if qty.Value() > r.reserved {
		return errs.NewInvalidTransitionError("inventory record",
			fmt.Sprintf("reserved=%d", r.reserved), fmt.Sprintf("release %d", qty.Value()))
	}

	r.reserved -= qty.Value()
	r.available += qty.Value()
	return nil
}

// Consume converts a reservation into a physical stock decrement at dispatch
// time. Available is unaffected because it was already decremented when the
// stock was reserved.
//
// Fails with InvalidTransitionError if qty exceeds the reserved stock.
func (r *Record) Consume(qty kernel.Quantity) error {
	if err := qty.Validate(); err != nil {
		return err
	}
	if qty.Value() > r.reserved {
		return errs.NewInvalidTransitionError("inventory record",
			fmt.Sprintf("reserved=%d", r.reserved), fmt.Sprintf("consume %d", qty.Value()))
	}

	r.reserved -= qty.Value()
	return nil
}

// Restock adds qty units of free stock, e.g. a goods receipt.
func (r *Record) Restock(qty kernel.Quantity) error {
	if err := qty.Validate(); err != nil {
		return err
	}

	r.available += qty.Value()
	return nil
}

// StartProduction registers qty units as expected from production.
func (r *Record) StartProduction(qty kernel.Quantity) error {
	if err := qty.Validate(); err != nil {
		return err
	}

	r.inProduction += qty.Value()
	return nil
}

// FinishProduction moves qty units from in-production to free stock.
//
// Fails with InvalidTransitionError if qty exceeds the in-production stock.
func (r *Record) FinishProduction(qty kernel.Quantity) error {
	if err := qty.Validate(); err != nil {
		return err
	}
	if qty.Value() > r.inProduction {
		return errs.NewInvalidTransitionError("inventory record",
			fmt.Sprintf("inProduction=%d", r.inProduction), fmt.Sprintf("finish %d", qty.Value()))
	}

	r.inProduction -= qty.Value()
	r.available += qty.Value()
	return nil
}
