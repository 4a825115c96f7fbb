package services

import (
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// AllocationCoordinator is the only place where order line counters and the
// inventory ledger move together. Neither aggregate mutates the other's side
// on its own.
//
// Every operation follows the same shape: validate both aggregates, check the
// order-side preconditions without side effects, commit the ledger movement,
// then apply the line movement. The order side cannot fail once its
// preconditions passed, so a ledger failure always leaves both aggregates
// untouched. Durability of the pair is the command handler's job: it persists
// both aggregates in one transaction.
type AllocationCoordinator struct{}

// NewAllocationCoordinator creates a new AllocationCoordinator instance.
func NewAllocationCoordinator() AllocationCoordinator {
	return AllocationCoordinator{}
}

// Allocate reserves qty units of the line's SKU in the ledger and moves the
// line counter from ordered to allocated.
//
// Fails with InsufficientStockError when the ledger cannot cover qty, with
// InvalidTransitionError when the order status forbids allocation, and with
// QuantityBoundsError when the line would exceed its ordered quantity. On any
// failure both aggregates keep their previous counters.
func (c AllocationCoordinator) Allocate(
	o *order.Order, rec *inventory.Record, lineID kernel.UUID, qty kernel.Quantity, actor string,
) error {
	if err := c.validatePair(o, rec, lineID); err != nil {
		return err
	}

	if err := o.CanAllocateLine(lineID, qty); err != nil {
		return err
	}

	if err := rec.Reserve(qty); err != nil {
		return err
	}

	return o.ApplyAllocation(lineID, qty, actor)
}

// Dispatch consumes qty units of the line's reservation in the ledger and
// moves the line counter from allocated to dispatched. The first dispatch of
// an order stamps the tracking details on the header.
func (c AllocationCoordinator) Dispatch(
	o *order.Order, rec *inventory.Record, lineID kernel.UUID, qty kernel.Quantity,
	actor, trackingID, carrier string,
) error {
	if err := c.validatePair(o, rec, lineID); err != nil {
		return err
	}

	if err := o.CanDispatchLine(lineID, qty); err != nil {
		return err
	}

	if err := rec.Consume(qty); err != nil {
		return err
	}

	return o.ApplyDispatch(lineID, qty, actor, trackingID, carrier)
}

// Deliver moves qty units of the line from dispatched to delivered. Delivery
// has no ledger effect; the stock physically left at dispatch time.
func (c AllocationCoordinator) Deliver(
	o *order.Order, lineID kernel.UUID, qty kernel.Quantity, actor string,
) error {
	if err := o.Validate(); err != nil {
		return err
	}

	return o.ApplyDelivery(lineID, qty, actor)
}

// Cancel moves the order to Cancelled and releases every allocated-but-
// undispatched reservation back to the ledger. Lines with dispatched stock
// keep their state; only their remaining reservation is returned.
//
// records must contain a ledger entry for every SKU carrying a reservation on
// the order; a missing entry fails the whole command before any counter moves.
// Returns the records that were modified.
func (c AllocationCoordinator) Cancel(
	o *order.Order, records map[kernel.SKU]*inventory.Record, actor string,
) ([]*inventory.Record, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	for _, l := range o.Lines() {
		if l.IsCancelled() || l.ReservedQuantity() == 0 {
			continue
		}
		rec, ok := records[l.SKU()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("inventory record", l.SKU().String())
		}
		if err := rec.Validate(); err != nil {
			return nil, err
		}
	}

	releases, err := o.Cancel(actor)
	if err != nil {
		return nil, err
	}

	modified := make([]*inventory.Record, 0, len(releases))
	seen := make(map[kernel.SKU]struct{}, len(releases))
	for _, release := range releases {
		qty, err := kernel.NewQuantity(release.Quantity)
		if err != nil {
			return nil, err
		}
		rec := records[release.SKU]
		if err := rec.Release(qty); err != nil {
			return nil, err
		}
		if _, ok := seen[release.SKU]; !ok {
			seen[release.SKU] = struct{}{}
			modified = append(modified, rec)
		}
	}

	return modified, nil
}

// validatePair checks both aggregates are constructed and the ledger record
// matches the line's SKU.
func (c AllocationCoordinator) validatePair(o *order.Order, rec *inventory.Record, lineID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := rec.Validate(); err != nil {
		return err
	}

	line, err := o.Line(lineID)
	if err != nil {
		return err
	}
	if line.SKU() != rec.SKU() {
		return errs.NewValueIsInvalidError("inventory record")
	}

	return nil
}
