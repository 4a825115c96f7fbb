package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through NewLine or RestoreLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine constructor")

// Line is one position of a sales order: a SKU, the immutable ordered
// quantity, and three dependent progress counters.
//
// Line maintains the quantity-conservation chain at all times:
//
//	0 <= deliveredQuantity <= dispatchedQuantity <= allocatedQuantity <= orderedQuantity
//
// Counters only move through the aggregate root, which in turn is only
// driven by the allocation coordinator; every mutation checks the chain
// before applying and leaves the line untouched on failure. The line status
// is derived from the counters and never stored independently.
type Line struct {
	// id is the unique identifier of the line
	id kernel.UUID

	// sku identifies the inventory item this line orders
	sku kernel.SKU

	// orderedQuantity is fixed at order creation
	orderedQuantity int

	// unitPrice is the per-unit price in minor currency units
	unitPrice int64

	// allocatedQuantity is the portion reserved in the inventory ledger
	allocatedQuantity int

	// dispatchedQuantity is the portion physically shipped
	dispatchedQuantity int

	// deliveredQuantity is the portion confirmed at the customer
	deliveredQuantity int

	// cancelled marks lines withdrawn before any dispatch
	cancelled bool

	// guard ensures the line was created via a constructor
	guard guard.ConstructorGuard
}

// NewLine creates a line with zero progress counters.
//
// Parameters:
//   - id: unique identifier for the line
//   - sku: the stock-keeping unit being ordered
//   - ordered: the ordered quantity (strictly positive by construction)
//   - unitPrice: per-unit price in minor currency units (non-negative)
func NewLine(id kernel.UUID, sku kernel.SKU, ordered kernel.Quantity, unitPrice int64) (*Line, error) {
	if err := errors.Join(id.Validate(), sku.Validate(), ordered.Validate()); err != nil {
		return nil, err
	}
	if unitPrice < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%d is negative", unitPrice))
	}

	return &Line{
		id:              id,
		sku:             sku,
		orderedQuantity: ordered.Value(),
		unitPrice:       unitPrice,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// RestoreLine reconstructs a line from persistent storage, re-validating the
// counter chain so corrupted rows cannot re-enter the domain.
func RestoreLine(
	id kernel.UUID,
	sku kernel.SKU,
	orderedQuantity int,
	unitPrice int64,
	allocatedQuantity, dispatchedQuantity, deliveredQuantity int,
	cancelled bool,
) (*Line, error) {
	if err := errors.Join(id.Validate(), sku.Validate()); err != nil {
		return nil, err
	}
	if orderedQuantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("ordered quantity",
			fmt.Errorf("%d is not greater than 0", orderedQuantity))
	}
	if unitPrice < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%d is negative", unitPrice))
	}
	if deliveredQuantity < 0 ||
		deliveredQuantity > dispatchedQuantity ||
		dispatchedQuantity > allocatedQuantity ||
		allocatedQuantity > orderedQuantity {
		return nil, errs.NewValueIsInvalidErrorWithCause("line counters",
			fmt.Errorf("0 <= %d <= %d <= %d <= %d does not hold",
				deliveredQuantity, dispatchedQuantity, allocatedQuantity, orderedQuantity))
	}

	return &Line{
		id:                 id,
		sku:                sku,
		orderedQuantity:    orderedQuantity,
		unitPrice:          unitPrice,
		allocatedQuantity:  allocatedQuantity,
		dispatchedQuantity: dispatchedQuantity,
		deliveredQuantity:  deliveredQuantity,
		cancelled:          cancelled,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// SKU returns the stock-keeping unit the line orders.
func (l *Line) SKU() kernel.SKU {
	return l.sku
}

// OrderedQuantity returns the quantity fixed at order creation.
func (l *Line) OrderedQuantity() int {
	return l.orderedQuantity
}

// UnitPrice returns the per-unit price in minor currency units.
func (l *Line) UnitPrice() int64 {
	return l.unitPrice
}

// AllocatedQuantity returns the quantity reserved in the inventory ledger.
func (l *Line) AllocatedQuantity() int {
	return l.allocatedQuantity
}

// DispatchedQuantity returns the quantity physically shipped.
func (l *Line) DispatchedQuantity() int {
	return l.dispatchedQuantity
}

// DeliveredQuantity returns the quantity confirmed delivered.
func (l *Line) DeliveredQuantity() int {
	return l.deliveredQuantity
}

// IsCancelled reports whether the line was cancelled before dispatch.
func (l *Line) IsCancelled() bool {
	return l.cancelled
}

// OutstandingQuantity returns the portion of the ordered quantity not yet
// allocated. Zero for cancelled lines.
func (l *Line) OutstandingQuantity() int {
	if l.cancelled {
		return 0
	}
	return l.orderedQuantity - l.allocatedQuantity
}

// ReservedQuantity returns the allocated-but-undispatched portion, which is
// exactly the line's contribution to the ledger's reserved counter while the
// order is open.
func (l *Line) ReservedQuantity() int {
	return l.allocatedQuantity - l.dispatchedQuantity
}

// Status derives the line status from the counters and the cancelled flag.
//
// Derivation precedence:
//   - cancelled flag set -> Cancelled
//   - delivered == ordered -> Delivered
//   - dispatched == ordered -> Dispatched
//   - allocated == ordered -> Ready
//   - otherwise -> Pending
func (l *Line) Status() LineStatus {
	switch {
	case l.cancelled:
		return LineStatusCancelled
	case l.deliveredQuantity == l.orderedQuantity:
		return LineStatusDelivered
	case l.dispatchedQuantity == l.orderedQuantity:
		return LineStatusDispatched
	case l.allocatedQuantity == l.orderedQuantity:
		return LineStatusReady
	default:
		return LineStatusPending
	}
}

// Validate ensures the Line instance was properly constructed.
func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// canAllocate checks that qty more units fit under the ordered quantity.
func (l *Line) canAllocate(qty int) error {
	if l.cancelled {
		return errs.NewInvalidTransitionError("line status", l.Status().String(), "allocation")
	}
	if l.allocatedQuantity+qty > l.orderedQuantity {
		return errs.NewQuantityBoundsError("allocated quantity", l.allocatedQuantity+qty, l.orderedQuantity)
	}
	return nil
}

// allocate moves qty units from ordered to allocated.
// Callers must have checked canAllocate.
func (l *Line) allocate(qty int) {
	l.allocatedQuantity += qty
}

// canDispatch checks that qty more units fit under the allocated quantity.
func (l *Line) canDispatch(qty int) error {
	if l.cancelled {
		return errs.NewInvalidTransitionError("line status", l.Status().String(), "dispatch")
	}
	if l.dispatchedQuantity+qty > l.allocatedQuantity {
		return errs.NewQuantityBoundsError("dispatched quantity", l.dispatchedQuantity+qty, l.allocatedQuantity)
	}
	return nil
}

// dispatch moves qty units from allocated to dispatched.
// Callers must have checked canDispatch.
func (l *Line) dispatch(qty int) {
	l.dispatchedQuantity += qty
}

// canDeliver checks that qty more units fit under the dispatched quantity.
func (l *Line) canDeliver(qty int) error {
	if l.cancelled {
		return errs.NewInvalidTransitionError("line status", l.Status().String(), "delivery")
	}
	if l.deliveredQuantity+qty > l.dispatchedQuantity {
		return errs.NewQuantityBoundsError("delivered quantity", l.deliveredQuantity+qty, l.dispatchedQuantity)
	}
	return nil
}

// deliver moves qty units from dispatched to delivered.
// Callers must have checked canDeliver.
func (l *Line) deliver(qty int) {
	l.deliveredQuantity += qty
}

// markCancelled withdraws an undispatched line. Lines with dispatched stock
// cannot be un-shipped and keep their state.
func (l *Line) markCancelled() {
	l.cancelled = true
}
