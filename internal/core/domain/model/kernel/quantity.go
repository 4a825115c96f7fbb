package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrQuantityIsNotConstructed is returned when attempting to use an
// improperly initialized Quantity. Quantities must be created via the
// NewQuantity constructor.
var ErrQuantityIsNotConstructed = errs.NewValueIsRequiredError("Quantity must be created via NewQuantity constructor")

// Quantity represents a strictly positive number of stock units moved by a
// single command (allocate, dispatch, deliver, restock). Counters on order
// lines and inventory records are plain integers; Quantity only guards the
// amount a caller asks to move.
//
// Example:
//
//	qty, err := kernel.NewQuantity(300)
//	if err != nil {
//	    // handle validation error
//	}
type Quantity struct { //nolint:recvcheck //using for validation
	value int
	guard guard.ConstructorGuard
}

// NewQuantity creates a Quantity. The value must be greater than zero;
// zero-unit movements are rejected at the edge rather than silently ignored.
func NewQuantity(value int) (Quantity, error) {
	if value <= 0 {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", value))
	}

	return Quantity{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Value returns the number of units.
func (q Quantity) Value() int {
	return q.value
}

// IsEqual compares two quantities by value.
func (q Quantity) IsEqual(other Quantity) bool {
	return q.value == other.value
}

// String implements fmt.Stringer.
func (q Quantity) String() string {
	return fmt.Sprintf("%d", q.value)
}

// Validate ensures the Quantity was created via NewQuantity.
func (q Quantity) Validate() error {
	return q.guard.Validate(ErrQuantityIsNotConstructed)
}
