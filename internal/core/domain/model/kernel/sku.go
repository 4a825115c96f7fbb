package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// SKUMaxLength is the maximum accepted length of a stock-keeping unit code.
const SKUMaxLength = 64

// ErrSKUIsNotConstructed is returned when attempting to use an improperly
// initialized SKU. SKUs must be created via the NewSKU constructor.
var ErrSKUIsNotConstructed = errs.NewValueIsRequiredError("SKU must be created via NewSKU constructor")

// SKU identifies a distinct inventory item or variant (stock-keeping unit).
// It is an immutable value object; the zero value is invalid and will fail
// validation.
//
// Example:
//
//	sku, err := kernel.NewSKU("500ml")
//	if err != nil {
//	    // handle validation error
//	}
type SKU struct { //nolint:recvcheck //using for validation
	code  string
	guard guard.ConstructorGuard
}

// NewSKU creates a SKU from a code. Leading and trailing whitespace is
// trimmed; the trimmed code must be non-empty and at most SKUMaxLength
// characters long.
func NewSKU(code string) (SKU, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return SKU{}, errs.NewValueIsRequiredError("sku")
	}
	if len(code) > SKUMaxLength {
		return SKU{}, errs.NewValueIsInvalidErrorWithCause("sku",
			fmt.Errorf("%q is longer than %d characters", code, SKUMaxLength))
	}

	return SKU{
		code:  code,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// String returns the SKU code.
func (s SKU) String() string {
	return s.code
}

// IsEqual compares two SKUs by code.
func (s SKU) IsEqual(other SKU) bool {
	return s.code == other.code
}

// Validate ensures the SKU was created via NewSKU.
func (s SKU) Validate() error {
	return s.guard.Validate(ErrSKUIsNotConstructed)
}
