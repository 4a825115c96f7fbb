// Package guard implements the constructor guard pattern used by domain
// value objects, entities, commands, and queries to detect zero-value
// instances that bypassed their designated constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is
// passed as the validation error, so validation always fails with a
// meaningful message even without a type-specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures objects are only created through their designated
// constructor functions. Embedding a ConstructorGuard in a struct lets
// Validate distinguish a properly constructed instance from a zero value.
//
// Example usage:
//
//	var ErrQuantityNotConstructed = errors.New("Quantity must be created via NewQuantity")
//
//	type Quantity struct {
//	    value int
//	    guard guard.ConstructorGuard
//	}
//
//	func NewQuantity(value int) (Quantity, error) {
//	    if value < 0 {
//	        return Quantity{}, errors.New("value cannot be negative")
//	    }
//	    return Quantity{value: value, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (q Quantity) Validate() error {
//	    return q.guard.Validate(ErrQuantityNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in the constructor of domain objects.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// constructor. Returns nil for constructed objects, the provided
// validationError for zero values, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
