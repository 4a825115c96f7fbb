package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fulfillment-specific failure taxonomy.
// Every typed error below wraps its sentinel, so callers classify
// failures with errors.Is and decide whether and how to retry.
// The core never retries on their behalf.
var (
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrQuantityBounds      = errors.New("quantity out of bounds")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)

// InsufficientStockError indicates that a reservation or consumption request
// exceeded the quantity the inventory ledger could provide for a SKU.
type InsufficientStockError struct {
	SKU       string
	Requested int
	Available int
}

// NewInsufficientStockError creates an InsufficientStockError for a SKU.
func NewInsufficientStockError(sku string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		SKU:       sku,
		Requested: requested,
		Available: available,
	}
}

func (e *InsufficientStockError) Error() string {
	return sanitize(fmt.Sprintf("%s: requested %d of %s, available %d",
		ErrInsufficientStock, e.Requested, e.SKU, e.Available))
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// InvalidTransitionError indicates that a command is illegal in the current
// state of an order or order line. The state is left unchanged.
type InvalidTransitionError struct {
	ParamName string
	From      string
	To        string
}

// NewInvalidTransitionError creates an InvalidTransitionError for a named state machine.
func NewInvalidTransitionError(paramName, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{
		ParamName: paramName,
		From:      from,
		To:        to,
	}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s cannot move from %s to %s",
		ErrInvalidTransition, e.ParamName, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// QuantityBoundsError indicates that a counter mutation would violate the
// ordered >= allocated >= dispatched >= delivered chain on an order line.
type QuantityBoundsError struct {
	ParamName string
	Requested int
	Limit     int
}

// NewQuantityBoundsError creates a QuantityBoundsError for a counter.
func NewQuantityBoundsError(paramName string, requested, limit int) *QuantityBoundsError {
	return &QuantityBoundsError{
		ParamName: paramName,
		Requested: requested,
		Limit:     limit,
	}
}

func (e *QuantityBoundsError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s would become %d, limit is %d",
		ErrQuantityBounds, e.ParamName, e.Requested, e.Limit))
}

func (e *QuantityBoundsError) Unwrap() error {
	return ErrQuantityBounds
}

// ConcurrencyConflictError indicates that an aggregate update lost an
// optimistic serialization race and must be reloaded before retrying.
type ConcurrencyConflictError struct {
	ParamName string
	ID        any
}

// NewConcurrencyConflictError creates a ConcurrencyConflictError for an aggregate.
func NewConcurrencyConflictError(paramName string, id any) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{
		ParamName: paramName,
		ID:        id,
	}
}

func (e *ConcurrencyConflictError) Error() string {
	return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s",
		ErrConcurrencyConflict, e.ParamName, e.ID))
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}
