// Package errs provides standardized error types for the fulfillment application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines two groups of errors:
//   - Generic validation errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError) used by value objects and
//     repositories.
//   - The fulfillment failure taxonomy (InsufficientStockError,
//     InvalidTransitionError, QuantityBoundsError, ConcurrencyConflictError)
//     raised by the inventory ledger, the order state machine, and the
//     optimistic persistence layer.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInsufficientStock)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// All errors are reported to callers unchanged; nothing in this package or its
// consumers silently recovers from or retries a failed command.
package errs
