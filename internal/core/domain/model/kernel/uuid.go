package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not properly initialized
// through one of the constructor functions. This error is returned when
// validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is a value object that wraps github.com/google/uuid to provide
// domain-specific behavior and ensure immutability. It identifies orders,
// order lines, and audit entries.
//
// The zero value of UUID is invalid and must be constructed using one of the
// provided factory functions: NewUUID, UUIDFromString, or UUIDFromBytes.
// UUID is immutable and safe for concurrent use.
//
// Example usage:
//
//	orderID := kernel.NewUUID()
//
//	lineID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    // handle error
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4). This is the primary way to
// create new identifiers for orders and order lines.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its string representation. It accepts the
// standard formats understood by uuid.Parse. Returns an error if the string is
// not a valid UUID. Typically used when reconstructing entities from
// persistence or when parsing identifiers from HTTP requests.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a byte slice. The byte slice must be
// exactly 16 bytes long. Useful when identifiers are stored as binary data
// in the database.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the standard "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
// representation of the UUID.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value for integration with
// persistence adapters. For a byte slice representation, use Bytes()[:].
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two UUIDs for equality by value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate checks if the UUID is properly constructed.
// Returns ErrUUIDIsNotConstructed if the UUID is a zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
