package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrAuditEntryIsNotConstructed indicates that an AuditEntry was not created
// through one of its constructor functions.
var ErrAuditEntryIsNotConstructed = errors.New("AuditEntry must be created via newAuditEntry or RestoreAuditEntry")

// AuditEntry is one immutable row of an order's history. Entries are created
// only by state-machine-approved mutations and are never updated or deleted;
// a failed command never appends one.
type AuditEntry struct {
	timestamp time.Time
	actor     string
	from      Status
	to        Status
	note      string

	// lineID and quantity are set for line-level mutations
	// (allocate, dispatch, deliver) and nil/zero for header commands.
	lineID   *kernel.UUID
	quantity int

	isConstructed bool
}

// newAuditEntry records a successful mutation. Only the aggregate itself
// appends entries, so the constructor stays package-private.
func newAuditEntry(timestamp time.Time, actor string, from, to Status, note string, lineID *kernel.UUID, quantity int) AuditEntry {
	return AuditEntry{
		timestamp:     timestamp.UTC(),
		actor:         actor,
		from:          from,
		to:            to,
		note:          note,
		lineID:        lineID,
		quantity:      quantity,
		isConstructed: true,
	}
}

// RestoreAuditEntry reconstructs an entry from persistent storage.
func RestoreAuditEntry(timestamp time.Time, actor string, from, to Status, note string, lineID *kernel.UUID, quantity int) (AuditEntry, error) {
	if actor == "" {
		return AuditEntry{}, errs.NewValueIsRequiredError("actor")
	}
	if err := to.Validate(); err != nil {
		return AuditEntry{}, err
	}
	if lineID != nil {
		if err := lineID.Validate(); err != nil {
			return AuditEntry{}, err
		}
	}

	return newAuditEntry(timestamp, actor, from, to, note, lineID, quantity), nil
}

// Timestamp returns when the mutation was recorded, in UTC.
func (e AuditEntry) Timestamp() time.Time {
	return e.timestamp
}

// Actor returns who issued the command.
func (e AuditEntry) Actor() string {
	return e.actor
}

// FromStatus returns the order status before the mutation.
// StatusUnknown on the creation entry.
func (e AuditEntry) FromStatus() Status {
	return e.from
}

// ToStatus returns the order status after the mutation.
func (e AuditEntry) ToStatus() Status {
	return e.to
}

// Note returns the free-form description of the mutation.
func (e AuditEntry) Note() string {
	return e.note
}

// LineID returns the affected line for line-level mutations, nil otherwise.
func (e AuditEntry) LineID() *kernel.UUID {
	return e.lineID
}

// Quantity returns the moved quantity for line-level mutations, 0 otherwise.
func (e AuditEntry) Quantity() int {
	return e.quantity
}

// Validate ensures the entry was created through a constructor.
func (e AuditEntry) Validate() error {
	if !e.isConstructed {
		return ErrAuditEntryIsNotConstructed
	}
	return nil
}
