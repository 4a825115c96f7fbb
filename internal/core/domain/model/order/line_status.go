package order

import (
	"fulfillment/internal/pkg/errs"
)

// LineStatus represents the state of a single order line. It is always
// derived from the line's quantity counters (plus the cancelled flag) and is
// never stored independently of them.
type LineStatus int

const (
	// LineStatusUnknown represents an invalid or undefined line status.
	LineStatusUnknown LineStatus = iota

	// LineStatusPending indicates the line is not yet fully allocated.
	LineStatusPending

	// LineStatusReady indicates the full ordered quantity is allocated and
	// none of it has been dispatched against the whole order yet.
	LineStatusReady

	// LineStatusDispatched indicates the full ordered quantity has been
	// dispatched.
	LineStatusDispatched

	// LineStatusDelivered indicates the full ordered quantity has been
	// delivered. Terminal.
	LineStatusDelivered

	// LineStatusCancelled indicates the line was cancelled before any of it
	// was dispatched. Terminal.
	LineStatusCancelled
)

func getLineStatusStrings() map[LineStatus]string {
	return map[LineStatus]string{
		LineStatusUnknown:    "Unknown",
		LineStatusPending:    "Pending",
		LineStatusReady:      "Ready",
		LineStatusDispatched: "Dispatched",
		LineStatusDelivered:  "Delivered",
		LineStatusCancelled:  "Cancelled",
	}
}

// Validate checks if the LineStatus value is valid.
func (s LineStatus) Validate() error {
	if s <= LineStatusUnknown || s > LineStatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("line status",
			errs.NewValueIsOutOfRangeError("line status", int(s), int(LineStatusPending), int(LineStatusCancelled)))
	}
	return nil
}

// String returns the human-readable name of the line status.
func (s LineStatus) String() string {
	if str, ok := getLineStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
