package order

import (
	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a sales order.
// It implements a state machine with defined transitions to ensure
// orders follow the fulfillment workflow.
//
// State transitions:
//
//	PendingApproval ──┬──> Approved ──> Ready ─────────┬──> Dispatched ──> Delivered
//	                  │        │    └──> PartialFulfillment ──┘   │
//	                  │        │              │                   │
//	                  └──> Rejected           └───> Cancelled <───┘ (not from Dispatched)
//
// Ready, PartialFulfillment, Dispatched, and Delivered are derived from line
// progress and are never entered by a direct command; PendingApproval,
// Approved, Rejected, and Cancelled are entered by header commands.
// Rejected, Cancelled, and Delivered are terminal for the order as a whole.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPendingApproval is the initial status when an order is created.
	// Only approval or rejection are legal from here.
	StatusPendingApproval

	// StatusApproved indicates the order passed review and its lines may be
	// allocated against inventory.
	StatusApproved

	// StatusReady indicates every line is fully allocated and nothing has
	// been dispatched yet.
	StatusReady

	// StatusPartialFulfillment indicates some lines have progressed further
	// (dispatched or delivered) than others (pending or ready).
	StatusPartialFulfillment

	// StatusDispatched indicates every line has been fully dispatched.
	StatusDispatched

	// StatusDelivered indicates every line has been fully delivered.
	// This is a terminal state.
	StatusDelivered

	// StatusRejected indicates the order failed review. Terminal.
	StatusRejected

	// StatusCancelled indicates the order was cancelled; reservations of
	// undispatched lines have been released. Terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:            "Unknown",
		StatusPendingApproval:    "PendingApproval",
		StatusApproved:           "Approved",
		StatusReady:              "Ready",
		StatusPartialFulfillment: "PartialFulfillment",
		StatusDispatched:         "Dispatched",
		StatusDelivered:          "Delivered",
		StatusRejected:           "Rejected",
		StatusCancelled:          "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPendingApproval:    "PendingApproval",
		StatusApproved:           "Approved",
		StatusReady:              "Ready",
		StatusPartialFulfillment: "PartialFulfillment",
		StatusDispatched:         "Dispatched",
		StatusDelivered:          "Delivered",
		StatusRejected:           "Rejected",
		StatusCancelled:          "Cancelled",
	}
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			errs.NewValueIsOutOfRangeError("status", int(s), int(StatusPendingApproval), int(StatusCancelled)))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further order-level transitions exist.
// Individual lines of a cancelled order keep their dispatched or delivered
// state, but the order as a whole no longer moves.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusDelivered
}

// Approve transitions the status to Approved.
//
// Valid transitions:
//   - PendingApproval -> Approved
//
// Returns (0, InvalidTransitionError) for every other current status;
// the state is left unchanged and no audit entry is written by callers.
func (s Status) Approve() (Status, error) {
	if s != StatusPendingApproval {
		return 0, errs.NewInvalidTransitionError("order status", s.String(), StatusApproved.String())
	}
	return StatusApproved, nil
}

// Reject transitions the status to Rejected.
//
// Valid transitions:
//   - PendingApproval -> Rejected
func (s Status) Reject() (Status, error) {
	if s != StatusPendingApproval {
		return 0, errs.NewInvalidTransitionError("order status", s.String(), StatusRejected.String())
	}
	return StatusRejected, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Approved -> Cancelled
//   - Ready -> Cancelled
//   - PartialFulfillment -> Cancelled (dispatched lines keep their state)
//
// PendingApproval orders are rejected, not cancelled; fully dispatched
// orders can only move to Delivered.
func (s Status) Cancel() (Status, error) {
	if s != StatusApproved && s != StatusReady && s != StatusPartialFulfillment {
		return 0, errs.NewInvalidTransitionError("order status", s.String(), StatusCancelled.String())
	}
	return StatusCancelled, nil
}

// ValidateAllocate checks if line allocation is allowed in the current status
// without performing any transition.
//
// Valid statuses for allocation:
//   - Approved
//   - PartialFulfillment (remaining lines of a partially shipped order)
func (s Status) ValidateAllocate() error {
	if s != StatusApproved && s != StatusPartialFulfillment {
		return errs.NewInvalidTransitionError("order status", s.String(), "allocation")
	}
	return nil
}

// ValidateDispatch checks if line dispatch is allowed in the current status.
//
// Valid statuses for dispatch:
//   - Approved (a fully allocated line of an otherwise pending order)
//   - Ready
//   - PartialFulfillment
func (s Status) ValidateDispatch() error {
	if s != StatusApproved && s != StatusReady && s != StatusPartialFulfillment {
		return errs.NewInvalidTransitionError("order status", s.String(), "dispatch")
	}
	return nil
}

// ValidateDeliver checks if line delivery is allowed in the current status.
//
// Valid statuses for delivery:
//   - PartialFulfillment
//   - Dispatched
func (s Status) ValidateDeliver() error {
	if s != StatusPartialFulfillment && s != StatusDispatched {
		return errs.NewInvalidTransitionError("order status", s.String(), "delivery")
	}
	return nil
}
