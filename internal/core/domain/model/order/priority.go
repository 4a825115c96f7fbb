package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Priority represents the urgency of a sales order. Used by the backorder
// allocation sweep to decide which outstanding orders compete for freed
// stock first.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	// PriorityLow marks orders that can wait for stock.
	PriorityLow

	// PriorityMedium is the default urgency.
	PriorityMedium

	// PriorityHigh marks orders allocated ahead of others.
	PriorityHigh
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "Unknown",
		PriorityLow:     "low",
		PriorityMedium:  "medium",
		PriorityHigh:    "high",
	}
}

// PriorityFromString parses a priority from its wire representation
// ("low", "medium", "high").
func PriorityFromString(s string) (Priority, error) {
	for priority, str := range getPriorityStrings() {
		if str == s && priority != PriorityUnknown {
			return priority, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("priority",
		fmt.Errorf("%q is not one of low, medium, high", s))
}

// Validate checks if the Priority value is valid.
func (p Priority) Validate() error {
	if p != PriorityLow && p != PriorityMedium && p != PriorityHigh {
		return errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String returns the wire representation of the priority.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "Unknown"
}
