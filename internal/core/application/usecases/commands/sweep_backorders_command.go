package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrSweepBackordersCommandIsNotConstructed = errors.New(
	"SweepBackordersCommand must be created via NewSweepBackordersCommand constructor",
)

// SweepBackordersCommand triggers one allocation sweep over the open orders.
// This is a parameterless command issued by the background scheduler; it
// revisits lines that could not be fully allocated earlier and fills them
// from whatever stock has arrived since.
type SweepBackordersCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepBackordersCommand creates a new command to trigger a backorder sweep.
func NewSweepBackordersCommand() SweepBackordersCommand {
	return SweepBackordersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSweepBackordersCommandIsNotConstructed if validation fails.
func (c *SweepBackordersCommand) Validate() error {
	return c.guard.Validate(
		ErrSweepBackordersCommandIsNotConstructed,
	)
}
