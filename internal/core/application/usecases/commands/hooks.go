package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// notifyReservationHooks informs downstream systems about committed
// reservation movements. Runs after the command's transaction committed, so a
// failing hook cannot undo the command; failures are logged and the hook
// implementation owns its retry policy.
func notifyReservationHooks(ctx context.Context, hooks []ports.AllocationHook, changes []ports.ReservationChange) {
	if len(changes) == 0 {
		return
	}

	logger := slog.Default().With("component", "allocation-hooks")
	for _, hook := range hooks {
		if err := hook.ReservationsChanged(ctx, changes); err != nil {
			logger.Warn("reservation hook failed", "error", err)
		}
	}
}
