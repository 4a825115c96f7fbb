package commands

import (
	"context"
)

// ApproveOrderCommandHandler moves a pending order to Approved.
// Legality of the transition is the state machine's decision; an order in any
// other status fails with InvalidTransitionError and stays unchanged.
type ApproveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewApproveOrderCommandHandler creates a handler for order approval.
func NewApproveOrderCommandHandler(uowFactory OrderUoWFactory) ApproveOrderCommandHandler {
	return ApproveOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the approval command: loads the order, applies the
// transition, and persists the new status with its audit entry.
func (h ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Approve(cmd.Actor()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
