package commands

import (
	"context"
)

// RejectOrderCommandHandler moves a pending order to Rejected (terminal).
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRejectOrderCommandHandler creates a handler for order rejection.
func NewRejectOrderCommandHandler(uowFactory OrderUoWFactory) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rejection command: loads the order, applies the
// transition with the reviewer note, and persists the result.
func (h RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
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

	if err = aggregate.Reject(cmd.Actor(), cmd.Note()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
