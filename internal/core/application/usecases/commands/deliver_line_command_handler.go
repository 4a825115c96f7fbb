package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// DeliverLineCommandHandler confirms delivery of dispatched stock. Only the
// order aggregate moves; the stock physically left at dispatch time, so no
// ledger record is loaded and no hooks fire.
type DeliverLineCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeliverLineCommandHandler creates a handler for delivery confirmation.
func NewDeliverLineCommandHandler(uowFactory OrderUoWFactory) DeliverLineCommandHandler {
	return DeliverLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery confirmation command.
func (h DeliverLineCommandHandler) Handle(ctx context.Context, cmd DeliverLineCommand) error {
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

	coordinator := services.NewAllocationCoordinator()
	if err = coordinator.Deliver(aggregate, cmd.LineID(), cmd.Quantity(), cmd.Actor()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
