package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// DispatchLineCommandHandler ships allocated stock of one order line.
// The ledger consumes the reservation and the line counter advances in the
// same transaction. Registered allocation hooks are notified after the
// commit with a negative reservation delta.
type DispatchLineCommandHandler struct {
	uowFactory UoWFactory
	hooks      []ports.AllocationHook
}

// NewDispatchLineCommandHandler creates a handler for line dispatch.
func NewDispatchLineCommandHandler(uowFactory UoWFactory, hooks ...ports.AllocationHook) DispatchLineCommandHandler {
	return DispatchLineCommandHandler{
		uowFactory: uowFactory,
		hooks:      hooks,
	}
}

// Handle processes the dispatch command.
func (h DispatchLineCommandHandler) Handle(ctx context.Context, cmd DispatchLineCommand) error {
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
	inventoryRepo := uow.InventoryRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	line, err := aggregate.Line(cmd.LineID())
	if err != nil {
		return err
	}

	record, err := inventoryRepo.Get(ctx, line.SKU())
	if err != nil {
		return err
	}

	coordinator := services.NewAllocationCoordinator()
	if err = coordinator.Dispatch(
		aggregate, record, cmd.LineID(), cmd.Quantity(),
		cmd.Actor(), cmd.TrackingID(), cmd.Carrier(),
	); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = inventoryRepo.Update(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyReservationHooks(ctx, h.hooks, []ports.ReservationChange{
		{SKU: line.SKU(), Delta: -cmd.Quantity().Value()},
	})

	return nil
}
