package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// AllocateLineCommandHandler reserves stock for one order line.
// Loads the order and the ledger record of the line's SKU, lets the
// allocation coordinator move both sides, and persists them in a single
// transaction, so the line counters and the ledger can never drift apart.
// Registered allocation hooks are notified after the commit.
type AllocateLineCommandHandler struct {
	uowFactory UoWFactory
	hooks      []ports.AllocationHook
}

// NewAllocateLineCommandHandler creates a handler for line allocation.
func NewAllocateLineCommandHandler(uowFactory UoWFactory, hooks ...ports.AllocationHook) AllocateLineCommandHandler {
	return AllocateLineCommandHandler{
		uowFactory: uowFactory,
		hooks:      hooks,
	}
}

// Handle processes the allocation command.
// A version conflict on either aggregate surfaces as
// ConcurrencyConflictError; the caller decides whether to retry.
func (h AllocateLineCommandHandler) Handle(ctx context.Context, cmd AllocateLineCommand) error {
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
	if err = coordinator.Allocate(aggregate, record, cmd.LineID(), cmd.Quantity(), cmd.Actor()); err != nil {
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
		{SKU: line.SKU(), Delta: cmd.Quantity().Value()},
	})

	return nil
}
