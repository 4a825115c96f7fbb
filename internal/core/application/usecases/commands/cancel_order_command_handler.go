package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CancelOrderCommandHandler cancels an open order. Every ledger record
// carrying a reservation for the order is loaded up front, the coordinator
// releases the undispatched reservations, and the order plus all modified
// records are persisted in one transaction. Registered allocation hooks are
// notified after the commit with the released quantities.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	hooks      []ports.AllocationHook
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, hooks ...ports.AllocationHook) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		hooks:      hooks,
	}
}

// Handle processes the cancellation command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	records := make(map[kernel.SKU]*inventory.Record)
	for _, line := range aggregate.Lines() {
		if line.IsCancelled() || line.ReservedQuantity() == 0 {
			continue
		}
		if _, ok := records[line.SKU()]; ok {
			continue
		}

		record, err := inventoryRepo.Get(ctx, line.SKU())
		if err != nil {
			return err
		}
		records[line.SKU()] = record
	}

	before := reservedBySKU(records)

	coordinator := services.NewAllocationCoordinator()
	modified, err := coordinator.Cancel(aggregate, records, cmd.Actor())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	for _, record := range modified {
		if err = inventoryRepo.Update(ctx, record); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	var changes []ports.ReservationChange
	for _, record := range modified {
		if delta := record.Reserved() - before[record.SKU()]; delta != 0 {
			changes = append(changes, ports.ReservationChange{SKU: record.SKU(), Delta: delta})
		}
	}
	notifyReservationHooks(ctx, h.hooks, changes)

	return nil
}

func reservedBySKU(records map[kernel.SKU]*inventory.Record) map[kernel.SKU]int {
	reserved := make(map[kernel.SKU]int, len(records))
	for sku, record := range records {
		reserved[sku] = record.Reserved()
	}
	return reserved
}
