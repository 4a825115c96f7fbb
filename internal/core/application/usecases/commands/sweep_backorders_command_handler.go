package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ErrNothingToAllocate signals a sweep that found no line it could fill.
// Expected between goods receipts; callers running on a schedule should not
// treat it as a failure.
var ErrNothingToAllocate = errors.New("no outstanding lines could be allocated")

// sweepActor is recorded in the audit trail for allocations made by the
// background sweep rather than an operator.
const sweepActor = "allocation-sweeper"

// SweepBackordersCommandHandler fills outstanding order lines from available
// stock. Orders arrive from the repository highest priority first, so scarce
// stock goes to urgent orders before standard ones. Each line gets as much as
// the ledger can cover; partial fills are fine, the next sweep continues
// where this one stopped.
//
// The whole sweep runs in one transaction. Ledger records are loaded once per
// SKU and carried across orders, so two orders competing for the same SKU see
// each other's reservations within the sweep.
type SweepBackordersCommandHandler struct {
	uowFactory UoWFactory
	hooks      []ports.AllocationHook
}

// NewSweepBackordersCommandHandler creates a handler for backorder sweeps.
func NewSweepBackordersCommandHandler(uowFactory UoWFactory, hooks ...ports.AllocationHook) SweepBackordersCommandHandler {
	return SweepBackordersCommandHandler{
		uowFactory: uowFactory,
		hooks:      hooks,
	}
}

// Handle processes the sweep command.
// Returns ErrNothingToAllocate when no allocation happened, either because no
// order is in an allocatable status or because no SKU with outstanding demand
// has free stock. SKUs without a ledger record are skipped, not failed.
func (h SweepBackordersCommandHandler) Handle(ctx context.Context, cmd SweepBackordersCommand) error {
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

	orders, err := orderRepo.GetAllAllocatable(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return ErrNothingToAllocate
	}

	coordinator := services.NewAllocationCoordinator()
	records := make(map[kernel.SKU]*inventory.Record)
	deltas := make(map[kernel.SKU]int)
	var touchedSKUs []kernel.SKU

	for _, aggregate := range orders {
		touched := false

		for _, line := range aggregate.Lines() {
			outstanding := line.OutstandingQuantity()
			if outstanding == 0 {
				continue
			}

			record, ok := records[line.SKU()]
			if !ok {
				record, err = inventoryRepo.Get(ctx, line.SKU())
				if errors.Is(err, errs.ErrObjectNotFound) {
					continue
				}
				if err != nil {
					return err
				}
				records[line.SKU()] = record
			}

			fill := outstanding
			if record.Available() < fill {
				fill = record.Available()
			}
			if fill == 0 {
				continue
			}

			qty, qtyErr := kernel.NewQuantity(fill)
			if qtyErr != nil {
				return qtyErr
			}

			if err = coordinator.Allocate(aggregate, record, line.ID(), qty, sweepActor); err != nil {
				return err
			}

			if deltas[line.SKU()] == 0 {
				touchedSKUs = append(touchedSKUs, line.SKU())
			}
			deltas[line.SKU()] += fill
			touched = true
		}

		if touched {
			if err = orderRepo.Update(ctx, aggregate); err != nil {
				return err
			}
		}
	}

	if len(touchedSKUs) == 0 {
		return ErrNothingToAllocate
	}

	for _, sku := range touchedSKUs {
		if err = inventoryRepo.Update(ctx, records[sku]); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	changes := make([]ports.ReservationChange, 0, len(touchedSKUs))
	for _, sku := range touchedSKUs {
		changes = append(changes, ports.ReservationChange{SKU: sku, Delta: deltas[sku]})
	}
	notifyReservationHooks(ctx, h.hooks, changes)

	return nil
}
