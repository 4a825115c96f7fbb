package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/pkg/errs"
)

// RestockInventoryCommandHandler registers goods receipts in the ledger.
// An unknown SKU gets a fresh ledger record; an existing one has its free
// stock incremented.
type RestockInventoryCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewRestockInventoryCommandHandler creates a handler for goods receipts.
func NewRestockInventoryCommandHandler(uowFactory InventoryUoWFactory) RestockInventoryCommandHandler {
	return RestockInventoryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the goods receipt command.
func (h RestockInventoryCommandHandler) Handle(ctx context.Context, cmd RestockInventoryCommand) error {
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

	inventoryRepo := uow.InventoryRepository()

	record, err := inventoryRepo.Get(ctx, cmd.SKU())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		record, err = inventory.NewRecord(cmd.SKU(), cmd.Quantity().Value(), 0)
		if err != nil {
			return err
		}
		if err = inventoryRepo.Add(ctx, record); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if err = record.Restock(cmd.Quantity()); err != nil {
			return err
		}
		if err = inventoryRepo.Update(ctx, record); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
