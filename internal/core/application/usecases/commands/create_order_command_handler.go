package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order capture.
// New orders start in PendingApproval status with untouched line counters;
// the inventory ledger is not involved until allocation.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order capture operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order capture command.
// Builds the lines and the aggregate through the domain constructors, which
// enforce the quantity and date rules, and persists the order with its
// creation audit entry in one transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lines := make([]*order.Line, 0, len(cmd.Lines()))
	for _, requested := range cmd.Lines() {
		qty, err := kernel.NewQuantity(requested.Quantity)
		if err != nil {
			return err
		}

		line, err := order.NewLine(requested.LineID, requested.SKU, qty, requested.UnitPrice)
		if err != nil {
			return err
		}

		lines = append(lines, line)
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Customer(), cmd.Reference(),
		cmd.OrderDate(), cmd.DeliveryDate(),
		cmd.Priority(),
		cmd.CreatedBy(),
		lines,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
