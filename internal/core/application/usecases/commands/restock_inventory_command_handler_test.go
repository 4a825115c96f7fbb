package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRestockInventoryCommandHandler_Handle(t *testing.T) {
	t.Run("should add free stock to an existing record", func(t *testing.T) {
		ctx := t.Context()
		record := newTestRecord(t, "500ml", 100)

		cmd, err := commands.NewRestockInventoryCommand(record.SKU(), mustQty(t, 50))
		require.NoError(t, err)

		inventoryRepo := new(MockInventoryRepository)
		uow := new(MockUoW)
		factory := new(MockInventoryUoWFactory)

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("InventoryRepository").Return(inventoryRepo).Once(),
			inventoryRepo.On("Get", ctx, record.SKU()).Return(record, nil).Once(),
			inventoryRepo.On("Update", ctx, record).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := commands.NewRestockInventoryCommandHandler(factory)
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 150, record.Available())
		uow.AssertExpectations(t)
	})

	t.Run("should create the ledger record on first receipt", func(t *testing.T) {
		ctx := t.Context()
		sku := mustSKU(t, "750ml")

		cmd, err := commands.NewRestockInventoryCommand(sku, mustQty(t, 200))
		require.NoError(t, err)

		inventoryRepo := new(MockInventoryRepository)
		uow := new(MockUoW)
		factory := new(MockInventoryUoWFactory)

		var created *inventory.Record
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("InventoryRepository").Return(inventoryRepo).Once(),
			inventoryRepo.On("Get", ctx, sku).
				Return(nil, errs.NewObjectNotFoundError("inventory record", sku.String())).Once(),
			inventoryRepo.On("Add", ctx, mock.AnythingOfType("*inventory.Record")).
				Run(func(args mock.Arguments) {
					created = args.Get(1).(*inventory.Record)
				}).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := commands.NewRestockInventoryCommandHandler(factory)
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, 200, created.Available())
		assert.Equal(t, 0, created.Reserved())
		uow.AssertExpectations(t)
	})
}
