package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApproveOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should approve a pending order", func(t *testing.T) {
		ctx := t.Context()
		pending := newPendingOrder(t, newTestLine(t, "500ml", 300))

		cmd, err := commands.NewApproveOrderCommand(pending.ID(), "supervisor")

		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)
		factory := new(MockOrderUoWFactory)

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once(),
			orderRepo.On("Update", ctx, pending).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := commands.NewApproveOrderCommandHandler(factory)
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.StatusApproved, pending.Status())
		assert.Len(t, pending.History(), 2)
		uow.AssertExpectations(t)
	})

	t.Run("should fail on an already approved order without updating", func(t *testing.T) {
		ctx := t.Context()
		aggregate := newApprovedOrder(t, newTestLine(t, "500ml", 300))

		cmd, err := commands.NewApproveOrderCommand(aggregate.ID(), "supervisor")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)
		factory := new(MockOrderUoWFactory)

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := commands.NewApproveOrderCommandHandler(factory)
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		orderRepo.AssertNotCalled(t, "Update", ctx, aggregate)
		uow.AssertNotCalled(t, "Commit", ctx)
	})
}
