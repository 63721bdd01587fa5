package commands_test

import (
	"testing"

	"buyback/internal/core/application/usecases/commands"
	"buyback/internal/core/domain/model/order"
	"buyback/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderStatusCommand_RejectsInvalidStatus(t *testing.T) {
	o := restoreOrderInStatus(t, order.PendingShipment, nil)

	_, err := commands.NewUpdateOrderStatusCommand(o.ID(), order.Unknown)
	require.Error(t, err)

	_, err = commands.NewUpdateOrderStatusCommand(o.ID(), order.Status(42))
	require.Error(t, err)
}

func TestUpdateOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := restoreOrderInStatus(t, order.ReofferPending, pendingReoffer(t))
	cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), order.OfferAccepted)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("UpdateInStatus", ctx, o, order.ReofferPending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.OfferAccepted, o.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_IllegalEdgeConflicts(t *testing.T) {
	ctx := t.Context()
	o := restoreOrderInStatus(t, order.PendingShipment, nil)
	cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), order.OfferAccepted)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	require.Equal(t, order.PendingShipment, o.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_UnreachableTargets(t *testing.T) {
	ctx := t.Context()
	o := restoreOrderInStatus(t, order.LabelGenerated, nil)

	for _, target := range []order.Status{order.ReofferPending, order.PendingShipment} {
		cmd, err := commands.NewUpdateOrderStatusCommand(o.ID(), target)
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewUpdateOrderStatusCommandHandler(factory)
		err = h.Handle(ctx, cmd)
		require.Error(t, err, "target %s must be rejected", target)
		require.Equal(t, order.LabelGenerated, o.Status())
	}
}
