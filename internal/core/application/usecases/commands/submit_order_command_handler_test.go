package commands_test

import (
	"errors"
	"testing"

	"buyback/internal/core/application/services"
	"buyback/internal/core/application/usecases/commands"
	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/core/domain/model/order"
	"buyback/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitOrderCommand(
		kernel.NewUUID(), testShipping(t), mustMoney(t, 420.00))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByNumber", ctx, mock.AnythingOfType("kernel.OrderNumber")).
			Return(nil, errs.NewObjectNotFoundError("number", "free")).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderCommandHandler(
		factory, services.NewNumberGeneratorWithDraw(func() int { return 42007 }))
	number, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, "42-007", number.String())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockOrderUoWFactory)
	h := commands.NewSubmitOrderCommandHandler(factory, services.NewNumberGenerator())

	_, err := h.Handle(ctx, commands.SubmitOrderCommand{})
	require.ErrorIs(t, err, commands.ErrSubmitOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestSubmitOrderCommandHandler_Handle_NumberSpaceExhausted(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitOrderCommand(
		kernel.NewUUID(), testShipping(t), mustMoney(t, 420.00))
	require.NoError(t, err)

	taken := restoreOrderInStatus(t, order.PendingShipment, nil)
	repo := new(MockOrderRepository)
	repo.On("GetByNumber", ctx, mock.AnythingOfType("kernel.OrderNumber")).
		Return(taken, nil).Times(20)

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderCommandHandler(
		factory, services.NewNumberGeneratorWithDraw(func() int { return 42007 }))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, services.ErrNumberSpaceExhausted)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitOrderCommand(
		kernel.NewUUID(), testShipping(t), mustMoney(t, 420.00))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByNumber", ctx, mock.AnythingOfType("kernel.OrderNumber")).
			Return(nil, errs.NewObjectNotFoundError("number", "free")).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(errors.New("unique constraint violation")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderCommandHandler(
		factory, services.NewNumberGeneratorWithDraw(func() int { return 42007 }))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
