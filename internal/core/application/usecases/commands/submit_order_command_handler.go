package commands

import (
	"context"
	"time"

	"buyback/internal/core/application/services"
	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/core/domain/model/order"
)

// SubmitOrderCommandHandler handles new order submissions. Draws a unique
// NN-NNN number inside the transaction so the probe and the insert see the
// same store state.
type SubmitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	numbers    *services.NumberGenerator
}

// NewSubmitOrderCommandHandler creates a handler for order submissions.
func NewSubmitOrderCommandHandler(
	uowFactory OrderUoWFactory, numbers *services.NumberGenerator,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		numbers:    numbers,
	}
}

// Handle processes the submission and returns the assigned order number.
// The order starts in pending_shipment.
func (h SubmitOrderCommandHandler) Handle(
	ctx context.Context, cmd SubmitOrderCommand,
) (kernel.OrderNumber, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.OrderNumber{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.OrderNumber{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	number, err := h.numbers.Generate(ctx, orderRepo)
	if err != nil {
		return kernel.OrderNumber{}, err
	}

	o, err := order.NewOrder(cmd.OrderID(), number, cmd.Shipping(), cmd.Quote(), time.Now().UTC())
	if err != nil {
		return kernel.OrderNumber{}, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return kernel.OrderNumber{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.OrderNumber{}, err
	}

	return number, nil
}
