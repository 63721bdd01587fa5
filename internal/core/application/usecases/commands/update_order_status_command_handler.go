package commands

import (
	"context"
	"time"
)

// UpdateOrderStatusCommandHandler handles explicit status updates. It applies
// the same domain transition the dedicated endpoints use, without their side
// effects (labels, messages); those stay with the dedicated commands.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for explicit status
// updates.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle moves the order along the requested edge with a conditional write on
// the status the transition was computed from.
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context, cmd UpdateOrderStatusCommand,
) error {
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

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	expected := o.Status()
	if err = o.TransitionTo(cmd.Target(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.UpdateInStatus(ctx, o, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
