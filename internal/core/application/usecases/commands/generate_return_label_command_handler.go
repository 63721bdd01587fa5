package commands

import (
	"context"
	"log/slog"

	"buyback/internal/core/application/services"
	"buyback/internal/core/domain/model/order"
	domainservices "buyback/internal/core/domain/services"
)

// GenerateReturnLabelCommandHandler handles return label generation for
// orders whose re-offer was declined. The address pair is the mirror image of
// the outbound label; the outbound label fields are left untouched.
type GenerateReturnLabelCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   *services.LabelResolver
	logger     *slog.Logger
}

// NewGenerateReturnLabelCommandHandler creates a handler for return label
// generation.
func NewGenerateReturnLabelCommandHandler(
	uowFactory OrderUoWFactory,
	resolver *services.LabelResolver,
	logger *slog.Logger,
) GenerateReturnLabelCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return GenerateReturnLabelCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		logger:     logger.With(slog.String("component", "generate-return-label")),
	}
}

// Handle transitions the order to return_label_generated and purchases the
// return label.
func (h GenerateReturnLabelCommandHandler) Handle(
	ctx context.Context, cmd GenerateReturnLabelCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.commitTransition(ctx, cmd)
	if err != nil {
		return err
	}

	info, err := h.resolver.Resolve(ctx, o, domainservices.Return)
	if err != nil {
		h.logger.Error("return label purchase failed, order stays recoverable",
			slog.String("order_id", o.ID().String()),
			slog.Any("error", err))
		return err
	}

	if o.ReturnLabelURL() == "" {
		if err = o.AttachReturnLabel(info.LabelURL, info.TrackingNumber); err != nil {
			return err
		}
		if err = h.persistLabel(ctx, o); err != nil {
			return err
		}
	}

	return nil
}

func (h GenerateReturnLabelCommandHandler) commitTransition(
	ctx context.Context, cmd GenerateReturnLabelCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	// Recovery path, same shape as the outbound label.
	if o.Status() == order.ReturnLabelGenerated && o.ReturnLabelURL() == "" {
		return o, nil
	}

	if err = o.MarkReturnLabelGenerated(); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateInStatus(ctx, o, order.ReturnRequested); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h GenerateReturnLabelCommandHandler) persistLabel(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
