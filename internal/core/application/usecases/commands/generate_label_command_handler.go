package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"buyback/internal/core/application/services"
	"buyback/internal/core/domain/model/order"
	domainservices "buyback/internal/core/domain/services"
)

// GenerateLabelCommandHandler handles outbound label generation.
//
// The status transition commits before the provider is called, so a provider
// failure leaves the order in label_generated with no label URL. Re-running
// the command against such an order skips the transition and retries only the
// side effect.
type GenerateLabelCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   *services.LabelResolver
	binder     *services.ThreadBinder
	logger     *slog.Logger
}

// NewGenerateLabelCommandHandler creates a handler for outbound label
// generation.
func NewGenerateLabelCommandHandler(
	uowFactory OrderUoWFactory,
	resolver *services.LabelResolver,
	binder *services.ThreadBinder,
	logger *slog.Logger,
) GenerateLabelCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return GenerateLabelCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		binder:     binder,
		logger:     logger.With(slog.String("component", "generate-label")),
	}
}

// Handle transitions the order to label_generated, purchases the label, and
// notifies the buyer.
func (h GenerateLabelCommandHandler) Handle(ctx context.Context, cmd GenerateLabelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.commitTransition(ctx, cmd)
	if err != nil {
		return err
	}

	info, err := h.resolver.Resolve(ctx, o, domainservices.Outbound)
	if err != nil {
		h.logger.Error("label purchase failed, order stays recoverable",
			slog.String("order_id", o.ID().String()),
			slog.Any("error", err))
		return err
	}

	if o.LabelURL() == "" {
		if err = o.AttachLabel(info.LabelURL, info.TrackingNumber); err != nil {
			return err
		}
		if err = h.persistLabel(ctx, o); err != nil {
			return err
		}
	}

	body := fmt.Sprintf(
		"Your shipping label for order %s is ready: %s (tracking number %s).",
		o.Number(), info.LabelURL, info.TrackingNumber)
	if err = notifyBuyer(ctx, h.binder, o, body); err != nil {
		h.logger.Error("buyer notification failed after label generation",
			slog.String("order_id", o.ID().String()),
			slog.Any("error", err))
		return err
	}

	return nil
}

// commitTransition moves the order to label_generated with a conditional
// write, or passes through an order already there awaiting its label.
func (h GenerateLabelCommandHandler) commitTransition(
	ctx context.Context, cmd GenerateLabelCommand,
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

	// Recovery path: the transition already committed but the provider call
	// failed before a label was attached.
	if o.Status() == order.LabelGenerated && o.LabelURL() == "" {
		return o, nil
	}

	if err = o.MarkLabelGenerated(time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateInStatus(ctx, o, order.PendingShipment); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h GenerateLabelCommandHandler) persistLabel(ctx context.Context, o *order.Order) error {
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
