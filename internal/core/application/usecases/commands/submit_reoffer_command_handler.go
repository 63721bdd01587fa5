package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"buyback/internal/core/application/services"
	"buyback/internal/core/domain/model/order"
)

// SubmitReofferCommandHandler handles revised price proposals. After the
// transition to re_offer_pending commits, the buyer gets an offer message
// naming the two mutually exclusive actions and the auto-accept deadline.
type SubmitReofferCommandHandler struct {
	uowFactory OrderUoWFactory
	binder     *services.ThreadBinder
	logger     *slog.Logger
}

// NewSubmitReofferCommandHandler creates a handler for re-offer submissions.
func NewSubmitReofferCommandHandler(
	uowFactory OrderUoWFactory,
	binder *services.ThreadBinder,
	logger *slog.Logger,
) SubmitReofferCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return SubmitReofferCommandHandler{
		uowFactory: uowFactory,
		binder:     binder,
		logger:     logger.With(slog.String("component", "submit-reoffer")),
	}
}

// Handle transitions the order to re_offer_pending with a fresh 7-day
// deadline and sends the buyer-facing offer message.
func (h SubmitReofferCommandHandler) Handle(ctx context.Context, cmd SubmitReofferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.commitTransition(ctx, cmd)
	if err != nil {
		return err
	}

	reoffer := o.Reoffer()
	body := fmt.Sprintf(
		"After inspecting your device we can offer %s instead of the original %s.\n"+
			"Reason: %s.\n"+
			"Please accept the new offer or decline it to have your device returned. "+
			"Without a response the offer is automatically accepted on %s.",
		reoffer.NewPrice(), o.Quote(),
		strings.Join(reoffer.Reasons(), "; "),
		reoffer.AutoResolveDeadline().Format("January 2, 2006"))

	if err = notifyBuyer(ctx, h.binder, o, body); err != nil {
		h.logger.Error("offer message delivery failed",
			slog.String("order_id", o.ID().String()),
			slog.Any("error", err))
		return err
	}

	return nil
}

func (h SubmitReofferCommandHandler) commitTransition(
	ctx context.Context, cmd SubmitReofferCommand,
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

	expected := o.Status()

	reoffer, err := order.NewReoffer(cmd.NewPrice(), cmd.Reasons(), cmd.Comments(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = o.SubmitReoffer(reoffer); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateInStatus(ctx, o, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
