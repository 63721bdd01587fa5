package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"buyback/internal/core/application/services"
	"buyback/internal/core/domain/model/order"
)

// ResolveReofferCommandHandler handles the buyer's accept or decline of a
// pending re-offer. The conditional write on re_offer_pending is what closes
// the race against the auto-resolution sweep: exactly one resolution path
// wins, the other observes a conflict.
type ResolveReofferCommandHandler struct {
	uowFactory OrderUoWFactory
	binder     *services.ThreadBinder
	logger     *slog.Logger
}

// NewResolveReofferCommandHandler creates a handler for buyer re-offer
// decisions.
func NewResolveReofferCommandHandler(
	uowFactory OrderUoWFactory,
	binder *services.ThreadBinder,
	logger *slog.Logger,
) ResolveReofferCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ResolveReofferCommandHandler{
		uowFactory: uowFactory,
		binder:     binder,
		logger:     logger.With(slog.String("component", "resolve-reoffer")),
	}
}

// Handle applies the decision and records it in the order's conversation
// thread.
func (h ResolveReofferCommandHandler) Handle(ctx context.Context, cmd ResolveReofferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.commitTransition(ctx, cmd)
	if err != nil {
		return err
	}

	var body string
	switch cmd.Decision() {
	case DecisionAccept:
		body = fmt.Sprintf("Offer of %s accepted for order %s. Payment is on its way.",
			o.Reoffer().NewPrice(), o.Number())
	case DecisionDecline:
		body = fmt.Sprintf("Offer declined for order %s. We will return your device.",
			o.Number())
	}

	if err = notifyBuyer(ctx, h.binder, o, body); err != nil {
		h.logger.Error("resolution message delivery failed",
			slog.String("order_id", o.ID().String()),
			slog.String("decision", cmd.Decision().String()),
			slog.Any("error", err))
		return err
	}

	return nil
}

func (h ResolveReofferCommandHandler) commitTransition(
	ctx context.Context, cmd ResolveReofferCommand,
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

	now := time.Now().UTC()
	switch cmd.Decision() {
	case DecisionAccept:
		err = o.Accept(now)
	case DecisionDecline:
		err = o.Decline(now)
	}
	if err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateInStatus(ctx, o, order.ReofferPending); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
