package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"buyback/internal/core/application/services"
	"buyback/internal/core/domain/model/order"
	"buyback/internal/pkg/errs"
)

// SweepExpiredReoffersCommandHandler auto-accepts re-offers whose response
// deadline has passed without a buyer decision.
//
// Each order is resolved in its own unit of work so one failure never blocks
// the rest. Conflicts mean a buyer (or an overlapping sweep) resolved the
// order between the scan and the write; those are skipped, which is what
// makes the sweep safe to re-run.
type SweepExpiredReoffersCommandHandler struct {
	uowFactory OrderUoWFactory
	binder     *services.ThreadBinder
	logger     *slog.Logger
}

// NewSweepExpiredReoffersCommandHandler creates a handler for the
// auto-resolution sweep.
func NewSweepExpiredReoffersCommandHandler(
	uowFactory OrderUoWFactory,
	binder *services.ThreadBinder,
	logger *slog.Logger,
) SweepExpiredReoffersCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return SweepExpiredReoffersCommandHandler{
		uowFactory: uowFactory,
		binder:     binder,
		logger:     logger.With(slog.String("component", "reoffer-sweep")),
	}
}

// Handle runs one sweep pass. Per-order failures are joined into the
// returned error after every order has been attempted.
func (h SweepExpiredReoffersCommandHandler) Handle(
	ctx context.Context, cmd SweepExpiredReoffersCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	expired, err := h.findExpired(ctx, now)
	if err != nil {
		return err
	}

	var failures []error
	resolved := 0
	for _, o := range expired {
		if err := h.resolveOne(ctx, o, now); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				h.logger.Info("order already resolved, skipping",
					slog.String("order_id", o.ID().String()))
				continue
			}
			failures = append(failures, fmt.Errorf("order %s: %w", o.ID(), err))
			continue
		}
		resolved++
	}

	h.logger.Info("sweep finished",
		slog.Int("expired", len(expired)),
		slog.Int("auto_accepted", resolved),
		slog.Int("failed", len(failures)))

	return errors.Join(failures...)
}

func (h SweepExpiredReoffersCommandHandler) findExpired(
	ctx context.Context, now time.Time,
) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err := uow.OrderRepository().GetAllReofferExpired(ctx, now)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return expired, nil
}

// resolveOne applies the auto-accept transition to a single order in its own
// transaction, then records the automatic resolution in the order's thread.
func (h SweepExpiredReoffersCommandHandler) resolveOne(
	ctx context.Context, o *order.Order, now time.Time,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := o.AutoAccept(now); err != nil {
		return err
	}

	if err := uow.OrderRepository().UpdateInStatus(ctx, o, order.ReofferPending); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"The revised offer of %s for order %s was automatically accepted after the response period ended. Payment is on its way.",
		o.Reoffer().NewPrice(), o.Number())
	if err := notifyBuyer(ctx, h.binder, o, body); err != nil {
		h.logger.Error("auto-accept notification failed",
			slog.String("order_id", o.ID().String()),
			slog.Any("error", err))
		return err
	}

	return nil
}
