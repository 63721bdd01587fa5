package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"buyback/internal/core/domain/model/order"
	"buyback/internal/core/ports"
	"buyback/internal/pkg/errs"
)

// ThreadBinder owns the one-thread-per-order correlation. Thread creation is
// not idempotent on the provider side, so the binder creates first and then
// claims the binding with a conditional write; the loser of a race discards
// its thread and adopts the winner's.
type ThreadBinder struct {
	provider   ports.ThreadProvider
	uowFactory ports.UnitOfWorkFactory
	logger     *slog.Logger
}

// NewThreadBinder creates a ThreadBinder.
func NewThreadBinder(
	provider ports.ThreadProvider,
	uowFactory ports.UnitOfWorkFactory,
	logger *slog.Logger,
) (*ThreadBinder, error) {
	if provider == nil {
		return nil, errs.NewValueIsRequiredError("provider")
	}
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ThreadBinder{
		provider:   provider,
		uowFactory: uowFactory,
		logger:     logger.With(slog.String("component", "thread-binder")),
	}, nil
}

// EnsureThread returns the order's conversation thread id, creating the
// thread and binding it first if none exists yet.
//
// When two callers race, both may create a provider thread, but only one
// conditional write succeeds. The loser's message opened the orphaned thread,
// so the loser re-posts it into the winner's thread before returning the
// winner's id; every message ends up in the same conversation.
func (b *ThreadBinder) EnsureThread(ctx context.Context, o *order.Order, subject, body string) (string, error) {
	if err := o.Validate(); err != nil {
		return "", err
	}

	if existing := o.ThreadID(); existing != nil {
		return *existing, nil
	}

	shipping := o.Shipping()
	threadID, err := b.provider.CreateThread(ctx, ports.NewThread{
		RequesterName:  shipping.Name(),
		RequesterEmail: shipping.Email(),
		Subject:        subject,
		Body:           body,
		Visibility:     ports.VisibilityPublic,
	})
	if err != nil {
		return "", errs.NewUpstreamFailureError("ticketing", err)
	}

	boundID, err := b.bind(ctx, o, threadID)
	if err != nil {
		return "", err
	}
	if boundID != threadID {
		b.logger.Warn("lost thread binding race, orphaning created thread",
			slog.String("order_id", o.ID().String()),
			slog.String("orphaned_thread_id", threadID),
			slog.String("bound_thread_id", boundID))
		if err := b.PostComment(ctx, boundID, body, ports.VisibilityPublic); err != nil {
			return "", err
		}
	}

	return boundID, nil
}

// PostComment appends a message to an existing thread.
func (b *ThreadBinder) PostComment(
	ctx context.Context, threadID, body string, visibility ports.ThreadVisibility,
) error {
	if threadID == "" {
		return errs.NewValueIsRequiredError("thread ID")
	}

	if err := b.provider.AppendComment(ctx, threadID, body, visibility); err != nil {
		return errs.NewUpstreamFailureError("ticketing", err)
	}
	return nil
}

// bind claims the binding with a conditional write and falls back to the
// stored id when another writer got there first.
func (b *ThreadBinder) bind(ctx context.Context, o *order.Order, threadID string) (string, error) {
	uow := b.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	err := uow.OrderRepository().BindThread(ctx, o.ID(), threadID)
	if errors.Is(err, errs.ErrConflict) {
		stored, getErr := uow.OrderRepository().Get(ctx, o.ID())
		if getErr != nil {
			return "", getErr
		}
		winner := stored.ThreadID()
		if winner == nil {
			return "", fmt.Errorf("thread binding conflict but no thread is stored: %w", err)
		}

		if bindErr := o.BindThread(*winner); bindErr != nil {
			return "", bindErr
		}
		return *winner, nil
	}
	if err != nil {
		return "", err
	}

	if err := uow.Commit(ctx); err != nil {
		return "", err
	}

	if err := o.BindThread(threadID); err != nil {
		return "", err
	}
	return threadID, nil
}
