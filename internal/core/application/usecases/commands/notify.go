package commands

import (
	"context"
	"fmt"

	"buyback/internal/core/application/services"
	"buyback/internal/core/domain/model/order"
	"buyback/internal/core/ports"
)

// threadSubject is the subject line of an order's conversation thread.
func threadSubject(o *order.Order) string {
	return fmt.Sprintf("Device buyback order %s", o.Number())
}

// notifyBuyer delivers a buyer-facing message into the order's single
// conversation thread, creating the thread first if the order has none. When
// the thread already exists its first message was already delivered, so the
// body goes in as a comment. EnsureThread itself guarantees delivery on the
// create path, including when it adopts another writer's thread.
//
// Runs strictly after the lifecycle transition committed; failures surface as
// upstream errors and never roll the transition back.
func notifyBuyer(
	ctx context.Context, binder *services.ThreadBinder, o *order.Order, body string,
) error {
	hadThread := o.ThreadID() != nil

	threadID, err := binder.EnsureThread(ctx, o, threadSubject(o), body)
	if err != nil {
		return err
	}

	if hadThread {
		return binder.PostComment(ctx, threadID, body, ports.VisibilityPublic)
	}
	return nil
}
