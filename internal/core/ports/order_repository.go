// Package ports defines the interfaces between the application core and its
// adapters: the order store, the transactional unit of work, and the two
// external providers (ticketing and shipping labels).
package ports

import (
	"context"
	"time"

	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Status transitions must be persisted through UpdateInStatus so that the
// store performs a single conditional write on the expected prior status;
// a plain read-check-write sequence would reopen the double-resolution race.
type OrderRepository interface {
	// Add persists a new order aggregate. Fails if the order number is
	// already taken (unique index).
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order without a status
	// precondition. Used for side-effect fields (label URLs) attached after
	// a transition already committed.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateInStatus persists the aggregate only if the stored status still
	// equals expected. Returns an errs.ConflictError when another writer got
	// there first.
	UpdateInStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// BindThread sets the conversation thread id only if none is stored yet
	// (conditional write on thread_id IS NULL). Returns an
	// errs.ConflictError when the order is already bound.
	BindThread(ctx context.Context, id kernel.UUID, threadID string) error

	// Get retrieves an order by its store-assigned identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-facing NN-NNN number.
	GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// GetAllReofferExpired retrieves all orders in re_offer_pending whose
	// auto-resolve deadline is at or before now. Feeds the scheduler sweep.
	GetAllReofferExpired(ctx context.Context, now time.Time) ([]*order.Order, error)
}
