package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances. Each request and each
// scheduler tick gets its own instance so concurrent operations stay
// isolated.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary over the order
// store. Client code manages the transaction lifecycle explicitly.
type UnitOfWork interface {
	// Begin starts a new store transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer after a
	// commit; it returns an error for the already-closed transaction which
	// callers ignore.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository
}
