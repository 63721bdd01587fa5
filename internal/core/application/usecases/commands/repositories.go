// Package commands contains the write-side operations of the order
// lifecycle. Each lifecycle transition is one command plus one handler;
// handlers validate the command, run the domain transition, persist it with a
// conditional status write, and only then fire side effects (labels, ticket
// messages).
package commands

import (
	"context"

	"buyback/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers.
type (
	// TxManager handles the store transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages a transaction over the order store.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances. Each request
	// and each scheduler tick gets its own.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
