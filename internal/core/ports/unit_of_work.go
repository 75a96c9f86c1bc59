package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It is the single
// serialization point for order mutations: the primary record, its
// denormalized customer copy, and the number counter are only reachable
// through repositories bound to the same transaction, so a commit applies
// all of their writes atomically and a rollback applies none.
//
// Client code must explicitly manage the transaction lifecycle and must not
// perform network I/O between Begin and Commit.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// CustomerOrderRepository returns a CustomerOrderRepository bound to the
	// current transaction.
	CustomerOrderRepository() CustomerOrderRepository

	// CounterRepository returns a CounterRepository bound to the current transaction.
	CounterRepository() CounterRepository
}
