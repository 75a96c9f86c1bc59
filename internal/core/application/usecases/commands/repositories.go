// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"tradein/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CustomerOrderRepoFactory provides access to the denormalized customer
	// copy within the same transaction as the primary record.
	CustomerOrderRepoFactory interface {
		CustomerOrderRepository() ports.CustomerOrderRepository
	}

	// CounterRepoFactory provides access to the order number counter within
	// a transaction, so an allocated number commits with its order.
	CounterRepoFactory interface {
		CounterRepository() ports.CounterRepository
	}

	// OrderUoW manages transactions for order mutations. Every mutation
	// writes the primary record and the customer copy together.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		CustomerOrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW adds number allocation for commands that create orders.
	UoW interface {
		TxManager
		OrderRepoFactory
		CustomerOrderRepoFactory
		CounterRepoFactory
	}

	// UoWFactory creates new unit of work instances for order creation.
	UoWFactory interface {
		Create() UoW
	}
)
