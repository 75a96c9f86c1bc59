package ports

import (
	"context"
	"time"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Update is conditional on the version the aggregate was loaded with: a
// concurrent writer that committed first makes the update fail with a
// conflict, and the caller re-reads post-commit state to decide whether its
// transition still applies.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. Fails with a
	// conflict when the stored version no longer matches the aggregate's.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its order number.
	Get(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// GetAllInTransit retrieves orders with an active shipment leg, the
	// candidates for a scheduled tracking sync.
	GetAllInTransit(ctx context.Context) ([]*order.Order, error)

	// GetReOfferExpiredBefore retrieves orders whose pending negotiation
	// window closed before the cutoff, the candidates for auto-requote.
	GetReOfferExpiredBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
