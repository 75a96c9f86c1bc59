package ports

import (
	"context"

	"tradein/internal/core/domain/model/order"
)

// CustomerOrderRepository persists the denormalized per-customer copy of an
// order's summary fields, kept for cheap customer-facing reads.
//
// The copy is derived from the aggregate on every write and must be updated
// in the same transaction as the primary record: after any successful commit
// the two are identical on status and timestamp fields, with no
// eventual-consistency window.
type CustomerOrderRepository interface {
	// Upsert writes the customer copy derived from the aggregate, creating
	// it on first write.
	Upsert(ctx context.Context, aggregate *order.Order) error
}
