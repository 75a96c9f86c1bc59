package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

// OrderWriter applies a mutation to an order aggregate inside a single
// transaction and keeps the denormalized customer copy in step with the
// primary record. Every status change gets exactly one status_changed
// audit entry, appended here so individual handlers cannot forget it.
type OrderWriter struct {
	uowFactory OrderUoWFactory
}

func NewOrderWriter(uowFactory OrderUoWFactory) (OrderWriter, error) {
	if uowFactory == nil {
		return OrderWriter{}, errs.NewValueIsRequiredError("uowFactory")
	}

	return OrderWriter{uowFactory: uowFactory}, nil
}

// Apply loads the order fresh inside the transaction, runs mutate on it and
// persists both the primary record and the customer copy. The aggregate
// passed to mutate is authoritative; callers must not reuse state read
// outside the transaction for branching decisions.
func (w OrderWriter) Apply(ctx context.Context, number kernel.OrderNumber,
	mutate func(o *order.Order) error) (*order.Order, error) {
	uow := w.uowFactory.Create()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	aggregate, err := uow.OrderRepository().Get(ctx, number)
	if err != nil {
		return nil, err
	}

	statusBefore := aggregate.Status()

	if err := mutate(aggregate); err != nil {
		return nil, err
	}

	if aggregate.Status() != statusBefore {
		aggregate.AppendLog(order.LogTypeStatusChanged,
			fmt.Sprintf("status changed from %s to %s", statusBefore, aggregate.Status()),
			map[string]string{
				"from": statusBefore.String(),
				"to":   aggregate.Status().String(),
			}, time.Now().UTC())
	}

	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err := uow.CustomerOrderRepository().Upsert(ctx, aggregate); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// Load reads an order outside of any mutation. Handlers use it for
// pre-transaction checks and formatting only.
func (w OrderWriter) Load(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	uow := w.uowFactory.Create()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	aggregate, err := uow.OrderRepository().Get(ctx, number)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// IsConflict reports whether err is the optimistic-lock or state conflict
// class that callers may safely retry or surface as 409.
func IsConflict(err error) bool {
	return errors.Is(err, errs.ErrConflict)
}
