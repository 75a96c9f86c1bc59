package commands

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

const (
	sequencerMaxRetries = 4
	sequencerRetryBase  = 50 * time.Millisecond
)

// CreateOrderCommandHandler handles the business logic for opening trade-in
// orders. The order number comes from the shared counter inside the same
// transaction that persists the order, which keeps the sequence gapless: an
// aborted creation rolls the counter increment back with it.
//
// Concurrent creations serialize on the counter row; when the database
// reports a serialization or lock failure the whole transaction is retried
// with backoff rather than surfaced to the caller.
type CreateOrderCommandHandler struct {
	uowFactory   UoWFactory
	numberPrefix string
	numberFloor  int64
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// numberPrefix and numberFloor configure the order number sequence; raising
// the floor later moves the next issued number up without renumbering history.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, numberPrefix string, numberFloor int64) (CreateOrderCommandHandler, error) {
	if uowFactory == nil {
		return CreateOrderCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if numberPrefix == "" {
		return CreateOrderCommandHandler{}, errs.NewValueIsRequiredError("numberPrefix")
	}

	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		numberPrefix: numberPrefix,
		numberFloor:  numberFloor,
	}, nil
}

// Handle allocates the next order number and persists the new order together
// with its customer copy in one transaction. Returns the created aggregate.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	backoff := retry.WithMaxRetries(sequencerMaxRetries, retry.NewFibonacci(sequencerRetryBase))

	var created *order.Order
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		aggregate, err := h.createOnce(ctx, cmd)
		if err != nil {
			if isRetryableTxError(err) {
				return retry.RetryableError(err)
			}
			return err
		}

		created = aggregate
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (h *CreateOrderCommandHandler) createOnce(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	value, err := uow.CounterRepository().Next(ctx, h.numberFloor)
	if err != nil {
		return nil, err
	}

	number, err := kernel.NewOrderNumber(h.numberPrefix, value)
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(number, cmd.CustomerID(), cmd.CustomerEmail(),
		cmd.DeviceModel(), cmd.DeviceSerial(), cmd.EstimatedQuote(), cmd.NoKit())
	if err != nil {
		return nil, err
	}

	if cmd.NoKit() && cmd.InboundTracking() != "" {
		if err := aggregate.AssignInboundTracking(cmd.InboundTracking(), cmd.CarrierCode()); err != nil {
			return nil, err
		}
	}

	aggregate.AppendLog(order.LogTypeOrderCreated, "order created",
		map[string]string{"estimatedQuote": kernel.FormatMoney(cmd.EstimatedQuote())}, time.Now().UTC())

	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
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

// isRetryableTxError reports whether the error is a transient transaction
// failure from concurrent counter access, for example a serialization
// failure, a deadlock, or a duplicate order number from a lost race.
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return errors.Is(err, errs.ErrConflict)
	}

	return pgerrcode.IsTransactionRollback(pgErr.Code) ||
		pgErr.Code == pgerrcode.LockNotAvailable ||
		pgErr.Code == pgerrcode.UniqueViolation
}
