package commands

import (
	"context"
	"time"

	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order and tells the customer.
// Cancelling an already cancelled order is an idempotent no-op; cancelling a
// completed order is a conflict.
type CancelOrderCommandHandler struct {
	writer OrderWriter
	guard  NotificationGuard
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(writer OrderWriter, guard NotificationGuard) (CancelOrderCommandHandler, error) {
	if writer.uowFactory == nil {
		return CancelOrderCommandHandler{}, errs.NewValueIsRequiredError("writer")
	}

	return CancelOrderCommandHandler{writer: writer, guard: guard}, nil
}

// Handle cancels the order and sends the cancellation email, best effort.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	aggregate, err := h.writer.Apply(ctx, cmd.OrderNumber(), func(o *order.Order) error {
		return o.Cancel(cmd.Reason(), now)
	})
	if err != nil {
		return nil, err
	}

	_ = h.guard.Send(ctx, aggregate, order.NotificationOrderCancelled, map[string]string{
		"reason": cmd.Reason(),
	})

	return aggregate, nil
}
