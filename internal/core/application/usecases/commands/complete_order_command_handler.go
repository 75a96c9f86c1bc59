package commands

import (
	"context"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

// CompleteOrderCommandHandler closes an order after the payout went out and
// emails the customer the final amount.
type CompleteOrderCommandHandler struct {
	writer OrderWriter
	guard  NotificationGuard
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(writer OrderWriter, guard NotificationGuard) (CompleteOrderCommandHandler, error) {
	if writer.uowFactory == nil {
		return CompleteOrderCommandHandler{}, errs.NewValueIsRequiredError("writer")
	}

	return CompleteOrderCommandHandler{writer: writer, guard: guard}, nil
}

// Handle moves the order to completed. Completing an already completed order
// is an idempotent no-op.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.writer.Apply(ctx, cmd.OrderNumber(), func(o *order.Order) error {
		return o.Complete()
	})
	if err != nil {
		return nil, err
	}

	_ = h.guard.Send(ctx, aggregate, order.NotificationOrderCompleted, map[string]string{
		"finalPayout": kernel.FormatMoney(aggregate.FinalPayoutAmount()),
	})

	return aggregate, nil
}
