package commands

import (
	"context"
	"time"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

// FinalizeAutoRequoteCommandHandler completes an order at the reduced
// auto-requote amount after the negotiation window expired. The reduction is
// computed once and recorded with the before and after amounts; a repeat
// finalization is a conflict, so the reduction can never compound.
type FinalizeAutoRequoteCommandHandler struct {
	writer OrderWriter
	guard  NotificationGuard
}

// NewFinalizeAutoRequoteCommandHandler creates a handler for auto-requote
// finalization.
func NewFinalizeAutoRequoteCommandHandler(writer OrderWriter, guard NotificationGuard) (FinalizeAutoRequoteCommandHandler, error) {
	if writer.uowFactory == nil {
		return FinalizeAutoRequoteCommandHandler{}, errs.NewValueIsRequiredError("writer")
	}

	return FinalizeAutoRequoteCommandHandler{writer: writer, guard: guard}, nil
}

// Handle applies the reduced payout and completes the order, then emails the
// customer the final amount. The email is best effort.
func (h *FinalizeAutoRequoteCommandHandler) Handle(ctx context.Context, cmd FinalizeAutoRequoteCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	aggregate, err := h.writer.Apply(ctx, cmd.OrderNumber(), func(o *order.Order) error {
		return o.FinalizeAutoRequote(cmd.InitiatedBy(), cmd.Manual(), now)
	})
	if err != nil {
		return nil, err
	}

	_ = h.guard.Send(ctx, aggregate, order.NotificationOrderCompleted, map[string]string{
		"finalPayout": kernel.FormatMoney(aggregate.FinalPayoutAmount()),
	})

	return aggregate, nil
}
