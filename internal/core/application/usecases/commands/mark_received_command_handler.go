package commands

import (
	"context"
	"time"

	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

// MarkReceivedCommandHandler records a manual device check-in and tells the
// customer their device arrived.
type MarkReceivedCommandHandler struct {
	writer OrderWriter
	guard  NotificationGuard
}

// NewMarkReceivedCommandHandler creates a handler for manual check-ins.
func NewMarkReceivedCommandHandler(writer OrderWriter, guard NotificationGuard) (MarkReceivedCommandHandler, error) {
	if writer.uowFactory == nil {
		return MarkReceivedCommandHandler{}, errs.NewValueIsRequiredError("writer")
	}

	return MarkReceivedCommandHandler{writer: writer, guard: guard}, nil
}

// Handle moves the order to received and sends the arrival email, best
// effort.
func (h *MarkReceivedCommandHandler) Handle(ctx context.Context, cmd MarkReceivedCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	aggregate, err := h.writer.Apply(ctx, cmd.OrderNumber(), func(o *order.Order) error {
		return o.MarkReceived(now)
	})
	if err != nil {
		return nil, err
	}

	_ = h.guard.Send(ctx, aggregate, order.NotificationDeviceReceived, nil)

	return aggregate, nil
}
