package commands

import (
	"context"
	"time"

	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

// MarkKitSentCommandHandler records that the shipping kit left the warehouse
// and attaches both shipment legs to the order.
type MarkKitSentCommandHandler struct {
	writer OrderWriter
}

// NewMarkKitSentCommandHandler creates a handler for kit shipment.
func NewMarkKitSentCommandHandler(writer OrderWriter) (MarkKitSentCommandHandler, error) {
	if writer.uowFactory == nil {
		return MarkKitSentCommandHandler{}, errs.NewValueIsRequiredError("writer")
	}

	return MarkKitSentCommandHandler{writer: writer}, nil
}

// Handle attaches the outbound and return tracking and moves the order to
// kit_sent.
func (h *MarkKitSentCommandHandler) Handle(ctx context.Context, cmd MarkKitSentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return h.writer.Apply(ctx, cmd.OrderNumber(), func(o *order.Order) error {
		return o.MarkKitSent(cmd.OutboundTracking(), cmd.ReturnTracking(), cmd.CarrierCode(), now)
	})
}
