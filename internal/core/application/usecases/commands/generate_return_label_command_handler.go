package commands

import (
	"context"
	"time"

	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

// GenerateReturnLabelCommandHandler records the return shipment label for an
// order whose revised offer the customer declined.
type GenerateReturnLabelCommandHandler struct {
	writer OrderWriter
}

// NewGenerateReturnLabelCommandHandler creates a handler for return labels.
func NewGenerateReturnLabelCommandHandler(writer OrderWriter) (GenerateReturnLabelCommandHandler, error) {
	if writer.uowFactory == nil {
		return GenerateReturnLabelCommandHandler{}, errs.NewValueIsRequiredError("writer")
	}

	return GenerateReturnLabelCommandHandler{writer: writer}, nil
}

// Handle records the label's tracking data and moves the order to
// return_label_generated.
func (h *GenerateReturnLabelCommandHandler) Handle(ctx context.Context, cmd GenerateReturnLabelCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return h.writer.Apply(ctx, cmd.OrderNumber(), func(o *order.Order) error {
		return o.MarkReturnLabelGenerated(cmd.TrackingNumber(), cmd.CarrierCode(), now)
	})
}
