package commands

import (
	"context"
	"time"

	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

// MarkInspectedCommandHandler confirms the inspection passed at full value.
type MarkInspectedCommandHandler struct {
	writer OrderWriter
}

// NewMarkInspectedCommandHandler creates a handler for inspection results.
func NewMarkInspectedCommandHandler(writer OrderWriter) (MarkInspectedCommandHandler, error) {
	if writer.uowFactory == nil {
		return MarkInspectedCommandHandler{}, errs.NewValueIsRequiredError("writer")
	}

	return MarkInspectedCommandHandler{writer: writer}, nil
}

// Handle records the confirmed payout and moves the order to inspected.
func (h *MarkInspectedCommandHandler) Handle(ctx context.Context, cmd MarkInspectedCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return h.writer.Apply(ctx, cmd.OrderNumber(), func(o *order.Order) error {
		return o.MarkInspected(cmd.FinalPayout(), now)
	})
}
