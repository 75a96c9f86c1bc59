package commands

import (
	"context"
	"time"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

// ProposeReOfferCommandHandler records a revised offer on an inspected order
// and emails the customer that a decision is waiting. The email is best
// effort: a provider outage never rolls the offer back.
type ProposeReOfferCommandHandler struct {
	writer OrderWriter
	guard  NotificationGuard
}

// NewProposeReOfferCommandHandler creates a handler for revised offers.
func NewProposeReOfferCommandHandler(writer OrderWriter, guard NotificationGuard) (ProposeReOfferCommandHandler, error) {
	if writer.uowFactory == nil {
		return ProposeReOfferCommandHandler{}, errs.NewValueIsRequiredError("writer")
	}

	return ProposeReOfferCommandHandler{writer: writer, guard: guard}, nil
}

// Handle records the revised offer and opens the negotiation window.
// A second proposal while one is already pending fails with a conflict.
func (h *ProposeReOfferCommandHandler) Handle(ctx context.Context, cmd ProposeReOfferCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	aggregate, err := h.writer.Apply(ctx, cmd.OrderNumber(), func(o *order.Order) error {
		return o.ProposeReOffer(cmd.NewPrice(), cmd.Reasons(), cmd.Comments(), now)
	})
	if err != nil {
		return nil, err
	}

	_ = h.guard.Send(ctx, aggregate, order.NotificationReOfferMade, map[string]string{
		"newPrice":       kernel.FormatMoney(cmd.NewPrice()),
		"estimatedQuote": kernel.FormatMoney(aggregate.EstimatedQuote()),
	})

	return aggregate, nil
}
