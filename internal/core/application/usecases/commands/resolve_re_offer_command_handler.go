package commands

import (
	"context"
	"time"

	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/errs"
)

// ResolveReOfferCommandHandler applies the customer's accept-or-decline
// decision on a pending revised offer. Resolving is a one-shot operation:
// once the order left the pending state, a second decision is a conflict, so
// a double-submitted form cannot flip an already recorded outcome.
type ResolveReOfferCommandHandler struct {
	writer OrderWriter
}

// NewResolveReOfferCommandHandler creates a handler for offer decisions.
func NewResolveReOfferCommandHandler(writer OrderWriter) (ResolveReOfferCommandHandler, error) {
	if writer.uowFactory == nil {
		return ResolveReOfferCommandHandler{}, errs.NewValueIsRequiredError("writer")
	}

	return ResolveReOfferCommandHandler{writer: writer}, nil
}

// Handle records the decision. Accepting fixes the final payout at the
// revised amount; declining routes the order toward device return.
func (h *ResolveReOfferCommandHandler) Handle(ctx context.Context, cmd ResolveReOfferCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return h.writer.Apply(ctx, cmd.OrderNumber(), func(o *order.Order) error {
		return o.ResolveReOffer(cmd.Accepted(), now)
	})
}
