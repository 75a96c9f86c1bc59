package commands

import (
	"context"
	"log/slog"
	"time"

	"tradein/internal/core/domain/model/order"
	"tradein/internal/core/domain/services"
	"tradein/internal/core/ports"
	"tradein/internal/pkg/errs"
)

// SyncTrackingResult reports what one tracking refresh did.
type SyncTrackingResult struct {
	Order      *order.Order
	Skipped    bool
	SkipReason string
	Promoted   bool
}

// SyncTrackingCommandHandler refreshes one shipment leg from the carrier and
// promotes the order's status when the normalized tracking state warrants it.
//
// The carrier call happens strictly before the transaction opens; the write
// itself reloads the order and applies the update against its current state,
// so a replayed or stale response degrades to a no-op rather than a
// regression. Lifecycle emails fire only after a successful commit.
type SyncTrackingCommandHandler struct {
	writer     OrderWriter
	carrier    ports.CarrierClient
	normalizer services.TrackingNormalizer
	guard      NotificationGuard
	logger     *slog.Logger
}

// NewSyncTrackingCommandHandler creates a handler for tracking refreshes.
// carrier may be nil when no carrier credentials are configured; every sync
// is then reported as skipped.
func NewSyncTrackingCommandHandler(
	writer OrderWriter,
	carrier ports.CarrierClient,
	normalizer services.TrackingNormalizer,
	guard NotificationGuard,
	logger *slog.Logger,
) (SyncTrackingCommandHandler, error) {
	if writer.uowFactory == nil {
		return SyncTrackingCommandHandler{}, errs.NewValueIsRequiredError("writer")
	}
	if logger == nil {
		return SyncTrackingCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return SyncTrackingCommandHandler{
		writer:     writer,
		carrier:    carrier,
		normalizer: normalizer,
		guard:      guard,
		logger:     logger.With("component", "SyncTrackingCommandHandler"),
	}, nil
}

// Handle fetches the carrier snapshot for the leg and records it. Orders
// without a tracking number for the leg, terminal orders and empty carrier
// responses are skipped with a reason instead of failing.
func (h *SyncTrackingCommandHandler) Handle(ctx context.Context, cmd SyncTrackingCommand) (SyncTrackingResult, error) {
	if err := cmd.Validate(); err != nil {
		return SyncTrackingResult{}, err
	}

	aggregate, err := h.writer.Load(ctx, cmd.OrderNumber())
	if err != nil {
		return SyncTrackingResult{}, err
	}

	if h.carrier == nil {
		return skip(aggregate, "carrier credentials not configured"), nil
	}
	if aggregate.Status().IsTerminal() {
		return skip(aggregate, "order is in a terminal status"), nil
	}

	tracking := trackingLeg(aggregate, cmd.Direction())
	if tracking == nil || tracking.TrackingNumber == "" {
		return skip(aggregate, "no tracking number for this leg"), nil
	}

	snapshot, err := h.carrier.Track(ctx, tracking.CarrierCode, tracking.TrackingNumber)
	if err != nil {
		return SyncTrackingResult{}, err
	}

	if snapshot.IsEmpty() {
		h.logger.InfoContext(ctx, "carrier returned no tracking data",
			"order", aggregate.Number().String(),
			"direction", string(cmd.Direction()),
			"trackingNumber", tracking.TrackingNumber)
		return skip(aggregate, "carrier returned no tracking data"), nil
	}

	normalized := h.normalizer.Normalize(snapshot.StatusCode, snapshot.StatusDescription)
	update := toTrackingUpdate(snapshot, normalized)

	now := time.Now().UTC()
	var promoted bool
	merged, err := h.writer.Apply(ctx, cmd.OrderNumber(), func(o *order.Order) error {
		changed, err := o.RecordTracking(cmd.Direction(), update, now)
		if err != nil {
			return err
		}

		applied, err := o.PromoteFromTracking(cmd.Direction(), normalized, now)
		if err != nil {
			// The order may have reached a terminal status since the
			// pre-transaction read; the history is still recorded.
			if IsConflict(err) {
				applied = false
			} else {
				return err
			}
		}

		if changed && !applied {
			o.AppendLog(order.LogTypeTrackingChanged, "tracking status changed",
				map[string]string{
					"direction": string(cmd.Direction()),
					"status":    string(normalized),
				}, now)
		}

		promoted = applied
		return nil
	})
	if err != nil {
		return SyncTrackingResult{}, err
	}

	if promoted {
		h.notifyPromotion(ctx, merged)
	}

	return SyncTrackingResult{Order: merged, Promoted: promoted}, nil
}

func (h *SyncTrackingCommandHandler) notifyPromotion(ctx context.Context, aggregate *order.Order) {
	switch aggregate.Status() {
	case order.KitDelivered:
		_ = h.guard.Send(ctx, aggregate, order.NotificationKitDelivered, nil)
	case order.Received:
		_ = h.guard.Send(ctx, aggregate, order.NotificationDeviceReceived, nil)
	}
}

func skip(aggregate *order.Order, reason string) SyncTrackingResult {
	return SyncTrackingResult{Order: aggregate, Skipped: true, SkipReason: reason}
}

func trackingLeg(aggregate *order.Order, direction order.Direction) *order.Tracking {
	if direction == order.DirectionOutbound {
		return aggregate.Outbound()
	}
	return aggregate.Inbound()
}

func toTrackingUpdate(snapshot ports.TrackingSnapshot, normalized order.TrackingStatus) order.TrackingUpdate {
	events := make([]order.TrackingEvent, 0, len(snapshot.Events))
	for _, e := range snapshot.Events {
		events = append(events, order.TrackingEvent{
			OccurredAt:        e.OccurredAt,
			Description:       e.Description,
			Location:          e.Location,
			CarrierStatusCode: e.CarrierStatusCode,
		})
	}

	return order.TrackingUpdate{
		StatusCode:        normalized,
		StatusDescription: snapshot.StatusDescription,
		CarrierStatusCode: snapshot.CarrierStatusCode,
		EstimatedDelivery: snapshot.EstimatedDeliveryDate,
		Events:            events,
	}
}
