package ports

import (
	"context"
	"time"
)

// TrackingSnapshot is one carrier response for a tracking number. Every field
// may be absent: carriers return partial payloads for freshly created labels,
// and a wholly empty snapshot is a legitimate sync result, not a failure.
type TrackingSnapshot struct {
	StatusCode            string
	StatusDescription     string
	CarrierStatusCode     string
	EstimatedDeliveryDate *time.Time
	Events                []TrackingSnapshotEvent
}

// TrackingSnapshotEvent is one scan event in a carrier response.
type TrackingSnapshotEvent struct {
	OccurredAt        time.Time
	Description       string
	Location          string
	CarrierStatusCode string
}

// IsEmpty reports whether the carrier returned nothing usable.
func (s TrackingSnapshot) IsEmpty() bool {
	return s.StatusCode == "" && s.StatusDescription == "" &&
		s.CarrierStatusCode == "" && len(s.Events) == 0
}

// CarrierClient fetches tracking state from the shipping carrier. Calls block
// on network I/O with bounded timeouts and must complete before any
// transactional write is attempted, never inside one.
type CarrierClient interface {
	// Track fetches the current tracking snapshot for a shipment.
	// A tracked-but-quiet shipment returns an empty snapshot and no error;
	// transport and provider failures return an upstream-unavailable error.
	Track(ctx context.Context, carrierCode, trackingNumber string) (TrackingSnapshot, error)
}
