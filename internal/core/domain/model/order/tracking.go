package order

import (
	"fmt"
	"time"

	"tradein/internal/pkg/errs"
)

// TrackingStatus is the canonical vocabulary heterogeneous carrier responses
// are normalized into before any promotion decision is made.
type TrackingStatus string

const (
	TrackingPreTransit       TrackingStatus = "pre_transit"
	TrackingInTransit        TrackingStatus = "in_transit"
	TrackingDelivered        TrackingStatus = "delivered"
	TrackingDeliveredToAgent TrackingStatus = "delivered_to_agent"
	TrackingException        TrackingStatus = "exception"
	TrackingUnknown          TrackingStatus = "unknown"
)

// IsDelivered reports whether the status counts as a completed delivery,
// either to the addressee or to a drop-box/third-party agent.
func (s TrackingStatus) IsDelivered() bool {
	return s == TrackingDelivered || s == TrackingDeliveredToAgent
}

// Direction distinguishes the kit shipment to the customer from the device
// shipment back to the operator.
type Direction string

const (
	DirectionOutbound Direction = "outbound"
	DirectionInbound  Direction = "inbound"
)

// Validate checks that the direction is one of the two shipment legs.
func (d Direction) Validate() error {
	if d != DirectionOutbound && d != DirectionInbound {
		return errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%q is not a valid direction", string(d)))
	}
	return nil
}

// Tracking is the per-direction shipment record kept on an order. Normalized
// fields are always written on every sync, even when the promotion policy
// suppresses a phase transition, so history stays accurate.
type Tracking struct {
	TrackingNumber    string
	CarrierCode       string
	StatusCode        TrackingStatus
	StatusDescription string
	CarrierStatusCode string
	EstimatedDelivery *time.Time
	Events            []TrackingEvent
	LastSyncedAt      *time.Time
}

// TrackingEvent is a single scan event reported by the carrier.
type TrackingEvent struct {
	OccurredAt        time.Time
	Description       string
	Location          string
	CarrierStatusCode string
}

// TrackingUpdate carries one normalized carrier response into the aggregate.
type TrackingUpdate struct {
	StatusCode        TrackingStatus
	StatusDescription string
	CarrierStatusCode string
	EstimatedDelivery *time.Time
	Events            []TrackingEvent
}
