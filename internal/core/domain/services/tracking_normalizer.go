package services

import (
	"strings"

	"tradein/internal/core/domain/model/order"
)

// TrackingNormalizer is a domain service that maps raw carrier status
// codes and descriptions onto the canonical tracking vocabulary.
//
// Carriers disagree on everything: some return stable machine codes
// ("in_transit", "DL"), some only free-text descriptions, and "delivered"
// alone does not say whether the parcel reached a person or a drop box.
// The normalizer resolves all of that into one of six canonical statuses,
// so the promotion policy never has to inspect raw payloads.
//
// Normalization is a pure function of the raw status code and description;
// it never looks at the order, so the same carrier response always yields
// the same canonical status.
type TrackingNormalizer struct{}

// NewTrackingNormalizer creates a new TrackingNormalizer instance.
func NewTrackingNormalizer() TrackingNormalizer {
	return TrackingNormalizer{}
}

// agentMarkers are description fragments that distinguish a delivery to a
// drop box or third party from one handed to the addressee.
func agentMarkers() []string {
	return []string{
		"delivered to agent",
		"picked up by agent",
		"front desk",
		"reception",
		"mail room",
		"parcel locker",
		"access point",
		"pickup point",
		"held at post office",
	}
}

// Normalize maps a raw carrier status code and description to the canonical
// tracking vocabulary. Unrecognized inputs normalize to TrackingUnknown
// rather than failing: an unknown code is still a recordable sync result.
func (TrackingNormalizer) Normalize(statusCode, statusDescription string) order.TrackingStatus {
	code := strings.ToLower(strings.TrimSpace(statusCode))
	description := strings.ToLower(statusDescription)

	if normalized, ok := normalizeByCode(code); ok {
		if normalized == order.TrackingDelivered && isAgentDelivery(description) {
			return order.TrackingDeliveredToAgent
		}
		return normalized
	}

	return normalizeByDescription(description)
}

// normalizeByCode handles the machine-readable codes the supported carriers
// emit, including the two-letter USPS/UPS style abbreviations.
func normalizeByCode(code string) (order.TrackingStatus, bool) {
	switch code {
	case "pre_transit", "pre-transit", "label_created", "accepted", "ma":
		return order.TrackingPreTransit, true
	case "in_transit", "in-transit", "transit", "out_for_delivery", "of", "ip", "uv":
		return order.TrackingInTransit, true
	case "delivered", "dl", "01":
		return order.TrackingDelivered, true
	case "delivered_to_agent", "available_for_pickup", "da", "02":
		return order.TrackingDeliveredToAgent, true
	case "failure", "error", "exception", "return_to_sender", "alert", "ex", "rt":
		return order.TrackingException, true
	default:
		return order.TrackingUnknown, false
	}
}

// normalizeByDescription is the fallback for carriers that only return
// human-readable text.
func normalizeByDescription(description string) order.TrackingStatus {
	switch {
	case description == "":
		return order.TrackingUnknown
	case isAgentDelivery(description):
		return order.TrackingDeliveredToAgent
	case strings.Contains(description, "delivered"):
		return order.TrackingDelivered
	case strings.Contains(description, "out for delivery"),
		strings.Contains(description, "in transit"),
		strings.Contains(description, "arrived at"),
		strings.Contains(description, "departed"):
		return order.TrackingInTransit
	case strings.Contains(description, "label created"),
		strings.Contains(description, "shipment information received"),
		strings.Contains(description, "pre-shipment"):
		return order.TrackingPreTransit
	case strings.Contains(description, "returned to sender"),
		strings.Contains(description, "undeliverable"),
		strings.Contains(description, "exception"):
		return order.TrackingException
	default:
		return order.TrackingUnknown
	}
}

func isAgentDelivery(description string) bool {
	for _, marker := range agentMarkers() {
		if strings.Contains(description, marker) {
			return true
		}
	}
	return false
}
