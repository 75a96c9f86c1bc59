package services_test

import (
	"testing"

	"tradein/internal/core/domain/model/order"
	"tradein/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestTrackingNormalizer_Normalize(t *testing.T) {
	normalizer := services.NewTrackingNormalizer()

	testCases := []struct {
		name        string
		code        string
		description string
		expected    order.TrackingStatus
	}{
		{"canonical code passes through", "in_transit", "", order.TrackingInTransit},
		{"code is case and whitespace insensitive", "  Delivered ", "", order.TrackingDelivered},
		{"label created maps to pre-transit", "label_created", "", order.TrackingPreTransit},
		{"out for delivery counts as in transit", "out_for_delivery", "", order.TrackingInTransit},
		{"two-letter delivered code", "DL", "Delivered, in/at mailbox", order.TrackingDelivered},
		{"return to sender is an exception", "return_to_sender", "", order.TrackingException},
		{"available for pickup is agent delivery", "available_for_pickup", "", order.TrackingDeliveredToAgent},
		{"delivered code with agent description is agent delivery", "delivered", "Delivered to agent for final delivery", order.TrackingDeliveredToAgent},
		{"parcel locker description is agent delivery", "delivered", "Delivered, parcel locker", order.TrackingDeliveredToAgent},
		{"unknown code falls back to description", "ZZ", "Departed USPS Regional Facility", order.TrackingInTransit},
		{"description-only delivered", "", "Delivered, front door", order.TrackingDelivered},
		{"description-only front desk", "", "Delivered, front desk/reception/mail room", order.TrackingDeliveredToAgent},
		{"description-only pre-shipment", "", "Pre-Shipment Info Sent to USPS", order.TrackingPreTransit},
		{"description-only undeliverable", "", "Undeliverable as addressed", order.TrackingException},
		{"nothing recognizable", "ZZ", "weather delay advisory", order.TrackingUnknown},
		{"empty response", "", "", order.TrackingUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalizer.Normalize(tc.code, tc.description))
		})
	}
}

func TestTrackingNormalizer_IsPure(t *testing.T) {
	normalizer := services.NewTrackingNormalizer()

	first := normalizer.Normalize("DL", "Delivered, in/at mailbox")
	second := normalizer.Normalize("DL", "Delivered, in/at mailbox")

	assert.Equal(t, first, second)
}
