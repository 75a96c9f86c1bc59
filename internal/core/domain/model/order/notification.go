package order

import (
	"fmt"

	"tradein/internal/pkg/errs"
)

// NotificationKind identifies a lifecycle email. Each kind fires at most once
// per order; the sent-at marker on the aggregate is the idempotency record.
type NotificationKind string

const (
	NotificationKitDelivered   NotificationKind = "kit_delivered"
	NotificationDeviceReceived NotificationKind = "device_received"
	NotificationReOfferMade    NotificationKind = "re_offer_made"
	NotificationOrderCompleted NotificationKind = "order_completed"
	NotificationOrderCancelled NotificationKind = "order_cancelled"
)

// Validate checks that the kind is one of the declared lifecycle emails.
func (k NotificationKind) Validate() error {
	switch k {
	case NotificationKitDelivered, NotificationDeviceReceived, NotificationReOfferMade,
		NotificationOrderCompleted, NotificationOrderCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("notificationKind",
			fmt.Errorf("%q is not a valid notification kind", string(k)))
	}
}
