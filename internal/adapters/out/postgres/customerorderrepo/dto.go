// Package customerorderrepo persists the denormalized customer copy of each
// order. The copy is a flat row shaped for the customer-facing order list and
// is only ever written in the same transaction as the primary record.
package customerorderrepo

import (
	"time"

	"github.com/google/uuid"

	"tradein/internal/core/domain/model/order"
)

// CustomerOrderDTO is one row of the customer-facing order list.
type CustomerOrderDTO struct {
	Number            string    `gorm:"primaryKey"`
	CustomerID        uuid.UUID `gorm:"type:uuid;index"`
	CustomerEmail     string
	DeviceModel       string
	Status            string
	EstimatedQuote    float64
	FinalPayoutAmount float64
	OutboundTracking  string
	InboundTracking   string
	KitSentAt         *time.Time
	KitDeliveredAt    *time.Time
	ReceivedAt        *time.Time
	AcceptedAt        *time.Time
	DeclinedAt        *time.Time
	CancelledAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the database table name for the customer copy.
func (CustomerOrderDTO) TableName() string {
	return "customer_orders"
}

func fromDomain(aggregate *order.Order) CustomerOrderDTO {
	var outbound, inbound string
	if t := aggregate.Outbound(); t != nil {
		outbound = t.TrackingNumber
	}
	if t := aggregate.Inbound(); t != nil {
		inbound = t.TrackingNumber
	}

	return CustomerOrderDTO{
		Number:            aggregate.Number().String(),
		CustomerID:        aggregate.CustomerID().Bytes(),
		CustomerEmail:     aggregate.CustomerEmail(),
		DeviceModel:       aggregate.DeviceModel(),
		Status:            aggregate.Status().String(),
		EstimatedQuote:    aggregate.EstimatedQuote(),
		FinalPayoutAmount: aggregate.FinalPayoutAmount(),
		OutboundTracking:  outbound,
		InboundTracking:   inbound,
		KitSentAt:         aggregate.KitSentAt(),
		KitDeliveredAt:    aggregate.KitDeliveredAt(),
		ReceivedAt:        aggregate.ReceivedAt(),
		AcceptedAt:        aggregate.AcceptedAt(),
		DeclinedAt:        aggregate.DeclinedAt(),
		CancelledAt:       aggregate.CancelledAt(),
	}
}
