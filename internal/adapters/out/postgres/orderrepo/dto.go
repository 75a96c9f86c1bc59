// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database representations.
//
// The order number is the primary key. Nested structures that are never
// queried relationally (negotiation state, shipment legs, the audit log and
// the notification markers) are stored as jsonb documents; columns the jobs
// filter on (status, the negotiation deadline) stay relational and indexed.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	Number            string    `gorm:"primaryKey"`
	CustomerID        uuid.UUID `gorm:"type:uuid;index"`
	CustomerEmail     string
	DeviceModel       string
	DeviceSerial      string
	NoKit             bool
	Status            int `gorm:"index"`
	EstimatedQuote    float64
	FinalPayoutAmount float64
	AutoAcceptAt      *time.Time `gorm:"index"`

	ReOffer       *ReOfferDTO          `gorm:"serializer:json;type:jsonb"`
	AutoRequote   *AutoRequoteDTO      `gorm:"serializer:json;type:jsonb"`
	Outbound      *TrackingDTO         `gorm:"serializer:json;type:jsonb"`
	Inbound       *TrackingDTO         `gorm:"serializer:json;type:jsonb"`
	Logs          []LogEntryDTO        `gorm:"serializer:json;type:jsonb"`
	Notifications map[string]time.Time `gorm:"serializer:json;type:jsonb"`

	KitSentAt      *time.Time
	KitDeliveredAt *time.Time
	ReceivedAt     *time.Time
	AcceptedAt     *time.Time
	DeclinedAt     *time.Time
	CancelledAt    *time.Time
	AutoReceived   bool

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ReOfferDTO is the stored form of a pending or resolved revised offer.
type ReOfferDTO struct {
	NewPrice       float64   `json:"newPrice"`
	Reasons        []string  `json:"reasons"`
	Comments       string    `json:"comments,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	AutoAcceptDate time.Time `json:"autoAcceptDate"`
}

// AutoRequoteDTO is the stored record of a punitive payout reduction.
type AutoRequoteDTO struct {
	ReducedFrom float64   `json:"reducedFrom"`
	ReducedTo   float64   `json:"reducedTo"`
	Manual      bool      `json:"manual"`
	InitiatedBy string    `json:"initiatedBy"`
	CompletedAt time.Time `json:"completedAt"`
}

// TrackingDTO is the stored form of one shipment leg.
type TrackingDTO struct {
	TrackingNumber    string             `json:"trackingNumber"`
	CarrierCode       string             `json:"carrierCode"`
	StatusCode        string             `json:"statusCode,omitempty"`
	StatusDescription string             `json:"statusDescription,omitempty"`
	CarrierStatusCode string             `json:"carrierStatusCode,omitempty"`
	EstimatedDelivery *time.Time         `json:"estimatedDelivery,omitempty"`
	Events            []TrackingEventDTO `json:"events,omitempty"`
	LastSyncedAt      *time.Time         `json:"lastSyncedAt,omitempty"`
}

// TrackingEventDTO is one stored carrier scan event.
type TrackingEventDTO struct {
	OccurredAt        time.Time `json:"occurredAt"`
	Description       string    `json:"description,omitempty"`
	Location          string    `json:"location,omitempty"`
	CarrierStatusCode string    `json:"carrierStatusCode,omitempty"`
}

// LogEntryDTO is one stored audit record.
type LogEntryDTO struct {
	ID        uuid.UUID         `json:"id"`
	Type      string            `json:"type"`
	Message   string            `json:"message"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var autoAcceptAt *time.Time
	if aggregate.Status() == order.ReOfferedPending && aggregate.ReOffer() != nil {
		at := aggregate.ReOffer().AutoAcceptDate
		autoAcceptAt = &at
	}

	notifications := make(map[string]time.Time)
	for kind, at := range aggregate.Notifications() {
		notifications[string(kind)] = at
	}

	return OrderDTO{
		Number:            aggregate.Number().String(),
		CustomerID:        aggregate.CustomerID().Bytes(),
		CustomerEmail:     aggregate.CustomerEmail(),
		DeviceModel:       aggregate.DeviceModel(),
		DeviceSerial:      aggregate.DeviceSerial(),
		NoKit:             aggregate.NoKit(),
		Status:            int(aggregate.Status()),
		EstimatedQuote:    aggregate.EstimatedQuote(),
		FinalPayoutAmount: aggregate.FinalPayoutAmount(),
		AutoAcceptAt:      autoAcceptAt,
		ReOffer:           reOfferToDTO(aggregate.ReOffer()),
		AutoRequote:       autoRequoteToDTO(aggregate.AutoRequote()),
		Outbound:          trackingToDTO(aggregate.Outbound()),
		Inbound:           trackingToDTO(aggregate.Inbound()),
		Logs:              logsToDTO(aggregate.Logs()),
		Notifications:     notifications,
		KitSentAt:         aggregate.KitSentAt(),
		KitDeliveredAt:    aggregate.KitDeliveredAt(),
		ReceivedAt:        aggregate.ReceivedAt(),
		AcceptedAt:        aggregate.AcceptedAt(),
		DeclinedAt:        aggregate.DeclinedAt(),
		CancelledAt:       aggregate.CancelledAt(),
		AutoReceived:      aggregate.AutoReceived(),
		Version:           aggregate.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	number, err := kernel.ParseOrderNumber(dto.Number)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	notifications := make(map[order.NotificationKind]time.Time, len(dto.Notifications))
	for kind, at := range dto.Notifications {
		notifications[order.NotificationKind(kind)] = at
	}

	logs, err := logsFromDTO(dto.Logs)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		Number:            number,
		CustomerID:        customerID,
		CustomerEmail:     dto.CustomerEmail,
		DeviceModel:       dto.DeviceModel,
		DeviceSerial:      dto.DeviceSerial,
		NoKit:             dto.NoKit,
		Status:            order.Status(dto.Status),
		EstimatedQuote:    dto.EstimatedQuote,
		FinalPayoutAmount: dto.FinalPayoutAmount,
		ReOffer:           reOfferFromDTO(dto.ReOffer),
		AutoRequote:       autoRequoteFromDTO(dto.AutoRequote),
		Outbound:          trackingFromDTO(dto.Outbound),
		Inbound:           trackingFromDTO(dto.Inbound),
		KitSentAt:         dto.KitSentAt,
		KitDeliveredAt:    dto.KitDeliveredAt,
		ReceivedAt:        dto.ReceivedAt,
		AcceptedAt:        dto.AcceptedAt,
		DeclinedAt:        dto.DeclinedAt,
		CancelledAt:       dto.CancelledAt,
		AutoReceived:      dto.AutoReceived,
		Logs:              logs,
		NotifiedAt:        notifications,
		Version:           dto.Version,
	})
}

func reOfferToDTO(r *order.ReOffer) *ReOfferDTO {
	if r == nil {
		return nil
	}
	return &ReOfferDTO{
		NewPrice:       r.NewPrice,
		Reasons:        r.Reasons,
		Comments:       r.Comments,
		CreatedAt:      r.CreatedAt,
		AutoAcceptDate: r.AutoAcceptDate,
	}
}

func reOfferFromDTO(dto *ReOfferDTO) *order.ReOffer {
	if dto == nil {
		return nil
	}
	return &order.ReOffer{
		NewPrice:       dto.NewPrice,
		Reasons:        dto.Reasons,
		Comments:       dto.Comments,
		CreatedAt:      dto.CreatedAt,
		AutoAcceptDate: dto.AutoAcceptDate,
	}
}

func autoRequoteToDTO(a *order.AutoRequote) *AutoRequoteDTO {
	if a == nil {
		return nil
	}
	return &AutoRequoteDTO{
		ReducedFrom: a.ReducedFrom,
		ReducedTo:   a.ReducedTo,
		Manual:      a.Manual,
		InitiatedBy: a.InitiatedBy,
		CompletedAt: a.CompletedAt,
	}
}

func autoRequoteFromDTO(dto *AutoRequoteDTO) *order.AutoRequote {
	if dto == nil {
		return nil
	}
	return &order.AutoRequote{
		ReducedFrom: dto.ReducedFrom,
		ReducedTo:   dto.ReducedTo,
		Manual:      dto.Manual,
		InitiatedBy: dto.InitiatedBy,
		CompletedAt: dto.CompletedAt,
	}
}

func trackingToDTO(t *order.Tracking) *TrackingDTO {
	if t == nil {
		return nil
	}

	events := make([]TrackingEventDTO, 0, len(t.Events))
	for _, e := range t.Events {
		events = append(events, TrackingEventDTO(e))
	}

	return &TrackingDTO{
		TrackingNumber:    t.TrackingNumber,
		CarrierCode:       t.CarrierCode,
		StatusCode:        string(t.StatusCode),
		StatusDescription: t.StatusDescription,
		CarrierStatusCode: t.CarrierStatusCode,
		EstimatedDelivery: t.EstimatedDelivery,
		Events:            events,
		LastSyncedAt:      t.LastSyncedAt,
	}
}

func trackingFromDTO(dto *TrackingDTO) *order.Tracking {
	if dto == nil {
		return nil
	}

	events := make([]order.TrackingEvent, 0, len(dto.Events))
	for _, e := range dto.Events {
		events = append(events, order.TrackingEvent(e))
	}

	return &order.Tracking{
		TrackingNumber:    dto.TrackingNumber,
		CarrierCode:       dto.CarrierCode,
		StatusCode:        order.TrackingStatus(dto.StatusCode),
		StatusDescription: dto.StatusDescription,
		CarrierStatusCode: dto.CarrierStatusCode,
		EstimatedDelivery: dto.EstimatedDelivery,
		Events:            events,
		LastSyncedAt:      dto.LastSyncedAt,
	}
}

func logsToDTO(logs []order.LogEntry) []LogEntryDTO {
	out := make([]LogEntryDTO, 0, len(logs))
	for _, entry := range logs {
		out = append(out, LogEntryDTO{
			ID:        entry.ID.Bytes(),
			Type:      entry.Type,
			Message:   entry.Message,
			Metadata:  entry.Metadata,
			Timestamp: entry.Timestamp,
		})
	}
	return out
}

func logsFromDTO(dtos []LogEntryDTO) ([]order.LogEntry, error) {
	out := make([]order.LogEntry, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		out = append(out, order.LogEntry{
			ID:        id,
			Type:      dto.Type,
			Message:   dto.Message,
			Metadata:  dto.Metadata,
			Timestamp: dto.Timestamp,
		})
	}
	return out, nil
}
