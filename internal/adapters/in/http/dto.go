package http

import (
	"time"

	"tradein/internal/core/domain/model/order"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest opens a new trade-in order.
type CreateOrderRequest struct {
	CustomerID      string  `json:"customerId"`
	CustomerEmail   string  `json:"customerEmail"`
	DeviceModel     string  `json:"deviceModel"`
	DeviceSerial    string  `json:"deviceSerial,omitempty"`
	EstimatedQuote  float64 `json:"estimatedQuote"`
	NoKit           bool    `json:"noKit,omitempty"`
	InboundTracking string  `json:"inboundTracking,omitempty"`
	CarrierCode     string  `json:"carrierCode,omitempty"`
}

// MarkKitSentRequest records the kit leaving the warehouse.
type MarkKitSentRequest struct {
	OutboundTracking string `json:"outboundTracking"`
	ReturnTracking   string `json:"returnTracking"`
	CarrierCode      string `json:"carrierCode"`
}

// MarkInspectedRequest confirms the inspection at full value.
type MarkInspectedRequest struct {
	FinalPayout float64 `json:"finalPayout"`
}

// ProposeReOfferRequest puts a revised offer on an order.
type ProposeReOfferRequest struct {
	NewPrice float64  `json:"newPrice"`
	Reasons  []string `json:"reasons"`
	Comments string   `json:"comments,omitempty"`
}

// ResolveReOfferRequest carries the customer's decision.
type ResolveReOfferRequest struct {
	Decision string `json:"decision"` // "accept" or "decline"
}

// FinalizeAutoRequoteRequest forces the reduced payout ahead of the timer.
type FinalizeAutoRequoteRequest struct {
	InitiatedBy string `json:"initiatedBy"`
}

// GenerateReturnLabelRequest records the label for shipping a declined
// device back.
type GenerateReturnLabelRequest struct {
	TrackingNumber string `json:"trackingNumber"`
	CarrierCode    string `json:"carrierCode"`
}

// CancelOrderRequest cancels an order with a reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// SyncTrackingRequest refreshes one shipment leg.
type SyncTrackingRequest struct {
	Direction string `json:"direction"` // "outbound" or "inbound"
}

// SyncTrackingResponse reports what the refresh did.
type SyncTrackingResponse struct {
	Order      OrderResponse `json:"order"`
	Skipped    bool          `json:"skipped"`
	SkipReason string        `json:"skipReason,omitempty"`
	Promoted   bool          `json:"promoted"`
}

// TrackingResponse is one shipment leg of an order.
type TrackingResponse struct {
	TrackingNumber    string     `json:"trackingNumber"`
	CarrierCode       string     `json:"carrierCode,omitempty"`
	StatusCode        string     `json:"statusCode,omitempty"`
	StatusDescription string     `json:"statusDescription,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	LastSyncedAt      *time.Time `json:"lastSyncedAt,omitempty"`
}

// ReOfferResponse is the pending or resolved revised offer on an order.
type ReOfferResponse struct {
	NewPrice       float64   `json:"newPrice"`
	Reasons        []string  `json:"reasons"`
	Comments       string    `json:"comments,omitempty"`
	AutoAcceptDate time.Time `json:"autoAcceptDate"`
}

// AutoRequoteResponse is the recorded punitive reduction.
type AutoRequoteResponse struct {
	ReducedFrom float64   `json:"reducedFrom"`
	ReducedTo   float64   `json:"reducedTo"`
	Manual      bool      `json:"manual"`
	InitiatedBy string    `json:"initiatedBy"`
	CompletedAt time.Time `json:"completedAt"`
}

// LogEntryResponse is one audit record of an order.
type LogEntryResponse struct {
	Type      string            `json:"type"`
	Message   string            `json:"message"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// OrderResponse is the full admin view of an order.
type OrderResponse struct {
	Number            string               `json:"number"`
	CustomerID        string               `json:"customerId"`
	CustomerEmail     string               `json:"customerEmail"`
	DeviceModel       string               `json:"deviceModel"`
	DeviceSerial      string               `json:"deviceSerial,omitempty"`
	NoKit             bool                 `json:"noKit"`
	Status            string               `json:"status"`
	EstimatedQuote    float64              `json:"estimatedQuote"`
	FinalPayoutAmount float64              `json:"finalPayoutAmount,omitempty"`
	ReOffer           *ReOfferResponse     `json:"reOffer,omitempty"`
	AutoRequote       *AutoRequoteResponse `json:"autoRequote,omitempty"`
	Outbound          *TrackingResponse    `json:"outbound,omitempty"`
	Inbound           *TrackingResponse    `json:"inbound,omitempty"`
	KitSentAt         *time.Time           `json:"kitSentAt,omitempty"`
	KitDeliveredAt    *time.Time           `json:"kitDeliveredAt,omitempty"`
	ReceivedAt        *time.Time           `json:"receivedAt,omitempty"`
	AutoReceived      bool                 `json:"autoReceived,omitempty"`
	CancelledAt       *time.Time           `json:"cancelledAt,omitempty"`
	Logs              []LogEntryResponse   `json:"logs"`
}

// CustomerOrderResponse is one row of the customer-facing order list.
type CustomerOrderResponse struct {
	Number            string    `json:"number"`
	Status            string    `json:"status"`
	DeviceModel       string    `json:"deviceModel"`
	EstimatedQuote    float64   `json:"estimatedQuote"`
	FinalPayoutAmount float64   `json:"finalPayoutAmount,omitempty"`
	OutboundTracking  string    `json:"outboundTracking,omitempty"`
	InboundTracking   string    `json:"inboundTracking,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toOrderResponse(aggregate *order.Order) OrderResponse {
	resp := OrderResponse{
		Number:            aggregate.Number().String(),
		CustomerID:        aggregate.CustomerID().String(),
		CustomerEmail:     aggregate.CustomerEmail(),
		DeviceModel:       aggregate.DeviceModel(),
		DeviceSerial:      aggregate.DeviceSerial(),
		NoKit:             aggregate.NoKit(),
		Status:            aggregate.Status().String(),
		EstimatedQuote:    aggregate.EstimatedQuote(),
		FinalPayoutAmount: aggregate.FinalPayoutAmount(),
		Outbound:          toTrackingResponse(aggregate.Outbound()),
		Inbound:           toTrackingResponse(aggregate.Inbound()),
		KitSentAt:         aggregate.KitSentAt(),
		KitDeliveredAt:    aggregate.KitDeliveredAt(),
		ReceivedAt:        aggregate.ReceivedAt(),
		AutoReceived:      aggregate.AutoReceived(),
		CancelledAt:       aggregate.CancelledAt(),
	}

	if r := aggregate.ReOffer(); r != nil {
		resp.ReOffer = &ReOfferResponse{
			NewPrice:       r.NewPrice,
			Reasons:        r.Reasons,
			Comments:       r.Comments,
			AutoAcceptDate: r.AutoAcceptDate,
		}
	}

	if a := aggregate.AutoRequote(); a != nil {
		resp.AutoRequote = &AutoRequoteResponse{
			ReducedFrom: a.ReducedFrom,
			ReducedTo:   a.ReducedTo,
			Manual:      a.Manual,
			InitiatedBy: a.InitiatedBy,
			CompletedAt: a.CompletedAt,
		}
	}

	logs := aggregate.Logs()
	resp.Logs = make([]LogEntryResponse, 0, len(logs))
	for _, entry := range logs {
		resp.Logs = append(resp.Logs, LogEntryResponse{
			Type:      entry.Type,
			Message:   entry.Message,
			Metadata:  entry.Metadata,
			Timestamp: entry.Timestamp,
		})
	}

	return resp
}

func toTrackingResponse(t *order.Tracking) *TrackingResponse {
	if t == nil {
		return nil
	}
	return &TrackingResponse{
		TrackingNumber:    t.TrackingNumber,
		CarrierCode:       t.CarrierCode,
		StatusCode:        string(t.StatusCode),
		StatusDescription: t.StatusDescription,
		EstimatedDelivery: t.EstimatedDelivery,
		LastSyncedAt:      t.LastSyncedAt,
	}
}
