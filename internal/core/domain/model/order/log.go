package order

import (
	"time"

	"tradein/internal/core/domain/model/kernel"
)

// Audit log entry types appended by the aggregate and the persistence path.
const (
	LogTypeStatusChanged    = "status_changed"
	LogTypeOrderCreated     = "order_created"
	LogTypeReOfferProposed  = "re_offer_proposed"
	LogTypeReOfferResolved  = "re_offer_resolved"
	LogTypeAutoRequote      = "auto_requote_applied"
	LogTypeOrderCancelled   = "order_cancelled"
	LogTypeNotificationSent = "notification_sent"
	LogTypeTrackingChanged  = "tracking_changed"
	LogTypeReturnLabel      = "return_label_generated"
)

// LogEntry is one append-only audit record on an order. Entries are only ever
// added, never rewritten or removed.
type LogEntry struct {
	ID        kernel.UUID
	Type      string
	Message   string
	Metadata  map[string]string
	Timestamp time.Time
}

// NewLogEntry creates an audit entry with a fresh identifier.
func NewLogEntry(logType, message string, metadata map[string]string, at time.Time) LogEntry {
	return LogEntry{
		ID:        kernel.NewUUID(),
		Type:      logType,
		Message:   message,
		Metadata:  metadata,
		Timestamp: at,
	}
}
