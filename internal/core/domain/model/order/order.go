package order

import (
	"errors"
	"fmt"
	"math"
	"time"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a trade-in purchase order. It owns the
// lifecycle status, the negotiation state, both tracking legs, the append-only
// audit log, and the per-email idempotency markers.
//
// Order maintains these invariants:
//   - The order number is assigned exactly once and never changes.
//   - The status is mutated only through the aggregate's transition methods.
//   - A re-offer's auto-accept date is set exactly once per proposal.
//   - An auto-requote, once recorded, is never overwritten.
//   - Each lifecycle notification kind is marked at most once.
//
// The struct uses private fields to enforce encapsulation; instances are
// created via NewOrder or reconstructed from persistence via RestoreOrder.
type Order struct {
	number        kernel.OrderNumber
	customerID    kernel.UUID
	customerEmail string

	deviceModel  string
	deviceSerial string

	// noKit marks a direct mail-in order where the customer ships the device
	// in their own packaging, with no outbound kit leg.
	noKit bool

	status Status

	estimatedQuote    float64
	finalPayoutAmount float64

	reOffer     *ReOffer
	autoRequote *AutoRequote

	outbound *Tracking
	inbound  *Tracking

	kitSentAt      *time.Time
	kitDeliveredAt *time.Time
	receivedAt     *time.Time
	acceptedAt     *time.Time
	declinedAt     *time.Time
	cancelledAt    *time.Time

	// autoReceived marks that the Received phase was entered from a carrier
	// delivery event rather than a manual check-in.
	autoReceived bool

	logs []LogEntry

	notifiedAt map[NotificationKind]time.Time

	// version is the optimistic-concurrency token of the backing store.
	version int64

	isConstructed bool
}

// NewOrder creates a new trade-in order in Pending status.
//
// Parameters:
//   - number: sequencer-issued order number
//   - customerID: owning customer
//   - customerEmail: destination for lifecycle notifications
//   - deviceModel, deviceSerial: traded-in device attributes
//   - estimatedQuote: initial quoted payout, must be positive
//   - noKit: true for direct mail-in orders without an outbound kit
func NewOrder(
	number kernel.OrderNumber,
	customerID kernel.UUID,
	customerEmail string,
	deviceModel string,
	deviceSerial string,
	estimatedQuote float64,
	noKit bool,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		noKit:         noKit,
		deviceSerial:  deviceSerial,
		notifiedAt:    make(map[NotificationKind]time.Time),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setNumber(number),
		o.setCustomerID(customerID),
		o.setCustomerEmail(customerEmail),
		o.setDeviceModel(deviceModel),
		o.setEstimatedQuote(estimatedQuote),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrderParams carries a persisted order's full state back into the
// aggregate. Used only by persistence adapters.
type RestoreOrderParams struct {
	Number            kernel.OrderNumber
	CustomerID        kernel.UUID
	CustomerEmail     string
	DeviceModel       string
	DeviceSerial      string
	NoKit             bool
	Status            Status
	EstimatedQuote    float64
	FinalPayoutAmount float64
	ReOffer           *ReOffer
	AutoRequote       *AutoRequote
	Outbound          *Tracking
	Inbound           *Tracking
	KitSentAt         *time.Time
	KitDeliveredAt    *time.Time
	ReceivedAt        *time.Time
	AcceptedAt        *time.Time
	DeclinedAt        *time.Time
	CancelledAt       *time.Time
	AutoReceived      bool
	Logs              []LogEntry
	NotifiedAt        map[NotificationKind]time.Time
	Version           int64
}

// RestoreOrder reconstructs an order from persistence. The stored status and
// identity are re-validated; the remaining fields are trusted as written.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := p.Number.Validate(); err != nil {
		return nil, err
	}
	if err := p.CustomerID.Validate(); err != nil {
		return nil, err
	}
	if err := p.Status.Validate(); err != nil {
		return nil, err
	}

	notified := p.NotifiedAt
	if notified == nil {
		notified = make(map[NotificationKind]time.Time)
	}

	return &Order{
		number:            p.Number,
		customerID:        p.CustomerID,
		customerEmail:     p.CustomerEmail,
		deviceModel:       p.DeviceModel,
		deviceSerial:      p.DeviceSerial,
		noKit:             p.NoKit,
		status:            p.Status,
		estimatedQuote:    p.EstimatedQuote,
		finalPayoutAmount: p.FinalPayoutAmount,
		reOffer:           p.ReOffer,
		autoRequote:       p.AutoRequote,
		outbound:          p.Outbound,
		inbound:           p.Inbound,
		kitSentAt:         p.KitSentAt,
		kitDeliveredAt:    p.KitDeliveredAt,
		receivedAt:        p.ReceivedAt,
		acceptedAt:        p.AcceptedAt,
		declinedAt:        p.DeclinedAt,
		cancelledAt:       p.CancelledAt,
		autoReceived:      p.AutoReceived,
		logs:              p.Logs,
		notifiedAt:        notified,
		version:           p.Version,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for zero-value or directly instantiated structs.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their order numbers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.number.IsEqual(other.number)
}

// Number returns the immutable order number.
func (o *Order) Number() kernel.OrderNumber { return o.number }

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// CustomerEmail returns the notification destination address.
func (o *Order) CustomerEmail() string { return o.customerEmail }

// DeviceModel returns the traded-in device model.
func (o *Order) DeviceModel() string { return o.deviceModel }

// DeviceSerial returns the traded-in device serial, if captured.
func (o *Order) DeviceSerial() string { return o.deviceSerial }

// NoKit reports whether this is a direct mail-in order without an outbound kit.
func (o *Order) NoKit() bool { return o.noKit }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// EstimatedQuote returns the initial quoted payout.
func (o *Order) EstimatedQuote() float64 { return o.estimatedQuote }

// FinalPayoutAmount returns the finalized payout, zero until one is recorded.
func (o *Order) FinalPayoutAmount() float64 { return o.finalPayoutAmount }

// ReOffer returns the active or last revised price proposal, nil if none.
func (o *Order) ReOffer() *ReOffer { return o.reOffer }

// AutoRequote returns the recorded punitive reduction, nil if none.
func (o *Order) AutoRequote() *AutoRequote { return o.autoRequote }

// Outbound returns the kit shipment tracking record, nil if none assigned.
func (o *Order) Outbound() *Tracking { return o.outbound }

// Inbound returns the device return tracking record, nil if none assigned.
func (o *Order) Inbound() *Tracking { return o.inbound }

// KitSentAt returns when the kit entered outbound transit.
func (o *Order) KitSentAt() *time.Time { return o.kitSentAt }

// KitDeliveredAt returns when the kit reached the customer.
func (o *Order) KitDeliveredAt() *time.Time { return o.kitDeliveredAt }

// ReceivedAt returns when the device reached the operator.
func (o *Order) ReceivedAt() *time.Time { return o.receivedAt }

// AcceptedAt returns when a re-offer was accepted.
func (o *Order) AcceptedAt() *time.Time { return o.acceptedAt }

// DeclinedAt returns when a re-offer was declined.
func (o *Order) DeclinedAt() *time.Time { return o.declinedAt }

// CancelledAt returns when the order was cancelled.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// AutoReceived reports whether the Received phase was entered from a carrier event.
func (o *Order) AutoReceived() bool { return o.autoReceived }

// Logs returns a copy of the append-only audit log.
func (o *Order) Logs() []LogEntry {
	logs := make([]LogEntry, len(o.logs))
	copy(logs, o.logs)
	return logs
}

// NotifiedAt returns when the given lifecycle email was sent, if it was.
func (o *Order) NotifiedAt(kind NotificationKind) (time.Time, bool) {
	at, ok := o.notifiedAt[kind]
	return at, ok
}

// Notifications returns a copy of all sent-notification markers.
func (o *Order) Notifications() map[NotificationKind]time.Time {
	out := make(map[NotificationKind]time.Time, len(o.notifiedAt))
	for k, v := range o.notifiedAt {
		out[k] = v
	}
	return out
}

// Version returns the optimistic-concurrency token the order was loaded with.
func (o *Order) Version() int64 { return o.version }

// SetVersion records the store-assigned version. Used only by persistence adapters.
func (o *Order) SetVersion(v int64) { o.version = v }

// AppendLog adds an audit entry. The log is append-only; existing entries are
// never modified.
func (o *Order) AppendLog(logType, message string, metadata map[string]string, at time.Time) {
	o.logs = append(o.logs, NewLogEntry(logType, message, metadata, at))
}

// transition runs the state machine for the requested target and applies the
// result. Returns true when the status actually changed.
func (o *Order) transition(target Status, trigger Trigger) (bool, error) {
	plan, err := o.status.Plan(target, trigger)
	if err != nil {
		return false, err
	}
	if plan == TransitionNoop {
		return false, nil
	}

	o.status = target
	return true, nil
}

// MarkKitSent registers the outbound kit shipment: the kit's tracking number,
// the pre-printed return label's tracking number, and the carrier. Moves the
// order to KitSent and stamps kitSentAt on first application.
func (o *Order) MarkKitSent(outboundTracking, returnTracking, carrierCode string, now time.Time) error {
	if outboundTracking == "" {
		return errs.NewValueIsRequiredError("outboundTracking")
	}
	if carrierCode == "" {
		return errs.NewValueIsRequiredError("carrierCode")
	}

	applied, err := o.transition(KitSent, TriggerAdmin)
	if err != nil {
		return err
	}

	o.outbound = &Tracking{TrackingNumber: outboundTracking, CarrierCode: carrierCode, StatusCode: TrackingPreTransit}
	if returnTracking != "" {
		o.inbound = &Tracking{TrackingNumber: returnTracking, CarrierCode: carrierCode, StatusCode: TrackingPreTransit}
	}
	if applied && o.kitSentAt == nil {
		o.kitSentAt = &now
	}
	return nil
}

// AssignInboundTracking registers the device return shipment for direct
// mail-in orders that never had a kit leg. No status change.
func (o *Order) AssignInboundTracking(trackingNumber, carrierCode string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	if carrierCode == "" {
		return errs.NewValueIsRequiredError("carrierCode")
	}

	o.inbound = &Tracking{TrackingNumber: trackingNumber, CarrierCode: carrierCode, StatusCode: TrackingPreTransit}
	return nil
}

// trackingFor returns the tracking record for the given direction.
func (o *Order) trackingFor(direction Direction) *Tracking {
	if direction == DirectionOutbound {
		return o.outbound
	}
	return o.inbound
}

// RecordTracking writes one normalized carrier response into the order's
// tracking record. Raw normalized fields are always recorded, independent of
// whether the promotion policy later suppresses a phase transition, so the
// shipment history stays accurate. The sync timestamp is always refreshed.
//
// Returns true when the recorded state actually changed (new normalized
// status, new carrier status code, or new scan events); a byte-identical
// replay returns false.
func (o *Order) RecordTracking(direction Direction, update TrackingUpdate, now time.Time) (bool, error) {
	if err := direction.Validate(); err != nil {
		return false, err
	}

	t := o.trackingFor(direction)
	if t == nil {
		return false, errs.NewValueIsInvalidErrorWithCause("direction",
			fmt.Errorf("order %s has no %s tracking assigned", o.number, direction))
	}

	changed := t.StatusCode != update.StatusCode ||
		t.CarrierStatusCode != update.CarrierStatusCode ||
		len(t.Events) != len(update.Events)

	t.StatusCode = update.StatusCode
	t.StatusDescription = update.StatusDescription
	t.CarrierStatusCode = update.CarrierStatusCode
	if update.EstimatedDelivery != nil {
		t.EstimatedDelivery = update.EstimatedDelivery
	}
	if update.Events != nil {
		t.Events = update.Events
	}
	t.LastSyncedAt = &now

	return changed, nil
}

// PromoteFromTracking applies the normalized carrier status as a candidate
// phase transition under the anti-regression rule.
//
// Outbound deliveries (to the customer or an agent/drop point) mark the kit
// delivered. Inbound deliveries mark the device received (unless the order is
// a direct mail-in that already carries a receive timestamp), stamping
// receivedAt once and flagging the receipt as automatic.
//
// Returns true when the phase actually advanced; suppressed or redundant
// updates return false with no error.
func (o *Order) PromoteFromTracking(direction Direction, normalized TrackingStatus, now time.Time) (bool, error) {
	if err := direction.Validate(); err != nil {
		return false, err
	}

	var target Status
	switch {
	case direction == DirectionOutbound && normalized == TrackingPreTransit:
		target = LabelGenerated
	case direction == DirectionOutbound && normalized == TrackingInTransit:
		target = KitSent
	case direction == DirectionOutbound && normalized.IsDelivered():
		target = KitDelivered
	case direction == DirectionInbound && normalized.IsDelivered():
		if o.noKit && o.receivedAt != nil {
			return false, nil
		}
		target = Received
	default:
		// Inbound pre/in-transit and exception states record history only.
		return false, nil
	}

	applied, err := o.transition(target, TriggerTracking)
	if err != nil {
		return false, err
	}
	if !applied {
		return false, nil
	}

	switch target {
	case KitDelivered:
		if o.kitDeliveredAt == nil {
			o.kitDeliveredAt = &now
		}
	case Received:
		if o.receivedAt == nil {
			o.receivedAt = &now
			o.autoReceived = true
		}
	}

	return true, nil
}

// MarkReturnLabelGenerated records the label for shipping a declined device
// back to the customer. Label rendering happens elsewhere; only the resulting
// tracking data enters the order.
func (o *Order) MarkReturnLabelGenerated(trackingNumber, carrierCode string, now time.Time) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	if carrierCode == "" {
		return errs.NewValueIsRequiredError("carrierCode")
	}

	applied, err := o.transition(ReturnLabelGenerated, TriggerAdmin)
	if err != nil {
		return err
	}
	if applied {
		o.AppendLog(LogTypeReturnLabel, "return label generated",
			map[string]string{"trackingNumber": trackingNumber, "carrierCode": carrierCode}, now)
	}
	return nil
}

// MarkReceived records a manual device check-in by an operator.
func (o *Order) MarkReceived(now time.Time) error {
	applied, err := o.transition(Received, TriggerAdmin)
	if err != nil {
		return err
	}
	if applied && o.receivedAt == nil {
		o.receivedAt = &now
	}
	return nil
}

// MarkInspected records a passed inspection with its final payout amount.
func (o *Order) MarkInspected(finalPayout float64, now time.Time) error {
	if finalPayout <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("finalPayout",
			fmt.Errorf("%.2f is not greater than 0", finalPayout))
	}

	if _, err := o.transition(Inspected, TriggerAdmin); err != nil {
		return err
	}

	o.finalPayoutAmount = kernel.Round2(finalPayout)
	return nil
}

// Complete finalizes the order at its current payout.
func (o *Order) Complete() error {
	_, err := o.transition(Completed, TriggerAdmin)
	return err
}

// ProposeReOffer opens a price renegotiation: the order moves to
// ReOfferedPending and the auto-accept date is set, exactly once for this
// proposal, to now plus the negotiation window.
func (o *Order) ProposeReOffer(newPrice float64, reasons []string, comments string, now time.Time) error {
	if newPrice <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("newPrice",
			fmt.Errorf("%.2f is not greater than 0", newPrice))
	}
	if o.status == ReOfferedPending {
		return errs.NewConflictError("a re-offer is already pending on this order")
	}

	if _, err := o.transition(ReOfferedPending, TriggerAdmin); err != nil {
		return err
	}

	o.reOffer = &ReOffer{
		NewPrice:       kernel.Round2(newPrice),
		Reasons:        reasons,
		Comments:       comments,
		CreatedAt:      now,
		AutoAcceptDate: now.Add(ReOfferWindow),
	}
	o.AppendLog(LogTypeReOfferProposed,
		fmt.Sprintf("re-offer proposed at %.2f", o.reOffer.NewPrice),
		map[string]string{"newPrice": fmt.Sprintf("%.2f", o.reOffer.NewPrice)}, now)
	return nil
}

// ResolveReOffer records the customer's decision on the pending proposal.
// Valid only while the status is exactly ReOfferedPending; a second resolution
// attempt returns a conflict and leaves the first one untouched.
func (o *Order) ResolveReOffer(accepted bool, now time.Time) error {
	if o.status != ReOfferedPending {
		return errs.NewConflictError(
			fmt.Sprintf("re-offer cannot be resolved from status %s", o.status))
	}
	if o.reOffer == nil {
		return errs.NewConflictError("no re-offer recorded on this order")
	}

	target := ReOfferedDeclined
	outcome := "declined"
	if accepted {
		target = ReOfferedAccepted
		outcome = "accepted"
	}

	if _, err := o.transition(target, TriggerAdmin); err != nil {
		return err
	}

	if accepted {
		o.finalPayoutAmount = o.reOffer.NewPrice
		o.acceptedAt = &now
	} else {
		o.declinedAt = &now
	}

	o.AppendLog(LogTypeReOfferResolved,
		fmt.Sprintf("re-offer %s at %.2f", outcome, o.reOffer.NewPrice),
		map[string]string{"outcome": outcome}, now)
	return nil
}

// FinalizeAutoRequote applies the punitive payout reduction for an unresolved
// negotiation: the payout becomes a quarter of the negotiation base (the
// larger of the proposed price and the current payout), rounded to cents, and
// the order is finalized to Completed.
//
// The call is idempotent by rejection: once an auto-requote is recorded, any
// repeat call returns a conflict and the discount never compounds.
func (o *Order) FinalizeAutoRequote(initiatedBy string, manual bool, now time.Time) error {
	if initiatedBy == "" {
		return errs.NewValueIsRequiredError("initiatedBy")
	}
	if o.autoRequote != nil {
		return errs.NewConflictError("auto-requote is already recorded on this order")
	}
	if o.status != ReOfferedPending || o.reOffer == nil {
		return errs.NewConflictError(
			fmt.Sprintf("auto-requote requires a pending re-offer, order is %s", o.status))
	}

	trigger := TriggerTimer
	if manual {
		trigger = TriggerAdmin
	}
	if _, err := o.transition(Completed, trigger); err != nil {
		return err
	}

	base := kernel.Round2(math.Max(o.reOffer.NewPrice, o.currentPayout()))
	reducedTo := kernel.Round2(base * AutoRequoteFactor)

	o.autoRequote = &AutoRequote{
		ReducedFrom: base,
		ReducedTo:   reducedTo,
		Manual:      manual,
		InitiatedBy: initiatedBy,
		CompletedAt: now,
	}
	o.finalPayoutAmount = reducedTo

	o.AppendLog(LogTypeAutoRequote,
		fmt.Sprintf("payout reduced from %.2f to %.2f", base, reducedTo),
		map[string]string{
			"reducedFrom": fmt.Sprintf("%.2f", base),
			"reducedTo":   fmt.Sprintf("%.2f", reducedTo),
			"manual":      fmt.Sprintf("%t", manual),
			"initiatedBy": initiatedBy,
		}, now)
	return nil
}

// Cancel cancels the order. Reachable from any non-terminal phase.
func (o *Order) Cancel(reason string, now time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	applied, err := o.transition(Cancelled, TriggerAdmin)
	if err != nil {
		return err
	}
	if applied {
		o.cancelledAt = &now
		o.AppendLog(LogTypeOrderCancelled, "order cancelled: "+reason,
			map[string]string{"reason": reason}, now)
	}
	return nil
}

// MarkNotified records the sent-at marker for a lifecycle email. Returns
// false when the marker is already present, making the caller's persist a
// no-op; the marker is never written without a preceding successful send.
func (o *Order) MarkNotified(kind NotificationKind, now time.Time) bool {
	if _, ok := o.notifiedAt[kind]; ok {
		return false
	}

	o.notifiedAt[kind] = now
	o.AppendLog(LogTypeNotificationSent, fmt.Sprintf("notification %s sent", kind),
		map[string]string{"kind": string(kind)}, now)
	return true
}

// currentPayout is the amount the customer stands to receive right now.
func (o *Order) currentPayout() float64 {
	if o.finalPayoutAmount > 0 {
		return o.finalPayoutAmount
	}
	return o.estimatedQuote
}

func (o *Order) setNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setCustomerEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("customerEmail")
	}
	o.customerEmail = email
	return nil
}

func (o *Order) setDeviceModel(model string) error {
	if model == "" {
		return errs.NewValueIsRequiredError("deviceModel")
	}
	o.deviceModel = model
	return nil
}

func (o *Order) setEstimatedQuote(quote float64) error {
	if quote <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedQuote",
			fmt.Errorf("%.2f is not greater than 0", quote))
	}
	o.estimatedQuote = kernel.Round2(quote)
	return nil
}
