package order

import (
	"fmt"

	"tradein/internal/pkg/errs"
)

// Status represents the lifecycle state of a trade-in order.
// It implements a state machine with a declared linear ordering for the main
// line of physical phases and a set of side branches reachable from any
// non-terminal phase.
//
// Main line (strictly ordered):
//
//	Pending ──> LabelGenerated ──> KitSent ──> KitDelivered ──> Received ──> Inspected ──> Completed
//
// Side branches (from any non-terminal phase):
//
//	Cancelled                                  (terminal)
//	ReOfferedPending ──> ReOfferedAccepted
//	                 └─> ReOfferedDeclined
//	ReturnLabelGenerated
//
// Completed and Cancelled accept no further transitions.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	Pending

	// LabelGenerated indicates a shipping label or kit has been prepared
	// but not yet handed to the carrier.
	LabelGenerated

	// KitSent indicates the trade-in kit is in outbound transit to the customer.
	KitSent

	// KitDelivered indicates the kit reached the customer.
	KitDelivered

	// Received indicates the device reached the operator's facility.
	Received

	// Inspected indicates the device passed inspection and a final payout
	// amount has been recorded.
	Inspected

	// Completed indicates the order is finalized and paid out.
	// This is a terminal state.
	Completed

	// ReOfferedPending indicates a revised price has been proposed and the
	// negotiation window is open.
	ReOfferedPending

	// ReOfferedAccepted indicates the customer accepted the revised price.
	ReOfferedAccepted

	// ReOfferedDeclined indicates the customer declined the revised price.
	ReOfferedDeclined

	// ReturnLabelGenerated indicates a return label was issued to ship the
	// device back to the customer.
	ReturnLabelGenerated

	// Cancelled indicates the order was cancelled.
	// This is a terminal state.
	Cancelled
)

// Trigger identifies what initiated a transition request. The anti-regression
// rule treats tracking-derived triggers differently from explicit admin
// actions and timer expiries.
type Trigger int

const (
	// TriggerUnknown represents an invalid trigger.
	TriggerUnknown Trigger = iota

	// TriggerAdmin is an explicit admin action; it may override phase ordering.
	TriggerAdmin

	// TriggerTracking is a carrier-derived event; it may only move the phase forward.
	TriggerTracking

	// TriggerTimer is a scheduled expiry (negotiation window, auto-requote sweep).
	TriggerTimer
)

// Transition is the outcome of planning a status change.
type Transition int

const (
	// TransitionApplied means the target status should replace the current one.
	TransitionApplied Transition = iota + 1

	// TransitionNoop means the request is legal but changes nothing: no status
	// write, no audit entry, no notification.
	TransitionNoop
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:              "Unknown",
		Pending:              "Pending",
		LabelGenerated:       "LabelGenerated",
		KitSent:              "KitSent",
		KitDelivered:         "KitDelivered",
		Received:             "Received",
		Inspected:            "Inspected",
		Completed:            "Completed",
		ReOfferedPending:     "ReOfferedPending",
		ReOfferedAccepted:    "ReOfferedAccepted",
		ReOfferedDeclined:    "ReOfferedDeclined",
		ReturnLabelGenerated: "ReturnLabelGenerated",
		Cancelled:            "Cancelled",
	}
}

// phaseOrdinals declares the linear ordering of the main-line phases.
// Side branches carry no ordinal; their reachability is decided separately.
func phaseOrdinals() map[Status]int {
	return map[Status]int{
		Pending:        1,
		LabelGenerated: 2,
		KitSent:        3,
		KitDelivered:   4,
		Received:       5,
		Inspected:      6,
		Completed:      7,
	}
}

// Validate checks that the Status value is one of the declared lifecycle
// states. Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsSideBranch reports whether the status sits outside the linear main line.
func (s Status) IsSideBranch() bool {
	switch s {
	case ReOfferedPending, ReOfferedAccepted, ReOfferedDeclined, ReturnLabelGenerated, Cancelled:
		return true
	default:
		return false
	}
}

// PhaseOrdinal returns the position of the status on the main line.
// Side-branch statuses return ok=false.
func (s Status) PhaseOrdinal() (int, bool) {
	ord, ok := phaseOrdinals()[s]
	return ord, ok
}

// Validate checks that the trigger is one of the declared trigger kinds.
func (t Trigger) Validate() error {
	switch t {
	case TriggerAdmin, TriggerTracking, TriggerTimer:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("trigger", fmt.Errorf("%d is not a valid trigger", int(t)))
	}
}

// String returns the trigger name.
func (t Trigger) String() string {
	switch t {
	case TriggerAdmin:
		return "admin"
	case TriggerTracking:
		return "tracking"
	case TriggerTimer:
		return "timer"
	default:
		return "unknown"
	}
}

// Plan decides whether a transition from the current status to target is
// applied, silently ignored, or rejected.
//
// Rules:
//   - Terminal statuses accept nothing; a repeated identical target is a
//     no-op, anything else is a conflict.
//   - A target equal to the current status is always a no-op.
//   - ReOfferedAccepted and ReOfferedDeclined require the current status to be
//     exactly ReOfferedPending; a second resolution is a conflict, never a
//     silent overwrite.
//   - Other side branches (Cancelled, ReOfferedPending, ReturnLabelGenerated)
//     are reachable from any non-terminal phase.
//   - A tracking-derived main-line transition is applied only when the target
//     phase ordinal exceeds the current one; from a side branch or going
//     backwards it is a no-op (anti-regression).
//   - An admin trigger applies unconditionally (explicit override).
//   - A timer trigger behaves like tracking except that it may leave a side
//     branch (the auto-requote path finalizes a pending negotiation).
func (s Status) Plan(target Status, trigger Trigger) (Transition, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if err := trigger.Validate(); err != nil {
		return 0, err
	}

	if s.IsTerminal() {
		if target == s {
			return TransitionNoop, nil
		}
		return 0, errs.NewConflictError(
			fmt.Sprintf("order in terminal status %s cannot transition to %s", s, target))
	}

	if target == s {
		return TransitionNoop, nil
	}

	switch target {
	case ReOfferedAccepted, ReOfferedDeclined:
		if s != ReOfferedPending {
			return 0, errs.NewConflictError(
				fmt.Sprintf("cannot resolve re-offer from status %s", s))
		}
		return TransitionApplied, nil
	case Cancelled, ReOfferedPending, ReturnLabelGenerated:
		return TransitionApplied, nil
	}

	targetOrd, _ := target.PhaseOrdinal()
	currentOrd, onMainLine := s.PhaseOrdinal()

	switch trigger {
	case TriggerAdmin:
		return TransitionApplied, nil
	case TriggerTracking:
		if !onMainLine || targetOrd <= currentOrd {
			return TransitionNoop, nil
		}
		return TransitionApplied, nil
	default: // TriggerTimer
		if !onMainLine || targetOrd > currentOrd {
			return TransitionApplied, nil
		}
		return TransitionNoop, nil
	}
}
