// Package order contains the trade-in order aggregate and its lifecycle state
// machine.
//
// An order moves through a fixed sequence of physical phases, from the initial
// quote to the final payout. The main line is strictly ordered:
//
//	Pending < LabelGenerated < KitSent < KitDelivered < Received < Inspected < Completed
//
// Side branches (Cancelled, ReOfferedPending, ReOfferedAccepted,
// ReOfferedDeclined, ReturnLabelGenerated) are reachable from any non-terminal
// phase. Completed and Cancelled are terminal.
//
// All status changes go through the aggregate's transition methods; no other
// write path may set the status. Tracking-derived transitions are subject to
// the anti-regression rule: a stale carrier update can never move an order to
// an earlier phase, and re-applying an update that would produce the current
// phase is a no-op with no audit entry and no notification.
package order
