package order

import "time"

const (
	// ReOfferWindow is how long a customer has to resolve a revised price
	// proposal before the punitive auto-requote becomes eligible.
	ReOfferWindow = 7 * 24 * time.Hour

	// AutoRequoteFactor is the fraction of the negotiation base an unresolved
	// order is reduced to by the auto-requote.
	AutoRequoteFactor = 0.25
)

// ReOffer is a revised price proposal with its negotiation window.
// AutoAcceptDate is set exactly once per proposal, when the proposal is made,
// and is superseded only by a new proposal after the previous one resolved.
type ReOffer struct {
	NewPrice       float64
	Reasons        []string
	Comments       string
	CreatedAt      time.Time
	AutoAcceptDate time.Time
}

// AutoRequote records an applied punitive payout reduction. Once recorded it
// is never overwritten: a repeated finalization attempt is rejected with a
// conflict so the discount cannot compound.
type AutoRequote struct {
	ReducedFrom float64
	ReducedTo   float64
	Manual      bool
	InitiatedBy string
	CompletedAt time.Time
}
