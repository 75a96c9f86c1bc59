package commands

import (
	"errors"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/pkg/guard"
)

var ErrResolveReOfferCommandIsNotConstructed = errors.New(
	"ResolveReOfferCommand must be created via NewResolveReOfferCommand constructor",
)

// ResolveReOfferCommand represents the customer's decision on a pending
// revised offer: accept the reduced amount, or decline and get the device
// back.
type ResolveReOfferCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.OrderNumber
	accepted    bool

	guard guard.ConstructorGuard
}

// NewResolveReOfferCommand creates a command carrying the customer's decision.
func NewResolveReOfferCommand(orderNumber kernel.OrderNumber, accepted bool) (ResolveReOfferCommand, error) {
	cmd := ResolveReOfferCommand{
		accepted: accepted,
		guard:    guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderNumber(orderNumber); err != nil {
		return ResolveReOfferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveReOfferCommand) Validate() error {
	return c.guard.Validate(ErrResolveReOfferCommandIsNotConstructed)
}

// OrderNumber returns the order whose offer is being resolved.
func (c ResolveReOfferCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// Accepted reports whether the customer accepted the revised offer.
func (c ResolveReOfferCommand) Accepted() bool {
	return c.accepted
}

func (c *ResolveReOfferCommand) setOrderNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}

	c.orderNumber = number
	return nil
}
