package commands

import (
	"errors"
	"strings"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/pkg/guard"
)

var (
	ErrProposeReOfferCommandIsNotConstructed = errors.New(
		"ProposeReOfferCommand must be created via NewProposeReOfferCommand constructor",
	)
	ErrNewPriceIsInvalid = errors.New("new price must be greater than 0")
	ErrReasonsAreRequired = errors.New("at least one reason is required")
)

// ProposeReOfferCommand represents an inspector's revised offer after the
// device graded below the customer's description. Opens the 7-day negotiation
// window during which the customer may accept or decline.
type ProposeReOfferCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.OrderNumber
	newPrice    float64
	reasons     []string
	comments    string

	guard guard.ConstructorGuard
}

// NewProposeReOfferCommand creates a command to put a revised offer on an order.
// Requires a valid order number, a positive price and at least one reason.
func NewProposeReOfferCommand(
	orderNumber kernel.OrderNumber,
	newPrice float64,
	reasons []string,
	comments string,
) (ProposeReOfferCommand, error) {
	cmd := ProposeReOfferCommand{
		comments: strings.TrimSpace(comments),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setNewPrice(newPrice),
		cmd.setReasons(reasons),
	); err != nil {
		return ProposeReOfferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProposeReOfferCommand) Validate() error {
	return c.guard.Validate(ErrProposeReOfferCommandIsNotConstructed)
}

// OrderNumber returns the order the revised offer targets.
func (c ProposeReOfferCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// NewPrice returns the revised offer amount.
func (c ProposeReOfferCommand) NewPrice() float64 {
	return c.newPrice
}

// Reasons returns the inspection findings behind the revision.
func (c ProposeReOfferCommand) Reasons() []string {
	out := make([]string, len(c.reasons))
	copy(out, c.reasons)
	return out
}

// Comments returns the inspector's free-form notes, possibly empty.
func (c ProposeReOfferCommand) Comments() string {
	return c.comments
}

func (c *ProposeReOfferCommand) setOrderNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}

	c.orderNumber = number
	return nil
}

func (c *ProposeReOfferCommand) setNewPrice(newPrice float64) error {
	if newPrice <= 0 {
		return ErrNewPriceIsInvalid
	}

	c.newPrice = newPrice
	return nil
}

func (c *ProposeReOfferCommand) setReasons(reasons []string) error {
	cleaned := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if r = strings.TrimSpace(r); r != "" {
			cleaned = append(cleaned, r)
		}
	}
	if len(cleaned) == 0 {
		return ErrReasonsAreRequired
	}

	c.reasons = cleaned
	return nil
}
