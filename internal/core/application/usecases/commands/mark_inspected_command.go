package commands

import (
	"errors"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/pkg/guard"
)

var (
	ErrMarkInspectedCommandIsNotConstructed = errors.New(
		"MarkInspectedCommand must be created via NewMarkInspectedCommand constructor",
	)
	ErrFinalPayoutIsInvalid = errors.New("final payout must be greater than 0")
)

// MarkInspectedCommand represents the inspection passing at full value: the
// device matched the customer's description and the payout is confirmed at
// the quoted amount. A downgraded device takes the re-offer path instead.
type MarkInspectedCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.OrderNumber
	finalPayout float64

	guard guard.ConstructorGuard
}

// NewMarkInspectedCommand creates a command confirming the inspection result.
func NewMarkInspectedCommand(orderNumber kernel.OrderNumber, finalPayout float64) (MarkInspectedCommand, error) {
	cmd := MarkInspectedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setFinalPayout(finalPayout),
	); err != nil {
		return MarkInspectedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkInspectedCommand) Validate() error {
	return c.guard.Validate(ErrMarkInspectedCommandIsNotConstructed)
}

// OrderNumber returns the inspected order.
func (c MarkInspectedCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// FinalPayout returns the confirmed payout amount.
func (c MarkInspectedCommand) FinalPayout() float64 {
	return c.finalPayout
}

func (c *MarkInspectedCommand) setOrderNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}

	c.orderNumber = number
	return nil
}

func (c *MarkInspectedCommand) setFinalPayout(finalPayout float64) error {
	if finalPayout <= 0 {
		return ErrFinalPayoutIsInvalid
	}

	c.finalPayout = finalPayout
	return nil
}
