package commands

import (
	"errors"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/pkg/guard"
)

var ErrMarkReceivedCommandIsNotConstructed = errors.New(
	"MarkReceivedCommand must be created via NewMarkReceivedCommand constructor",
)

// MarkReceivedCommand represents a warehouse operator checking the device in
// by hand, used when the carrier never reported the inbound delivery.
type MarkReceivedCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.OrderNumber

	guard guard.ConstructorGuard
}

// NewMarkReceivedCommand creates a command recording a manual check-in.
func NewMarkReceivedCommand(orderNumber kernel.OrderNumber) (MarkReceivedCommand, error) {
	cmd := MarkReceivedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderNumber(orderNumber); err != nil {
		return MarkReceivedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReceivedCommand) Validate() error {
	return c.guard.Validate(ErrMarkReceivedCommandIsNotConstructed)
}

// OrderNumber returns the order being checked in.
func (c MarkReceivedCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

func (c *MarkReceivedCommand) setOrderNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}

	c.orderNumber = number
	return nil
}
