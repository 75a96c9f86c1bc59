package commands

import (
	"errors"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand represents paying the customer out and closing the
// order.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.OrderNumber

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command to close an order after payout.
func NewCompleteOrderCommand(orderNumber kernel.OrderNumber) (CompleteOrderCommand, error) {
	cmd := CompleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderNumber(orderNumber); err != nil {
		return CompleteOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderNumber returns the order being completed.
func (c CompleteOrderCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

func (c *CompleteOrderCommand) setOrderNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}

	c.orderNumber = number
	return nil
}
