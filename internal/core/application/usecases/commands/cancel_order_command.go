package commands

import (
	"errors"
	"strings"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
	ErrCancelReasonIsRequired = errors.New("cancellation reason is required")
)

// CancelOrderCommand represents a request to cancel an in-flight order.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.OrderNumber
	reason      string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order with a reason
// for the audit trail.
func NewCancelOrderCommand(orderNumber kernel.OrderNumber, reason string) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setReason(reason),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderNumber returns the order being cancelled.
func (c CancelOrderCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// Reason returns why the order was cancelled.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderCommand) setOrderNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}

	c.orderNumber = number
	return nil
}

func (c *CancelOrderCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrCancelReasonIsRequired
	}

	c.reason = reason
	return nil
}
