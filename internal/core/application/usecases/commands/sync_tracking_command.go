package commands

import (
	"errors"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/core/domain/model/order"
	"tradein/internal/pkg/guard"
)

var ErrSyncTrackingCommandIsNotConstructed = errors.New(
	"SyncTrackingCommand must be created via NewSyncTrackingCommand constructor",
)

// SyncTrackingCommand represents one tracking refresh for one shipment leg of
// an order. Issued per order by the scheduled sync job and on demand by
// operators.
type SyncTrackingCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.OrderNumber
	direction   order.Direction

	guard guard.ConstructorGuard
}

// NewSyncTrackingCommand creates a command to refresh one shipment leg.
func NewSyncTrackingCommand(orderNumber kernel.OrderNumber, direction order.Direction) (SyncTrackingCommand, error) {
	cmd := SyncTrackingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setDirection(direction),
	); err != nil {
		return SyncTrackingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SyncTrackingCommand) Validate() error {
	return c.guard.Validate(ErrSyncTrackingCommandIsNotConstructed)
}

// OrderNumber returns the order whose shipment is refreshed.
func (c SyncTrackingCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// Direction returns which shipment leg is refreshed.
func (c SyncTrackingCommand) Direction() order.Direction {
	return c.direction
}

func (c *SyncTrackingCommand) setOrderNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}

	c.orderNumber = number
	return nil
}

func (c *SyncTrackingCommand) setDirection(direction order.Direction) error {
	if err := direction.Validate(); err != nil {
		return err
	}

	c.direction = direction
	return nil
}
