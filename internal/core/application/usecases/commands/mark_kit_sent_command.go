package commands

import (
	"errors"
	"strings"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/pkg/guard"
)

var (
	ErrMarkKitSentCommandIsNotConstructed = errors.New(
		"MarkKitSentCommand must be created via NewMarkKitSentCommand constructor",
	)
	ErrOutboundTrackingIsRequired = errors.New("outbound tracking number is required")
	ErrReturnTrackingIsRequired   = errors.New("return tracking number is required")
	ErrCarrierCodeIsRequired      = errors.New("carrier code is required")
)

// MarkKitSentCommand represents the shipping kit leaving the warehouse. It
// carries both labels printed for the kit: the outbound leg to the customer
// and the pre-paid return leg back.
type MarkKitSentCommand struct { //nolint:recvcheck //using for validation
	orderNumber      kernel.OrderNumber
	outboundTracking string
	returnTracking   string
	carrierCode      string

	guard guard.ConstructorGuard
}

// NewMarkKitSentCommand creates a command recording the kit shipment.
func NewMarkKitSentCommand(
	orderNumber kernel.OrderNumber,
	outboundTracking string,
	returnTracking string,
	carrierCode string,
) (MarkKitSentCommand, error) {
	cmd := MarkKitSentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setOutboundTracking(outboundTracking),
		cmd.setReturnTracking(returnTracking),
		cmd.setCarrierCode(carrierCode),
	); err != nil {
		return MarkKitSentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkKitSentCommand) Validate() error {
	return c.guard.Validate(ErrMarkKitSentCommandIsNotConstructed)
}

// OrderNumber returns the order the kit belongs to.
func (c MarkKitSentCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// OutboundTracking returns the tracking number of the kit on its way to the
// customer.
func (c MarkKitSentCommand) OutboundTracking() string {
	return c.outboundTracking
}

// ReturnTracking returns the tracking number of the pre-paid return label.
func (c MarkKitSentCommand) ReturnTracking() string {
	return c.returnTracking
}

// CarrierCode returns the carrier both labels were purchased from.
func (c MarkKitSentCommand) CarrierCode() string {
	return c.carrierCode
}

func (c *MarkKitSentCommand) setOrderNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}

	c.orderNumber = number
	return nil
}

func (c *MarkKitSentCommand) setOutboundTracking(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return ErrOutboundTrackingIsRequired
	}

	c.outboundTracking = trackingNumber
	return nil
}

func (c *MarkKitSentCommand) setReturnTracking(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return ErrReturnTrackingIsRequired
	}

	c.returnTracking = trackingNumber
	return nil
}

func (c *MarkKitSentCommand) setCarrierCode(carrierCode string) error {
	carrierCode = strings.TrimSpace(carrierCode)
	if carrierCode == "" {
		return ErrCarrierCodeIsRequired
	}

	c.carrierCode = carrierCode
	return nil
}
