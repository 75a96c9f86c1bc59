package commands

import (
	"errors"
	"strings"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/pkg/guard"
)

var (
	ErrGenerateReturnLabelCommandIsNotConstructed = errors.New(
		"GenerateReturnLabelCommand must be created via NewGenerateReturnLabelCommand constructor",
	)
	ErrReturnLabelTrackingIsRequired = errors.New("return label tracking number is required")
)

// GenerateReturnLabelCommand records the label printed to ship a declined
// device back to the customer. The label itself is produced by the carrier
// integration; the command only carries its tracking data.
type GenerateReturnLabelCommand struct { //nolint:recvcheck //using for validation
	orderNumber    kernel.OrderNumber
	trackingNumber string
	carrierCode    string

	guard guard.ConstructorGuard
}

// NewGenerateReturnLabelCommand creates a command recording the return label.
func NewGenerateReturnLabelCommand(
	orderNumber kernel.OrderNumber,
	trackingNumber string,
	carrierCode string,
) (GenerateReturnLabelCommand, error) {
	cmd := GenerateReturnLabelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setTrackingNumber(trackingNumber),
		cmd.setCarrierCode(carrierCode),
	); err != nil {
		return GenerateReturnLabelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateReturnLabelCommand) Validate() error {
	return c.guard.Validate(ErrGenerateReturnLabelCommandIsNotConstructed)
}

// OrderNumber returns the order the return label belongs to.
func (c GenerateReturnLabelCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// TrackingNumber returns the tracking number of the return shipment.
func (c GenerateReturnLabelCommand) TrackingNumber() string {
	return c.trackingNumber
}

// CarrierCode returns the carrier the label was purchased from.
func (c GenerateReturnLabelCommand) CarrierCode() string {
	return c.carrierCode
}

func (c *GenerateReturnLabelCommand) setOrderNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}

	c.orderNumber = number
	return nil
}

func (c *GenerateReturnLabelCommand) setTrackingNumber(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return ErrReturnLabelTrackingIsRequired
	}

	c.trackingNumber = trackingNumber
	return nil
}

func (c *GenerateReturnLabelCommand) setCarrierCode(carrierCode string) error {
	carrierCode = strings.TrimSpace(carrierCode)
	if carrierCode == "" {
		return ErrCarrierCodeIsRequired
	}

	c.carrierCode = carrierCode
	return nil
}
