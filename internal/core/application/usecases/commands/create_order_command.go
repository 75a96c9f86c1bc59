package commands

import (
	"errors"
	"strings"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerEmailIsRequired = errors.New("customer email is required")
	ErrDeviceModelIsRequired   = errors.New("device model is required")
	ErrEstimatedQuoteIsInvalid = errors.New("estimated quote must be greater than 0")
)

// CreateOrderCommand represents a request to open a new trade-in order.
// Encapsulates the customer, the device being traded in and the quote the
// customer accepted. Orders created with noKit ship on a customer-provided
// label, so an inbound tracking number may be attached up front.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customerID, "jo@example.com", "Pixel 8", "SN123", 150.00, false)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	order, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s created", order.Number())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID      kernel.UUID
	customerEmail   string
	deviceModel     string
	deviceSerial    string
	estimatedQuote  float64
	noKit           bool
	inboundTracking string
	carrierCode     string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to open a trade-in order.
// Validates that the customer ID is valid, the email and device model are not
// empty, and the quote is positive.
func NewCreateOrderCommand(
	customerID kernel.UUID,
	customerEmail string,
	deviceModel string,
	deviceSerial string,
	estimatedQuote float64,
	noKit bool,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		deviceSerial: strings.TrimSpace(deviceSerial),
		noKit:        noKit,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setCustomerEmail(customerEmail),
		cmd.setDeviceModel(deviceModel),
		cmd.setEstimatedQuote(estimatedQuote),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// WithInboundTracking attaches a customer-provided return shipment up front.
// Only meaningful for noKit orders.
func (c CreateOrderCommand) WithInboundTracking(trackingNumber, carrierCode string) CreateOrderCommand {
	c.inboundTracking = strings.TrimSpace(trackingNumber)
	c.carrierCode = strings.TrimSpace(carrierCode)
	return c
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the identifier of the customer the order belongs to.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// CustomerEmail returns the address lifecycle notifications go to.
func (c CreateOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// DeviceModel returns the model of the device being traded in.
func (c CreateOrderCommand) DeviceModel() string {
	return c.deviceModel
}

// DeviceSerial returns the device serial, when the customer supplied one.
func (c CreateOrderCommand) DeviceSerial() string {
	return c.deviceSerial
}

// EstimatedQuote returns the quote the customer accepted at checkout.
func (c CreateOrderCommand) EstimatedQuote() float64 {
	return c.estimatedQuote
}

// NoKit reports whether the customer ships with their own packaging.
func (c CreateOrderCommand) NoKit() bool {
	return c.noKit
}

// InboundTracking returns the customer-provided tracking number, if any.
func (c CreateOrderCommand) InboundTracking() string {
	return c.inboundTracking
}

// CarrierCode returns the carrier of the customer-provided shipment.
func (c CreateOrderCommand) CarrierCode() string {
	return c.carrierCode
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setCustomerEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrCustomerEmailIsRequired
	}

	c.customerEmail = email
	return nil
}

func (c *CreateOrderCommand) setDeviceModel(model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return ErrDeviceModelIsRequired
	}

	c.deviceModel = model
	return nil
}

func (c *CreateOrderCommand) setEstimatedQuote(quote float64) error {
	if quote <= 0 {
		return ErrEstimatedQuoteIsInvalid
	}

	c.estimatedQuote = quote
	return nil
}
