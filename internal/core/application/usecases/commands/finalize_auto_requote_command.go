package commands

import (
	"errors"
	"strings"

	"tradein/internal/core/domain/model/kernel"
	"tradein/internal/pkg/guard"
)

var (
	ErrFinalizeAutoRequoteCommandIsNotConstructed = errors.New(
		"FinalizeAutoRequoteCommand must be created via NewFinalizeAutoRequoteCommand constructor",
	)
	ErrInitiatedByIsRequired = errors.New("initiatedBy is required")
)

// FinalizeAutoRequoteCommand represents closing an expired revised offer at
// the punitive reduced amount. Issued by the scheduled timer once the 7-day
// window lapses, or by an operator forcing the same outcome early (manual).
type FinalizeAutoRequoteCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.OrderNumber
	initiatedBy string
	manual      bool

	guard guard.ConstructorGuard
}

// NewFinalizeAutoRequoteCommand creates a command to finalize an expired offer.
// initiatedBy names the actor for the audit trail ("system" for the timer).
func NewFinalizeAutoRequoteCommand(
	orderNumber kernel.OrderNumber,
	initiatedBy string,
	manual bool,
) (FinalizeAutoRequoteCommand, error) {
	cmd := FinalizeAutoRequoteCommand{
		manual: manual,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setInitiatedBy(initiatedBy),
	); err != nil {
		return FinalizeAutoRequoteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FinalizeAutoRequoteCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeAutoRequoteCommandIsNotConstructed)
}

// OrderNumber returns the order being finalized.
func (c FinalizeAutoRequoteCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

// InitiatedBy returns the actor recorded in the audit trail.
func (c FinalizeAutoRequoteCommand) InitiatedBy() string {
	return c.initiatedBy
}

// Manual reports whether an operator forced the requote ahead of the timer.
func (c FinalizeAutoRequoteCommand) Manual() bool {
	return c.manual
}

func (c *FinalizeAutoRequoteCommand) setOrderNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}

	c.orderNumber = number
	return nil
}

func (c *FinalizeAutoRequoteCommand) setInitiatedBy(initiatedBy string) error {
	initiatedBy = strings.TrimSpace(initiatedBy)
	if initiatedBy == "" {
		return ErrInitiatedByIsRequired
	}

	c.initiatedBy = initiatedBy
	return nil
}
