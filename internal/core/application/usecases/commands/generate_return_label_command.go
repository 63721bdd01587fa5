package commands

import (
	"errors"

	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/pkg/guard"
)

// ErrGenerateReturnLabelCommandIsNotConstructed is returned when a
// GenerateReturnLabelCommand was not created via
// NewGenerateReturnLabelCommand.
var ErrGenerateReturnLabelCommandIsNotConstructed = errors.New(
	"GenerateReturnLabelCommand must be created via NewGenerateReturnLabelCommand constructor")

// GenerateReturnLabelCommand represents a request to generate the return
// shipping label for an order whose re-offer was declined.
type GenerateReturnLabelCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGenerateReturnLabelCommand creates a command to generate the return
// label.
func NewGenerateReturnLabelCommand(orderID kernel.UUID) (GenerateReturnLabelCommand, error) {
	cmd := GenerateReturnLabelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return GenerateReturnLabelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateReturnLabelCommand) Validate() error {
	return c.guard.Validate(ErrGenerateReturnLabelCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c GenerateReturnLabelCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *GenerateReturnLabelCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
