package commands

import (
	"errors"

	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/pkg/guard"
)

// ErrGenerateLabelCommandIsNotConstructed is returned when a
// GenerateLabelCommand was not created via NewGenerateLabelCommand.
var ErrGenerateLabelCommandIsNotConstructed = errors.New(
	"GenerateLabelCommand must be created via NewGenerateLabelCommand constructor")

// GenerateLabelCommand represents a request to generate the outbound
// shipping label for an order awaiting shipment.
type GenerateLabelCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGenerateLabelCommand creates a command to generate the outbound label.
func NewGenerateLabelCommand(orderID kernel.UUID) (GenerateLabelCommand, error) {
	cmd := GenerateLabelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return GenerateLabelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateLabelCommand) Validate() error {
	return c.guard.Validate(ErrGenerateLabelCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c GenerateLabelCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *GenerateLabelCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
