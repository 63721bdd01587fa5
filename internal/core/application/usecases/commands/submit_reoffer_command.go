package commands

import (
	"errors"
	"fmt"

	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/pkg/errs"
	"buyback/internal/pkg/guard"
)

// ErrSubmitReofferCommandIsNotConstructed is returned when a
// SubmitReofferCommand was not created via NewSubmitReofferCommand.
var ErrSubmitReofferCommandIsNotConstructed = errors.New(
	"SubmitReofferCommand must be created via NewSubmitReofferCommand constructor")

// SubmitReofferCommand represents a revised price proposal after physical
// inspection of the device, with the inspection reasons behind it.
type SubmitReofferCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	newPrice kernel.Money
	reasons  []string
	comments string

	guard guard.ConstructorGuard
}

// NewSubmitReofferCommand creates a command to submit a re-offer. Requires a
// valid positive price and at least one non-empty reason; comments are
// optional.
func NewSubmitReofferCommand(
	orderID kernel.UUID, newPrice kernel.Money, reasons []string, comments string,
) (SubmitReofferCommand, error) {
	cmd := SubmitReofferCommand{
		comments: comments,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNewPrice(newPrice),
		cmd.setReasons(reasons),
	); err != nil {
		return SubmitReofferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitReofferCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReofferCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c SubmitReofferCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewPrice returns the revised price.
func (c SubmitReofferCommand) NewPrice() kernel.Money {
	return c.newPrice
}

// Reasons returns a copy of the inspection reasons.
func (c SubmitReofferCommand) Reasons() []string {
	return append([]string(nil), c.reasons...)
}

// Comments returns the free-form inspector comments, possibly empty.
func (c SubmitReofferCommand) Comments() string {
	return c.comments
}

func (c *SubmitReofferCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitReofferCommand) setNewPrice(newPrice kernel.Money) error {
	if err := newPrice.Validate(); err != nil {
		return err
	}

	c.newPrice = newPrice
	return nil
}

func (c *SubmitReofferCommand) setReasons(reasons []string) error {
	if len(reasons) == 0 {
		return errs.NewValueIsRequiredError("re-offer reasons")
	}
	for _, reason := range reasons {
		if reason == "" {
			return errs.NewValueIsInvalidErrorWithCause("re-offer reasons",
				fmt.Errorf("reasons must not contain empty entries"))
		}
	}

	c.reasons = append([]string(nil), reasons...)
	return nil
}
