package commands

import (
	"errors"

	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/core/domain/model/order"
	"buyback/internal/pkg/guard"
)

// ErrSubmitOrderCommandIsNotConstructed is returned when a SubmitOrderCommand
// was not created via NewSubmitOrderCommand.
var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor")

// SubmitOrderCommand represents a request to register a new buyback order
// with the buyer's shipping details and the quoted price.
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	shipping order.ShippingInfo
	quote    kernel.Money

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to submit a new order. The order ID
// is assigned by the caller; the human-facing number is assigned by the
// handler.
func NewSubmitOrderCommand(
	orderID kernel.UUID, shipping order.ShippingInfo, quote kernel.Money,
) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setShipping(shipping),
		cmd.setQuote(quote),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c SubmitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Shipping returns the buyer's shipping details.
func (c SubmitOrderCommand) Shipping() order.ShippingInfo {
	return c.shipping
}

// Quote returns the quoted price.
func (c SubmitOrderCommand) Quote() kernel.Money {
	return c.quote
}

func (c *SubmitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitOrderCommand) setShipping(shipping order.ShippingInfo) error {
	if err := shipping.Validate(); err != nil {
		return err
	}

	c.shipping = shipping
	return nil
}

func (c *SubmitOrderCommand) setQuote(quote kernel.Money) error {
	if err := quote.Validate(); err != nil {
		return err
	}

	c.quote = quote
	return nil
}
