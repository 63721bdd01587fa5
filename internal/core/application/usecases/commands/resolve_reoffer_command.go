package commands

import (
	"errors"
	"fmt"

	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/pkg/errs"
	"buyback/internal/pkg/guard"
)

// ErrResolveReofferCommandIsNotConstructed is returned when a
// ResolveReofferCommand was not created via NewResolveReofferCommand.
var ErrResolveReofferCommandIsNotConstructed = errors.New(
	"ResolveReofferCommand must be created via NewResolveReofferCommand constructor")

// ReofferDecision is the buyer's answer to a pending re-offer.
type ReofferDecision int

const (
	// DecisionUnknown represents an invalid or undefined decision.
	DecisionUnknown ReofferDecision = iota

	// DecisionAccept accepts the revised price.
	DecisionAccept

	// DecisionDecline declines the revised price and requests the device
	// back.
	DecisionDecline
)

// DecisionFromString parses "accept" or "decline".
func DecisionFromString(s string) (ReofferDecision, error) {
	switch s {
	case "accept":
		return DecisionAccept, nil
	case "decline":
		return DecisionDecline, nil
	default:
		return DecisionUnknown, errs.NewValueIsInvalidErrorWithCause("decision",
			fmt.Errorf("%q is not a valid re-offer decision", s))
	}
}

// String returns the wire-format name of the decision.
func (d ReofferDecision) String() string {
	switch d {
	case DecisionAccept:
		return "accept"
	case DecisionDecline:
		return "decline"
	default:
		return "unknown"
	}
}

// ResolveReofferCommand represents the buyer's response to a pending
// re-offer: accept the revised price, or decline it and get the device back.
type ResolveReofferCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	decision ReofferDecision

	guard guard.ConstructorGuard
}

// NewResolveReofferCommand creates a command carrying the buyer's decision.
func NewResolveReofferCommand(
	orderID kernel.UUID, decision ReofferDecision,
) (ResolveReofferCommand, error) {
	cmd := ResolveReofferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDecision(decision),
	); err != nil {
		return ResolveReofferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveReofferCommand) Validate() error {
	return c.guard.Validate(ErrResolveReofferCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c ResolveReofferCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Decision returns the buyer's decision.
func (c ResolveReofferCommand) Decision() ReofferDecision {
	return c.decision
}

func (c *ResolveReofferCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ResolveReofferCommand) setDecision(decision ReofferDecision) error {
	if decision != DecisionAccept && decision != DecisionDecline {
		return errs.NewValueIsInvalidErrorWithCause("decision",
			fmt.Errorf("%d is not a valid re-offer decision", decision))
	}

	c.decision = decision
	return nil
}
