package commands

import (
	"errors"

	"buyback/internal/pkg/guard"
)

// ErrSweepExpiredReoffersCommandIsNotConstructed is returned when a
// SweepExpiredReoffersCommand was not created via
// NewSweepExpiredReoffersCommand.
var ErrSweepExpiredReoffersCommandIsNotConstructed = errors.New(
	"SweepExpiredReoffersCommand must be created via NewSweepExpiredReoffersCommand constructor")

// SweepExpiredReoffersCommand represents one auto-resolution pass over all
// orders whose re-offer deadline has passed. Carries no parameters; the
// deadline cutoff is the sweep's own wall clock.
type SweepExpiredReoffersCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepExpiredReoffersCommand creates a sweep command.
func NewSweepExpiredReoffersCommand() SweepExpiredReoffersCommand {
	return SweepExpiredReoffersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c SweepExpiredReoffersCommand) Validate() error {
	return c.guard.Validate(ErrSweepExpiredReoffersCommandIsNotConstructed)
}
