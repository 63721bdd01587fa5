package services

import (
	"context"
	"errors"
	"math/rand/v2"

	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/core/ports"
	"buyback/internal/pkg/errs"
)

// maxNumberAttempts bounds the collision-retry loop. With a 100k number
// space the bound is only ever reached when the store itself misbehaves.
const maxNumberAttempts = 20

// ErrNumberSpaceExhausted is returned when no free order number was found
// within the retry bound. The order is not created in that case.
var ErrNumberSpaceExhausted = errors.New("could not find a free order number within the attempt limit")

// NumberGenerator produces unique human-facing NN-NNN order numbers.
// Uniqueness is probed against the repository; the store's unique index on
// the number column is the final arbiter for insertions racing between probe
// and commit.
type NumberGenerator struct {
	draw func() int
}

// NewNumberGenerator creates a generator drawing uniformly from the NN-NNN
// space.
func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{
		draw: func() int { return rand.IntN(kernel.OrderNumberSpace) },
	}
}

// NewNumberGeneratorWithDraw creates a generator with a custom draw
// function. Used by tests to force collisions.
func NewNumberGeneratorWithDraw(draw func() int) *NumberGenerator {
	return &NumberGenerator{draw: draw}
}

// Generate returns an order number not currently present in the repository.
// Retries on collision up to maxNumberAttempts, then fails with
// ErrNumberSpaceExhausted rather than looping forever during a store outage.
func (g *NumberGenerator) Generate(ctx context.Context, repo ports.OrderRepository) (kernel.OrderNumber, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, err := kernel.OrderNumberFromInt(g.draw())
		if err != nil {
			return kernel.OrderNumber{}, err
		}

		_, err = repo.GetByNumber(ctx, number)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return number, nil
		}
		if err != nil {
			return kernel.OrderNumber{}, err
		}
		// Number taken, draw again.
	}

	return kernel.OrderNumber{}, ErrNumberSpaceExhausted
}
