package kernel

import (
	"fmt"
	"math"

	"buyback/internal/pkg/errs"
	"buyback/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when a Money instance was not created
// through NewMoney or MoneyFromCents.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"Money must be created via NewMoney or MoneyFromCents")

// Money is a value object representing a positive monetary amount in USD.
// Amounts are stored as integer cents to keep arithmetic and persistence
// exact; the float accessors exist only for the JSON boundary.
//
// Quotes and re-offer prices in this domain are always positive, so the
// constructors reject zero and negative amounts.
type Money struct {
	cents int64

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value from a dollar amount, rounding to the
// nearest cent. Returns an error if the amount is not greater than zero or is
// not a finite number.
func NewMoney(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is not a finite number", amount))
	}

	cents := int64(math.Round(amount * 100))
	return MoneyFromCents(cents)
}

// MoneyFromCents creates a Money value from integer cents. Returns an error
// if cents is not greater than zero.
func MoneyFromCents(cents int64) (Money, error) {
	if cents <= 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d cents is not greater than 0", cents))
	}

	return Money{
		cents: cents,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Amount returns the amount in dollars.
func (m Money) Amount() float64 {
	return float64(m.cents) / 100
}

// String renders the amount as a dollar figure, e.g. "350.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// IsEqual compares two Money values by amount.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// Validate ensures the Money value was created through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
