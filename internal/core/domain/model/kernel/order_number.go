package kernel

import (
	"fmt"
	"regexp"

	"buyback/internal/pkg/errs"
	"buyback/internal/pkg/guard"
)

// ErrOrderNumberIsNotConstructed is returned when an OrderNumber was not
// created through NewOrderNumber or OrderNumberFromInt.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderNumber must be created via NewOrderNumber or OrderNumberFromInt")

// orderNumberPattern is the fixed NN-NNN shape of the human-facing number.
var orderNumberPattern = regexp.MustCompile(`^\d{2}-\d{3}$`)

// OrderNumberSpace is the number of distinct order numbers (00-000 through
// 99-999).
const OrderNumberSpace = 100000

// OrderNumber is the human-facing secondary identifier of an order. It has a
// fixed "NN-NNN" shape so it can be read over the phone and printed on
// shipping labels. Uniqueness is enforced by the number generator against the
// store, not by this type.
type OrderNumber struct {
	value string

	guard guard.ConstructorGuard
}

// NewOrderNumber creates an OrderNumber from its string form, validating the
// NN-NNN shape.
func NewOrderNumber(value string) (OrderNumber, error) {
	if value == "" {
		return OrderNumber{}, errs.NewValueIsRequiredError("order number")
	}
	if !orderNumberPattern.MatchString(value) {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("order number",
			fmt.Errorf("%q does not match the NN-NNN shape", value))
	}

	return OrderNumber{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// OrderNumberFromInt renders a draw from [0, OrderNumberSpace) into the
// NN-NNN shape. Used by the number generator.
func OrderNumberFromInt(n int) (OrderNumber, error) {
	if n < 0 || n >= OrderNumberSpace {
		return OrderNumber{}, errs.NewValueIsOutOfRangeError("order number", n, 0, OrderNumberSpace-1)
	}

	return NewOrderNumber(fmt.Sprintf("%02d-%03d", n/1000, n%1000))
}

// String returns the NN-NNN representation.
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual compares two order numbers.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Validate ensures the OrderNumber was created through a constructor.
func (n OrderNumber) Validate() error {
	return n.guard.Validate(ErrOrderNumberIsNotConstructed)
}
