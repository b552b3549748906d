package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney or MoneyFromString")

// MoneyScale is the number of fractional digits money amounts are rounded to.
const MoneyScale = 2

// Money is a non-negative monetary amount with a fixed scale of two digits.
// It is backed by shopspring/decimal so sums of line items never drift the
// way float64 arithmetic does.
type Money struct {
	amount        decimal.Decimal
	isConstructed bool
}

// NewMoney rounds amount to MoneyScale digits and rejects negative values.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	return Money{amount: amount.Round(MoneyScale), isConstructed: true}, nil
}

// MoneyFromString parses a decimal string such as "12.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, isConstructed: true}
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), isConstructed: true}
}

// Multiply returns the amount multiplied by a non-negative quantity.
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), isConstructed: true}, nil
}

// Decimal exposes the underlying amount for persistence and projection.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsZero reports whether the amount equals zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares amounts numerically, so 12.5 equals 12.50.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats the amount with exactly MoneyScale fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	if m.amount.IsNegative() {
		return fmt.Errorf("%w: negative amount %s", errs.ErrValueIsOutOfRange, m.amount)
	}
	return nil
}
