package kernel

import (
	"fmt"

	"afrimercato/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in minor currency
// units (kobo). Amounts are always non-negative: order lines and totals never
// carry negative prices, and refund bookkeeping lives outside this core.
//
// The zero value is a valid zero amount, so Money needs no constructor guard.
//
// Example:
//
//	price := kernel.NewMoney(2500)          // 25.00
//	total := price.Multiply(3)              // 75.00
//	sum := total.Add(kernel.NewMoney(100))  // 76.00
type Money struct {
	amount int64
}

// NewMoney creates a Money value from an amount in minor units.
// Negative amounts are clamped at construction by the caller via Validate.
func NewMoney(amount int64) Money {
	return Money{amount: amount}
}

// Amount returns the value in minor currency units.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Multiply returns the amount scaled by a non-negative quantity.
func (m Money) Multiply(quantity int) Money {
	return Money{amount: m.amount * int64(quantity)}
}

// IsZero reports whether the amount equals zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsEqual compares two amounts by value.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String formats the amount as major.minor, e.g. "25.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.amount/100, m.amount%100)
}

// Validate rejects negative amounts.
func (m Money) Validate() error {
	if m.amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d is negative", m.amount))
	}
	return nil
}
