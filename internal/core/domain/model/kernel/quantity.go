package kernel

import (
	"fmt"

	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Quantity is a value object representing a non-negative amount of a product,
// measured in that product's unit. It wraps a decimal so that repeated
// proportional splits and sums stay exact instead of drifting the way binary
// floating point does.
//
// The zero value is a valid quantity of zero. Quantity is immutable; all
// arithmetic returns a new value.
//
// Example usage:
//
//	requested := kernel.QuantityFromFloat(15)
//	prepared := kernel.QuantityFromFloat(12)
//
//	share := prepared.Mul(kernel.QuantityFromFloat(10).Ratio(requested)).Round2()
//	fmt.Println(share) // 8
type Quantity struct {
	amount decimal.Decimal
}

// ZeroQuantity returns a quantity of zero.
func ZeroQuantity() Quantity {
	return Quantity{amount: decimal.Zero}
}

// NewQuantity creates a Quantity from a decimal amount.
// Returns an error when the amount is negative.
func NewQuantity(amount decimal.Decimal) (Quantity, error) {
	if amount.IsNegative() {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%s is negative", amount),
		)
	}
	return Quantity{amount: amount}, nil
}

// QuantityFromFloat creates a Quantity from a float64, truncating nothing:
// the float is converted through decimal's exact float conversion.
// Negative inputs are clamped by NewQuantity's validation at the call sites
// that take external data; this helper is intended for literals and tests.
func QuantityFromFloat(f float64) Quantity {
	return Quantity{amount: decimal.NewFromFloat(f)}
}

// QuantityFromString parses a decimal string such as "12.5".
// Returns an error for malformed or negative input.
func QuantityFromString(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity", err)
	}
	return NewQuantity(d)
}

// Decimal returns the underlying decimal amount.
func (q Quantity) Decimal() decimal.Decimal {
	return q.amount
}

// Float64 returns the closest float64 representation.
// Intended for read models and display, not for further arithmetic.
func (q Quantity) Float64() float64 {
	f, _ := q.amount.Float64()
	return f
}

// String returns the plain decimal representation, e.g. "12.5".
func (q Quantity) String() string {
	return q.amount.String()
}

// Add returns q + other.
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{amount: q.amount.Add(other.amount)}
}

// Sub returns q - other. The result may be negative; callers that require
// non-negative amounts must validate with NewQuantity.
func (q Quantity) Sub(other Quantity) Quantity {
	return Quantity{amount: q.amount.Sub(other.amount)}
}

// Mul returns q × other.
func (q Quantity) Mul(other Quantity) Quantity {
	return Quantity{amount: q.amount.Mul(other.amount)}
}

// Ratio returns q ÷ denominator as a quantity, or zero when the denominator
// is zero. Division carries decimal's extended precision; round afterwards.
func (q Quantity) Ratio(denominator Quantity) Quantity {
	if denominator.amount.IsZero() {
		return ZeroQuantity()
	}
	return Quantity{amount: q.amount.Div(denominator.amount)}
}

// Round2 returns the quantity rounded half-up to two decimal places,
// the resolution used when fanning prepared amounts back out to sub-orders.
func (q Quantity) Round2() Quantity {
	return Quantity{amount: q.amount.Round(2)}
}

// Min returns the smaller of q and other.
func (q Quantity) Min(other Quantity) Quantity {
	if q.amount.GreaterThan(other.amount) {
		return other
	}
	return q
}

// IsZero reports whether the quantity is exactly zero.
func (q Quantity) IsZero() bool {
	return q.amount.IsZero()
}

// IsEqual reports whether two quantities represent the same amount,
// regardless of exponent representation.
func (q Quantity) IsEqual(other Quantity) bool {
	return q.amount.Equal(other.amount)
}

// LessThan reports whether q < other.
func (q Quantity) LessThan(other Quantity) bool {
	return q.amount.LessThan(other.amount)
}

// GreaterOrEqual reports whether q >= other.
func (q Quantity) GreaterOrEqual(other Quantity) bool {
	return q.amount.GreaterThanOrEqual(other.amount)
}

// Validate checks that the quantity is not negative.
func (q Quantity) Validate() error {
	if q.amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%s is negative", q.amount),
		)
	}
	return nil
}
