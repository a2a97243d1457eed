package kernel

import (
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
)

// Money is a value object representing a currency-agnostic monetary amount
// stored as integer cents. Storing cents instead of floating point keeps
// arithmetic exact for sums computed over many order records.
//
// Money is immutable. The zero value represents zero cents and is valid,
// since order values and delivery fees may legitimately be zero.
//
// Example:
//
//	value, err := kernel.NewMoneyFromCents(2499) // $24.99
//	if err != nil {
//	    return err
//	}
//	total := value.Add(fee)
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money value from an amount in cents.
// The amount must be non-negative.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("cents", cents, 0, int64(math.MaxInt64))
	}
	return Money{cents: cents}, nil
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two monetary amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsEqual compares two monetary amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String returns the amount formatted with two decimal places, e.g. "24.99".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
