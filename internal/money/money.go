package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// scale is the number of currency minor-unit digits every Value carries.
const scale = 2

// Value is an exact monetary amount normalized to two decimal places using
// round-half-up. Arithmetic never touches binary floating point, so equality
// and ordering are stable: 1.235987654321 and 1.24 are the same Value.
//
// Subtraction may produce a negative Value; callers that require
// non-negative results must check IsNegative before using one.
type Value struct {
	amount decimal.Decimal
}

// Zero returns the zero amount.
func Zero() Value {
	return Value{amount: decimal.Zero.Round(scale)}
}

// FromString parses a decimal string into a Value, normalizing to two
// decimal places with round-half-up.
func FromString(s string) (Value, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Value{}, fmt.Errorf("parse monetary value %q: %w", s, err)
	}
	return Value{amount: d.Round(scale)}, nil
}

// FromFloat converts a float64 (e.g. a persisted numeric column) into a
// normalized Value.
func FromFloat(f float64) Value {
	return Value{amount: decimal.NewFromFloat(f).Round(scale)}
}

// Add returns v + o.
func (v Value) Add(o Value) Value {
	return Value{amount: v.amount.Add(o.amount).Round(scale)}
}

// Subtract returns v - o. The result may be negative.
func (v Value) Subtract(o Value) Value {
	return Value{amount: v.amount.Sub(o.amount).Round(scale)}
}

// DivideBy returns v / n rounded half-up to two decimals. n must be > 0.
func (v Value) DivideBy(n int64) Value {
	return Value{amount: v.amount.Div(decimal.NewFromInt(n)).Round(scale)}
}

// Cent is the smallest representable increment.
func Cent() Value {
	return Value{amount: decimal.New(1, -scale)}
}

// IsGreaterThan reports whether v > o.
func (v Value) IsGreaterThan(o Value) bool {
	return v.amount.GreaterThan(o.amount)
}

// IsZero reports whether v is exactly zero.
func (v Value) IsZero() bool {
	return v.amount.IsZero()
}

// IsNegative reports whether v is below zero.
func (v Value) IsNegative() bool {
	return v.amount.IsNegative()
}

// Equals reports whether two values represent the same normalized amount.
func (v Value) Equals(o Value) bool {
	return v.amount.Equal(o.amount)
}

// String renders the amount with exactly two decimal places, e.g. "4.55".
func (v Value) String() string {
	return v.amount.StringFixed(scale)
}

// Float64 returns the amount as a float64 for persistence layers that store
// numerics. Comparisons must never be made on this representation.
func (v Value) Float64() float64 {
	f, _ := v.amount.Float64()
	return f
}

// MarshalJSON encodes the value as a bare decimal number with two digits.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a decimal string.
func (v *Value) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
