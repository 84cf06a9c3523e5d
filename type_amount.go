package loantracker

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount represents an exact, currency-less, monetary value.
//
// Amounts are stored without currency: the tracker works in a single currency that is only
// used for display.
type Amount struct {
	value decimal.Decimal // as major unit value
}

// A returns an Amount for the given value.
func A[T float64 | int | int64 | decimal.Decimal](value T) Amount {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return Amount{v}
	case float64:
		return Amount{decimal.NewFromFloat(v)}
	case int:
		return Amount{decimal.NewFromInt(int64(v))}
	case int64:
		return Amount{decimal.NewFromInt(v)}
	default:
		panic(fmt.Sprintf("unsupported amount type %T", value))
	}
}

// MaxAmount is the largest amount, in absolute value, that can be lent or parsed.
// Above it, amounts can no longer be formatted in every currency.
var MaxAmount = A(int64(1e15))

// ParseAmount parses a decimal number like "12.50". Thousand separators are not accepted.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if v.Abs().GreaterThan(MaxAmount.value) {
		return Amount{}, fmt.Errorf("invalid amount %q: larger than %s", s, MaxAmount.value)
	}
	return Amount{v}, nil
}

func (a Amount) Decimal() decimal.Decimal         { return a.value }
func (a Amount) IsZero() bool                     { return a.value.IsZero() }
func (a Amount) IsPositive() bool                 { return a.value.IsPositive() }
func (a Amount) IsNegative() bool                 { return a.value.IsNegative() }
func (a Amount) Equal(b Amount) bool              { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool           { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool        { return a.value.GreaterThan(b.value) }
func (a Amount) GreaterThanOrEqual(b Amount) bool { return a.value.GreaterThanOrEqual(b.value) }
func (a Amount) Add(b Amount) Amount              { return Amount{a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount              { return Amount{a.value.Sub(b.value)} }
func (a Amount) Max(b Amount) Amount              { return Amount{decimal.Max(a.value, b.value)} }

// Percent returns a as a percentage of of, or 0 if of is zero.
func (a Amount) Percent(of Amount) float64 {
	if of.IsZero() {
		return 0
	}
	return a.value.Div(of.value).Shift(2).InexactFloat64()
}

// String returns the plain decimal representation, with no currency.
func (a Amount) String() string { return a.value.StringFixed(2) }

// Format returns the amount formatted in the given currency (e.g. "$1,234.50" for USD).
// The value is rounded to the currency's minor unit.
func (a Amount) Format(currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := money.New(0, currency).Currency()
	minor := a.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// MarshalJSON writes the amount as a bare JSON number, with all its digits.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.String()), nil
}

// UnmarshalJSON reads a JSON number, or a quoted number.
func (a *Amount) UnmarshalJSON(b []byte) error {
	var v decimal.Decimal
	if err := v.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("invalid amount %s: %w", b, err)
	}
	a.value = v
	return nil
}
