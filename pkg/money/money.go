// Package money holds the fixed-precision value types used for prices, totals and rates.
//
// Every value is kept at two decimal places. Rounding is half away from zero, which is
// half-up for the non-negative amounts a till normally deals with and matches how a
// PostgreSQL numeric(10,2) column rounds on write.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits kept for money and rates.
const Places = 2

var hundred = decimal.NewFromInt(100)

var ErrInvalidAmount = errors.New("invalid monetary amount")

// Money is a currency amount with two decimal places.
type Money struct {
	d decimal.Decimal
}

func Zero() Money {
	return Money{}
}

func New(value float64) Money {
	return Money{d: decimal.NewFromFloat(value).Round(Places)}
}

// FromCents builds an amount from an integer number of cents.
func FromCents(cents int64) Money {
	return Money{d: decimal.New(cents, -Places)}
}

func NewFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	return Money{d: d.Round(Places)}, nil
}

// MustParse is NewFromString for literals known to be valid.
func MustParse(value string) Money {
	m, err := NewFromString(value)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d)}
}

func (m Money) Sub(other Money) Money {
	return Money{d: m.d.Sub(other.d)}
}

// MulQty multiplies a unit amount by a quantity.
func (m Money) MulQty(quantity int) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(int64(quantity))).Round(Places)}
}

// Percent returns m × rate / 100 rounded to cents.
func (m Money) Percent(rate Rate) Money {
	return Money{d: m.d.Mul(rate.d).Div(hundred).Round(Places)}
}

// DivInt divides the amount into n parts, rounded to cents. Zero parts yields zero.
func (m Money) DivInt(n int64) Money {
	if n == 0 {
		return Zero()
	}
	return Money{d: m.d.Div(decimal.NewFromInt(n)).Round(Places)}
}

func (m Money) Cmp(other Money) int {
	return m.d.Cmp(other.d)
}

func (m Money) Equal(other Money) bool {
	return m.d.Equal(other.d)
}

func (m Money) IsZero() bool {
	return m.d.IsZero()
}

func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// Cents returns the amount as an integer number of cents.
func (m Money) Cents() int64 {
	return m.d.Shift(Places).Round(0).IntPart()
}

func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}

func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// String formats the amount with exactly two decimals.
func (m Money) String() string {
	return m.d.StringFixed(Places)
}

// Value stores the amount as fixed two-decimal text.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Money) Scan(src interface{}) error {
	d, err := scanDecimal(src)
	if err != nil {
		return err
	}
	m.d = d.Round(Places)
	return nil
}

// MarshalJSON writes the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	d, err := unmarshalDecimal(data)
	if err != nil {
		return err
	}
	m.d = d.Round(Places)
	return nil
}

func scanDecimal(src interface{}) (decimal.Decimal, error) {
	switch v := src.(type) {
	case nil:
		return decimal.Zero, nil
	case []byte:
		return parseStored(string(v))
	case string:
		return parseStored(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unsupported storage type %T", ErrInvalidAmount, src)
	}
}

func parseStored(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

func unmarshalDecimal(data []byte) (decimal.Decimal, error) {
	if string(data) == "null" {
		return decimal.Zero, nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidAmount, string(data))
	}
	return d, nil
}
