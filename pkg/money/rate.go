package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Rate is a percentage between 0 and 100 with two decimal places.
type Rate struct {
	d decimal.Decimal
}

func NewRate(value float64) Rate {
	return Rate{d: decimal.NewFromFloat(value).Round(Places)}
}

func NewRateFromString(value string) (Rate, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Rate{}, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	return Rate{d: d.Round(Places)}, nil
}

func MustParseRate(value string) Rate {
	r, err := NewRateFromString(value)
	if err != nil {
		panic(err)
	}
	return r
}

// RateFromMoney reads a money value as a percentage, used for percentage discounts.
func RateFromMoney(m Money) Rate {
	return Rate{d: m.d}
}

// Valid reports whether the rate lies in [0, 100].
func (r Rate) Valid() bool {
	return !r.d.IsNegative() && r.d.Cmp(hundred) <= 0
}

func (r Rate) Equal(other Rate) bool {
	return r.d.Equal(other.d)
}

func (r Rate) Float64() float64 {
	f, _ := r.d.Float64()
	return f
}

func (r Rate) String() string {
	return r.d.StringFixed(Places)
}

func (r Rate) Value() (driver.Value, error) {
	return r.String(), nil
}

func (r *Rate) Scan(src interface{}) error {
	d, err := scanDecimal(src)
	if err != nil {
		return err
	}
	r.d = d.Round(Places)
	return nil
}

func (r Rate) MarshalJSON() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rate) UnmarshalJSON(data []byte) error {
	d, err := unmarshalDecimal(data)
	if err != nil {
		return err
	}
	r.d = d.Round(Places)
	return nil
}
