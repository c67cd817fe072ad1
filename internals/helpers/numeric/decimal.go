// Package numeric holds fixed-scale decimal column types.
package numeric

import (
	"github.com/shopspring/decimal"
)

const (
	MoneyScale = 2
	CoordScale = 6
)

// Money is a NUMERIC(10,2) amount, serialized as a quoted string ("1500.00").
type Money struct{ decimal.Decimal }

func NewMoney(v string) (Money, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return Money{}, err
	}
	return Money{d.Round(MoneyScale)}, nil
}

// MustMoney is for fixtures and constants.
func MustMoney(v string) Money {
	m, err := NewMoney(v)
	if err != nil {
		panic(err)
	}
	return m
}

func MoneyFromInt(v int64) Money { return Money{decimal.NewFromInt(v)} }

func (m Money) Add(o Money) Money { return Money{m.Decimal.Add(o.Decimal)} }

func (m Money) Equal(o Money) bool { return m.Decimal.Equal(o.Decimal) }

func (m Money) String() string { return m.StringFixed(MoneyScale) }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(MoneyScale) + `"`), nil
}

func (Money) GormDataType() string { return "numeric(10,2)" }

func (Money) InvalidMessage() string { return "A valid number is required." }

// SumMoney adds all amounts; zero for an empty list.
func SumMoney(ms ...Money) Money {
	total := decimal.Zero
	for _, m := range ms {
		total = total.Add(m.Decimal)
	}
	return Money{total}
}

// Coord is a NUMERIC(9,6) latitude or longitude.
type Coord struct{ decimal.Decimal }

func NewCoord(v string) (Coord, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return Coord{}, err
	}
	return Coord{d.Round(CoordScale)}, nil
}

func MustCoord(v string) Coord {
	c, err := NewCoord(v)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Coord) String() string { return c.StringFixed(CoordScale) }

func (c Coord) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.StringFixed(CoordScale) + `"`), nil
}

func (Coord) GormDataType() string { return "numeric(9,6)" }

func (Coord) InvalidMessage() string { return "A valid number is required." }
