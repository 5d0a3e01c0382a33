package exalgebra

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// number is a value accepted by E.
type number interface {
	int | int64 | float64 | decimal.Decimal
}

func toDecimal[T number](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		return decimal.NewFromFloat(v)
	case decimal.Decimal:
		return v
	}
	panic(fmt.Sprintf("unsupported number %T", value))
}

// Entry is a single (key, value) pair of a Vector.
type Entry struct {
	Key   Key
	Value decimal.Decimal
}

// E creates an Entry.
func E[T number](k Key, value T) Entry { return Entry{Key: k, Value: toDecimal(value)} }

func valid(d decimal.Decimal) decimal.NullDecimal { return decimal.NullDecimal{Decimal: d, Valid: true} }

// canonical returns a scale independent representation of d: "20" and
// "20.0" have the same canonical form.
func canonical(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	return d.String()
}
