package exalgebra

import (
	"testing"

	"github.com/shopspring/decimal"
)

var (
	applePos = MustParseKey("apple-nohat-yen")
	appleNeg = MustParseKey("apple-hat-yen")
	cashPos  = MustParseKey("cash-nohat-yen")
	cashNeg  = MustParseKey("cash-hat-yen")
)

// dec is a helper for test to create a decimal from a literal.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertSame fails if got and want do not hold exactly the same entries.
func assertSame(t *testing.T, got, want Vector) {
	t.Helper()
	if !got.SameValues(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// assertKeysOrder fails if the keys of v are not exactly keys, in order.
func assertKeysOrder(t *testing.T, v Vector, keys ...Key) {
	t.Helper()
	var got []Key
	for k := range v.All() {
		got = append(got, k)
	}
	if len(got) != len(keys) {
		t.Fatalf("keys = %v, want %v", got, keys)
	}
	for i := range keys {
		if got[i] != keys[i] {
			t.Fatalf("keys = %v, want %v", got, keys)
		}
	}
}
