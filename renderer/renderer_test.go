package renderer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/etnz/exalgebra"
	"github.com/shopspring/decimal"
)

func TestRenderVector(t *testing.T) {
	v := exalgebra.NewVector(
		exalgebra.E(exalgebra.MustParseKey("apple-nohat-yen"), 10),
		exalgebra.E(exalgebra.MustParseKey("apple-hat-yen"), 4),
		exalgebra.E(exalgebra.MustParseKey("cash-nohat-usd"), 1234.5),
	).PutNull(exalgebra.MustParseKey("pear"))

	want := `## Holdings

| Name | Direction | Unit | Time | Category | Value |
|:-----|:----------|:-----|:-----|:---------|------:|
| apple | nohat | yen | # | # | 10 |
| apple | hat | yen | # | # | 4 |
| cash | nohat | usd | # | # | $1,234.50 |
| pear | nohat | # | # | # | null |

Entries: 4, norm: 1248.5
`
	if got := RenderVector("Holdings", v); got != want {
		t.Errorf("RenderVector() mismatch:\n%s", createDiff(want, got))
	}
}

func TestRenderVector_Empty(t *testing.T) {
	want := "## Nothing\n\n*empty vector*\n"
	if got := RenderVector("Nothing", exalgebra.Vector{}); got != want {
		t.Errorf("RenderVector() mismatch:\n%s", createDiff(want, got))
	}
}

func TestRenderSummary(t *testing.T) {
	v := exalgebra.NewVector(
		exalgebra.E(exalgebra.MustParseKey("apple-nohat-yen"), 10),
		exalgebra.E(exalgebra.MustParseKey("cash-hat-yen"), 3),
		exalgebra.E(exalgebra.MustParseKey("apple-hat-yen"), 4),
	)

	want := `## Netting

| Name | Unit | Time | Category | Nohat | Hat | Net |
|:-----|:-----|:-----|:---------|------:|----:|----:|
| apple | yen | # | # | 10 | 4 | 6 |
| cash | yen | # | # |  | 3 | -3 |

Norm: 17, after netting: 9
`
	if got := RenderSummary("Netting", v); got != want {
		t.Errorf("RenderSummary() mismatch:\n%s", createDiff(want, got))
	}
}

func TestFormatValue(t *testing.T) {
	testCases := []struct {
		value string
		unit  string
		want  string
	}{
		{"1234.5", "usd", "$1,234.50"},
		{"1234.5", "USD", "$1,234.50"},
		{"1234.5", "yen", "1234.5"},
		{"0.125", "#", "0.125"},
	}
	for _, tc := range testCases {
		t.Run(tc.unit, func(t *testing.T) {
			got := formatValue(decimal.RequireFromString(tc.value), tc.unit)
			if got != tc.want {
				t.Errorf("formatValue(%s, %s) = %q, want %q", tc.value, tc.unit, got, tc.want)
			}
		})
	}
}

func createDiff(want, got string) string {
	// A simple diff-like representation for clearer test failures.
	return fmt.Sprintf("-%s\n+%s", strings.ReplaceAll(want, "\n", "\n-"), strings.ReplaceAll(got, "\n", "\n+"))
}
