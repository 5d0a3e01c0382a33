package renderer

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/exalgebra"
	"github.com/shopspring/decimal"
)

// VectorTable is the data of a vector report. Values are already formatted.
type VectorTable struct {
	Title string     `json:"title"`
	Rows  []EntryRow `json:"rows"`
	Len   int        `json:"len"`
	Norm  string     `json:"norm"`
}

// EntryRow represents a single entry of a vector.
type EntryRow struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Unit      string `json:"unit"`
	Time      string `json:"time"`
	Category  string `json:"category"`
	Value     string `json:"value"`
}

// NewVectorTable creates the report data of v, entries in insertion order.
func NewVectorTable(title string, v exalgebra.Vector) *VectorTable {
	t := &VectorTable{Title: title, Len: v.Len(), Norm: v.Norm().String()}
	for k, nd := range v.Entries() {
		value := "null"
		if nd.Valid {
			value = formatValue(nd.Decimal, k.Unit())
		}
		t.Rows = append(t.Rows, EntryRow{
			Name:      k.Name(),
			Direction: k.Direction().String(),
			Unit:      k.Unit(),
			Time:      k.Time(),
			Category:  k.Category(),
			Value:     value,
		})
	}
	return t
}

// Summary is the data of a netting report.
type Summary struct {
	Title    string          `json:"title"`
	Families []FamilySummary `json:"families"`
	Norm     string          `json:"norm"`
	NetNorm  string          `json:"netNorm"`
}

// FamilySummary holds both sides of a base family. A missing side is empty.
type FamilySummary struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Time     string `json:"time"`
	Category string `json:"category"`
	Nohat    string `json:"nohat"`
	Hat      string `json:"hat"`
	Net      string `json:"net"`
}

// NewSummary creates the netting report data of v. Families are listed in
// order of first appearance, null entries count as zero.
func NewSummary(title string, v exalgebra.Vector) *Summary {
	type sides struct {
		key      exalgebra.Key
		nohat    *decimal.Decimal
		hat      *decimal.Decimal
		netValue decimal.Decimal
	}
	var order []exalgebra.Key
	fams := make(map[exalgebra.Key]*sides)
	for k, value := range v.All() {
		base := k.WithDirection(exalgebra.NoHat)
		f, ok := fams[base]
		if !ok {
			f = &sides{key: base}
			fams[base] = f
			order = append(order, base)
		}
		if k.IsHat() {
			f.hat = &value
			f.netValue = f.netValue.Sub(value)
		} else {
			f.nohat = &value
			f.netValue = f.netValue.Add(value)
		}
	}

	s := &Summary{Title: title, Norm: v.Norm().String(), NetNorm: v.Bar().Norm().String()}
	for _, base := range order {
		f := fams[base]
		unit := base.Unit()
		s.Families = append(s.Families, FamilySummary{
			Name:     base.Name(),
			Unit:     unit,
			Time:     base.Time(),
			Category: base.Category(),
			Nohat:    formatSide(f.nohat, unit),
			Hat:      formatSide(f.hat, unit),
			Net:      formatValue(f.netValue, unit),
		})
	}
	return s
}

func formatSide(d *decimal.Decimal, unit string) string {
	if d == nil {
		return ""
	}
	return formatValue(*d, unit)
}

// formatValue formats d in its unit. Units that are ISO 4217 currency codes
// are formatted as money, other values are plain decimals.
func formatValue(d decimal.Decimal, unit string) string {
	cur := money.GetCurrency(strings.ToUpper(unit))
	if cur == nil {
		return d.String()
	}
	minor := d.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
