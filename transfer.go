package exalgebra

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"
)

// This file contains the redistribution layer: rules keyed by a source
// pattern that move a value to destinations built by KeyPattern.Translate.
//
// Every transfer is additive: the source entries are kept and the moved
// values are added to the destinations. Entries that no rule matches pass
// through unchanged.

// DivideRatios maps destination patterns to nonnegative ratios.
//
// The total ratio is cached: it is only recomputed by UpdateTotalRatio.
type DivideRatios struct {
	patterns []KeyPattern
	ratios   map[KeyPattern]decimal.Decimal
	total    decimal.Decimal
}

// NewDivideRatios creates an empty set of ratios.
func NewDivideRatios() *DivideRatios {
	return &DivideRatios{ratios: make(map[KeyPattern]decimal.Decimal)}
}

// Put sets the ratio of destination p. A negative ratio fails with
// ErrArithmetic.
func (r *DivideRatios) Put(p KeyPattern, ratio decimal.Decimal) error {
	if ratio.IsNegative() {
		return fmt.Errorf("ratio %v for %v: %w", ratio, p, ErrArithmetic)
	}
	if _, exists := r.ratios[p]; !exists {
		r.patterns = append(r.patterns, p)
	}
	r.ratios[p] = ratio
	return nil
}

// Ratio returns the ratio of p, zero if p is not a destination.
func (r *DivideRatios) Ratio(p KeyPattern) decimal.Decimal { return r.ratios[p] }

func (r *DivideRatios) Len() int { return len(r.patterns) }

// All iterates over destinations and ratios in insertion order.
func (r *DivideRatios) All() iter.Seq2[KeyPattern, decimal.Decimal] {
	return func(yield func(KeyPattern, decimal.Decimal) bool) {
		for _, p := range r.patterns {
			if !yield(p, r.ratios[p]) {
				return
			}
		}
	}
}

// TotalRatio returns the total computed by the last UpdateTotalRatio.
func (r *DivideRatios) TotalRatio() decimal.Decimal { return r.total }

// UpdateTotalRatio recomputes and returns the sum of all ratios.
func (r *DivideRatios) UpdateTotalRatio() decimal.Decimal {
	total := decimal.Zero
	for _, ratio := range r.ratios {
		total = total.Add(ratio)
	}
	r.total = total
	return total
}

// TransferTable maps a source pattern to a single destination pattern.
type TransferTable struct {
	from []KeyPattern
	to   map[KeyPattern]KeyPattern
}

// NewTransferTable creates an empty table.
func NewTransferTable() *TransferTable {
	return &TransferTable{to: make(map[KeyPattern]KeyPattern)}
}

// Put adds or replaces the rule for from.
func (t *TransferTable) Put(from, to KeyPattern) {
	if _, exists := t.to[from]; !exists {
		t.from = append(t.from, from)
	}
	t.to[from] = to
}

func (t *TransferTable) Len() int { return len(t.from) }

// Get returns the destination of the rule for from.
func (t *TransferTable) Get(from KeyPattern) (KeyPattern, bool) {
	to, ok := t.to[from]
	return to, ok
}

// All iterates over the rules in insertion order.
func (t *TransferTable) All() iter.Seq2[KeyPattern, KeyPattern] {
	return func(yield func(KeyPattern, KeyPattern) bool) {
		for _, from := range t.from {
			if !yield(from, t.to[from]) {
				return
			}
		}
	}
}

// Transform returns the destination of k by the first matching rule in
// insertion order, or k itself if no rule matches. When several rules match,
// the others are ignored here: Destinations lists all of them, and
// Vector.Transfer applies them cumulatively.
func (t *TransferTable) Transform(k Key) Key {
	for from, to := range t.All() {
		if from.Match(k) {
			return to.Translate(k)
		}
	}
	return k
}

// Destinations returns the destination of k for every matching rule.
func (t *TransferTable) Destinations(k Key) KeySet {
	var s KeySet
	for from, to := range t.All() {
		if from.Match(k) {
			s.set.insert(to.Translate(k))
		}
	}
	return s
}

// TransferMatrix maps a source pattern to destinations weighted by ratios.
//
// When UseTotalRatio is set, the share of a destination is ratio/totalRatio
// so that shares add up to one. Otherwise the share is the raw ratio.
type TransferMatrix struct {
	from          []KeyPattern
	ratios        map[KeyPattern]*DivideRatios
	useTotalRatio bool
}

// NewTransferMatrix creates an empty matrix.
func NewTransferMatrix(useTotalRatio bool) *TransferMatrix {
	return &TransferMatrix{ratios: make(map[KeyPattern]*DivideRatios), useTotalRatio: useTotalRatio}
}

func (m *TransferMatrix) UseTotalRatio() bool     { return m.useTotalRatio }
func (m *TransferMatrix) SetUseTotalRatio(b bool) { m.useTotalRatio = b }
func (m *TransferMatrix) Len() int                { return len(m.from) }

// Put adds or replaces the ratios of the rule for from.
func (m *TransferMatrix) Put(from KeyPattern, ratios *DivideRatios) {
	if _, exists := m.ratios[from]; !exists {
		m.from = append(m.from, from)
	}
	m.ratios[from] = ratios
}

// Get returns the ratios of the rule for from.
func (m *TransferMatrix) Get(from KeyPattern) (*DivideRatios, bool) {
	r, ok := m.ratios[from]
	return r, ok
}

// All iterates over the rules in insertion order.
func (m *TransferMatrix) All() iter.Seq2[KeyPattern, *DivideRatios] {
	return func(yield func(KeyPattern, *DivideRatios) bool) {
		for _, from := range m.from {
			if !yield(from, m.ratios[from]) {
				return
			}
		}
	}
}

// match returns the rule of the first source pattern matching k.
func (m *TransferMatrix) match(k Key) (KeyPattern, *DivideRatios, bool) {
	for from, r := range m.All() {
		if from.Match(k) {
			return from, r, true
		}
	}
	return KeyPattern{}, nil, false
}

// Transform returns the destinations of k, or k itself if no rule matches.
func (m *TransferMatrix) Transform(k Key) (KeySet, error) {
	from, r, ok := m.match(k)
	if !ok {
		return NewKeySet(k), nil
	}
	if r == nil || r.Len() == 0 {
		return KeySet{}, fmt.Errorf("transform %v by %v: %w", k, from, ErrFatalTransferState)
	}
	var s KeySet
	for to := range r.All() {
		s.set.insert(to.Translate(k))
	}
	return s, nil
}

// Transfer splits value among the destinations of k. It returns false if no
// rule matches k, in which case the caller keeps the original entry.
func (m *TransferMatrix) Transfer(k Key, value decimal.Decimal) (Vector, bool, error) {
	from, r, ok := m.match(k)
	if !ok {
		return Vector{}, false, nil
	}
	if r == nil || r.Len() == 0 {
		return Vector{}, true, fmt.Errorf("transfer %v by %v: %w", k, from, ErrFatalTransferState)
	}
	denom := decimal.NewFromInt(1)
	if m.useTotalRatio {
		denom = r.TotalRatio()
		if denom.IsZero() {
			return Vector{}, true, fmt.Errorf("transfer %v by %v: zero total ratio: %w", k, from, ErrArithmetic)
		}
	}
	var res Vector
	for to, ratio := range r.All() {
		res.plusEntry(to.Translate(k), valid(value.Mul(ratio).Div(denom)))
	}
	return res, true, nil
}

// Transform adds the value of every entry matched by from into the key
// translated by to. The original entries are kept.
func (v Vector) Transform(from, to KeyPattern) Vector {
	acc := NewAccumulator(v)
	for _, k := range v.keys {
		if from.Match(k) {
			acc.v.plusEntry(to.Translate(k), v.values[k])
		}
	}
	return acc.v
}

// AggreTransfer is the same as Transform.
func (v Vector) AggreTransfer(from, to KeyPattern) Vector { return v.Transform(from, to) }

// Transfer applies every rule of t like Transform. An entry matched by
// several rules contributes once per rule.
func (v Vector) Transfer(t *TransferTable) Vector {
	acc := NewAccumulator(v)
	for from, to := range t.All() {
		for _, k := range v.keys {
			if from.Match(k) {
				acc.v.plusEntry(to.Translate(k), v.values[k])
			}
		}
	}
	return acc.v
}

// DivideTransfer splits the value of every entry matched by a rule of m
// among its destinations, and adds the shares. The original entries are
// kept.
func (v Vector) DivideTransfer(m *TransferMatrix) (Vector, error) {
	acc := NewAccumulator(v)
	for _, k := range v.keys {
		shares, ok, err := m.Transfer(k, v.values[k].Decimal)
		if err != nil {
			return Vector{}, err
		}
		if ok {
			acc.AddVector(shares)
		}
	}
	return acc.v, nil
}
