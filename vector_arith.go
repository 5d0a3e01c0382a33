package exalgebra

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// family is the signed pair of a base family: the nohat and hat entries
// sharing name, unit, time and category.
type family struct {
	base           Key
	pos, neg       decimal.NullDecimal
	hasPos, hasNeg bool
}

func (f *family) p() decimal.Decimal { return f.pos.Decimal }
func (f *family) n() decimal.Decimal { return f.neg.Decimal }

// cancels reports whether both sides exist and hold exactly the same value.
func (f *family) cancels() bool {
	return f.hasPos && f.hasNeg && f.pos.Valid && f.neg.Valid && f.pos.Decimal.Equal(f.neg.Decimal)
}

// families groups the entries of v by base family, in order of first
// appearance.
func (v Vector) families() ([]*family, map[Key]*family) {
	var list []*family
	index := make(map[Key]*family)
	for _, k := range v.keys {
		b := k.base()
		f, ok := index[b]
		if !ok {
			f = &family{base: b}
			index[b] = f
			list = append(list, f)
		}
		if k.dir == Hat {
			f.neg, f.hasNeg = v.values[k], true
		} else {
			f.pos, f.hasPos = v.values[k], true
		}
	}
	return list, index
}

// Plus returns the entrywise sum of v and o.
func (v Vector) Plus(o Vector) Vector {
	return NewAccumulator(v).AddVector(o).v
}

// PlusValue returns v with value added at k.
func (v Vector) PlusValue(k Key, value decimal.Decimal) Vector {
	return NewAccumulator(v).Add(k, value).v
}

// Multiple scales every value by scalar. A negative scalar fails with
// ErrArithmetic.
func (v Vector) Multiple(scalar decimal.Decimal) (Vector, error) {
	if scalar.IsNegative() {
		return Vector{}, fmt.Errorf("multiple by %v: %w", scalar, ErrArithmetic)
	}
	return v.mapValues(func(d decimal.Decimal) decimal.Decimal { return d.Mul(scalar) }), nil
}

// Divide divides every value by scalar. A scalar lower or equal to zero
// fails with ErrArithmetic.
func (v Vector) Divide(scalar decimal.Decimal) (Vector, error) {
	if !scalar.IsPositive() {
		return Vector{}, fmt.Errorf("divide by %v: %w", scalar, ErrArithmetic)
	}
	return v.mapValues(func(d decimal.Decimal) decimal.Decimal { return d.Div(scalar) }), nil
}

func (v Vector) mapValues(f func(decimal.Decimal) decimal.Decimal) Vector {
	var r Vector
	for _, k := range v.keys {
		r.set(k, valid(f(v.values[k].Decimal)))
	}
	return r
}

// MultipleVector multiplies v by o family by family, each family being the
// signed pair (p, n):
//
//	(p1, n1) * (p2, n2) = (p1*p2 + n1*n2, p1*n2 + n1*p2)
//
// Families present in only one operand vanish. A side of the result is
// emitted only if one of its products involves two existing entries.
func (v Vector) MultipleVector(o Vector) Vector {
	fams, _ := v.families()
	_, others := o.families()
	var r Vector
	for _, a := range fams {
		b, ok := others[a.base]
		if !ok {
			continue
		}
		if (a.hasPos && b.hasPos) || (a.hasNeg && b.hasNeg) {
			p := a.p().Mul(b.p()).Add(a.n().Mul(b.n()))
			r.plusEntry(a.base, valid(p))
		}
		if (a.hasPos && b.hasNeg) || (a.hasNeg && b.hasPos) {
			n := a.p().Mul(b.n()).Add(a.n().Mul(b.p()))
			r.plusEntry(a.base.WithDirection(Hat), valid(n))
		}
	}
	return r
}

// DivideVector is v.MultipleVector(o.InvElement()).
func (v Vector) DivideVector(o Vector) Vector {
	return v.MultipleVector(o.InvElement())
}

// InvElement returns, for each family, the inverse of its net value p-n on
// the side of its sign. Families with a zero net value are dropped.
func (v Vector) InvElement() Vector {
	fams, _ := v.families()
	var r Vector
	for _, f := range fams {
		net := f.p().Sub(f.n())
		switch net.Sign() {
		case 1:
			r.set(f.base, valid(decimal.NewFromInt(1).Div(net)))
		case -1:
			r.set(f.base.WithDirection(Hat), valid(decimal.NewFromInt(1).Div(net.Abs())))
		}
	}
	return r
}

// Norm returns the sum of the absolute values of all entries.
func (v Vector) Norm() decimal.Decimal {
	sum := decimal.Zero
	for _, nd := range v.values {
		sum = sum.Add(nd.Decimal.Abs())
	}
	return sum
}

// Sum returns the sum of all values, regardless of their direction.
func (v Vector) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, nd := range v.values {
		sum = sum.Add(nd.Decimal)
	}
	return sum
}

// Hat flips the direction of every key, values are unchanged.
func (v Vector) Hat() Vector {
	var r Vector
	for _, k := range v.keys {
		r.set(k.Hat(), v.values[k])
	}
	return r
}

// Bar nets every family: the minimum of both sides is subtracted from each
// side. Entries whose value is zero after netting are dropped, and so are
// lone zero entries.
func (v Vector) Bar() Vector {
	_, fams := v.families()
	var r Vector
	for _, k := range v.keys {
		f := fams[k.base()]
		value := v.values[k].Decimal
		if f.hasPos && f.hasNeg {
			value = value.Sub(decimal.Min(f.p(), f.n()))
		}
		if !value.IsZero() {
			r.set(k, valid(value))
		}
	}
	return r
}

// StrictBar removes both entries of a family when they hold exactly the same
// value. Every other entry, zeros included, is kept unchanged.
func (v Vector) StrictBar() Vector {
	_, fams := v.families()
	return v.filter(func(k Key, _ decimal.NullDecimal) bool {
		return !fams[k.base()].cancels()
	})
}

// StrictBarLeaveZero cancels families like StrictBar but keeps one side of a
// cancelled family as an explicit zero: the nohat side if keepPosSide,
// otherwise the hat side.
func (v Vector) StrictBarLeaveZero(keepPosSide bool) Vector {
	_, fams := v.families()
	kept := NoHat
	if !keepPosSide {
		kept = Hat
	}
	var r Vector
	for _, k := range v.keys {
		switch {
		case !fams[k.base()].cancels():
			r.set(k, v.values[k])
		case k.dir == kept:
			r.set(k, valid(decimal.Zero))
		}
	}
	return r
}

// Normalization drops every entry whose value is exactly zero. Null entries
// are kept.
func (v Vector) Normalization() Vector {
	return v.filter(func(_ Key, nd decimal.NullDecimal) bool {
		return !nd.Valid || !nd.Decimal.IsZero()
	})
}

// ElementMultiple multiplies each entry of v by the entry of o with the same
// key, an absent key being zero. For every name, both operands must hold the
// same number of entries.
func (v Vector) ElementMultiple(o Vector) (Vector, error) {
	count := func(x Vector) map[string]int {
		m := make(map[string]int)
		for _, k := range x.keys {
			m[k.name]++
		}
		return m
	}
	a, b := count(v), count(o)
	for name, n := range a {
		if b[name] != n {
			return Vector{}, fmt.Errorf("element multiple of %q: %d entries against %d: %w", name, n, b[name], ErrArithmetic)
		}
	}
	for name, n := range b {
		if _, ok := a[name]; !ok {
			return Vector{}, fmt.Errorf("element multiple of %q: 0 entries against %d: %w", name, n, ErrArithmetic)
		}
	}
	var r Vector
	for _, k := range v.keys {
		r.set(k, valid(v.Get(k).Mul(o.Get(k))))
	}
	return r, nil
}

// ExtendedKey selects one of the extended fields of a key.
type ExtendedKey int

const (
	UnitKey ExtendedKey = iota
	TimeKey
	CategoryKey
)

func (e ExtendedKey) field() Field {
	switch e {
	case UnitKey:
		return FieldUnit
	case TimeKey:
		return FieldTime
	default:
		return FieldCategory
	}
}

// ReplaceExtendedKey replaces the selected extended field of every key with
// value. Entries whose keys collide are summed. An empty value is Omitted.
func (v Vector) ReplaceExtendedKey(which ExtendedKey, value string) (Vector, error) {
	if which < UnitKey || which > CategoryKey {
		return Vector{}, fmt.Errorf("unknown extended key %d: %w", which, ErrInvalidKey)
	}
	value = orOmitted(value)
	if err := validateField(which.field(), value, false); err != nil {
		return Vector{}, err
	}
	var r Vector
	for _, src := range v.keys {
		k := src
		switch which {
		case UnitKey:
			k.unit = value
		case TimeKey:
			k.time = value
		case CategoryKey:
			k.category = value
		}
		r.plusEntry(k, v.values[src])
	}
	return r, nil
}

// Names returns the distinct names of v in insertion order.
func (v Vector) Names() []string { return v.distinct(FieldName) }

// Units returns the distinct units of v in insertion order.
func (v Vector) Units() []string { return v.distinct(FieldUnit) }

// Times returns the distinct times of v in insertion order.
func (v Vector) Times() []string { return v.distinct(FieldTime) }

// Categories returns the distinct categories of v in insertion order.
func (v Vector) Categories() []string { return v.distinct(FieldCategory) }

func (v Vector) distinct(f Field) []string {
	s := newOrderedSet[string]()
	for _, k := range v.keys {
		s.insert(k.Field(f))
	}
	return s.items
}
