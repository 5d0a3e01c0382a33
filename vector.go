package exalgebra

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

// Vector is an exchange algebra vector: an insertion ordered mapping from Key
// to an exact decimal value.
//
// Vector is persistent, every operator returns a new Vector and never
// modifies its receiver. The zero value is an empty vector ready to use.
// Accumulate into a Vector with an Accumulator.
//
// An entry may be null (it exists but holds no value). Get reads null as
// zero and so do the arithmetic operators; Put, Hat, the projections and the
// strict netting operators carry nulls over unchanged.
type Vector struct {
	keys   []Key
	values map[Key]decimal.NullDecimal
}

// NewVector creates a vector from a list of entries. Entries with the same
// key are summed.
func NewVector(entries ...Entry) Vector {
	var v Vector
	for _, e := range entries {
		v.plusEntry(e.Key, valid(e.Value))
	}
	return v
}

// Single creates a vector with a single entry.
func Single(k Key, value decimal.Decimal) Vector { return NewVector(Entry{k, value}) }

// FromMap creates a vector from a map. Keys are inserted in Key.Compare order.
func FromMap(m map[Key]decimal.Decimal) Vector {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, Key.Compare)
	var v Vector
	for _, k := range keys {
		v.set(k, valid(m[k]))
	}
	return v
}

// Sorted returns a copy of v with its entries in Key.Compare order.
func (v Vector) Sorted() Vector {
	r := v.clone()
	slices.SortFunc(r.keys, Key.Compare)
	return r
}

func (v Vector) Len() int      { return len(v.keys) }
func (v Vector) IsEmpty() bool { return len(v.keys) == 0 }

// Get returns the value at k, zero if k is absent or null.
func (v Vector) Get(k Key) decimal.Decimal { return v.values[k].Decimal }

// Lookup returns the raw entry at k and whether it exists.
func (v Vector) Lookup(k Key) (decimal.NullDecimal, bool) {
	nd, ok := v.values[k]
	return nd, ok
}

// Value returns the value at k. It fails with ErrNullValue if the entry is
// null. An absent key is zero.
func (v Vector) Value(k Key) (decimal.Decimal, error) {
	nd, ok := v.values[k]
	if ok && !nd.Valid {
		return decimal.Zero, fmt.Errorf("value of %v: %w", k, ErrNullValue)
	}
	return nd.Decimal, nil
}

func (v Vector) ContainsKey(k Key) bool {
	_, ok := v.values[k]
	return ok
}

// ContainsNull reports whether at least one entry is null.
func (v Vector) ContainsNull() bool {
	for _, nd := range v.values {
		if !nd.Valid {
			return true
		}
	}
	return false
}

// All returns an iterator over the entries in insertion order. Null entries
// are yielded as zero.
func (v Vector) All() iter.Seq2[Key, decimal.Decimal] {
	return func(yield func(Key, decimal.Decimal) bool) {
		for _, k := range v.keys {
			if !yield(k, v.values[k].Decimal) {
				return
			}
		}
	}
}

// Entries returns an iterator over the raw entries in insertion order.
func (v Vector) Entries() iter.Seq2[Key, decimal.NullDecimal] {
	return func(yield func(Key, decimal.NullDecimal) bool) {
		for _, k := range v.keys {
			if !yield(k, v.values[k]) {
				return
			}
		}
	}
}

// Keys returns the set of keys in insertion order.
func (v Vector) Keys() KeySet { return NewKeySet(v.keys...) }

// Put returns a copy of v with k set to value.
func (v Vector) Put(k Key, value decimal.Decimal) Vector {
	r := v.clone()
	r.set(k, valid(value))
	return r
}

// PutNull returns a copy of v with a null entry at k.
func (v Vector) PutNull(k Key) Vector {
	r := v.clone()
	r.set(k, decimal.NullDecimal{})
	return r
}

// Equal reports whether both vectors hold exactly the same keys with the same
// values. Explicit zeros and nulls are significant, insertion order is not.
func (v Vector) Equal(o Vector) bool {
	if len(v.keys) != len(o.keys) {
		return false
	}
	for k, a := range v.values {
		b, ok := o.values[k]
		if !ok || a.Valid != b.Valid || !a.Decimal.Equal(b.Decimal) {
			return false
		}
	}
	return true
}

// SameValues is the same as Equal.
func (v Vector) SameValues(o Vector) bool { return v.Equal(o) }

// EqualValues reports whether both vectors have the same value for every
// key, an absent or null entry counting as zero.
func (v Vector) EqualValues(o Vector) bool {
	for k := range v.values {
		if !v.Get(k).Equal(o.Get(k)) {
			return false
		}
	}
	for k := range o.values {
		if _, ok := v.values[k]; !ok && !o.Get(k).IsZero() {
			return false
		}
	}
	return true
}

// Hash returns a hash consistent with EqualValues: vectors with equal values
// have the same hash, whatever the scale of their decimals, their zero
// entries or their insertion order.
func (v Vector) Hash() uint64 {
	var h uint64
	for k, nd := range v.values {
		if nd.Decimal.IsZero() {
			continue
		}
		h += xxhash.Sum64String(k.String() + "=" + canonical(nd.Decimal))
	}
	return h
}

func (v Vector) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range v.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		nd := v.values[k]
		if nd.Valid {
			fmt.Fprintf(&b, "%v:%v", k, nd.Decimal)
		} else {
			fmt.Fprintf(&b, "%v:null", k)
		}
	}
	b.WriteString("}")
	return b.String()
}

// clone returns a deep copy of v that can be safely modified.
func (v Vector) clone() Vector {
	r := Vector{
		keys:   slices.Clone(v.keys),
		values: make(map[Key]decimal.NullDecimal, len(v.keys)),
	}
	for k, nd := range v.values {
		r.values[k] = nd
	}
	return r
}

// set overwrites the entry at k, appending k if it is new.
func (v *Vector) set(k Key, nd decimal.NullDecimal) {
	if v.values == nil {
		v.values = make(map[Key]decimal.NullDecimal)
	}
	if _, exists := v.values[k]; !exists {
		v.keys = append(v.keys, k)
	}
	v.values[k] = nd
}

// plusEntry adds nd into the entry at k. A null nd only ensures that k
// exists, a null entry receiving a value becomes that value.
func (v *Vector) plusEntry(k Key, nd decimal.NullDecimal) {
	old, exists := v.values[k]
	switch {
	case !exists:
		v.set(k, nd)
	case nd.Valid:
		v.set(k, valid(old.Decimal.Add(nd.Decimal)))
	}
}

// filter returns the entries of v accepted by keep, in order.
func (v Vector) filter(keep func(Key, decimal.NullDecimal) bool) Vector {
	var r Vector
	for _, k := range v.keys {
		if nd := v.values[k]; keep(k, nd) {
			r.set(k, nd)
		}
	}
	return r
}

// Accumulator is the mutable companion of Vector. Its Add methods modify the
// accumulator in place and return it, so that sums over many vectors do not
// reallocate.
//
// An Accumulator must not be shared between goroutines without
// synchronization.
type Accumulator struct {
	v Vector
}

// NewAccumulator returns an accumulator initialized with a copy of the
// entries of from.
func NewAccumulator(from Vector) *Accumulator {
	return &Accumulator{v: from.clone()}
}

// Add adds value to the entry at k.
func (a *Accumulator) Add(k Key, value decimal.Decimal) *Accumulator {
	a.v.plusEntry(k, valid(value))
	return a
}

// AddVector adds every entry of o.
func (a *Accumulator) AddVector(o Vector) *Accumulator {
	for _, k := range o.keys {
		a.v.plusEntry(k, o.values[k])
	}
	return a
}

func (a *Accumulator) Len() int { return a.v.Len() }

// Vector returns a snapshot of the accumulated entries. Later additions do
// not affect the snapshot.
func (a *Accumulator) Vector() Vector { return a.v.clone() }
