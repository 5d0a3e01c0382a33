package exalgebra

import (
	"iter"
	"slices"
	"strings"
)

// orderedSet is a unique collection that remembers insertion order.
type orderedSet[T comparable] struct {
	items []T
	index map[T]struct{}
}

func newOrderedSet[T comparable](items ...T) orderedSet[T] {
	s := orderedSet[T]{index: make(map[T]struct{}, len(items))}
	for _, it := range items {
		s.insert(it)
	}
	return s
}

func (s *orderedSet[T]) insert(it T) {
	if _, exists := s.index[it]; exists {
		return
	}
	if s.index == nil {
		s.index = make(map[T]struct{})
	}
	s.index[it] = struct{}{}
	s.items = append(s.items, it)
}

func (s orderedSet[T]) contains(it T) bool {
	_, ok := s.index[it]
	return ok
}

func (s orderedSet[T]) union(o orderedSet[T]) orderedSet[T] {
	r := newOrderedSet(s.items...)
	for _, it := range o.items {
		r.insert(it)
	}
	return r
}

func (s orderedSet[T]) filter(keep func(T) bool) orderedSet[T] {
	r := newOrderedSet[T]()
	for _, it := range s.items {
		if keep(it) {
			r.insert(it)
		}
	}
	return r
}

func (s orderedSet[T]) intersection(o orderedSet[T]) orderedSet[T] { return s.filter(o.contains) }

func (s orderedSet[T]) difference(o orderedSet[T]) orderedSet[T] {
	return s.filter(func(it T) bool { return !o.contains(it) })
}

func (s orderedSet[T]) all() iter.Seq[T] { return slices.Values(s.items) }

func (s orderedSet[T]) equal(o orderedSet[T]) bool {
	if len(s.items) != len(o.items) {
		return false
	}
	for _, it := range s.items {
		if !o.contains(it) {
			return false
		}
	}
	return true
}

func joinStrings[T interface{ String() string }](items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// KeySet is an insertion ordered set of keys. Set operations return new sets.
type KeySet struct{ set orderedSet[Key] }

// NewKeySet returns the set of keys, duplicates are ignored.
func NewKeySet(keys ...Key) KeySet { return KeySet{newOrderedSet(keys...)} }

func (s KeySet) Len() int                     { return len(s.set.items) }
func (s KeySet) IsEmpty() bool                { return s.Len() == 0 }
func (s KeySet) Contains(k Key) bool          { return s.set.contains(k) }
func (s KeySet) All() iter.Seq[Key]           { return s.set.all() }
func (s KeySet) Keys() []Key                  { return slices.Clone(s.set.items) }
func (s KeySet) Union(o KeySet) KeySet        { return KeySet{s.set.union(o.set)} }
func (s KeySet) Intersection(o KeySet) KeySet { return KeySet{s.set.intersection(o.set)} }
func (s KeySet) Difference(o KeySet) KeySet   { return KeySet{s.set.difference(o.set)} }

// Equal reports whether both sets hold the same keys, regardless of order.
func (s KeySet) Equal(o KeySet) bool { return s.set.equal(o.set) }

// Addition is the same as Union.
func (s KeySet) Addition(o KeySet) KeySet { return s.Union(o) }

// Subtraction is the same as Difference.
func (s KeySet) Subtraction(o KeySet) KeySet { return s.Difference(o) }

func (s KeySet) String() string { return joinStrings(s.set.items) }

// KeyPatternSet is an insertion ordered set of key patterns.
type KeyPatternSet struct{ set orderedSet[KeyPattern] }

// NewKeyPatternSet returns the set of patterns, duplicates are ignored.
func NewKeyPatternSet(patterns ...KeyPattern) KeyPatternSet {
	return KeyPatternSet{newOrderedSet(patterns...)}
}

func (s KeyPatternSet) Len() int                   { return len(s.set.items) }
func (s KeyPatternSet) IsEmpty() bool              { return s.Len() == 0 }
func (s KeyPatternSet) Contains(p KeyPattern) bool { return s.set.contains(p) }
func (s KeyPatternSet) All() iter.Seq[KeyPattern]  { return s.set.all() }
func (s KeyPatternSet) Patterns() []KeyPattern     { return slices.Clone(s.set.items) }
func (s KeyPatternSet) Equal(o KeyPatternSet) bool { return s.set.equal(o.set) }

// Addition is the same as Union.
func (s KeyPatternSet) Addition(o KeyPatternSet) KeyPatternSet { return s.Union(o) }

// Subtraction is the same as Difference.
func (s KeyPatternSet) Subtraction(o KeyPatternSet) KeyPatternSet { return s.Difference(o) }

func (s KeyPatternSet) Union(o KeyPatternSet) KeyPatternSet {
	return KeyPatternSet{s.set.union(o.set)}
}

func (s KeyPatternSet) Intersection(o KeyPatternSet) KeyPatternSet {
	return KeyPatternSet{s.set.intersection(o.set)}
}

func (s KeyPatternSet) Difference(o KeyPatternSet) KeyPatternSet {
	return KeyPatternSet{s.set.difference(o.set)}
}

// Matches reports whether any pattern of the set matches k.
func (s KeyPatternSet) Matches(k Key) bool {
	return slices.ContainsFunc(s.set.items, func(p KeyPattern) bool { return p.Match(k) })
}

func (s KeyPatternSet) String() string { return joinStrings(s.set.items) }
