package exalgebra

import "github.com/shopspring/decimal"

// Projection keeps the entries whose key is one of keys.
func (v Vector) Projection(keys ...Key) Vector { return v.ProjectionSet(NewKeySet(keys...)) }

// ProjectionSet keeps the entries whose key belongs to s.
func (v Vector) ProjectionSet(s KeySet) Vector {
	return v.filter(func(k Key, _ decimal.NullDecimal) bool { return s.Contains(k) })
}

// PatternProjection keeps the entries matched by at least one pattern.
func (v Vector) PatternProjection(patterns ...KeyPattern) Vector {
	return v.PatternProjectionSet(NewKeyPatternSet(patterns...))
}

// PatternProjectionSet keeps the entries matched by at least one pattern of s.
func (v Vector) PatternProjectionSet(s KeyPatternSet) Vector {
	return v.filter(func(k Key, _ decimal.NullDecimal) bool { return s.Matches(k) })
}

// GeneralProjection is like Projection but ignores directions: both sides of
// the family of each key are kept.
func (v Vector) GeneralProjection(keys ...Key) Vector {
	return v.GeneralProjectionSet(NewKeySet(keys...))
}

// GeneralProjectionSet is like ProjectionSet but ignores directions.
func (v Vector) GeneralProjectionSet(s KeySet) Vector {
	bases := newOrderedSet[Key]()
	for k := range s.All() {
		bases.insert(k.base())
	}
	return v.filter(func(k Key, _ decimal.NullDecimal) bool { return bases.contains(k.base()) })
}

// NullProjection keeps the null entries only.
func (v Vector) NullProjection() Vector {
	return v.filter(func(_ Key, nd decimal.NullDecimal) bool { return !nd.Valid })
}

// NonullProjection keeps the entries holding a value.
func (v Vector) NonullProjection() Vector {
	return v.filter(func(_ Key, nd decimal.NullDecimal) bool { return nd.Valid })
}

// Remove returns v without the given keys.
func (v Vector) Remove(keys ...Key) Vector {
	s := NewKeySet(keys...)
	return v.filter(func(k Key, _ decimal.NullDecimal) bool { return !s.Contains(k) })
}
