package exalgebra

import (
	"strings"

	"github.com/etnz/exalgebra/wildcard"
)

// KeyPattern is a Key shaped matcher. Any field may contain wildcard tokens
// and the direction may be AnyHat.
//
// Patterns are validated at construction and stored with their wildcards
// collapsed, so Match never fails and equal patterns compare equal.
type KeyPattern struct {
	name     string
	dir      Direction
	unit     string
	time     string
	category string
}

// NewKeyPattern creates a KeyPattern from explicit fields. Empty extended
// fields are set to Omitted.
func NewKeyPattern(name string, dir Direction, unit, time, category string) (KeyPattern, error) {
	if dir != NoHat && dir != Hat && dir != AnyHat {
		return KeyPattern{}, &KeyError{Field: FieldDirection, Raw: dir.String(), Reason: "unknown direction"}
	}
	p := KeyPattern{
		name:     wildcard.Collapse(name),
		dir:      dir,
		unit:     wildcard.Collapse(orOmitted(unit)),
		time:     wildcard.Collapse(orOmitted(time)),
		category: wildcard.Collapse(orOmitted(category)),
	}
	for _, f := range []Field{FieldName, FieldUnit, FieldTime, FieldCategory} {
		if err := validateField(f, p.Field(f), true); err != nil {
			return KeyPattern{}, err
		}
	}
	return p, nil
}

// ParseKeyPattern parses "name[-direction[-unit[-time[-category]]]]".
// A missing direction is AnyHat, missing extended fields are Omitted.
func ParseKeyPattern(s string) (KeyPattern, error) {
	parts, err := splitFields(s)
	if err != nil {
		return KeyPattern{}, err
	}
	dir := AnyHat
	if len(parts) > 1 {
		if dir, err = ParseDirection(parts[1]); err != nil {
			return KeyPattern{}, err
		}
	}
	for len(parts) < 5 {
		parts = append(parts, Omitted)
	}
	return NewKeyPattern(parts[0], dir, parts[2], parts[3], parts[4])
}

// MustParseKeyPattern is like ParseKeyPattern but panics on error.
func MustParseKeyPattern(s string) KeyPattern {
	p, err := ParseKeyPattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PatternOf returns the literal pattern that matches only k.
func PatternOf(k Key) KeyPattern {
	return KeyPattern{name: k.name, dir: k.dir, unit: k.unit, time: k.time, category: k.category}
}

func (p KeyPattern) Name() string         { return p.name }
func (p KeyPattern) Direction() Direction { return p.dir }
func (p KeyPattern) Unit() string         { return p.unit }
func (p KeyPattern) Time() string         { return p.time }
func (p KeyPattern) Category() string     { return p.category }

// Field returns the string value of field f.
func (p KeyPattern) Field(f Field) string {
	switch f {
	case FieldName:
		return p.name
	case FieldDirection:
		return p.dir.String()
	case FieldUnit:
		return p.unit
	case FieldTime:
		return p.time
	case FieldCategory:
		return p.category
	default:
		return ""
	}
}

func (p KeyPattern) SetPositive() KeyPattern     { return p.withDirection(NoHat) }
func (p KeyPattern) SetNegative() KeyPattern     { return p.withDirection(Hat) }
func (p KeyPattern) SetAnyDirection() KeyPattern { return p.withDirection(AnyHat) }

func (p KeyPattern) withDirection(d Direction) KeyPattern {
	if p.dir == d {
		return p
	}
	p.dir = d
	return p
}

// IsLiteral reports whether the pattern has no wildcard at all.
func (p KeyPattern) IsLiteral() bool {
	if p.dir == AnyHat {
		return false
	}
	for _, f := range []Field{FieldName, FieldUnit, FieldTime, FieldCategory} {
		if wildcard.Has(p.Field(f)) {
			return false
		}
	}
	return true
}

// Key returns the key matched by a literal pattern.
func (p KeyPattern) Key() (Key, bool) {
	if !p.IsLiteral() {
		return Key{}, false
	}
	return Key{name: p.name, dir: p.dir, unit: p.unit, time: p.time, category: p.category}, true
}

// Match reports whether k matches all five fields of the pattern.
func (p KeyPattern) Match(k Key) bool {
	if p.dir != AnyHat && p.dir != k.dir {
		return false
	}
	return wildcard.Match(p.name, k.name) &&
		wildcard.Match(p.unit, k.unit) &&
		wildcard.Match(p.time, k.time) &&
		wildcard.Match(p.category, k.category)
}

// Translate builds a key from the pattern: each field holding a wildcard is
// copied from k, the others are the pattern's literal value.
func (p KeyPattern) Translate(k Key) Key {
	pick := func(pattern, value string) string {
		if wildcard.Has(pattern) {
			return value
		}
		return pattern
	}
	dir := p.dir
	if dir == AnyHat {
		dir = k.dir
	}
	return Key{
		name:     pick(p.name, k.name),
		dir:      dir,
		unit:     pick(p.unit, k.unit),
		time:     pick(p.time, k.time),
		category: pick(p.category, k.category),
	}
}

func (p KeyPattern) String() string {
	return strings.Join([]string{p.name, p.dir.String(), p.unit, p.time, p.category}, separator)
}
