package exalgebra

import (
	"cmp"
	"fmt"
	"strings"
	"unicode"

	"github.com/etnz/exalgebra/wildcard"
)

// Omitted is the value of an extended field (unit, time, category) that was
// not set.
const Omitted = "#"

// separator between the fields of the string form of a key.
const separator = "-"

// illegalChars cannot appear in any field, they are structural in one of the
// text encodings.
const illegalChars = " <>-,^%&?|@'\""

// Direction is the sign tag of a key. A key is either NoHat (positive side)
// or Hat (negative side). AnyHat is only valid in a KeyPattern.
type Direction int

const (
	NoHat Direction = iota
	Hat
	AnyHat
)

func (d Direction) String() string {
	switch d {
	case NoHat:
		return "nohat"
	case Hat:
		return "hat"
	case AnyHat:
		return wildcard.Token
	default:
		return "unknown"
	}
}

// Flip returns the opposite direction. AnyHat is its own opposite.
func (d Direction) Flip() Direction {
	switch d {
	case NoHat:
		return Hat
	case Hat:
		return NoHat
	default:
		return d
	}
}

// ParseDirection parses "nohat", "hat" or the wildcard token.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "nohat":
		return NoHat, nil
	case "hat":
		return Hat, nil
	}
	if wildcard.IsBare(s) {
		return AnyHat, nil
	}
	return 0, &KeyError{Field: FieldDirection, Raw: s, Reason: `must be "nohat" or "hat"`}
}

// Key is the immutable 5 part tag of an exchange algebra entry.
//
// Keys are comparable and can be used as map keys: two keys are equal iff
// all five fields are equal.
type Key struct {
	name     string
	dir      Direction
	unit     string
	time     string
	category string
}

// NewKey creates a Key from explicit fields. Empty extended fields are set
// to Omitted.
func NewKey(name string, dir Direction, unit, time, category string) (Key, error) {
	if dir != NoHat && dir != Hat {
		return Key{}, &KeyError{Field: FieldDirection, Raw: dir.String(), Reason: "a key must be either nohat or hat"}
	}
	k := Key{
		name:     name,
		dir:      dir,
		unit:     orOmitted(unit),
		time:     orOmitted(time),
		category: orOmitted(category),
	}
	for _, f := range []Field{FieldName, FieldUnit, FieldTime, FieldCategory} {
		if err := validateField(f, k.Field(f), false); err != nil {
			return Key{}, err
		}
	}
	return k, nil
}

// ParseKey parses the string form "name[-direction[-unit[-time[-category]]]]".
// A missing direction is NoHat.
func ParseKey(s string) (Key, error) {
	parts, err := splitFields(s)
	if err != nil {
		return Key{}, err
	}
	dir := NoHat
	if len(parts) > 1 {
		if dir, err = ParseDirection(parts[1]); err != nil {
			return Key{}, err
		}
	}
	for len(parts) < 5 {
		parts = append(parts, Omitted)
	}
	return NewKey(parts[0], dir, parts[2], parts[3], parts[4])
}

// MustParseKey is like ParseKey but panics on error. It simplifies the
// declaration of constant keys.
func MustParseKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

func (k Key) Name() string         { return k.name }
func (k Key) Direction() Direction { return k.dir }
func (k Key) Unit() string         { return k.unit }
func (k Key) Time() string         { return k.time }
func (k Key) Category() string     { return k.category }
func (k Key) IsHat() bool          { return k.dir == Hat }

// Field returns the string value of field f.
func (k Key) Field(f Field) string {
	switch f {
	case FieldName:
		return k.name
	case FieldDirection:
		return k.dir.String()
	case FieldUnit:
		return k.unit
	case FieldTime:
		return k.time
	case FieldCategory:
		return k.category
	default:
		return ""
	}
}

// WithDirection returns a copy of k with direction d. It panics if d is not
// NoHat or Hat.
func (k Key) WithDirection(d Direction) Key {
	if d != NoHat && d != Hat {
		panic(fmt.Sprintf("invalid key direction %v: a key must be either nohat or hat", d))
	}
	k.dir = d
	return k
}

// Hat returns the key with the opposite direction.
func (k Key) Hat() Key { return k.WithDirection(k.dir.Flip()) }

// base identifies the base family of the key: the same key regardless of
// its direction.
func (k Key) base() Key { return k.WithDirection(NoHat) }

func (k Key) String() string {
	return strings.Join([]string{k.name, k.dir.String(), k.unit, k.time, k.category}, separator)
}

// Compare orders keys field by field, NoHat before Hat.
func (k Key) Compare(o Key) int {
	return cmp.Or(
		strings.Compare(k.name, o.name),
		strings.Compare(k.unit, o.unit),
		strings.Compare(k.time, o.time),
		strings.Compare(k.category, o.category),
		cmp.Compare(k.dir, o.dir),
	)
}

func orOmitted(s string) string {
	if s == "" {
		return Omitted
	}
	return s
}

// splitFields splits the string form into at most five fields.
func splitFields(s string) ([]string, error) {
	parts := strings.Split(s, separator)
	if len(parts) > 5 {
		return nil, &KeyError{Field: FieldCategory, Raw: strings.Join(parts[4:], separator), Reason: "too many fields"}
	}
	return parts, nil
}

// validateField checks a non direction field for illegal content.
func validateField(f Field, s string, allowWildcard bool) error {
	if s == "" {
		return &KeyError{Field: f, Raw: s, Reason: "must not be empty"}
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return &KeyError{Field: f, Raw: s, Reason: fmt.Sprintf("control character %U", r)}
		}
		if strings.ContainsRune(illegalChars, r) {
			return &KeyError{Field: f, Raw: s, Reason: fmt.Sprintf("illegal character %q", r)}
		}
		if !allowWildcard && string(r) == wildcard.Token {
			return &KeyError{Field: f, Raw: s, Reason: "wildcard is only allowed in patterns"}
		}
	}
	return nil
}
