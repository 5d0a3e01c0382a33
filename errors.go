package exalgebra

import (
	"errors"
	"fmt"
)

// Errors returned by the algebra. Callers match them with errors.Is, the
// returned errors usually wrap them with more context.
var (
	// ErrInvalidKey is returned when a key or key pattern field is malformed.
	ErrInvalidKey = errors.New("invalid key")

	// ErrArithmetic is returned for a negative multiplier, a non positive
	// divisor, a zero total ratio, or mismatched operands.
	ErrArithmetic = errors.New("arithmetic error")

	// ErrFatalTransferState is returned when a transfer rule matched but
	// defines no destination.
	ErrFatalTransferState = errors.New("transfer rule has no destination")

	// ErrNullValue is returned when an entry holds no numeric value.
	ErrNullValue = errors.New("null value")
)

// Field identifies one of the five fields of a key.
type Field int

const (
	FieldName Field = iota
	FieldDirection
	FieldUnit
	FieldTime
	FieldCategory
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldDirection:
		return "direction"
	case FieldUnit:
		return "unit"
	case FieldTime:
		return "time"
	case FieldCategory:
		return "category"
	default:
		return "unknown"
	}
}

// KeyError describes a malformed key field. It matches ErrInvalidKey.
type KeyError struct {
	Field  Field
	Raw    string // offending field value
	Reason string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("invalid key %s %q: %s", e.Field, e.Raw, e.Reason)
}

func (e *KeyError) Is(target error) bool { return target == ErrInvalidKey }

// DecodeError locates a failure in an encoded vector or transfer rule set.
// It unwraps to the underlying error, usually one of the sentinels above.
type DecodeError struct {
	Line   int    // 1-based line of the record
	Column int    // 1-based column of the field, 0 if unknown
	Field  string // name of the offending field, empty if unknown
	Raw    string // offending text
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		if e.Column > 0 {
			return fmt.Sprintf("line %d, column %d: %q: %v", e.Line, e.Column, e.Raw, e.Err)
		}
		return fmt.Sprintf("line %d: %q: %v", e.Line, e.Raw, e.Err)
	}
	return fmt.Sprintf("line %d, column %d (%s): %q: %v", e.Line, e.Column, e.Field, e.Raw, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
