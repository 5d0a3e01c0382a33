package exalgebra

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jentry is the JSON form of a single vector entry.
//
// Omitted extended fields are left out, a null entry has "value":null.
type jentry struct {
	Value    json.RawMessage `json:"value"`
	Hat      bool            `json:"hat,omitempty"`
	Name     string          `json:"name"`
	Unit     string          `json:"unit,omitempty"`
	Time     string          `json:"time,omitempty"`
	Category string          `json:"category,omitempty"`
}

func newJEntry(k Key, nd decimal.NullDecimal) (jentry, error) {
	raw, err := nd.MarshalJSON()
	if err != nil {
		return jentry{}, err
	}
	return jentry{
		Value:    raw,
		Hat:      k.IsHat(),
		Name:     k.Name(),
		Unit:     omittedAsEmpty(k.Unit()),
		Time:     omittedAsEmpty(k.Time()),
		Category: omittedAsEmpty(k.Category()),
	}, nil
}

// entry converts back a decoded JSON entry. Failures are located in line,
// the JSON text the entry was decoded from; the caller sets the line number.
func (j jentry) entry(line []byte) (Key, decimal.NullDecimal, *DecodeError) {
	if len(j.Value) == 0 {
		return Key{}, decimal.NullDecimal{}, &DecodeError{Field: "value", Err: errors.New("missing value")}
	}
	var nd decimal.NullDecimal
	if err := nd.UnmarshalJSON(j.Value); err != nil {
		return Key{}, nd, &DecodeError{Column: column(line, j.Value), Field: "value", Raw: string(j.Value), Err: err}
	}
	dir := NoHat
	if j.Hat {
		dir = Hat
	}
	k, err := NewKey(j.Name, dir, j.Unit, j.Time, j.Category)
	if err != nil {
		derr := &DecodeError{Field: FieldName.String(), Raw: j.Name, Err: err}
		var kerr *KeyError
		if errors.As(err, &kerr) {
			derr.Field, derr.Raw = kerr.Field.String(), kerr.Raw
		}
		if derr.Raw != "" {
			derr.Column = column(line, []byte(`"`+derr.Raw+`"`))
		}
		return Key{}, nd, derr
	}
	return k, nd, nil
}

// column returns the 1-based position of value in line, or 0 if it is not
// found.
func column(line, value []byte) int {
	return bytes.Index(line, value) + 1
}

func omittedAsEmpty(s string) string {
	if s == Omitted {
		return ""
	}
	return s
}

// maxLineSize is the longest JSONL line DecodeVector accepts.
const maxLineSize = 1 << 20

// DecodeVector decodes a vector from a stream of JSONL data, one entry per
// line. Empty lines are skipped, entries with the same key are summed.
func DecodeVector(r io.Reader) (Vector, error) {
	var v Vector
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var j jentry
		if err := json.Unmarshal(lineBytes, &j); err != nil {
			derr := &DecodeError{Line: line, Raw: string(lineBytes), Err: err}
			var serr *json.SyntaxError
			if errors.As(err, &serr) {
				derr.Column = int(serr.Offset)
			}
			return Vector{}, derr
		}
		k, nd, derr := j.entry(lineBytes)
		if derr != nil {
			derr.Line = line
			return Vector{}, derr
		}
		v.plusEntry(k, nd)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return Vector{}, &DecodeError{Line: line + 1, Err: err}
		}
		return Vector{}, fmt.Errorf("error reading from input: %w", err)
	}
	return v, nil
}

// EncodeVector writes v to w in JSONL format, one entry per line in
// insertion order.
func EncodeVector(w io.Writer, v Vector) error {
	for k, nd := range v.Entries() {
		j, err := newJEntry(k, nd)
		if err != nil {
			return fmt.Errorf("failed to marshal %v: %w", k, err)
		}
		data, err := json.Marshal(j)
		if err != nil {
			return fmt.Errorf("failed to marshal %v: %w", k, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write entry: %w", err)
		}
	}
	return nil
}

// MarshalJSON encodes v as an array of entries.
func (v Vector) MarshalJSON() ([]byte, error) {
	entries := make([]jentry, 0, v.Len())
	for k, nd := range v.Entries() {
		j, err := newJEntry(k, nd)
		if err != nil {
			return nil, err
		}
		entries = append(entries, j)
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes an array of entries into v, replacing its content.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var entries []jentry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	var r Vector
	for i, j := range entries {
		k, nd, derr := j.entry(data)
		if derr != nil {
			return fmt.Errorf("entry %d: %w", i, derr)
		}
		r.plusEntry(k, nd)
	}
	*v = r
	return nil
}
