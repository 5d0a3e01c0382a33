package exalgebra

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// This file contains the CSV forms of vectors and transfer rules.
//
// A vector record is value,direction,name[,unit[,time[,category]]]. An empty
// value cell is a null entry and an empty direction is nohat.
// A transfer table record is from,to.
// A transfer matrix record is from,to,ratio, all records sharing the
// same from pattern build a single rule.
//
// Every reader accepts an optional header row, recognized by its first cell.

var (
	vectorHeader = []string{"value", "direction", "name", "unit", "time", "category"}
	tableHeader  = []string{"from", "to"}
	matrixHeader = []string{"from", "to", "ratio"}
)

// csvReader wraps csv.Reader to produce located DecodeErrors.
type csvReader struct {
	r      *csv.Reader
	input  bytes.Buffer // text read so far, to locate syntax errors
	header []string
	line   int
}

func newCSVReader(r io.Reader, header []string) *csvReader {
	c := &csvReader{header: header}
	c.r = csv.NewReader(io.TeeReader(r, &c.input))
	c.r.FieldsPerRecord = -1
	c.r.TrimLeadingSpace = true
	return c
}

// next returns the next data record, skipping a leading header row. It
// returns io.EOF at the end of the input.
func (c *csvReader) next(minFields int) ([]string, error) {
	for {
		record, err := c.r.Read()
		if err == io.EOF {
			return nil, err
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, c.syntaxError(perr)
			}
			return nil, fmt.Errorf("error reading from input: %w", err)
		}
		c.line++
		if c.line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), c.header[0]) {
			continue
		}
		if len(record) < minFields || len(record) > len(c.header) {
			line, _ := c.r.FieldPos(0)
			return nil, &DecodeError{
				Line: line,
				Raw:  strings.Join(record, ","),
				Err:  fmt.Errorf("got %d fields, want %d to %d", len(record), minFields, len(c.header)),
			}
		}
		return record, nil
	}
}

// syntaxError locates perr in the field of the input line it occurred in.
func (c *csvReader) syntaxError(perr *csv.ParseError) *DecodeError {
	derr := &DecodeError{Line: perr.Line, Column: perr.Column, Err: perr.Err}
	lines := strings.Split(c.input.String(), "\n")
	if perr.Line < 1 || perr.Line > len(lines) {
		return derr
	}
	line := strings.TrimSuffix(lines[perr.Line-1], "\r")
	i, start, end := fieldAt(line, perr.Column)
	if i < len(c.header) {
		derr.Field = c.header[i]
	}
	derr.Raw = line[start:end]
	return derr
}

// fieldAt returns the index, start and end of the field of line containing
// the 1-based byte column col. Commas inside a quoted field do not separate
// fields.
func fieldAt(line string, col int) (i, start, end int) {
	col = min(max(col-1, 0), len(line))
	quoted := false
	for j := 0; j < len(line); j++ {
		switch {
		case line[j] == '"' && quoted:
			if j+1 < len(line) && line[j+1] == '"' {
				j++ // escaped quote
			} else {
				quoted = false
			}
		case line[j] == '"' && strings.TrimLeft(line[start:j], " ") == "":
			quoted = true
		case line[j] == ',' && !quoted:
			if j >= col {
				return i, start, j
			}
			i++
			start = j + 1
		}
	}
	return i, start, len(line)
}

// fieldError locates err at field i of the current record.
func (c *csvReader) fieldError(record []string, i int, err error) *DecodeError {
	line, column := c.r.FieldPos(i)
	return &DecodeError{Line: line, Column: column, Field: c.header[i], Raw: record[i], Err: err}
}

// DecodeVectorCSV decodes a vector from CSV records. Entries with the same
// key are summed.
func DecodeVectorCSV(r io.Reader) (Vector, error) {
	var v Vector
	c := newCSVReader(r, vectorHeader)
	for {
		record, err := c.next(3)
		if err == io.EOF {
			return v, nil
		}
		if err != nil {
			return Vector{}, err
		}

		var nd decimal.NullDecimal
		if raw := strings.TrimSpace(record[0]); raw != "" {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return Vector{}, c.fieldError(record, 0, err)
			}
			nd = valid(d)
		}
		dir := NoHat
		if raw := strings.TrimSpace(record[1]); raw != "" {
			dir, err = ParseDirection(raw)
			if err == nil && dir == AnyHat {
				err = &KeyError{Field: FieldDirection, Raw: raw, Reason: "wildcard not allowed in a key"}
			}
			if err != nil {
				return Vector{}, c.fieldError(record, 1, err)
			}
		}
		fields := make([]string, 3)
		copy(fields, record[3:])
		k, err := NewKey(record[2], dir, fields[0], fields[1], fields[2])
		if err != nil {
			var kerr *KeyError
			if errors.As(err, &kerr) {
				return Vector{}, c.fieldError(record, csvColumn(kerr.Field), err)
			}
			return Vector{}, c.fieldError(record, 2, err)
		}
		v.plusEntry(k, nd)
	}
}

// csvColumn returns the index of a key field in a vector record.
func csvColumn(f Field) int {
	switch f {
	case FieldDirection:
		return 1
	case FieldUnit:
		return 3
	case FieldTime:
		return 4
	case FieldCategory:
		return 5
	default:
		return 2
	}
}

// EncodeVectorCSV writes v as CSV records, with a header row if header is
// set. Every record has all six fields, a null entry has an empty value.
func EncodeVectorCSV(w io.Writer, v Vector, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(vectorHeader); err != nil {
			return err
		}
	}
	for k, nd := range v.Entries() {
		value := ""
		if nd.Valid {
			value = nd.Decimal.String()
		}
		record := []string{value, k.Direction().String(), k.Name(), k.Unit(), k.Time(), k.Category()}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write %v: %w", k, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeTransferTableCSV decodes a transfer table from from,to records.
func DecodeTransferTableCSV(r io.Reader) (*TransferTable, error) {
	t := NewTransferTable()
	c := newCSVReader(r, tableHeader)
	for {
		record, err := c.next(2)
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, err
		}
		from, to, err := c.patterns(record)
		if err != nil {
			return nil, err
		}
		t.Put(from, to)
	}
}

// EncodeTransferTableCSV writes the rules of t as from,to records.
func EncodeTransferTableCSV(w io.Writer, t *TransferTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tableHeader); err != nil {
		return err
	}
	for from, to := range t.All() {
		if err := cw.Write([]string{from.String(), to.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeTransferMatrixCSV decodes a transfer matrix from from,to,ratio
// records. Each rule has its total ratio updated.
func DecodeTransferMatrixCSV(r io.Reader, useTotalRatio bool) (*TransferMatrix, error) {
	m := NewTransferMatrix(useTotalRatio)
	c := newCSVReader(r, matrixHeader)
	for {
		record, err := c.next(3)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		from, to, err := c.patterns(record)
		if err != nil {
			return nil, err
		}
		ratio, err := decimal.NewFromString(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, c.fieldError(record, 2, err)
		}
		ratios, ok := m.Get(from)
		if !ok {
			ratios = NewDivideRatios()
			m.Put(from, ratios)
		}
		if err := ratios.Put(to, ratio); err != nil {
			return nil, c.fieldError(record, 2, err)
		}
	}
	for _, ratios := range m.All() {
		ratios.UpdateTotalRatio()
	}
	return m, nil
}

// EncodeTransferMatrixCSV writes the rules of m as from,to,ratio records.
func EncodeTransferMatrixCSV(w io.Writer, m *TransferMatrix) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(matrixHeader); err != nil {
		return err
	}
	for from, ratios := range m.All() {
		for to, ratio := range ratios.All() {
			if err := cw.Write([]string{from.String(), to.String(), ratio.String()}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// patterns parses the from and to cells of a transfer record.
func (c *csvReader) patterns(record []string) (from, to KeyPattern, err error) {
	if from, err = ParseKeyPattern(strings.TrimSpace(record[0])); err != nil {
		return from, to, c.fieldError(record, 0, err)
	}
	if to, err = ParseKeyPattern(strings.TrimSpace(record[1])); err != nil {
		return from, to, c.fieldError(record, 1, err)
	}
	return from, to, nil
}
