// Package cmd implements the CLI application to work with exchange algebra
// vectors.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/exalgebra"
	"github.com/google/subcommands"
)

// Commands lists every subcommand of the application with its group.
var Commands = []struct {
	Cmd   subcommands.Command
	Group string
}{
	{&fmtCmd{}, "vectors"},
	{&showCmd{}, "vectors"},
	{&summaryCmd{}, "vectors"},
	{&addCmd{}, "vectors"},
	{&barCmd{}, "vectors"},
	{&projectCmd{}, "vectors"},
	{&queryCmd{}, "vectors"},
	{&transferCmd{}, "transfers"},
	{&topicCmd{}, "help"},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range Commands {
		c.Register(e.Cmd, e.Group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var vectorFile = flag.String("vector-file", "vector.jsonl", "Path to the vector file used when a command is given no file (JSONL or CSV)")
var outputFormat = flag.String("format", "", "Output format of vectors (jsonl or csv). Defaults to the format of the input file.")

// stdout is where commands write their result.
var stdout io.Writer = os.Stdout

const (
	formatJSONL = "jsonl"
	formatCSV   = "csv"
)

// formatOf returns the format of a vector file from its extension.
func formatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return formatCSV
	}
	return formatJSONL
}

// vectorArgs returns the vector files named on the command line, or the
// default vector file.
func vectorArgs(args []string) []string {
	if len(args) == 0 {
		return []string{*vectorFile}
	}
	return args
}

// DecodeVectorFile decodes the vector stored in path.
func DecodeVectorFile(path string) (exalgebra.Vector, error) {
	f, err := os.Open(path)
	if err != nil {
		return exalgebra.Vector{}, err
	}
	defer f.Close()

	var v exalgebra.Vector
	switch formatOf(path) {
	case formatCSV:
		v, err = exalgebra.DecodeVectorCSV(f)
	default:
		v, err = exalgebra.DecodeVector(f)
	}
	if err != nil {
		return exalgebra.Vector{}, fmt.Errorf("decoding %q: %w", path, err)
	}
	return v, nil
}

// EncodeVectorFile overwrites path with v, in the format of its extension.
func EncodeVectorFile(path string, v exalgebra.Vector) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeVector(f, v, formatOf(path)); err != nil {
		f.Close()
		return fmt.Errorf("encoding %q: %w", path, err)
	}
	return f.Close()
}

// writeVector writes v to stdout in the output format, or the format of the
// input file if none was set.
func writeVector(v exalgebra.Vector, input string) error {
	format := *outputFormat
	if format == "" {
		format = formatOf(input)
	}
	return encodeVector(stdout, v, format)
}

func encodeVector(w io.Writer, v exalgebra.Vector, format string) error {
	switch format {
	case formatCSV:
		return exalgebra.EncodeVectorCSV(w, v, true)
	case formatJSONL:
		return exalgebra.EncodeVector(w, v)
	default:
		return fmt.Errorf("unknown format %q, want %q or %q", format, formatJSONL, formatCSV)
	}
}

// printMarkdown renders md for the terminal. The raw markdown is printed if
// it cannot be rendered.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
