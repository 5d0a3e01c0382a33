package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/exalgebra"
	"github.com/google/subcommands"
)

type transferCmd struct {
	table  string
	matrix string
	total  bool
	from   string
	to     string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "redistribute the values of a vector" }
func (*transferCmd) Usage() string {
	return `exal transfer (-table <rules.csv> | -matrix <rules.csv> [-total] | -from <pattern> -to <pattern>) [<file>]

  Applies transfer rules to the vector and writes the result. The original
  entries are kept and the transferred values are added to their
  destinations.

  -table reads from,to records, -matrix reads from,to,ratio records. With
  -total, a matrix splits each value in proportion to the ratios, otherwise
  each destination receives value * ratio.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.table, "table", "", "CSV file of a transfer table (from,to).")
	f.StringVar(&c.matrix, "matrix", "", "CSV file of a transfer matrix (from,to,ratio).")
	f.BoolVar(&c.total, "total", false, "With -matrix, divide each ratio by the total ratio of its rule.")
	f.StringVar(&c.from, "from", "", "Source pattern of a single transfer rule.")
	f.StringVar(&c.to, "to", "", "Destination pattern of a single transfer rule.")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path := vectorArgs(f.Args())[0]
	v, err := DecodeVectorFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	v, err = c.transfer(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := writeVector(v, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *transferCmd) transfer(v exalgebra.Vector) (exalgebra.Vector, error) {
	switch {
	case c.table != "" && c.matrix == "" && c.from == "":
		f, err := os.Open(c.table)
		if err != nil {
			return v, err
		}
		defer f.Close()
		table, err := exalgebra.DecodeTransferTableCSV(f)
		if err != nil {
			return v, fmt.Errorf("decoding %q: %w", c.table, err)
		}
		return v.Transfer(table), nil

	case c.matrix != "" && c.table == "" && c.from == "":
		f, err := os.Open(c.matrix)
		if err != nil {
			return v, err
		}
		defer f.Close()
		matrix, err := exalgebra.DecodeTransferMatrixCSV(f, c.total)
		if err != nil {
			return v, fmt.Errorf("decoding %q: %w", c.matrix, err)
		}
		return v.DivideTransfer(matrix)

	case c.from != "" && c.to != "" && c.table == "" && c.matrix == "":
		from, err := exalgebra.ParseKeyPattern(c.from)
		if err != nil {
			return v, err
		}
		to, err := exalgebra.ParseKeyPattern(c.to)
		if err != nil {
			return v, err
		}
		return v.Transform(from, to), nil
	}
	return v, fmt.Errorf("exactly one of -table, -matrix or -from/-to is required")
}
