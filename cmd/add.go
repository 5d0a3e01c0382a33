package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/exalgebra"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	scale string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "sum vectors" }
func (*addCmd) Usage() string {
	return `exal add [-x <factor>] <file>...

  Sums the vectors key by key and writes the result. Entries keep the order
  in which their key first appears. With -x, the sum is multiplied by a
  nonnegative factor.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scale, "x", "1", "Nonnegative factor applied to the sum.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	factor, err := decimal.NewFromString(c.scale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing factor: %v\n", err)
		return subcommands.ExitUsageError
	}
	paths := vectorArgs(f.Args())
	acc := exalgebra.NewAccumulator(exalgebra.Vector{})
	for _, path := range paths {
		v, err := DecodeVectorFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		acc.AddVector(v)
	}
	sum, err := acc.Vector().Multiple(factor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := writeVector(sum, paths[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
