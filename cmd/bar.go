package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type barCmd struct {
	strict    bool
	leaveZero string
}

func (*barCmd) Name() string     { return "bar" }
func (*barCmd) Synopsis() string { return "net the nohat and hat sides of a vector" }
func (*barCmd) Usage() string {
	return `exal bar [-strict] [-leave-zero pos|neg] [<file>]

  Nets every family of the vector and writes the result.

  By default the smallest side is subtracted from both sides and zeros are
  dropped. With -strict, only families whose sides are exactly equal are
  removed. With -leave-zero, a removed family keeps an explicit zero on the
  given side.
`
}

func (c *barCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Only remove families whose sides are exactly equal.")
	f.StringVar(&c.leaveZero, "leave-zero", "", "Keep a zero on the 'pos' or 'neg' side of removed families. Implies -strict.")
}

func (c *barCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path := vectorArgs(f.Args())[0]
	v, err := DecodeVectorFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	switch c.leaveZero {
	case "pos":
		v = v.StrictBarLeaveZero(true)
	case "neg":
		v = v.StrictBarLeaveZero(false)
	case "":
		if c.strict {
			v = v.StrictBar()
		} else {
			v = v.Bar()
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: -leave-zero must be 'pos' or 'neg', got %q\n", c.leaveZero)
		return subcommands.ExitUsageError
	}

	if err := writeVector(v, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
