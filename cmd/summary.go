package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/exalgebra/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	title string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a vector netted per family" }
func (*summaryCmd) Usage() string {
	return `exal summary [-t <title>] [<file>]

  Displays the nohat and hat sides of every family of the vector side by
  side, with their net value.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "t", "", "Title of the report. Defaults to the file name.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path := vectorArgs(f.Args())[0]
	v, err := DecodeVectorFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderSummary(titleOr(c.title, path), v))
	return subcommands.ExitSuccess
}
