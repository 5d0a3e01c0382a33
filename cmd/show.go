package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/exalgebra/renderer"
	"github.com/google/subcommands"
)

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct {
	title string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the entries of a vector" }
func (*showCmd) Usage() string {
	return `exal show [-t <title>] [<file>...]

  Displays every entry of the vectors as a markdown table.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "t", "", "Title of the report. Defaults to the file name.")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var b strings.Builder
	for _, path := range vectorArgs(f.Args()) {
		v, err := DecodeVectorFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		b.WriteString(renderer.RenderVector(titleOr(c.title, path), v))
		b.WriteString("\n")
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// titleOr returns title, or path if title is empty.
func titleOr(title, path string) string {
	if title != "" {
		return title
	}
	return path
}
