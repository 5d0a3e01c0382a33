package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct {
	sort bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats vector files into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `exal fmt [-sort] [<file>...]

  Validates and formats vector files in-place. Entries with the same key are
  summed, and each file is written back in the canonical form of its format
  (JSONL or CSV with a header row). By default, it formats the vector file.

Usage Examples:
# Formats and sorts the default vector file.
$ exal fmt -sort

`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.sort, "sort", false, "Sort entries by key instead of keeping their order.")
}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var errs []error
	for _, path := range vectorArgs(f.Args()) {
		v, err := DecodeVectorFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if p.sort {
			v = v.Sorted()
		}
		if err := EncodeVectorFile(path, v); err != nil {
			errs = append(errs, err)
			continue
		}
		log.Printf("formatted %q (%d entries)", path, v.Len())
	}
	if err := errors.Join(errs...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
