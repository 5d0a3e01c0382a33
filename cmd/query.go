package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression over a vector" }
func (*queryCmd) Usage() string {
	return `exal query <jsonpath> [<file>]

  Evaluates a JSONPath expression over the JSON form of the vector: an
  array of entries with the fields value, hat, name, unit, time and
  category. The result is printed as indented JSON.

Usage Examples:
# Lists the values of the apple entries.
$ exal query '$[?(@.name == "apple")].value' vector.jsonl

`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing JSONPath expression")
		return subcommands.ExitUsageError
	}
	path := vectorArgs(f.Args()[1:])[0]
	v, err := DecodeVectorFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	out, err := query(f.Arg(0), v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, string(out))
	return subcommands.ExitSuccess
}

// query evaluates expr over the JSON form of v, and returns the result as
// indented JSON.
func query(expr string, v json.Marshaler) ([]byte, error) {
	data, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, err
	}
	jval, err := jsonpath.Get(expr, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", expr, err)
	}
	return json.MarshalIndent(jval, "", "  ")
}
