package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/exalgebra"
	"github.com/google/subcommands"
)

type projectCmd struct {
	patterns string
	keys     string
	general  bool
	remove   string
	nulls    bool
	nonulls  bool
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "keep a subset of the entries of a vector" }
func (*projectCmd) Usage() string {
	return `exal project [-p <patterns>] [-k <keys> [-general]] [-remove <keys>] [-nulls|-nonulls] [<file>]

  Keeps the entries of the vector selected by every given filter and writes
  the result. Patterns and keys are comma separated lists.

Usage Examples:
# Keeps every apple entry, in any unit.
$ exal project -p 'apple-*-*' vector.jsonl

# Keeps both sides of the cash family.
$ exal project -k cash-nohat-jpy -general vector.jsonl

`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.patterns, "p", "", "Keep the entries matched by any of these key patterns.")
	f.StringVar(&c.keys, "k", "", "Keep the entries with these exact keys.")
	f.BoolVar(&c.general, "general", false, "With -k, also keep the opposite side of each key.")
	f.StringVar(&c.remove, "remove", "", "Drop the entries with these exact keys.")
	f.BoolVar(&c.nulls, "nulls", false, "Keep only null entries.")
	f.BoolVar(&c.nonulls, "nonulls", false, "Drop null entries.")
}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path := vectorArgs(f.Args())[0]
	v, err := DecodeVectorFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	v, err = c.project(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := writeVector(v, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// project applies the filters of the flags to v.
func (c *projectCmd) project(v exalgebra.Vector) (exalgebra.Vector, error) {
	if c.patterns != "" {
		patterns, err := parseList(c.patterns, exalgebra.ParseKeyPattern)
		if err != nil {
			return v, err
		}
		v = v.PatternProjectionSet(exalgebra.NewKeyPatternSet(patterns...))
	}
	if c.keys != "" {
		keys, err := parseList(c.keys, exalgebra.ParseKey)
		if err != nil {
			return v, err
		}
		if c.general {
			v = v.GeneralProjection(keys...)
		} else {
			v = v.Projection(keys...)
		}
	}
	if c.remove != "" {
		keys, err := parseList(c.remove, exalgebra.ParseKey)
		if err != nil {
			return v, err
		}
		v = v.Remove(keys...)
	}
	switch {
	case c.nulls && c.nonulls:
		return v, fmt.Errorf("-nulls and -nonulls are exclusive")
	case c.nulls:
		v = v.NullProjection()
	case c.nonulls:
		v = v.NonullProjection()
	}
	return v, nil
}

// parseList parses a comma separated list. Commas are illegal in keys and
// patterns.
func parseList[T any](s string, parse func(string) (T, error)) ([]T, error) {
	var items []T
	for _, field := range strings.Split(s, ",") {
		item, err := parse(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
