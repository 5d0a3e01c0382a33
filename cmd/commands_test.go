package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

// createTempFile is a helper function to create a file in a temporary folder.
func createTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

// run executes c with args and returns its status and what it wrote to
// stdout.
func run(t *testing.T, c subcommands.Command, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("invalid arguments %q: %v", args, err)
	}

	var out bytes.Buffer
	old := stdout
	stdout = &out
	defer func() { stdout = old }()

	return c.Execute(context.Background(), f), out.String()
}

const fruits = `{"value":10,"name":"apple","unit":"yen"}
{"value":4,"hat":true,"name":"apple","unit":"yen"}
{"value":300,"name":"fruit"}
{"value":null,"name":"pear"}
`

func TestFormatOf(t *testing.T) {
	testCases := map[string]string{
		"a.csv":        formatCSV,
		"dir/B.CSV":    formatCSV,
		"a.jsonl":      formatJSONL,
		"no_extension": formatJSONL,
	}
	for path, want := range testCases {
		if got := formatOf(path); got != want {
			t.Errorf("formatOf(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestFmtCmd(t *testing.T) {
	path := createTempFile(t, "vector.jsonl", `{"name":"pear","value":2}

{"value":1,"name":"apple","unit":"yen"}
{"value":3,"name":"pear"}
`)
	status, _ := run(t, &fmtCmd{}, "-sort", path)
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read formatted file: %v", err)
	}
	want := `{"value":1,"name":"apple","unit":"yen"}
{"value":5,"name":"pear"}
`
	if string(got) != want {
		t.Errorf("formatted file =\n%s\nwant:\n%s", got, want)
	}
}

func TestFmtCmd_CSV(t *testing.T) {
	path := createTempFile(t, "vector.csv", "2,,pear\n1,hat,apple,yen\n")
	if status, _ := run(t, &fmtCmd{}, path); status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read formatted file: %v", err)
	}
	want := "value,direction,name,unit,time,category\n2,nohat,pear,#,#,#\n1,hat,apple,yen,#,#\n"
	if string(got) != want {
		t.Errorf("formatted file =\n%s\nwant:\n%s", got, want)
	}
}

func TestFmtCmd_InvalidFile(t *testing.T) {
	path := createTempFile(t, "vector.jsonl", `{"value":1,"name":"ap ple"}`+"\n")
	if status, _ := run(t, &fmtCmd{}, path); status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure, got %v", status)
	}
	got, _ := os.ReadFile(path)
	if !strings.Contains(string(got), "ap ple") {
		t.Errorf("an invalid file must be left untouched, got %q", got)
	}
}

func TestBarCmd(t *testing.T) {
	path := createTempFile(t, "vector.jsonl", fruits)
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "bar",
			args: []string{path},
			// the null pear nets as zero and is dropped.
			want: `{"value":6,"name":"apple","unit":"yen"}
{"value":300,"name":"fruit"}
`,
		},
		{
			name: "strict",
			args: []string{"-strict", path},
			want: fruits,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, out := run(t, &barCmd{}, tc.args...)
			if status != subcommands.ExitSuccess {
				t.Fatalf("Expected ExitSuccess, got %v", status)
			}
			if out != tc.want {
				t.Errorf("output =\n%s\nwant:\n%s", out, tc.want)
			}
		})
	}

	if status, _ := run(t, &barCmd{}, "-leave-zero", "both", path); status != subcommands.ExitUsageError {
		t.Errorf("Expected ExitUsageError, got %v", status)
	}
}

func TestProjectCmd(t *testing.T) {
	path := createTempFile(t, "vector.jsonl", fruits)
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "patterns",
			args: []string{"-p", "app*-hat-*,fruit", path},
			want: `{"value":4,"hat":true,"name":"apple","unit":"yen"}
{"value":300,"name":"fruit"}
`,
		},
		{
			name: "general",
			args: []string{"-k", "apple-nohat-yen", "-general", path},
			want: `{"value":10,"name":"apple","unit":"yen"}
{"value":4,"hat":true,"name":"apple","unit":"yen"}
`,
		},
		{
			name: "remove and nonulls",
			args: []string{"-remove", "fruit", "-nonulls", path},
			want: `{"value":10,"name":"apple","unit":"yen"}
{"value":4,"hat":true,"name":"apple","unit":"yen"}
`,
		},
		{
			name: "nulls",
			args: []string{"-nulls", path},
			want: `{"value":null,"name":"pear"}
`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, out := run(t, &projectCmd{}, tc.args...)
			if status != subcommands.ExitSuccess {
				t.Fatalf("Expected ExitSuccess, got %v", status)
			}
			if out != tc.want {
				t.Errorf("output =\n%s\nwant:\n%s", out, tc.want)
			}
		})
	}

	if status, _ := run(t, &projectCmd{}, "-k", "app*", path); status != subcommands.ExitUsageError {
		t.Errorf("Expected ExitUsageError for a wildcard key, got %v", status)
	}
}

func TestTransferCmd(t *testing.T) {
	path := createTempFile(t, "vector.jsonl", `{"value":300,"name":"fruit"}`+"\n")
	matrix := createTempFile(t, "matrix.csv", "from,to,ratio\nfruit-*,apple,1\nfruit-*,orange,2\n")
	table := createTempFile(t, "table.csv", "fruit,food\n")

	testCases := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "matrix total",
			args: []string{"-matrix", matrix, "-total", path},
			want: `{"value":300,"name":"fruit"}
{"value":100,"name":"apple"}
{"value":200,"name":"orange"}
`,
		},
		{
			name: "matrix raw",
			args: []string{"-matrix", matrix, path},
			want: `{"value":300,"name":"fruit"}
{"value":300,"name":"apple"}
{"value":600,"name":"orange"}
`,
		},
		{
			name: "table",
			args: []string{"-table", table, path},
			want: `{"value":300,"name":"fruit"}
{"value":300,"name":"food"}
`,
		},
		{
			name: "single rule",
			args: []string{"-from", "fr*", "-to", "all", path},
			want: `{"value":300,"name":"fruit"}
{"value":300,"name":"all"}
`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, out := run(t, &transferCmd{}, tc.args...)
			if status != subcommands.ExitSuccess {
				t.Fatalf("Expected ExitSuccess, got %v", status)
			}
			if out != tc.want {
				t.Errorf("output =\n%s\nwant:\n%s", out, tc.want)
			}
		})
	}

	if status, _ := run(t, &transferCmd{}, "-table", table, "-matrix", matrix, path); status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure with both -table and -matrix, got %v", status)
	}
}

func TestAddCmd(t *testing.T) {
	a := createTempFile(t, "a.jsonl", `{"value":1,"name":"apple"}`+"\n")
	b := createTempFile(t, "b.csv", "2,nohat,apple\n3,hat,cash\n")

	status, out := run(t, &addCmd{}, "-x", "2", a, b)
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	want := `{"value":6,"name":"apple"}
{"value":6,"hat":true,"name":"cash"}
`
	if out != want {
		t.Errorf("output =\n%s\nwant:\n%s", out, want)
	}

	if status, _ := run(t, &addCmd{}, "-x", "-1", a); status != subcommands.ExitFailure {
		t.Errorf("Expected ExitFailure for a negative factor, got %v", status)
	}
}

func TestQueryCmd(t *testing.T) {
	path := createTempFile(t, "vector.jsonl", fruits)
	testCases := []struct {
		expr string
		want string
	}{
		{"$[0].value", "10\n"},
		{"$[*].name", "[\n  \"apple\",\n  \"apple\",\n  \"fruit\",\n  \"pear\"\n]\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.expr, func(t *testing.T) {
			status, out := run(t, &queryCmd{}, tc.expr, path)
			if status != subcommands.ExitSuccess {
				t.Fatalf("Expected ExitSuccess, got %v", status)
			}
			if out != tc.want {
				t.Errorf("output = %q, want %q", out, tc.want)
			}
		})
	}

	if status, _ := run(t, &queryCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("Expected ExitUsageError without expression, got %v", status)
	}
}

func TestOutputFormat(t *testing.T) {
	path := createTempFile(t, "vector.jsonl", `{"value":1,"hat":true,"name":"apple"}`+"\n")
	old := *outputFormat
	*outputFormat = formatCSV
	defer func() { *outputFormat = old }()

	status, out := run(t, &barCmd{}, path)
	if status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	want := "value,direction,name,unit,time,category\n1,hat,apple,#,#,#\n"
	if out != want {
		t.Errorf("output =\n%s\nwant:\n%s", out, want)
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, e := range Commands {
		if _, ok := c.Sub[e.Cmd.Name()]; !ok {
			t.Errorf("command %q has no completion", e.Cmd.Name())
		}
	}
	bar := c.Sub["bar"]
	if p, ok := bar.Flags["strict"]; !ok || p != nil {
		t.Errorf("bar -strict must be a flag without value")
	}
	if got := bar.Flags["leave-zero"].Predict(""); strings.Join(got, ",") != "pos,neg" {
		t.Errorf("bar -leave-zero predicts %v", got)
	}
	if got := c.Sub["topic"].Args.Predict(""); len(got) == 0 {
		t.Errorf("topic predicts no topic")
	}
}
