package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/davecgh/go-spew/spew"
	"github.com/etnz/statement"
	"github.com/google/subcommands"
	"gopkg.in/yaml.v3"
)

type parseCmd struct {
	format string
	query  string
}

func (*parseCmd) Name() string { return "parse" }
func (*parseCmd) Synopsis() string {
	return "parse a statement and print its records and diagnostics"
}
func (*parseCmd) Usage() string {
	return `ibkr parse [-f json|yaml|dump] [-q <jsonpath>] <file>

  Parses an activity statement export and prints the result: the account,
  the records of every section, the per section summary and the diagnostics.
  Use "-" to read the statement from the standard input.

  -q selects part of the JSON export with a JSONPath expression, for instance
  '$.sections.Trades[*].symbol'.
`
}

func (c *parseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "f", "json", "Output format: json, yaml or dump.")
	f.StringVar(&c.query, "q", "", "JSONPath expression selecting part of the JSON export.")
}

func (c *parseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, err := statementPath(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	res, err := loadStatement(path, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.query != "" {
		err = writeQuery(stdout, res, c.query)
	} else {
		err = writeResult(stdout, res, c.format)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// writeResult writes res in the given format.
func writeResult(w io.Writer, res *statement.Result, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case "dump":
		dump := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true, DisableCapacities: true}
		dump.Fdump(w, res)
		return nil
	default:
		return fmt.Errorf("unknown format %q, want json, yaml or dump", format)
	}
}

// writeQuery evaluates a JSONPath expression over the JSON export of res.
func writeQuery(w io.Writer, res *statement.Result, query string) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return err
	}
	jval, err := jsonpath.Get(query, jobj)
	if err != nil {
		return fmt.Errorf("error evaluating %q: %w", query, err)
	}
	out, err := json.MarshalIndent(jval, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}
