package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/statement"
	"github.com/google/subcommands"
)

type checkCmd struct {
	strict    bool
	tolerance string
	level     string
}

func (*checkCmd) Name() string { return "check" }
func (*checkCmd) Synopsis() string {
	return "validate a statement and list its diagnostics"
}
func (*checkCmd) Usage() string {
	return `ibkr check [-strict] [-tolerance <amount>] [-level info|warning|error] <file>

  Parses and validates an activity statement, prints one line per diagnostic
  and a final count per severity.

  The command fails when the statement has errors, like a net asset value that
  does not reconcile. With -strict, warnings fail the check too.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", settings.Strict, "Fail on warnings too.")
	f.StringVar(&c.tolerance, "tolerance", "", "Absolute tolerance of the NAV reconciliation (default from IBKR_NAV_TOLERANCE).")
	f.StringVar(&c.level, "level", "warning", "Minimum severity of the printed diagnostics.")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, err := statementPath(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	level, err := statement.ParseSeverity(c.level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	res, err := loadStatement(path, c.tolerance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	writeDiagnostics(stdout, res.Diagnostics, level)

	failed := res.Diagnostics.HasErrors() || (c.strict && res.Diagnostics.Count(statement.Warning) > 0)
	if failed {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// writeDiagnostics prints the diagnostics at or above level, then a count per severity.
func writeDiagnostics(w io.Writer, diags statement.Diagnostics, level statement.Severity) {
	for _, d := range diags.AtLeast(level) {
		fmt.Fprintln(w, d)
	}
	fmt.Fprintf(w, "%d errors, %d warnings, %d infos\n",
		diags.Count(statement.Error), diags.Count(statement.Warning), diags.Count(statement.Info))
}
