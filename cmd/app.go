// Package cmd implements the CLI application to inspect activity statements.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/statement"
	"github.com/etnz/statement/config"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// settings are the environment settings, flags override them.
var settings = config.Config{LogFormat: "text", NAVTolerance: statement.DefaultNAVTolerance}

// stdout receives command output.
var stdout io.Writer = os.Stdout

// Register the subcommands with the environment settings.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander, cfg config.Config) {
	settings = cfg
	slog.SetDefault(cfg.Logger(os.Stderr))

	c.Register(&parseCmd{}, "statements")
	c.Register(&checkCmd{}, "statements")
	c.Register(&reportCmd{}, "statements")

	c.Register(&topicCmd{}, "documentation")
}

// loadStatement parses the statement file at path, "-" being the standard input.
// A non-empty tolerance overrides the configured one.
func loadStatement(path, tolerance string) (*statement.Result, error) {
	tol := settings.NAVTolerance
	if tolerance != "" {
		var err error
		if tol, err = decimal.NewFromString(tolerance); err != nil {
			return nil, fmt.Errorf("invalid tolerance %q: %w", tolerance, err)
		}
		if tol.IsNegative() {
			return nil, fmt.Errorf("invalid tolerance %q: must not be negative", tolerance)
		}
	}
	opts := []statement.Option{
		statement.WithLogger(slog.Default()),
		statement.WithNAVTolerance(tol),
	}

	if path == "-" {
		return statement.ParseReader(os.Stdin, opts...)
	}
	return statement.ParseFile(path, opts...)
}

// statementPath returns the single file argument of a command.
func statementPath(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("missing statement file")
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("too many arguments: %q", args)
	}
}

// printMarkdown renders markdown for the terminal, or prints it as is if it cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
