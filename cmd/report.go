package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/statement"
	"github.com/etnz/statement/renderer"
	"github.com/google/subcommands"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type reportCmd struct {
	html    string
	raw     bool
	summary bool
	level   string
}

func (*reportCmd) Name() string { return "report" }
func (*reportCmd) Synopsis() string {
	return "render a statement as a markdown report"
}
func (*reportCmd) Usage() string {
	return `ibkr report [-raw] [-summary] [-level info|warning|error] [-html <file>] <file>

  Renders the account, the records of every section, the section summary
  and the diagnostics of a statement as a markdown report.

  The report is formatted for the terminal unless -raw is set. With -html
  it is converted to an HTML page written to the given file instead.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.html, "html", "", "Write the report as HTML to this file.")
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source.")
	f.BoolVar(&c.summary, "summary", false, "Skip the record tables.")
	f.StringVar(&c.level, "level", "info", "Minimum severity of the reported diagnostics.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	res, err := loadStatement(path, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	md := renderer.ReportMarkdown(res, renderer.ReportOptions{SkipRecords: c.summary, MinimumSeverity: level})

	switch {
	case c.html != "":
		page, err := markdownToHTML(md)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting report: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.html, page, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.html, err)
			return subcommands.ExitFailure
		}
	case c.raw:
		fmt.Fprint(stdout, md)
	default:
		printMarkdown(md)
	}
	return subcommands.ExitSuccess
}

// markdownToHTML converts a report to a standalone HTML page.
func markdownToHTML(md string) ([]byte, error) {
	var body bytes.Buffer
	conv := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := conv.Convert([]byte(md), &body); err != nil {
		return nil, err
	}
	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Activity Statement</title></head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
