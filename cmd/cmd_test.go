package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"gopkg.in/yaml.v3"
)

const minimal = `Trades,Header,Currency,Symbol,Date/Time,Quantity
Trades,Data,USD,AAPL,2025-03-14,10
Dividends,Header,Currency,Date,Amount
Dividends,Data,USD,2025-05-15,24.00
`

// Helper function to create a temporary statement file
func createTempStatement(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write statement: %v", err)
	}
	return path
}

// navStatement has a single NAV line whose current total is given.
func navStatement(t *testing.T, current string) string {
	return createTempStatement(t, "Net Asset Value,Header,Asset Class,Prior Total,Current Long,Current Short,Current Total,Change\n"+
		"Net Asset Value,Data,Stock,50000.00,"+current+",0,"+current+",2000.00\n")
}

// run executes a command with the given arguments, capturing its output.
func run(t *testing.T, c subcommands.Command, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	defer func() { stdout = old }()

	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("invalid arguments %q: %v", args, err)
	}
	status := c.Execute(context.Background(), f)
	return status, buf.String()
}

func TestParseFormats(t *testing.T) {
	path := createTempStatement(t, minimal)

	status, out := run(t, &parseCmd{}, path)
	if status != subcommands.ExitSuccess {
		t.Fatalf("parse status = %v, want success", status)
	}
	var doc struct {
		Sections map[string][]map[string]any `json:"sections"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("parse output is not JSON: %v\n%s", err, out)
	}
	if got := doc.Sections["Trades"][0]["symbol"]; got != "AAPL" {
		t.Errorf("Trades[0].symbol = %v, want AAPL", got)
	}

	status, out = run(t, &parseCmd{}, "-f", "yaml", path)
	if status != subcommands.ExitSuccess {
		t.Fatalf("parse -f yaml status = %v, want success", status)
	}
	var ydoc map[string]any
	if err := yaml.Unmarshal([]byte(out), &ydoc); err != nil {
		t.Fatalf("parse -f yaml output is not YAML: %v\n%s", err, out)
	}
	if _, ok := ydoc["sections"]; !ok {
		t.Errorf("parse -f yaml output has no sections:\n%s", out)
	}

	status, out = run(t, &parseCmd{}, "-f", "dump", path)
	if status != subcommands.ExitSuccess || !strings.Contains(out, `"AAPL"`) {
		t.Errorf("parse -f dump = %v\n%s", status, out)
	}

	if status, _ := run(t, &parseCmd{}, "-f", "xml", path); status != subcommands.ExitFailure {
		t.Errorf("parse -f xml status = %v, want failure", status)
	}
}

func TestParseQuery(t *testing.T) {
	path := createTempStatement(t, minimal)

	status, out := run(t, &parseCmd{}, "-q", "$.sections.Trades[*].symbol", path)
	if status != subcommands.ExitSuccess {
		t.Fatalf("parse -q status = %v, want success", status)
	}
	if want := "[\n  \"AAPL\"\n]\n"; out != want {
		t.Errorf("parse -q = %q, want %q", out, want)
	}

	if status, _ := run(t, &parseCmd{}, "-q", "$.[", path); status != subcommands.ExitFailure {
		t.Errorf("parse with an invalid query status = %v, want failure", status)
	}
}

func TestParseArguments(t *testing.T) {
	if status, _ := run(t, &parseCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("parse without file status = %v, want usage error", status)
	}
	missing := filepath.Join(t.TempDir(), "missing.csv")
	if status, _ := run(t, &parseCmd{}, missing); status != subcommands.ExitFailure {
		t.Errorf("parse of a missing file status = %v, want failure", status)
	}
}

func TestCheck(t *testing.T) {
	balanced := navStatement(t, "52000.00")
	mismatch := navStatement(t, "52500.00")

	tests := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{"balanced", []string{balanced}, subcommands.ExitSuccess},
		{"mismatch", []string{mismatch}, subcommands.ExitFailure},
		{"tolerant", []string{"-tolerance", "1000", mismatch}, subcommands.ExitSuccess},
		{"negative tolerance", []string{"-tolerance", "-1", balanced}, subcommands.ExitFailure},
		{"strict", []string{"-strict", balanced}, subcommands.ExitFailure}, // absent sections are warnings
		{"unknown level", []string{"-level", "loud", balanced}, subcommands.ExitUsageError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, out := run(t, &checkCmd{}, tt.args...); got != tt.want {
				t.Errorf("check %q = %v, want %v\n%s", tt.args, got, tt.want, out)
			}
		})
	}
}

func TestCheckOutput(t *testing.T) {
	_, out := run(t, &checkCmd{}, "-level", "error", navStatement(t, "52500.00"))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("check output = %q, want one error and the count", lines)
	}
	if !strings.HasPrefix(lines[0], `ERROR [Net Asset Value] line 2: "Stock" does not reconcile`) {
		t.Errorf("first line = %q", lines[0])
	}
	if want := "1 errors, 9 warnings, 1 infos"; lines[1] != want {
		t.Errorf("count = %q, want %q", lines[1], want)
	}
}

func TestReport(t *testing.T) {
	path := createTempStatement(t, minimal)

	status, out := run(t, &reportCmd{}, "-raw", path)
	if status != subcommands.ExitSuccess {
		t.Fatalf("report -raw status = %v, want success", status)
	}
	for _, want := range []string{"# Activity Statement\n", "## Trades\n", "## Dividends\n", "## Summary\n", "## Diagnostics\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("report -raw has no %q:\n%s", want, out)
		}
	}

	html := filepath.Join(t.TempDir(), "report.html")
	if status, _ := run(t, &reportCmd{}, "-html", html, path); status != subcommands.ExitSuccess {
		t.Fatalf("report -html status = %v, want success", status)
	}
	page, err := os.ReadFile(html)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<h1>Activity Statement</h1>", "<table>", "<td>AAPL</td>"} {
		if !strings.Contains(string(page), want) {
			t.Errorf("report -html has no %q:\n%s", want, page)
		}
	}
}

func TestTopic(t *testing.T) {
	status, out := run(t, &topicCmd{})
	if status != subcommands.ExitSuccess || out == "" {
		t.Errorf("topic = %v, %q", status, out)
	}
	if status, _ := run(t, &topicCmd{}, "no-such-topic"); status != subcommands.ExitUsageError {
		t.Errorf("topic no-such-topic status = %v, want usage error", status)
	}

	status, out = run(t, &topicCmd{}, "-list")
	if status != subcommands.ExitSuccess {
		t.Fatalf("topic -list status = %v", status)
	}
	names := strings.Split(strings.TrimSpace(out), "\n")
	if !slices.Contains(names, "check") || slices.Contains(names, "readme") {
		t.Errorf("topic -list = %q, want every topic but readme", names)
	}

	status, out = run(t, &topicCmd{}, "-raw", "check")
	if status != subcommands.ExitSuccess || !strings.HasPrefix(out, "# ") || !strings.Contains(out, "```bash run") {
		t.Errorf("topic -raw check = %v, want the markdown source, got:\n%s", status, out)
	}
}

func TestCompletionFlags(t *testing.T) {
	completion := Completion()
	for _, c := range []subcommands.Command{&parseCmd{}, &checkCmd{}, &reportCmd{}, &topicCmd{}} {
		sub, ok := completion.Sub[c.Name()]
		if !ok {
			t.Errorf("no completion for %q", c.Name())
			continue
		}
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		f.VisitAll(func(fl *flag.Flag) {
			if _, ok := sub.Flags[fl.Name]; !ok {
				t.Errorf("flag -%s of %q has no completion", fl.Name, c.Name())
			}
		})
		for name := range sub.Flags {
			if f.Lookup(name) == nil {
				t.Errorf("completion of %q has unknown flag -%s", c.Name(), name)
			}
		}
	}
}
