package renderer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/statement"
)

// ReportOptions holds configuration for rendering a statement report.
type ReportOptions struct {
	SkipRecords     bool               // Only render the account, the summary and the diagnostics.
	MinimumSeverity statement.Severity // Diagnostics below this severity are not rendered.
}

// ReportMarkdown renders a parsed statement as a markdown report.
func ReportMarkdown(res *statement.Result, opts ReportOptions) string {
	r := &reportRenderer{Builder: &strings.Builder{}}

	r.renderAccount(res.Account())
	if !opts.SkipRecords {
		for _, name := range res.Sections() {
			r.renderSection(name, res.Records(name))
		}
	}
	r.renderSummary(res)
	r.renderDiagnostics(res.Diagnostics.AtLeast(opts.MinimumSeverity))
	return r.String()
}

// DiagnosticsMarkdown renders diagnostics as a markdown list grouped by severity,
// most severe first.
func DiagnosticsMarkdown(diags statement.Diagnostics) string {
	r := &reportRenderer{Builder: &strings.Builder{}}
	for _, sev := range []statement.Severity{statement.Error, statement.Warning, statement.Info} {
		ConditionalBlock(r, func(w io.Writer) bool {
			list := diags.Filter(sev)
			fmt.Fprintf(w, "## %s (%d)\n\n", sev, len(list))
			for _, d := range list {
				fmt.Fprintf(w, "* %s\n", describe(d))
			}
			fmt.Fprintf(w, "\n")
			return len(list) > 0
		})
	}
	if len(diags) == 0 {
		r.Printf("No diagnostics.\n")
	}
	return r.String()
}

// reportRenderer writes the report into a markdown string.
type reportRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *reportRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// table writes a markdown table. Numeric columns are those whose header starts with '>'.
func (r *reportRenderer) table(headers []string, rows [][]string) {
	var align []string
	for i, h := range headers {
		if right, ok := strings.CutPrefix(h, ">"); ok {
			headers[i] = right
			align = append(align, "---:")
		} else {
			align = append(align, "---")
		}
	}
	r.Printf("| %s |\n", strings.Join(headers, " | "))
	r.Printf("|%s|\n", strings.Join(align, "|"))
	for _, row := range rows {
		for i, c := range row {
			row[i] = cell(c)
		}
		r.Printf("| %s |\n", strings.Join(row, " | "))
	}
	r.Printf("\n")
}

func (r *reportRenderer) renderAccount(a statement.Account) {
	title := a.Title
	if title == "" {
		title = "Activity Statement"
	}
	if a.ID != "" {
		title += " " + a.ID
	}
	r.Printf("# %s\n\n", title)

	var rows [][]string
	add := func(name, value string) {
		if value != "" {
			rows = append(rows, []string{name, value})
		}
	}
	add("Holder", a.Holder)
	add("Account Type", a.Type)
	add("Broker", a.Broker)
	add("Base Currency", a.BaseCurrency)
	if !a.Period.IsZero() {
		add("Period", fmt.Sprintf("%s to %s", a.Period.From, a.Period.To))
	}
	add("Period", a.PeriodText)
	add("Generated", a.Generated)
	if len(rows) > 0 {
		r.table([]string{"Field", "Value"}, rows)
	}
}

func (r *reportRenderer) renderSection(name statement.SectionName, recs []statement.Record) {
	if len(recs) == 0 {
		return
	}
	var headers []string
	var rows [][]string
	for _, rec := range recs {
		var row []string
		switch v := rec.(type) {
		case statement.InfoField:
			headers = []string{"Field", "Value"}
			row = []string{v.Name, v.Value}
		case statement.NAVLine:
			headers = []string{"Asset Class", ">Prior Total", ">Change", ">Current Total"}
			row = []string{v.AssetClass, v.PriorTotal.String(), v.Change.SignedString(), v.CurrentTotal.String()}
		case statement.Trade:
			headers = []string{"Date", "Symbol", ">Quantity", ">Price", ">Proceeds", ">Commission", ">Realized P/L", "Code"}
			row = []string{v.Date.String(), v.Symbol, v.Quantity.String(), v.Price.String(), v.Proceeds.String(), v.Commission.String(), v.RealizedPL.SignedString(), v.Code}
		case statement.Dividend:
			headers = []string{"Date", "Symbol", "Description", ">Amount"}
			row = []string{v.Date.String(), v.Symbol, v.Description, v.Amount.String()}
		case statement.WithholdingTax:
			headers = []string{"Date", "Symbol", "Country", "Description", ">Amount"}
			row = []string{v.Date.String(), v.Symbol, v.Country, v.Description, v.Amount.String()}
		case statement.Interest:
			headers = []string{"Date", "Description", ">Amount"}
			row = []string{v.Date.String(), v.Description, v.Amount.String()}
		case statement.Fee:
			headers = []string{"Date", "Subtitle", "Description", ">Amount"}
			row = []string{v.Date.String(), v.Subtitle, v.Description, v.Amount.String()}
		case statement.OpenPosition:
			headers = []string{"Symbol", ">Quantity", ">Cost Basis", ">Value", ">Unrealized P/L"}
			row = []string{v.Symbol, v.Quantity.String(), v.CostBasis.String(), v.Value.String(), v.UnrealizedPL.SignedString()}
		case statement.ForexBalance:
			headers = []string{"Currency", ">Quantity", ">Value", ">Unrealized P/L"}
			row = []string{v.Currency, v.Quantity.String(), v.Value.String(), v.UnrealizedPL.SignedString()}
		case statement.CashReportLine:
			headers = []string{"Line", "Currency", ">Total", ">Securities", ">Futures"}
			row = []string{v.Summary, v.Currency, v.Total.String(), v.Securities.String(), v.Futures.String()}
		case statement.SecurityLoan:
			headers = []string{"Date", "Symbol", ">Quantity", ">Amount"}
			row = []string{v.Date.String(), v.Symbol, v.Quantity.String(), v.Amount.String()}
		default:
			continue
		}
		rows = append(rows, row)
	}
	r.Printf("## %s\n\n", name)
	r.table(headers, rows)
}

func (r *reportRenderer) renderSummary(res *statement.Result) {
	var rows [][]string
	for _, name := range statement.Catalog {
		sum, ok := res.Summary[name]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			string(name),
			strconv.Itoa(sum.DataRows),
			strconv.Itoa(sum.Records),
			strconv.Itoa(sum.Skipped),
			joinMoney(sum.Checksum),
			joinMoney(sum.Printed),
		})
	}
	if len(rows) == 0 {
		return
	}
	r.Printf("## Summary\n\n")
	r.table([]string{"Section", ">Data Rows", ">Records", ">Skipped", ">Checksum", ">Printed"}, rows)
}

func (r *reportRenderer) renderDiagnostics(diags statement.Diagnostics) {
	r.Printf("## Diagnostics\n\n")
	if len(diags) == 0 {
		r.Printf("No diagnostics.\n")
		return
	}
	var rows [][]string
	for _, d := range diags {
		line := ""
		if d.Line > 0 {
			line = strconv.Itoa(d.Line)
		}
		rows = append(rows, []string{d.Severity.String(), string(d.Section), line, d.Message})
	}
	r.table([]string{"Severity", "Section", ">Line", "Message"}, rows)
}

// describe formats a diagnostic for a list item.
func describe(d statement.Diagnostic) string {
	var b strings.Builder
	if d.Section != "" {
		fmt.Fprintf(&b, "**%s** ", d.Section)
	}
	if d.Line > 0 {
		fmt.Fprintf(&b, "(line %d) ", d.Line)
	}
	b.WriteString(d.Message)
	return b.String()
}

func joinMoney(list []statement.Money) string {
	parts := make([]string, len(list))
	for i, m := range list {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}

// cell escapes text for a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
