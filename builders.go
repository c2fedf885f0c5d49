package statement

// this file contains the Record Builders: one per section, each turning the data
// rows of a routed section into typed records.

import (
	"regexp"
	"slices"
	"strings"

	"github.com/etnz/statement/date"
	"github.com/shopspring/decimal"
)

// layout describes how to build the records of one section.
type layout struct {
	section SectionName
	fields  []Field
	// total is the field whose "Total..." text marks a summary row, "" if none.
	total string
	// detail is the field whose text marks lot detail rows, "" if none.
	detail string
	build  func(r *rowReader) Record
}

// baseCurrencies lists the currencies used in "... in XXX" header variants.
var baseCurrencies = []string{"USD", "EUR", "CHF", "GBP", "CAD", "AUD", "JPY", "HKD", "SGD", "SEK", "NOK", "DKK"}

// inBase returns the header variants of a field expressed in the base currency.
func inBase(name string) []string {
	out := make([]string, len(baseCurrencies))
	for i, c := range baseCurrencies {
		out[i] = name + " in " + c
	}
	return out
}

var infoFields = []Field{
	{Name: "Field Name", Fallback: 2, Required: true},
	{Name: "Field Value", Fallback: 3},
}

var layouts = []layout{
	{
		section: SectionStatement,
		fields:  infoFields,
		build:   buildInfo,
	},
	{
		section: SectionAccountInformation,
		fields:  infoFields,
		build:   buildInfo,
	},
	{
		section: SectionNetAssetValue,
		fields: []Field{
			{Name: "Asset Class", Fallback: 2, Required: true},
			{Name: "Prior Total", Fallback: 3},
			{Name: "Current Long", Fallback: 4},
			{Name: "Current Short", Fallback: 5},
			{Name: "Current Total", Fallback: 6},
			{Name: "Change", Fallback: 7},
		},
		build: buildNAV,
	},
	{
		section: SectionTrades,
		fields: []Field{
			{Name: "DataDiscriminator", Fallback: -1},
			{Name: "Asset Category", Fallback: 2},
			{Name: "Currency", Fallback: 3},
			{Name: "Symbol", Fallback: 4, Required: true},
			{Name: "Date/Time", Headers: []string{"Date", "Trade Date"}, Fallback: 5},
			{Name: "Quantity", Fallback: 6},
			{Name: "T. Price", Headers: []string{"Price"}, Fallback: 7},
			{Name: "Proceeds", Fallback: 8},
			{Name: "Comm/Fee", Headers: []string{"Commission", "Comm in USD", "Comm in EUR", "Comm in CHF"}, Fallback: 9},
			{Name: "Basis", Fallback: 10},
			{Name: "Realized P/L", Fallback: 11},
			{Name: "Code", Fallback: 12},
		},
		total:  "Currency",
		detail: "DataDiscriminator",
		build:  buildTrade,
	},
	{
		section: SectionDividends,
		fields: []Field{
			{Name: "Currency", Fallback: 2},
			{Name: "Date", Headers: []string{"Pay Date"}, Fallback: 3},
			{Name: "Description", Fallback: 4},
			{Name: "Amount", Fallback: 5, Required: true},
			{Name: "Symbol", Fallback: -1},
		},
		total: "Currency",
		build: buildDividend,
	},
	{
		section: SectionWithholdingTax,
		fields: []Field{
			{Name: "Currency", Fallback: 2},
			{Name: "Date", Fallback: 3},
			{Name: "Description", Fallback: 4},
			{Name: "Amount", Fallback: 5, Required: true},
			{Name: "Code", Fallback: 6},
			{Name: "Country", Fallback: -1},
			{Name: "Symbol", Fallback: -1},
		},
		total: "Currency",
		build: buildWithholdingTax,
	},
	{
		section: SectionInterest,
		fields: []Field{
			{Name: "Currency", Fallback: 2},
			{Name: "Date", Fallback: 3},
			{Name: "Description", Fallback: 4},
			{Name: "Amount", Fallback: 5, Required: true},
		},
		total: "Currency",
		build: buildInterest,
	},
	{
		section: SectionFees,
		fields: []Field{
			{Name: "Subtitle", Fallback: 2},
			{Name: "Currency", Fallback: 3},
			{Name: "Date", Fallback: 4},
			{Name: "Description", Fallback: 5},
			{Name: "Amount", Fallback: 6, Required: true},
		},
		total: "Subtitle",
		build: buildFee,
	},
	{
		section: SectionOpenPositions,
		fields: []Field{
			{Name: "DataDiscriminator", Fallback: 2},
			{Name: "Asset Category", Fallback: 3},
			{Name: "Currency", Fallback: 4},
			{Name: "Symbol", Fallback: 5, Required: true},
			{Name: "Quantity", Fallback: 6},
			{Name: "Mult", Headers: []string{"Multiplier"}, Fallback: 7},
			{Name: "Cost Price", Fallback: 8},
			{Name: "Cost Basis", Fallback: 9},
			{Name: "Close Price", Fallback: 10},
			{Name: "Value", Headers: []string{"Mkt Value", "Market Value"}, Fallback: 11},
			{Name: "Unrealized P/L", Fallback: 12},
		},
		total:  "Currency",
		detail: "DataDiscriminator",
		build:  buildOpenPosition,
	},
	{
		section: SectionForexBalances,
		fields: []Field{
			{Name: "Asset Category", Fallback: 2},
			{Name: "Currency", Fallback: 3, Required: true},
			{Name: "Description", Fallback: 4},
			{Name: "Quantity", Fallback: 5},
			{Name: "Cost Price", Fallback: 6},
			{Name: "Cost Basis", Headers: inBase("Cost Basis"), Fallback: 7},
			{Name: "Close Price", Fallback: 8},
			{Name: "Value", Headers: inBase("Value"), Fallback: 9},
			{Name: "Unrealized P/L", Headers: inBase("Unrealized P/L"), Fallback: 10},
		},
		total: "Asset Category",
		build: buildForexBalance,
	},
	{
		section: SectionCashReport,
		fields: []Field{
			{Name: "Currency Summary", Fallback: 2},
			{Name: "Currency", Fallback: 3, Required: true},
			{Name: "Total", Headers: []string{"Ending Cash"}, Fallback: 4},
			{Name: "Securities", Fallback: 5},
			{Name: "Futures", Fallback: 6},
		},
		build: buildCashReport,
	},
	{
		section: SectionSecuritiesLending,
		fields: []Field{
			{Name: "Currency", Fallback: 2},
			{Name: "Symbol", Fallback: 3, Required: true},
			{Name: "Date", Headers: []string{"Start Date"}, Fallback: 4},
			{Name: "Quantity", Fallback: 5},
			{Name: "Amount", Headers: []string{"Interest Paid to Customer"}, Fallback: 6},
		},
		total: "Currency",
		build: buildSecurityLoan,
	},
}

// layoutOf returns the layout of a known section.
func layoutOf(name SectionName) (layout, bool) {
	for _, l := range layouts {
		if l.section == name {
			return l, true
		}
	}
	return layout{}, false
}

// aliasFields replaces the fields of the section layout for alias tables laid out differently.
var aliasFields = map[string][]Field{
	"Commission Details": {
		{Name: "Currency", Fallback: 2},
		{Name: "Date", Fallback: 3},
		{Name: "Description", Fallback: 4},
		{Name: "Amount", Fallback: 5, Required: true},
		{Name: "Subtitle", Fallback: -1},
	},
}

// buildRouted builds a routed section and its alias tables, appending the records
// to res in file order. The summary covers all the tables.
func buildRouted(s *Section, res *Result, diags *Diagnostics) SectionSummary {
	l, _ := layoutOf(s.Name)
	sum := buildSection(s, l, res, diags)
	for _, a := range s.Aliases {
		al := l
		if fields, ok := aliasFields[a.Label]; ok {
			al.fields = fields
		}
		part := buildSection(a, al, res, diags)
		sum.DataRows += part.DataRows
		sum.Records += part.Records
		sum.Skipped += part.Skipped
		sum.Printed = append(sum.Printed, part.Printed...)
	}
	if len(s.Aliases) > 0 {
		res.sortByLine(s.Name)
	}
	return sum
}

// detailMarkers are discriminator values of rows detailing another row.
var detailMarkers = []string{"Lot", "ClosedLot"}

// buildSection turns the data rows of s into records appended to res.
//
// Columns are resolved once. A row whose required fields are blank is skipped
// with a WARNING naming its 0-based offset. Summary rows are skipped with an INFO
// and their amount is kept as the printed total.
func buildSection(s *Section, l layout, res *Result, diags *Diagnostics) SectionSummary {
	cols := ResolveColumns(s, l.fields)
	sum := SectionSummary{DataRows: len(s.Data)}

	switch {
	case s.Header == nil && len(s.Data) > 0:
		diags.addf(Warning, s.Name, 0, "%sno header row, using default columns", s.table())
	case s.Header != nil:
		var missing []string
		for _, f := range l.fields {
			if f.Fallback >= 0 && cols[f.Name].Source == ByFallback {
				missing = append(missing, f.Name)
			}
		}
		if len(missing) > 0 {
			diags.addf(Warning, s.Name, s.Header.Line(), "%sheader lacks %s, using default columns", s.table(), strings.Join(missing, ", "))
		}
	}

	required := 0
	for _, f := range l.fields {
		if f.Required {
			required++
		}
	}

	r := &rowReader{cols: cols, section: s.Name, diags: diags, base: res.Account().BaseCurrency, summary: &sum}
	details := 0
	for i, row := range s.Data {
		r.row = row
		if l.total != "" && strings.HasPrefix(r.text(l.total), "Total") {
			r.printedTotal(l)
			sum.Skipped++
			continue
		}
		if l.detail != "" && slices.Contains(detailMarkers, r.text(l.detail)) {
			details++
			sum.Skipped++
			continue
		}
		if usable := nonBlank(row, firstDataColumn); usable < required {
			diags.addf(Warning, s.Name, row.Line(), "data row %d skipped: %d usable fields, %d required", i, usable, required)
			sum.Skipped++
			continue
		}
		if f, ok := blankRequired(r, l.fields); ok {
			diags.addf(Warning, s.Name, row.Line(), "data row %d skipped: required field %q is blank", i, f)
			sum.Skipped++
			continue
		}
		res.append(l.build(r))
		sum.Records++
	}
	if details > 0 {
		diags.addf(Info, s.Name, 0, "%s%s ignored", s.table(), plural(details, "lot detail row"))
	}
	return sum
}

// nonBlank counts the non-blank fields of row from column from.
func nonBlank(row RawRow, from int) int {
	n := 0
	for i := from; i < row.Len(); i++ {
		if strings.TrimSpace(row.Field(i)) != "" {
			n++
		}
	}
	return n
}

// blankRequired returns the first required field that reads as blank.
func blankRequired(r *rowReader, fields []Field) (string, bool) {
	for _, f := range fields {
		if f.Required && r.text(f.Name) == "" {
			return f.Name, true
		}
	}
	return "", false
}

// rowReader reads the fields of the current row, coercing and reporting as it goes.
type rowReader struct {
	cols    ColumnMap
	row     RawRow
	section SectionName
	diags   *Diagnostics
	base    string // base currency of the account, "" if unknown
	summary *SectionSummary
	last    string // currency of the last record read
	unknown []string
}

func (r *rowReader) line() int { return r.row.Line() }

func (r *rowReader) text(field string) string { return r.cols.Get(r.row, field) }

func (r *rowReader) note(d *Diagnostic) {
	if d == nil {
		return
	}
	d.Section, d.Line = r.section, r.row.Line()
	r.diags.add(d)
}

func (r *rowReader) amount(field string) decimal.Decimal {
	v, d := CoerceAmount(r.text(field))
	r.note(d)
	return v
}

func (r *rowReader) money(field, currency string) Money { return M(r.amount(field), currency) }

func (r *rowReader) quantity(field string) Quantity { return Q(r.amount(field)) }

func (r *rowReader) date(field string) date.Date {
	v, d := CoerceDate(r.text(field))
	r.note(d)
	return v
}

// currency reads a currency code. An unknown code is reported once per section.
func (r *rowReader) currency(field string) string {
	code := r.text(field)
	r.last = code
	if code == "" || isCurrencyCode(code) || slices.Contains(r.unknown, code) {
		return code
	}
	r.unknown = append(r.unknown, code)
	r.diags.addf(Info, r.section, r.row.Line(), "unknown currency code %q", code)
	return code
}

// printedTotal remembers the amount of a summary row. "Total in CHF" rows are in
// the named currency, plain "Total" rows in the currency of the rows above.
func (r *rowReader) printedTotal(l layout) {
	label := r.text(l.total)
	cur := r.last
	if l.section == SectionForexBalances {
		cur = r.base
	}
	if f := strings.Fields(label); len(f) > 1 && isCurrencyCode(f[len(f)-1]) {
		cur = f[len(f)-1]
	}
	field := checksumField(l.section)
	v, d := CoerceAmount(r.text(field))
	r.note(d)
	total := M(v, cur)
	if l.section == SectionFees || l.section == SectionWithholdingTax {
		total = total.Abs()
	}
	r.summary.Printed = append(r.summary.Printed, total)
	r.diags.addf(Info, r.section, r.row.Line(), "summary row %q skipped, printed %s %s", label, field, total)
}

// checksumField names the amount field summed by the section checksum.
func checksumField(name SectionName) string {
	switch name {
	case SectionTrades:
		return "Proceeds"
	case SectionNetAssetValue:
		return "Current Total"
	case SectionOpenPositions, SectionForexBalances:
		return "Value"
	case SectionCashReport:
		return "Total"
	default:
		return "Amount"
	}
}

func buildInfo(r *rowReader) Record {
	return InfoField{
		Line:  r.line(),
		From:  r.section,
		Name:  r.text("Field Name"),
		Value: r.text("Field Value"),
	}
}

func buildNAV(r *rowReader) Record {
	n := NAVLine{
		Line:         r.line(),
		AssetClass:   r.text("Asset Class"),
		PriorTotal:   r.money("Prior Total", r.base),
		CurrentLong:  r.money("Current Long", r.base),
		CurrentShort: r.money("Current Short", r.base),
		CurrentTotal: r.money("Current Total", r.base),
		Change:       r.money("Change", r.base),
		Reconcilable: r.text("Prior Total") != "" && r.text("Current Total") != "" && r.text("Change") != "",
	}
	if strings.HasPrefix(n.AssetClass, "Total") {
		r.summary.Printed = append(r.summary.Printed, n.CurrentTotal)
	}
	return n
}

func buildTrade(r *rowReader) Record {
	cur := r.currency("Currency")
	return Trade{
		Line:          r.line(),
		AssetCategory: r.text("Asset Category"),
		Currency:      cur,
		Symbol:        r.text("Symbol"),
		Date:          r.date("Date/Time"),
		Quantity:      r.quantity("Quantity"),
		Price:         r.money("T. Price", cur),
		Proceeds:      r.money("Proceeds", cur),
		Commission:    r.money("Comm/Fee", cur),
		Basis:         r.money("Basis", cur),
		RealizedPL:    r.money("Realized P/L", cur),
		Code:          r.text("Code"),
	}
}

func buildDividend(r *rowReader) Record {
	cur := r.currency("Currency")
	d := Dividend{
		Line:        r.line(),
		Currency:    cur,
		Date:        r.date("Date"),
		Description: r.text("Description"),
		Symbol:      r.text("Symbol"),
		Amount:      r.money("Amount", cur),
	}
	sym, isin := describedSecurity(d.Description)
	if d.Symbol == "" {
		d.Symbol = sym
	}
	d.ISIN = isin
	return d
}

func buildWithholdingTax(r *rowReader) Record {
	cur := r.currency("Currency")
	w := WithholdingTax{
		Line:        r.line(),
		Currency:    cur,
		Date:        r.date("Date"),
		Description: r.text("Description"),
		Symbol:      r.text("Symbol"),
		Country:     r.text("Country"),
		Code:        r.text("Code"),
		Amount:      r.money("Amount", cur).Abs(),
	}
	sym, isin := describedSecurity(w.Description)
	if w.Symbol == "" {
		w.Symbol = sym
	}
	w.ISIN = isin
	if w.Country == "" {
		w.Country = describedCountry(w.Description)
	}
	return w
}

func buildInterest(r *rowReader) Record {
	cur := r.currency("Currency")
	return Interest{
		Line:        r.line(),
		Currency:    cur,
		Date:        r.date("Date"),
		Description: r.text("Description"),
		Amount:      r.money("Amount", cur),
	}
}

func buildFee(r *rowReader) Record {
	cur := r.currency("Currency")
	return Fee{
		Line:        r.line(),
		Subtitle:    r.text("Subtitle"),
		Currency:    cur,
		Date:        r.date("Date"),
		Description: r.text("Description"),
		Amount:      r.money("Amount", cur).Abs(),
	}
}

func buildOpenPosition(r *rowReader) Record {
	cur := r.currency("Currency")
	return OpenPosition{
		Line:          r.line(),
		AssetCategory: r.text("Asset Category"),
		Currency:      cur,
		Symbol:        r.text("Symbol"),
		Quantity:      r.quantity("Quantity"),
		Multiplier:    r.quantity("Mult"),
		CostPrice:     r.money("Cost Price", cur),
		CostBasis:     r.money("Cost Basis", cur),
		ClosePrice:    r.money("Close Price", cur),
		Value:         r.money("Value", cur),
		UnrealizedPL:  r.money("Unrealized P/L", cur),
	}
}

// buildForexBalance reads a cash balance. Cost basis, value and P/L are in the base currency.
func buildForexBalance(r *rowReader) Record {
	cur := r.currency("Currency")
	return ForexBalance{
		Line:          r.line(),
		AssetCategory: r.text("Asset Category"),
		Currency:      cur,
		Description:   r.text("Description"),
		Quantity:      r.quantity("Quantity"),
		CostPrice:     r.money("Cost Price", r.base),
		CostBasis:     r.money("Cost Basis", r.base),
		ClosePrice:    r.money("Close Price", r.base),
		Value:         r.money("Value", r.base),
		UnrealizedPL:  r.money("Unrealized P/L", r.base),
	}
}

func buildCashReport(r *rowReader) Record {
	// "Base Currency Summary" lines are amounts in the base currency.
	cur, code := r.text("Currency"), r.base
	if !strings.Contains(cur, "Summary") {
		code = r.currency("Currency")
	}
	return CashReportLine{
		Line:       r.line(),
		Summary:    r.text("Currency Summary"),
		Currency:   cur,
		Total:      r.money("Total", code),
		Securities: r.money("Securities", code),
		Futures:    r.money("Futures", code),
	}
}

func buildSecurityLoan(r *rowReader) Record {
	cur := r.currency("Currency")
	return SecurityLoan{
		Line:     r.line(),
		Currency: cur,
		Symbol:   r.text("Symbol"),
		Date:     r.date("Date"),
		Quantity: r.quantity("Quantity"),
		Amount:   r.money("Amount", cur),
	}
}

// securityRef matches the "SYMBOL(ISIN)" prefix of dividend and tax descriptions.
var securityRef = regexp.MustCompile(`^\s*([A-Za-z0-9.\-]+(?: [A-Za-z0-9.\-]+)*?)\s*\(([A-Z]{2}[A-Z0-9]{9}[0-9])\)`)

// describedSecurity extracts the symbol and ISIN from a description like
// "AAPL(US0378331005) Cash Dividend USD 0.24 per Share".
func describedSecurity(description string) (symbol, isin string) {
	m := securityRef.FindStringSubmatch(description)
	if m == nil {
		return "", ""
	}
	return m[1], m[2]
}

// taxCountry matches the " - US Tax" suffix of withholding tax descriptions.
var taxCountry = regexp.MustCompile(`-\s*([A-Z]{2}) Tax\s*$`)

func describedCountry(description string) string {
	m := taxCountry.FindStringSubmatch(description)
	if m == nil {
		return ""
	}
	return m[1]
}
