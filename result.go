package statement

import (
	"cmp"
	"slices"
	"strings"

	"github.com/etnz/statement/date"
)

// Result is the outcome of parsing one statement.
//
// Records are grouped per section in file order. The caller owns the Result; the
// engine keeps nothing between parses.
type Result struct {
	Statement          []InfoField
	AccountInformation []InfoField
	NetAssetValue      []NAVLine
	Trades             []Trade
	Dividends          []Dividend
	WithholdingTaxes   []WithholdingTax
	Interest           []Interest
	Fees               []Fee
	OpenPositions      []OpenPosition
	ForexBalances      []ForexBalance
	CashReport         []CashReportLine
	SecuritiesLending  []SecurityLoan

	// Summary has one entry per section found in the content.
	Summary map[SectionName]SectionSummary
	// Diagnostics lists, in order, every anomaly met while parsing and validating.
	Diagnostics Diagnostics
}

// SectionSummary counts what happened to the data rows of one section.
type SectionSummary struct {
	DataRows int `json:"dataRows" yaml:"dataRows"`
	Records  int `json:"records" yaml:"records"`
	Skipped  int `json:"skipped" yaml:"skipped"`
	// Checksum is the sum of the section amount field, one entry per currency.
	Checksum []Money `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	// Printed are the totals printed by the statement itself on summary rows.
	Printed []Money `json:"printed,omitempty" yaml:"printed,omitempty"`
}

// append adds a record to the slice of its section.
func (r *Result) append(rec Record) {
	switch v := rec.(type) {
	case InfoField:
		if v.From == SectionAccountInformation {
			r.AccountInformation = append(r.AccountInformation, v)
		} else {
			r.Statement = append(r.Statement, v)
		}
	case NAVLine:
		r.NetAssetValue = append(r.NetAssetValue, v)
	case Trade:
		r.Trades = append(r.Trades, v)
	case Dividend:
		r.Dividends = append(r.Dividends, v)
	case WithholdingTax:
		r.WithholdingTaxes = append(r.WithholdingTaxes, v)
	case Interest:
		r.Interest = append(r.Interest, v)
	case Fee:
		r.Fees = append(r.Fees, v)
	case OpenPosition:
		r.OpenPositions = append(r.OpenPositions, v)
	case ForexBalance:
		r.ForexBalances = append(r.ForexBalances, v)
	case CashReportLine:
		r.CashReport = append(r.CashReport, v)
	case SecurityLoan:
		r.SecuritiesLending = append(r.SecuritiesLending, v)
	}
}

// sortByLine restores the file order of a section built from several tables.
func (r *Result) sortByLine(name SectionName) {
	switch name {
	case SectionTrades:
		slices.SortStableFunc(r.Trades, func(a, b Trade) int { return cmp.Compare(a.Line, b.Line) })
	case SectionFees:
		slices.SortStableFunc(r.Fees, func(a, b Fee) int { return cmp.Compare(a.Line, b.Line) })
	}
}

// Records returns the records of a section in file order.
func (r *Result) Records(name SectionName) []Record {
	switch name {
	case SectionStatement:
		return records(r.Statement)
	case SectionAccountInformation:
		return records(r.AccountInformation)
	case SectionNetAssetValue:
		return records(r.NetAssetValue)
	case SectionTrades:
		return records(r.Trades)
	case SectionDividends:
		return records(r.Dividends)
	case SectionWithholdingTax:
		return records(r.WithholdingTaxes)
	case SectionInterest:
		return records(r.Interest)
	case SectionFees:
		return records(r.Fees)
	case SectionOpenPositions:
		return records(r.OpenPositions)
	case SectionForexBalances:
		return records(r.ForexBalances)
	case SectionCashReport:
		return records(r.CashReport)
	case SectionSecuritiesLending:
		return records(r.SecuritiesLending)
	}
	return nil
}

func records[T Record](list []T) []Record {
	out := make([]Record, len(list))
	for i, rec := range list {
		out[i] = rec
	}
	return out
}

// Sections returns the sections holding at least one record, in catalog order.
func (r *Result) Sections() []SectionName {
	var out []SectionName
	for _, name := range Catalog {
		if len(r.Records(name)) > 0 {
			out = append(out, name)
		}
	}
	return out
}

// Account describes the account and period a statement covers.
type Account struct {
	ID           string     `json:"id,omitempty" yaml:"id,omitempty"`
	Holder       string     `json:"holder,omitempty" yaml:"holder,omitempty"`
	Type         string     `json:"type,omitempty" yaml:"type,omitempty"`
	BaseCurrency string     `json:"baseCurrency,omitempty" yaml:"baseCurrency,omitempty"`
	Broker       string     `json:"broker,omitempty" yaml:"broker,omitempty"`
	Title        string     `json:"title,omitempty" yaml:"title,omitempty"`
	Period       date.Range `json:"period" yaml:"period"`
	// PeriodText is the period as printed, kept when it cannot be parsed.
	PeriodText string `json:"periodText,omitempty" yaml:"periodText,omitempty"`
	Generated  string `json:"generated,omitempty" yaml:"generated,omitempty"`
}

// Account collects the account description from the Statement and Account
// Information sections. The first non-blank value of each field wins.
func (r *Result) Account() Account {
	var a Account
	set := func(dst *string, v string) {
		if *dst == "" {
			*dst = strings.TrimSpace(v)
		}
	}
	for _, f := range append(append([]InfoField(nil), r.Statement...), r.AccountInformation...) {
		switch f.Name {
		case "Account":
			set(&a.ID, f.Value)
		case "Name":
			set(&a.Holder, f.Value)
		case "Account Type":
			set(&a.Type, f.Value)
		case "Base Currency":
			set(&a.BaseCurrency, f.Value)
		case "BrokerName":
			set(&a.Broker, f.Value)
		case "Title":
			set(&a.Title, f.Value)
		case "Period":
			set(&a.PeriodText, f.Value)
		case "WhenGenerated":
			set(&a.Generated, f.Value)
		}
	}
	if p, err := date.ParseRange(a.PeriodText); err == nil {
		a.Period = p
		a.PeriodText = ""
	}
	return a
}
