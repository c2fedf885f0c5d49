package statement

// this file contains the Section Router: rows to sections, by label and role marker.

import (
	"slices"
	"strconv"
	"strings"
)

// SectionName is the leading label of a statement row, restricted to the known catalog.
type SectionName string

// Known sections.
const (
	SectionStatement          SectionName = "Statement"
	SectionAccountInformation SectionName = "Account Information"
	SectionNetAssetValue      SectionName = "Net Asset Value"
	SectionTrades             SectionName = "Trades"
	SectionDividends          SectionName = "Dividends"
	SectionWithholdingTax     SectionName = "Withholding Tax"
	SectionInterest           SectionName = "Interest"
	SectionFees               SectionName = "Fees"
	SectionOpenPositions      SectionName = "Open Positions"
	SectionForexBalances      SectionName = "Forex Balances"
	SectionCashReport         SectionName = "Cash Report"
	SectionSecuritiesLending  SectionName = "Securities Lending"
)

// Catalog lists every known section in report order.
var Catalog = []SectionName{
	SectionStatement,
	SectionAccountInformation,
	SectionNetAssetValue,
	SectionTrades,
	SectionDividends,
	SectionWithholdingTax,
	SectionInterest,
	SectionFees,
	SectionOpenPositions,
	SectionForexBalances,
	SectionCashReport,
	SectionSecuritiesLending,
}

// ExpectedSections are the sections a complete statement is expected to carry.
// Their absence is reported, but statements legitimately omit sections with no activity.
var ExpectedSections = []SectionName{
	SectionNetAssetValue,
	SectionTrades,
	SectionDividends,
	SectionWithholdingTax,
	SectionInterest,
	SectionFees,
	SectionOpenPositions,
	SectionForexBalances,
	SectionCashReport,
	SectionSecuritiesLending,
}

// sectionAliases are other labels under which statements carry the rows of a known section.
var sectionAliases = map[string]SectionName{
	"Stocks":             SectionTrades,
	"Forex":              SectionTrades,
	"Commission Details": SectionFees,
}

// ParseSectionName returns the catalog entry equal to label.
func ParseSectionName(label string) (SectionName, bool) {
	for _, name := range Catalog {
		if string(name) == label {
			return name, true
		}
	}
	return "", false
}

// Known reports whether the section is in the catalog.
func (s SectionName) Known() bool { return slices.Contains(Catalog, s) }

// Role markers found in field 1.
const (
	roleHeader = "Header"
	roleData   = "Data"
)

// Section accumulates the rows of one logical table.
type Section struct {
	Name SectionName
	// Header is the last header row seen for the section, nil if none.
	Header *RawRow
	// Data rows in file order.
	Data []RawRow
	// Label is the alias the rows were found under, "" for the section name itself.
	Label string
	// Aliases are the tables found under alias labels, in order of appearance.
	// Each keeps its own header.
	Aliases []*Section
}

// alias returns the table of s found under label, creating it if needed.
func (s *Section) alias(label string) *Section {
	for _, a := range s.Aliases {
		if a.Label == label {
			return a
		}
	}
	a := &Section{Name: s.Name, Label: label}
	s.Aliases = append(s.Aliases, a)
	return a
}

// table names the table in diagnostics, "" for the section itself.
func (s *Section) table() string {
	if s.Label == "" {
		return ""
	}
	return s.Label + " table: "
}

// Width returns the number of fields of the section rows.
func (s *Section) Width() int {
	if s.Header != nil {
		return s.Header.Len()
	}
	if len(s.Data) > 0 {
		return s.Data[0].Len()
	}
	return 0
}

// Route dispatches rows to their section in a single pass.
//
// Blank labels are separators and are silently skipped. Alias labels are routed to
// their section as a separate table. Unknown labels produce one INFO per distinct label. Within a known section, "Header" replaces the section
// header, "Data" appends to its data rows, and any other marker is skipped with a
// WARNING per distinct marker. A nil diags discards the diagnostics.
func Route(rows []RawRow, diags *Diagnostics) map[SectionName]*Section {
	if diags == nil {
		diags = new(Diagnostics)
	}
	sections := make(map[SectionName]*Section)

	type skipped struct {
		section SectionName
		label   string
		line    int
		count   int
	}
	var unknown, markers []*skipped
	bump := func(list []*skipped, section SectionName, label string, line int) []*skipped {
		for _, s := range list {
			if s.section == section && s.label == label {
				s.count++
				return list
			}
		}
		return append(list, &skipped{section: section, label: label, line: line, count: 1})
	}

	for _, row := range rows {
		label := strings.TrimSpace(row.Field(0))
		if label == "" {
			continue
		}
		name, ok := ParseSectionName(label)
		alias := ""
		if !ok {
			name, ok = sectionAliases[label]
			alias = label
		}
		if !ok {
			unknown = bump(unknown, "", label, row.Line())
			continue
		}
		s := sections[name]
		if s == nil {
			s = &Section{Name: name}
			sections[name] = s
		}
		if alias != "" {
			s = s.alias(alias)
		}
		switch marker := strings.TrimSpace(row.Field(1)); marker {
		case roleHeader:
			h := row
			s.Header = &h
		case roleData:
			s.Data = append(s.Data, row)
		default:
			markers = bump(markers, name, marker, row.Line())
		}
	}

	for _, u := range unknown {
		diags.addf(Info, "", u.line, "unrecognized section %q ignored (%s)", u.label, plural(u.count, "row"))
	}
	for _, m := range markers {
		diags.addf(Warning, m.section, m.line, "unexpected row marker %q skipped (%s)", m.label, plural(m.count, "row"))
	}
	return sections
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
