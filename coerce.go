package statement

// coerce.go provides the locale tolerant scalar parsers used by every record builder.
//
// Both coercers are total: they never fail, they return a safe value and, when the
// input was malformed, a WARNING diagnostic carrying the original text. Empty input
// is absence, not malformation, and yields no diagnostic.

import (
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/statement/date"
	"github.com/shopspring/decimal"
)

// plainDecimal is what remains of an amount once signs, symbols and grouping are gone.
var plainDecimal = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)

// currencySymbols are removed wherever they appear. Longer symbols come first.
var currencySymbols = []string{
	"US$", "C$", "A$", "NZ$", "HK$", "S$",
	"$", "€", "£", "¥", "₣", "₹", "₩", "₽", "₺", "₪", "฿", "zł",
}

// groupingRunes are thousands separators that never carry a decimal meaning.
var groupingRunes = strings.NewReplacer(" ", "", " ", "", " ", "", "'", "", "’", "")

// CoerceAmount parses an amount as printed in a statement.
//
// Surrounding whitespace, currency symbols and ISO currency codes are ignored.
// Parentheses, a minus sign or both make the amount negative. When both ',' and '.'
// appear, the one closer to the end is the decimal point and the other is
// grouping. A lone ',' is a decimal point; a separator repeated without the other
// one is grouping. NaN and infinities, and any other residual text, yield 0 with a
// WARNING.
func CoerceAmount(text string) (decimal.Decimal, *Diagnostic) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, nil
	}

	s = strings.ReplaceAll(s, "−", "-") // unicode minus sign
	negative := false
	// a minus sign before parentheses does not cancel them
	if rest, ok := strings.CutPrefix(s, "-"); ok && strings.HasPrefix(strings.TrimSpace(rest), "(") {
		negative = true
		s = strings.TrimSpace(rest)
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	s = stripCurrency(s)
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasSuffix(s, "-"):
		negative = true
		s = s[:len(s)-1]
	}
	s = strings.TrimSpace(s)

	switch strings.ToLower(s) {
	case "nan", "inf", "infinity":
		return decimal.Zero, &Diagnostic{Severity: Warning, Message: "non-finite amount " + quote(text) + " replaced by 0"}
	}

	s = groupingRunes.Replace(s)
	s = normalizeSeparators(s)
	if !plainDecimal.MatchString(s) {
		return decimal.Zero, &Diagnostic{Severity: Warning, Message: "unparseable amount " + quote(text) + " replaced by 0"}
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &Diagnostic{Severity: Warning, Message: "unparseable amount " + quote(text) + " replaced by 0"}
	}
	if negative {
		v = v.Neg()
	}
	return v, nil
}

// normalizeSeparators rewrites s so that '.' is the only, optional, decimal point.
func normalizeSeparators(s string) string {
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0:
		if dot > comma {
			return strings.ReplaceAll(s, ",", "")
		}
		return strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
	case comma >= 0:
		if strings.Count(s, ",") == 1 {
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case dot >= 0 && strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}
	return s
}

// stripCurrency removes currency symbols and a leading or trailing ISO code.
func stripCurrency(s string) string {
	for _, sym := range currencySymbols {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.TrimSpace(s)
	if fields := strings.Fields(s); len(fields) > 1 {
		if isCurrencyCode(fields[0]) {
			s = strings.TrimSpace(strings.TrimPrefix(s, fields[0]))
		} else if last := fields[len(fields)-1]; isCurrencyCode(last) {
			s = strings.TrimSpace(strings.TrimSuffix(s, last))
		}
	}
	return s
}

// isCurrencyCode reports whether code is a known ISO 4217 code.
func isCurrencyCode(code string) bool {
	if len(code) != 3 || strings.ToUpper(code) != code {
		return false
	}
	return money.GetCurrency(code) != nil
}

// CoerceDate parses a statement date. See date.ParseStatement for the accepted
// layouts. Unrecognized text yields the null date and a WARNING.
func CoerceDate(text string) (date.Date, *Diagnostic) {
	if strings.TrimSpace(text) == "" {
		return date.Date{}, nil
	}
	d, err := date.ParseStatement(text)
	if err != nil {
		return date.Date{}, &Diagnostic{Severity: Warning, Message: "unparseable date " + quote(text)}
	}
	return d, nil
}

func quote(s string) string { return `"` + s + `"` }
