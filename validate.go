package statement

// this file contains the Cross-Record Validator, run once all sections are built.

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultNAVTolerance is the absolute difference accepted by the net asset value
// reconciliation, to absorb rounding of the printed amounts.
var DefaultNAVTolerance = decimal.New(1, -2)

// Validate runs the cross-record checks on r and appends their diagnostics.
//
// The checks are independent and all run: net asset value reconciliation, section
// presence, date audit and section checksums. Validate also fills the checksums of
// r.Summary. Calling it twice appends the diagnostics twice.
func Validate(r *Result, opts ...Option) {
	o := newOptions(opts)
	if r.Summary == nil {
		r.Summary = make(map[SectionName]SectionSummary)
	}
	reconcileNAV(r, o.tolerance)
	checkPresence(r, o.expected)
	auditDates(r)
	checksums(r)
}

// reconcileNAV checks prior + change == current for every reconcilable asset class.
func reconcileNAV(r *Result, tolerance decimal.Decimal) {
	for _, n := range r.NetAssetValue {
		if !n.Reconcilable {
			continue
		}
		prior, change, current := n.PriorTotal.Amount(), n.Change.Amount(), n.CurrentTotal.Amount()
		gap := prior.Add(change).Sub(current)
		if gap.Abs().LessThanOrEqual(tolerance) {
			continue
		}
		r.Diagnostics.addf(Error, SectionNetAssetValue, n.Line,
			"%q does not reconcile: prior %s + change %s != current %s (difference %s)",
			n.AssetClass, prior, change, current, gap)
	}
}

// checkPresence reports every expected section without records.
func checkPresence(r *Result, expected []SectionName) {
	for _, name := range expected {
		if len(r.Records(name)) > 0 {
			continue
		}
		if _, routed := r.Summary[name]; routed {
			r.Diagnostics.addf(Warning, name, 0, "section has no records")
		} else {
			r.Diagnostics.addf(Warning, name, 0, "section absent")
		}
	}
}

// auditDates reports every date-bearing record with a null date.
func auditDates(r *Result) {
	for _, name := range Catalog {
		for i, rec := range r.Records(name) {
			d, ok := rec.(dated)
			if !ok {
				break
			}
			if d.RecordDate().IsZero() {
				r.Diagnostics.addf(Warning, name, rec.SourceLine(), "record %d has no valid date", i)
			}
		}
	}
}

// checksums sums the amount field of each populated section, per currency.
func checksums(r *Result) {
	for _, name := range Catalog {
		var sums []Money
		for _, rec := range r.Records(name) {
			a, ok := rec.(amounted)
			if !ok {
				break
			}
			if n, isNAV := rec.(NAVLine); isNAV && strings.HasPrefix(n.AssetClass, "Total") {
				continue
			}
			sums = addByCurrency(sums, a.ChecksumAmount())
		}
		if len(sums) == 0 {
			continue
		}
		sum := r.Summary[name]
		sum.Checksum = sums
		r.Summary[name] = sum

		msg := "checksum of " + checksumField(name) + ": " + moneyList(sums)
		if len(sum.Printed) > 0 {
			msg += " (printed " + moneyList(sum.Printed) + ")"
		}
		r.Diagnostics.addf(Info, name, 0, "%s", msg)
	}
}

// addByCurrency adds m to the entry of the same currency, keeping first seen order.
func addByCurrency(sums []Money, m Money) []Money {
	for i, s := range sums {
		if s.Currency() == m.Currency() {
			sums[i] = s.Add(m)
			return sums
		}
	}
	return append(sums, m)
}

// moneyList formats amounts exactly, as "USD 12.5, EUR 3".
func moneyList(list []Money) string {
	parts := make([]string, len(list))
	for i, m := range list {
		parts[i] = strings.TrimSpace(m.Currency() + " " + m.Amount().String())
	}
	return strings.Join(parts, ", ")
}
