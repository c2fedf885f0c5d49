package date

import (
	"fmt"
	"strings"
	"time"
)

// Range represents a range of dates.
type Range struct {
	From Date `json:"from" yaml:"from"`
	To   Date `json:"to" yaml:"to"`
}

// periodLayouts are the long forms used in statement titles ("January 1, 2025").
var periodLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return (!date.Before(r.From) && !date.After(r.To)) }

// IsZero reports whether the range has no bounds at all.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Days returns the number of days in the range, boundaries included.
func (r Range) Days() int {
	if r.IsZero() {
		return 0
	}
	return int(r.To.time().Sub(r.From.time())/(24*time.Hour)) + 1
}

func (r Range) String() string {
	if r.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s", r.From, r.To)
}

// ParseRange parses a statement period such as "January 1, 2025 - December 3, 2025"
// or "2025-01-01 - 2025-12-03". A single date yields a one day range.
func ParseRange(str string) (Range, error) {
	parts := strings.Split(str, " - ")
	if len(parts) > 2 {
		return Range{}, fmt.Errorf("invalid period %q: too many separators", str)
	}
	var bounds []Date
	for _, part := range parts {
		d, err := parseLong(part)
		if err != nil {
			return Range{}, fmt.Errorf("invalid period %q: %w", str, err)
		}
		bounds = append(bounds, d)
	}
	r := Range{From: bounds[0], To: bounds[len(bounds)-1]}
	if r.To.Before(r.From) {
		return Range{}, fmt.Errorf("invalid period %q: ends before it starts", str)
	}
	return r, nil
}

func parseLong(str string) (Date, error) {
	s := strings.TrimSpace(str)
	for _, layout := range periodLayouts {
		if on, err := time.Parse(layout, s); err == nil {
			return New(on.Date()), nil
		}
	}
	return ParseStatement(s)
}
