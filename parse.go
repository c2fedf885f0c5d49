package statement

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/etnz/statement/date"
	"github.com/shopspring/decimal"
)

// Option configures a parse.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	tolerance decimal.Decimal
	expected  []SectionName
}

func newOptions(opts []Option) options {
	o := options{
		logger:    slog.New(slog.DiscardHandler),
		tolerance: DefaultNAVTolerance,
		expected:  ExpectedSections,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger receiving debug traces of the parse. Nothing is logged by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithNAVTolerance sets the absolute difference accepted by the net asset value
// reconciliation. Negative values are ignored.
func WithNAVTolerance(t decimal.Decimal) Option {
	return func(o *options) {
		if !t.IsNegative() {
			o.tolerance = t
		}
	}
}

// WithExpectedSections replaces the sections whose absence is reported.
func WithExpectedSections(names ...SectionName) Option {
	return func(o *options) { o.expected = names }
}

// Parse parses the content of an activity statement export and validates it.
//
// Parse only fails, with ErrUndecodable, when the content is not text. Any other
// anomaly is reported in the Result diagnostics and parsing goes on. Empty content
// yields an empty Result without diagnostics.
func Parse(content []byte, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	log := o.logger.With("component", "statement")

	text, err := decode(content)
	if err != nil {
		return nil, err
	}
	res := &Result{Summary: make(map[SectionName]SectionSummary)}
	rows := NormalizeRows(text)
	if len(rows) == 0 {
		log.Debug("empty statement")
		return res, nil
	}
	log.Debug("rows normalized", "rows", len(rows), "width", rows[0].Len())

	sections := Route(rows, &res.Diagnostics)
	for _, name := range Catalog {
		s, ok := sections[name]
		if !ok {
			continue
		}
		sum := buildRouted(s, res, &res.Diagnostics)
		res.Summary[name] = sum
		log.Debug("section built", "section", name, "rows", sum.DataRows, "records", sum.Records)
	}
	checkPeriod(res)

	Validate(res, opts...)
	log.Debug("statement parsed",
		"records", recordCount(res),
		"errors", res.Diagnostics.Count(Error),
		"warnings", res.Diagnostics.Count(Warning))
	return res, nil
}

// checkPeriod reports a statement period that cannot be read as a date range.
func checkPeriod(res *Result) {
	a := res.Account()
	if a.PeriodText == "" {
		return
	}
	_, err := date.ParseRange(a.PeriodText)
	res.Diagnostics.addf(Warning, SectionStatement, 0, "statement period not understood: %v", err)
}

func recordCount(res *Result) int {
	n := 0
	for _, name := range Catalog {
		n += len(res.Records(name))
	}
	return n
}

// ParseReader reads r entirely, then parses it.
func ParseReader(r io.Reader, opts ...Option) (*Result, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	return Parse(content, opts...)
}

// ParseFile reads and parses the statement stored at path.
func ParseFile(path string, opts ...Option) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	res, err := Parse(content, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return res, nil
}
