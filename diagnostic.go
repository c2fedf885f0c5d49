package statement

import (
	"fmt"
	"strings"
)

// Severity ranks a Diagnostic.
type Severity int

const (
	// Info is an expected but notable condition (unknown section label, summary row, checksum).
	Info Severity = iota
	// Warning means a safe default was substituted for something that could not be read.
	Warning
	// Error means an internal consistency check failed.
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ParseSeverity is the reverse of Severity.String, case insensitive.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INFO":
		return Info, nil
	case "WARNING", "WARN":
		return Warning, nil
	case "ERROR":
		return Error, nil
	default:
		return Info, fmt.Errorf("unknown severity %q", s)
	}
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Diagnostic is a non-fatal note about a parsing or validation anomaly.
type Diagnostic struct {
	Severity Severity    `json:"severity" yaml:"severity"`
	Section  SectionName `json:"section,omitempty" yaml:"section,omitempty"`
	Message  string      `json:"message" yaml:"message"`
	// Line is the 1-based line in the source file, 0 when not tied to a line.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Severity.String())
	if d.Section != "" {
		fmt.Fprintf(&b, " [%s]", d.Section)
	}
	if d.Line > 0 {
		fmt.Fprintf(&b, " line %d", d.Line)
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}

// Diagnostics is the ordered list of diagnostics collected by one parse.
type Diagnostics []Diagnostic

// add appends a diagnostic, ignoring nil.
func (ds *Diagnostics) add(d *Diagnostic) {
	if d != nil {
		*ds = append(*ds, *d)
	}
}

func (ds *Diagnostics) addf(sev Severity, section SectionName, line int, format string, args ...any) {
	*ds = append(*ds, Diagnostic{Severity: sev, Section: section, Line: line, Message: fmt.Sprintf(format, args...)})
}

// Filter returns the diagnostics of the given severity, in order.
func (ds Diagnostics) Filter(sev Severity) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// AtLeast returns the diagnostics whose severity is sev or higher.
func (ds Diagnostics) AtLeast(sev Severity) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity >= sev {
			out = append(out, d)
		}
	}
	return out
}

// Count returns the number of diagnostics of the given severity.
func (ds Diagnostics) Count(sev Severity) int {
	n := 0
	for _, d := range ds {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any ERROR diagnostic is present.
func (ds Diagnostics) HasErrors() bool { return ds.Count(Error) > 0 }

// For returns the diagnostics concerning a section.
func (ds Diagnostics) For(section SectionName) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Section == section {
			out = append(out, d)
		}
	}
	return out
}
