package statement

// this file contains the first stage of the pipeline: from raw bytes to padded rows.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUndecodable is returned when the content cannot be read as text at all.
var ErrUndecodable = errors.New("content is not decodable text")

// RawRow is one line of the statement split into fields.
//
// All rows produced by one call to NormalizeRows have the same width, so any
// fixed offset below that width is safe. Field is safe for any offset.
type RawRow struct {
	line   int
	fields []string
}

// NewRawRow returns a row for the given 1-based source line. Fields are copied.
func NewRawRow(line int, fields ...string) RawRow {
	return RawRow{line: line, fields: append([]string(nil), fields...)}
}

// Line returns the 1-based line number of the row in the source content.
func (r RawRow) Line() int { return r.line }

// Len returns the number of fields, padding included.
func (r RawRow) Len() int { return len(r.fields) }

// Field returns the i-th field, or "" when i is out of range.
func (r RawRow) Field(i int) string {
	if i < 0 || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

// Fields returns a copy of the row fields.
func (r RawRow) Fields() []string { return append([]string(nil), r.fields...) }

// IsBlank reports whether every field is empty or whitespace.
func (r RawRow) IsBlank() bool {
	for _, f := range r.fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// decode turns the raw content into text.
//
// UTF-8 (with or without BOM) and BOM-marked UTF-16 are accepted. Anything else
// that is not valid UTF-8, or that carries NUL bytes, is binary content.
func decode(content []byte) (string, error) {
	if len(content) == 0 {
		return "", nil
	}
	if !hasUTF16BOM(content) && !utf8.Valid(content) {
		return "", fmt.Errorf("%w: invalid UTF-8 sequence", ErrUndecodable)
	}
	text, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if i := bytes.IndexByte(text, 0); i >= 0 {
		return "", fmt.Errorf("%w: NUL byte at offset %d", ErrUndecodable, i)
	}
	return string(text), nil
}

func hasUTF16BOM(b []byte) bool {
	return len(b) >= 2 && ((b[0] == 0xFE && b[1] == 0xFF) || (b[0] == 0xFF && b[1] == 0xFE))
}

// NormalizeRows splits text into rows and pads every row to the widest one.
//
// Each line is split on commas; double quotes protect commas inside a field as
// in the broker export. A line that cannot be read as CSV is split on every comma
// instead. A trailing newline does not produce an extra row. NormalizeRows never
// fails; empty text yields no rows.
func NormalizeRows(text string) []RawRow {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	rows := make([]RawRow, 0, len(lines))
	width := 0
	for i, line := range lines {
		fields := splitLine(strings.TrimSuffix(line, "\r"))
		width = max(width, len(fields))
		rows = append(rows, RawRow{line: i + 1, fields: fields})
	}

	for i := range rows {
		if missing := width - len(rows[i].fields); missing > 0 {
			rows[i].fields = append(rows[i].fields, make([]string, missing)...)
		}
	}
	return rows
}

// splitLine splits a single line into fields.
func splitLine(line string) []string {
	if line == "" {
		return []string{""}
	}
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	fields, err := r.Read()
	if err != nil {
		return strings.Split(line, ",")
	}
	return fields
}
