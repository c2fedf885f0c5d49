package statement

// this file contains the Column Resolver: logical field names to column indices.

import "strings"

// Field declares a logical field a record builder reads.
type Field struct {
	// Name is the logical name, also the preferred header text.
	Name string
	// Headers are additional header texts accepted for the field.
	Headers []string
	// Fallback is the column used when no header matches. A negative value means
	// the field is empty without a header.
	Fallback int
	// Required fields must be non-blank for a row to make a record.
	Required bool
}

// matches reports whether a header cell names this field.
func (f Field) matches(cell string) bool {
	if cell == f.Name {
		return true
	}
	for _, h := range f.Headers {
		if cell == h {
			return true
		}
	}
	return false
}

// firstDataColumn is the first column after the section label and the role marker.
const firstDataColumn = 2

// Source tells how a column was resolved.
type Source int

const (
	// ByHeader means the column was found in the section header row.
	ByHeader Source = iota
	// ByFallback means the static default index was used.
	ByFallback
)

func (s Source) String() string {
	if s == ByHeader {
		return "header"
	}
	return "fallback"
}

// Resolution is the resolved column of one field.
type Resolution struct {
	Index  int
	Source Source
}

// ColumnMap maps logical field names to their resolved column.
type ColumnMap map[string]Resolution

// ResolveColumns resolves fields against the section header, once for the whole section.
//
// Each field takes the first header cell, scanning left to right from the first
// data column, that equals its name or one of its aliases. Fields without a match,
// or every field when the section has no header, use their fallback index. A
// fallback index naming a column the header gives to another field is dropped.
func ResolveColumns(s *Section, fields []Field) ColumnMap {
	m := make(ColumnMap, len(fields))
	claimed := make(map[int]bool)
	for _, f := range fields {
		if s == nil || s.Header == nil {
			break
		}
		for i := firstDataColumn; i < s.Header.Len(); i++ {
			if f.matches(strings.TrimSpace(s.Header.Field(i))) {
				m[f.Name] = Resolution{Index: i, Source: ByHeader}
				claimed[i] = true
				break
			}
		}
	}
	for _, f := range fields {
		if _, ok := m[f.Name]; ok {
			continue
		}
		idx := f.Fallback
		if claimed[idx] {
			idx = -1
		}
		m[f.Name] = Resolution{Index: idx, Source: ByFallback}
	}
	return m
}

// Get returns the trimmed text of a field in row. Unresolved or out of range
// columns read as "".
func (m ColumnMap) Get(row RawRow, field string) string {
	r, ok := m[field]
	if !ok {
		return ""
	}
	return strings.TrimSpace(row.Field(r.Index))
}

// Defaulted returns the names of the fields resolved by fallback, in declaration order.
func (m ColumnMap) Defaulted(fields []Field) []string {
	var names []string
	for _, f := range fields {
		if m[f.Name].Source == ByFallback {
			names = append(names, f.Name)
		}
	}
	return names
}
