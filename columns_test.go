package statement

import "testing"

var testFields = []Field{
	{Name: "Currency", Fallback: 2},
	{Name: "Symbol", Fallback: 3, Required: true},
	{Name: "Value", Headers: []string{"Mkt Value"}, Fallback: 4},
	{Name: "Code", Fallback: -1},
}

func TestResolveColumns(t *testing.T) {
	header := NewRawRow(1, "Open Positions", "Header", "Symbol", "Currency", "Mkt Value", "Currency")

	tests := []struct {
		name    string
		section *Section
		want    ColumnMap
	}{
		{
			name:    "no header",
			section: &Section{Name: SectionOpenPositions},
			want: ColumnMap{
				"Currency": {2, ByFallback},
				"Symbol":   {3, ByFallback},
				"Value":    {4, ByFallback},
				"Code":     {-1, ByFallback},
			},
		},
		{
			name:    "header",
			section: &Section{Name: SectionOpenPositions, Header: &header},
			want: ColumnMap{
				"Currency": {3, ByHeader}, // first match wins
				"Symbol":   {2, ByHeader},
				"Value":    {4, ByHeader},
				"Code":     {-1, ByFallback},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveColumns(tt.section, testFields)
			if len(got) != len(tt.want) {
				t.Fatalf("ResolveColumns() = %v, want %v", got, tt.want)
			}
			for field, want := range tt.want {
				if got[field] != want {
					t.Errorf("ResolveColumns()[%q] = %+v, want %+v", field, got[field], want)
				}
			}
		})
	}
}

func TestResolveColumnsClaimedFallback(t *testing.T) {
	// Symbol is named at column 2, the fallback of Currency.
	header := NewRawRow(1, "Open Positions", "Header", "Symbol")
	got := ResolveColumns(&Section{Header: &header}, testFields)
	if want := (Resolution{-1, ByFallback}); got["Currency"] != want {
		t.Errorf("Currency = %+v, want %+v", got["Currency"], want)
	}
	if want := (Resolution{4, ByFallback}); got["Value"] != want {
		t.Errorf("Value = %+v, want %+v", got["Value"], want)
	}
	if names := got.Defaulted(testFields); len(names) != 3 {
		t.Errorf("Defaulted() = %q, want Currency, Value and Code", names)
	}
}

func TestColumnMapGet(t *testing.T) {
	m := ColumnMap{"Symbol": {3, ByHeader}, "Far": {42, ByFallback}, "None": {-1, ByFallback}}
	row := NewRawRow(1, "Trades", "Data", "USD", "  AAPL ")
	tests := []struct {
		field string
		want  string
	}{
		{"Symbol", "AAPL"},
		{"Far", ""},
		{"None", ""},
		{"Unknown", ""},
	}
	for _, tt := range tests {
		if got := m.Get(row, tt.field); got != tt.want {
			t.Errorf("Get(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}
