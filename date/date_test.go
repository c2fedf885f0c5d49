package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseStatement(t *testing.T) {
	want := New(2025, time.January, 15)
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", want, false},
		{"2025-01-15, 14:30:00", want, false},
		{"2025-01-15 14:30:00", want, false},
		{"15.01.2025", want, false},
		{"15/01/2025", want, false},
		{"20250115", want, false},
		{"  2025-01-15 ", want, false},
		{"not-a-date", Date{}, true},
		{"2025-13-01", Date{}, true},
		{"32.01.2025", Date{}, true},
		{"", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatement(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseStatement(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if got != tt.expected {
				t.Errorf("ParseStatement(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("2025-7-1")
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if want := New(2025, time.July, 1); got != want {
		t.Errorf("Parse(%q) = %v, want %v", "2025-7-1", got, want)
	}
	if _, err := Parse("01.07.2025"); err == nil {
		t.Errorf("Parse(%q) expected an error", "01.07.2025")
	}
}

func TestZeroDate(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Errorf("zero Date is not IsZero()")
	}
	if d.String() != "" {
		t.Errorf("zero Date String() = %q, want empty", d.String())
	}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("Marshal(zero) = %s, want null", data)
	}

	var back Date
	if err := json.Unmarshal([]byte("null"), &back); err != nil {
		t.Fatalf("Unmarshal(null) unexpected error: %v", err)
	}
	if !back.IsZero() {
		t.Errorf("Unmarshal(null) = %v, want zero", back)
	}
}

func TestJSON(t *testing.T) {
	d := New(2025, time.March, 9)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if string(data) != `"2025-03-09"` {
		t.Errorf("Marshal() = %s, want %q", data, "2025-03-09")
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if back != d {
		t.Errorf("Unmarshal() = %v, want %v", back, d)
	}
}
