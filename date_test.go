package stockbook

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
	if got := NewDate(2025, 2, 30); got != NewDate(2025, 3, 2) {
		t.Errorf("NewDate() is not normalized: %v", got)
	}
}

func TestParseDate(t *testing.T) {
	today := Today()

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"2025/7/1", NewDate(2025, time.July, 1), false},
		{" 2025/07/01 ", NewDate(2025, time.July, 1), false},
		{"2025-07-01 13:45:00", NewDate(2025, time.July, 1), false},
		{"2025/07/01 00:00:00", NewDate(2025, time.July, 1), false},
		{"2025-07-01T10:00:00Z", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
		{"", Date{}, true},

		{"0d", today, false},
		{"-1d", today.Add(-1), false},
		{"+1d", today.Add(1), false},
		{"1d", Date{}, true},
		{"-2w", today.Add(-14), false},
		{"+1m", NewDate(today.Year(), today.Month()+1, today.Day()), false},
		{"-1y", NewDate(today.Year()-1, today.Month(), today.Day()), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDate_Compare(t *testing.T) {
	a, b := NewDate(2024, 1, 31), NewDate(2024, 2, 1)
	if !a.Before(b) || !b.After(a) || a.Compare(a) != 0 {
		t.Errorf("%v and %v are not ordered", a, b)
	}
	if a.MonthKey() != "2024-01" {
		t.Errorf("MonthKey() = %q", a.MonthKey())
	}
}

func TestDate_JSON(t *testing.T) {
	type doc struct {
		On Date `json:"on"`
	}
	var d doc
	if err := json.Unmarshal([]byte(`{"on":"2024/3/5"}`), &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if d.On != NewDate(2024, 3, 5) {
		t.Errorf("On = %v", d.On)
	}
	out, err := json.Marshal(doc{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `{"on":""}` {
		t.Errorf("zero date = %s, want blank", out)
	}
}
