package tournament

import (
	"testing"
	"time"
)

func TestParseStartDate(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"2026-03-14", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)},
		{"2026-03-14T09:00:00Z", time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)},
		{"2026-03-14T09:00:00", time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)},
		{"2026-03-14 09:00:00", time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)},
		{"", time.Time{}},
		{"binnenkort", time.Time{}},
		{"14 maart", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseStartDate(tt.input)
			if !result.Equal(tt.expected) {
				t.Errorf("ParseStartDate(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsWithinDays(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		desc      string
		startDate string
		days      int
		expected  bool
	}{
		{"five days out", "2026-01-15", 30, true},
		{"forty days out", "2026-02-19", 30, false},
		{"no start date included", "", 30, true},
		{"unparseable date included", "binnenkort", 30, true},
		{"already started excluded", "2026-01-05", 30, false},
		{"window disabled", "2026-02-19", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			trn := &Tournament{StartDate: tt.startDate}
			if got := trn.IsWithinDays(now, tt.days); got != tt.expected {
				t.Errorf("IsWithinDays(%q, %d) = %v, expected %v", tt.startDate, tt.days, got, tt.expected)
			}
		})
	}
}

func TestIsPast(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	past := &Tournament{StartDate: "2026-01-01"}
	if !past.IsPast(now) {
		t.Error("expected past tournament to be past")
	}

	future := &Tournament{StartDate: "2026-06-01"}
	if future.IsPast(now) {
		t.Error("expected future tournament not to be past")
	}

	undated := &Tournament{}
	if undated.IsPast(now) {
		t.Error("undated tournament should not be treated as past")
	}
}
