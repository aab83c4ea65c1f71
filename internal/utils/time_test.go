package utils

import (
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(2025, time.March); got != "2025-03" {
		t.Errorf("MonthKey() = %q, want %q", got, "2025-03")
	}

	year, month, err := ParseMonthKey("2025-11")
	if err != nil {
		t.Fatalf("ParseMonthKey() failed: %v", err)
	}
	if year != 2025 || month != time.November {
		t.Errorf("ParseMonthKey() = %d-%s, want 2025-November", year, month)
	}

	if _, _, err := ParseMonthKey("2025-13"); err == nil {
		t.Error("ParseMonthKey() should reject month 13")
	}
}

func TestMonthDateRange(t *testing.T) {
	start, end := MonthDateRange("2025-02")
	if start != "2025-02-01" || end != "2025-02-31" {
		t.Errorf("MonthDateRange() = (%q, %q)", start, end)
	}
	// Lexicographic bounds still select every real date of the month
	if !("2025-02-28" >= start && "2025-02-28" <= end) {
		t.Error("2025-02-28 should fall inside the month range")
	}
	if "2025-03-01" <= end {
		t.Error("2025-03-01 should fall outside the month range")
	}
}

func TestTodayInTimezone(t *testing.T) {
	// 2025-06-01 02:00 UTC is still May 31st in New York
	now := time.Date(2025, time.June, 1, 2, 0, 0, 0, time.UTC)

	got, err := TodayInTimezone(now, "America/New_York")
	if err != nil {
		t.Fatalf("TodayInTimezone() failed: %v", err)
	}
	if got != "2025-05-31" {
		t.Errorf("TodayInTimezone() = %q, want %q", got, "2025-05-31")
	}

	got, err = TodayInTimezone(now, "")
	if err != nil {
		t.Fatalf("TodayInTimezone() failed: %v", err)
	}
	if got != "2025-06-01" {
		t.Errorf("TodayInTimezone() with empty tz = %q, want %q", got, "2025-06-01")
	}

	if _, err := TodayInTimezone(now, "Mars/Olympus"); err == nil {
		t.Error("TodayInTimezone() should fail for unknown timezone")
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, time.March, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.March, 11, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 10 {
		t.Errorf("DaysBetween() = %d, want 10", got)
	}
}
