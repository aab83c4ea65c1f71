package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/onehabit/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" it returns the system's local timezone; empty means UTC.
func LoadLocation(timezone string) (*time.Location, error) {
	switch timezone {
	case "":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// TodayInTimezone returns the date string (YYYY-MM-DD) of now in the given timezone.
func TodayInTimezone(now time.Time, timezone string) (string, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return now.In(loc).Format(constants.DateFormat), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date string as midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// FormatDate formats the calendar date of t (in t's location) as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DateOnly truncates t to midnight UTC of its calendar date, dropping the location.
// Day arithmetic on the result is free of DST shifts.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthKey formats a year and month as YYYY-MM.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ParseMonthKey parses a YYYY-MM month key.
func ParseMonthKey(key string) (int, time.Month, error) {
	t, err := time.Parse(constants.MonthFormat, key)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", key, err)
	}
	return t.Year(), t.Month(), nil
}

// MonthDateRange returns the inclusive date-string bounds used to select a month's
// check-ins. The upper bound is always "-31": date strings compare lexicographically,
// so the bound is correct for shorter months too.
func MonthDateRange(monthKey string) (string, string) {
	return monthKey + "-01", monthKey + "-31"
}

// DaysBetween returns the number of whole days from a to b (calendar dates).
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
