package utils

import (
	"fmt"
	"time"
)

// WeekStart returns Monday 00:00 UTC of the week containing t. Weeks run
// Monday through Monday.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started 6 days ago
	}
	day := DayStart(t)
	return day.AddDate(0, 0, -(weekday - 1))
}

// WeekEnd returns the exclusive end of the week containing t, which is the
// following Monday 00:00 UTC.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 7)
}

// DayStart returns 00:00 UTC of the day containing t.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayEnd returns the exclusive end of the day containing t.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1)
}

// MonthStart returns the first instant of the calendar month containing t.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth returns the first instant of the month after the one
// containing t.
func NextMonth(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0)
}

// PreviousMonth returns the first instant of the month before the one
// containing t.
func PreviousMonth(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, -1, 0)
}

// ParseMonth parses a YYYY-MM month tag into the first instant of that
// month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return t, nil
}

// FormatMonth renders the first instant of a month back to its YYYY-MM tag.
func FormatMonth(t time.Time) string {
	return t.UTC().Format("2006-01")
}
