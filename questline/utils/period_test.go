package utils

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", date(2023, time.May, 8, 13), date(2023, time.May, 8, 0)},
		{"midweek", date(2023, time.May, 10, 0), date(2023, time.May, 8, 0)},
		{"sunday belongs to previous monday", date(2023, time.May, 14, 23), date(2023, time.May, 8, 0)},
		{"monday midnight exactly", date(2023, time.May, 8, 0), date(2023, time.May, 8, 0)},
		{"year boundary", date(2024, time.January, 1, 5), date(2024, time.January, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWeekEnd(t *testing.T) {
	got := WeekEnd(date(2023, time.May, 10, 12))
	want := date(2023, time.May, 15, 0)
	if !got.Equal(want) {
		t.Errorf("WeekEnd = %v, want %v", got, want)
	}
}

func TestDayBounds(t *testing.T) {
	in := date(2023, time.May, 10, 17)
	if got := DayStart(in); !got.Equal(date(2023, time.May, 10, 0)) {
		t.Errorf("DayStart = %v", got)
	}
	if got := DayEnd(in); !got.Equal(date(2023, time.May, 11, 0)) {
		t.Errorf("DayEnd = %v", got)
	}
}

func TestMonthArithmetic(t *testing.T) {
	in := date(2023, time.May, 20, 9)
	if got := MonthStart(in); !got.Equal(date(2023, time.May, 1, 0)) {
		t.Errorf("MonthStart = %v", got)
	}
	if got := NextMonth(in); !got.Equal(date(2023, time.June, 1, 0)) {
		t.Errorf("NextMonth = %v", got)
	}
	if got := PreviousMonth(date(2024, time.January, 15, 0)); !got.Equal(date(2023, time.December, 1, 0)) {
		t.Errorf("PreviousMonth = %v", got)
	}
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2023-05")
	if err != nil {
		t.Fatalf("ParseMonth returned error: %v", err)
	}
	if !got.Equal(date(2023, time.May, 1, 0)) {
		t.Errorf("ParseMonth = %v", got)
	}

	if _, err := ParseMonth("wrong"); err == nil {
		t.Error("ParseMonth accepted malformed input")
	}

	if got := FormatMonth(date(2023, time.May, 1, 0)); got != "2023-05" {
		t.Errorf("FormatMonth = %q", got)
	}
}
