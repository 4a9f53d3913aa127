package calendar

import (
	"testing"
	"time"
)

func TestDaysInMonthMatchesGregorianCalendar(t *testing.T) {
	for year := 1896; year <= 2404; year++ {
		for m := time.January; m <= time.December; m++ {
			want := time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
			if got := DaysInMonth(year, m); got != want {
				t.Fatalf("DaysInMonth(%d, %v)=%d want %d", year, m, got, want)
			}
		}
	}
}

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{2024, true},
		{2023, false},
		{1900, false},
		{2000, true},
		{2100, false},
	}
	for _, tt := range tests {
		if got := IsLeapYear(tt.year); got != tt.want {
			t.Errorf("IsLeapYear(%d)=%v want %v", tt.year, got, tt.want)
		}
	}
}

func TestLeadingOffset(t *testing.T) {
	tests := []struct {
		name      string
		first     time.Weekday
		weekStart time.Weekday
		want      int
	}{
		{"same day", time.Wednesday, time.Wednesday, 0},
		{"sunday start", time.Thursday, time.Sunday, 4},
		{"monday start", time.Thursday, time.Monday, 3},
		{"sunday is last column", time.Sunday, time.Monday, 6},
		{"sunday with saturday start", time.Sunday, time.Saturday, 1},
		{"wrap", time.Monday, time.Friday, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LeadingOffset(tt.first, tt.weekStart); got != tt.want {
				t.Fatalf("LeadingOffset(%v, %v)=%d want %d", tt.first, tt.weekStart, got, tt.want)
			}
		})
	}
}

func TestOffsetTilesEveryColumnOnce(t *testing.T) {
	for weekStart := time.Sunday; weekStart <= time.Saturday; weekStart++ {
		columns := OrderedWeekdays(weekStart)
		for m := time.January; m <= time.December; m++ {
			first := time.Date(2025, m, 1, 0, 0, 0, 0, time.UTC)
			offset := LeadingOffset(first.Weekday(), weekStart)
			for d := 1; d <= DaysInMonth(2025, m); d++ {
				wd := time.Date(2025, m, d, 0, 0, 0, 0, time.UTC).Weekday()
				if col := (offset + d - 1) % 7; columns[col] != wd {
					t.Fatalf("weekStart=%v %v %d lands in column %d (%v), expected %v", weekStart, m, d, col, columns[col], wd)
				}
			}
		}
	}
}

func TestOrderedWeekdays(t *testing.T) {
	got := OrderedWeekdays(time.Wednesday)
	want := []time.Weekday{time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday, time.Monday, time.Tuesday}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("OrderedWeekdays(Wednesday)=%v want %v", got, want)
		}
	}
}
