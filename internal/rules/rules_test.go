package rules

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsWeekend(t *testing.T) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		want := wd == time.Saturday || wd == time.Sunday
		if got := IsWeekend(wd); got != want {
			t.Errorf("IsWeekend(%v)=%v want %v", wd, got, want)
		}
	}
}

func TestMinDateDisablesEarlierDays(t *testing.T) {
	rs := &RuleSet{MinDate: date(2024, time.March, 10)}
	for d := 1; d <= 31; d++ {
		got := rs.IsDisabled(date(2024, time.March, d))
		if want := d < 10; got != want {
			t.Fatalf("2024-03-%02d disabled=%v want %v", d, got, want)
		}
	}
}

func TestMaxDateDisablesLaterDays(t *testing.T) {
	rs := &RuleSet{MaxDate: date(2024, time.March, 20)}
	if rs.IsDisabled(date(2024, time.March, 20)) {
		t.Fatalf("max date itself should stay enabled")
	}
	if !rs.IsDisabled(date(2024, time.March, 21)) {
		t.Fatalf("day after max date should be disabled")
	}
}

func TestIsDisabledPredicates(t *testing.T) {
	anchor := time.Date(2024, time.May, 15, 17, 30, 0, 0, time.UTC)
	rs := &RuleSet{
		DisabledWeekdays:          []time.Weekday{time.Monday},
		DisablePastDaysRelativeTo: anchor,
		DisabledDates: []DateSpec{
			On(date(2024, time.May, 22)),
			Between(time.Date(2024, time.May, 25, 13, 0, 0, 0, time.UTC), date(2024, time.May, 27)),
		},
	}
	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"monday", date(2024, time.May, 20), true},
		{"past", date(2024, time.May, 14), true},
		{"anchor day", date(2024, time.May, 15), false},
		{"single date", date(2024, time.May, 22), true},
		{"range start normalised", date(2024, time.May, 25), true},
		{"range inside", date(2024, time.May, 26), true},
		{"range end inclusive", date(2024, time.May, 28), false},
		{"plain day", date(2024, time.May, 23), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rs.IsDisabled(tt.day); got != tt.want {
				t.Fatalf("IsDisabled(%s)=%v want %v", tt.day.Format(time.DateOnly), got, tt.want)
			}
		})
	}
}

func TestHighlightLastRuleWins(t *testing.T) {
	rs := &RuleSet{
		Highlights: []HighlightRule{
			{Days: []DateSpec{Between(date(2024, time.June, 1), date(2024, time.June, 10))}, Title: "Trip", Color: "#fff", Background: "#00f"},
			{Days: []DateSpec{On(date(2024, time.June, 5))}, Title: "Birthday", Color: "#f00"},
		},
	}
	got, ok := rs.HighlightFor(date(2024, time.June, 5))
	if !ok {
		t.Fatalf("expected highlight")
	}
	want := Highlight{Title: "Birthday", Color: "#f00", Background: "#00f"}
	if got != want {
		t.Fatalf("HighlightFor=%+v want %+v", got, want)
	}
	if _, ok := rs.HighlightFor(date(2024, time.June, 11)); ok {
		t.Fatalf("day outside every rule should not be highlighted")
	}
}

func TestDisabledDayIsNeverHighlighted(t *testing.T) {
	rs := &RuleSet{
		DisabledWeekdays: []time.Weekday{time.Sunday},
		Highlights:       []HighlightRule{{Days: []DateSpec{On(date(2024, time.June, 2))}, Title: "Sunday"}},
	}
	if _, ok := rs.HighlightFor(date(2024, time.June, 2)); ok {
		t.Fatalf("disabled day must not be highlighted")
	}
}

func TestRecurringSpec(t *testing.T) {
	spec, err := Recurring("RRULE:FREQ=WEEKLY;BYDAY=FR", date(2024, time.January, 1))
	if err != nil {
		t.Fatalf("Recurring: %v", err)
	}
	if !spec.IsRecurring() || spec.IsRange() {
		t.Fatalf("unexpected spec kind")
	}
	if !spec.Matches(date(2024, time.March, 8)) {
		t.Fatalf("expected Friday to match")
	}
	if spec.Matches(date(2024, time.March, 9)) {
		t.Fatalf("Saturday should not match")
	}

	yearly, err := Recurring("FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25", date(2000, time.January, 1))
	if err != nil {
		t.Fatalf("Recurring: %v", err)
	}
	if !yearly.Matches(date(2031, time.December, 25)) {
		t.Fatalf("expected Christmas 2031 to match")
	}
}

func TestRecurringErrors(t *testing.T) {
	if _, err := Recurring("FREQ=DAILY", time.Time{}); !errors.Is(err, ErrRecurrence) {
		t.Fatalf("expected ErrRecurrence without start, got %v", err)
	}
	if _, err := Recurring("FREQ=SOMETIMES", date(2024, time.January, 1)); !errors.Is(err, ErrRecurrence) {
		t.Fatalf("expected ErrRecurrence for bad rule, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		rs   RuleSet
		want error
	}{
		{"empty", RuleSet{}, nil},
		{"week start", RuleSet{WeekStart: 7}, ErrInvalidWeekday},
		{"disabled weekday", RuleSet{DisabledWeekdays: []time.Weekday{-1}}, ErrInvalidWeekday},
		{"min after max", RuleSet{MinDate: date(2024, 2, 1), MaxDate: date(2024, 1, 1)}, ErrMinAfterMax},
		{"inverted range", RuleSet{DisabledDates: []DateSpec{Between(date(2024, 2, 1), date(2024, 1, 1))}}, ErrInvertedRange},
		{"zero date", RuleSet{DisabledDates: []DateSpec{{}}}, ErrZeroDate},
		{"empty highlight", RuleSet{Highlights: []HighlightRule{{Title: "x"}}}, ErrEmptyHighlightDays},
		{"bad highlight day", RuleSet{Highlights: []HighlightRule{{Days: []DateSpec{Between(date(2024, 3, 2), date(2024, 3, 1))}}}}, ErrInvertedRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rs.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate()=%v want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate()=%v want %v", err, tt.want)
			}
		})
	}
}
