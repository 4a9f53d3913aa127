package selection

import (
	"slices"
	"testing"
	"time"

	"github.com/lululau/pickcal/internal/calendar"
)

// month returns June 2024 descriptors; days listed in disabled are disabled.
func month(disabled ...int) []calendar.Day {
	days := make([]calendar.Day, 30)
	for i := range days {
		date := time.Date(2024, time.June, i+1, 0, 0, 0, 0, time.UTC)
		days[i] = calendar.Day{
			Date:       date,
			Number:     i + 1,
			Timestamp:  date.Unix(),
			Weekday:    date.Weekday(),
			Value:      calendar.TimestampValue(date),
			IsDisabled: slices.Contains(disabled, i+1),
		}
	}
	return days
}

func values(days []calendar.Day, numbers ...int) []calendar.Value {
	out := make([]calendar.Value, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, days[n-1].Value)
	}
	return out
}

func TestSingleModeReplacesSelection(t *testing.T) {
	days := month()
	e := New(Single)
	e.Click(days[3])
	e.Click(days[8])
	if got, want := e.Selected(), values(days, 9); !slices.Equal(got, want) {
		t.Fatalf("Selected()=%v want %v", got, want)
	}
}

func TestMultiModeToggles(t *testing.T) {
	days := month()
	e := New(Multi)
	if !e.Click(days[6]) {
		t.Fatalf("click should be accepted")
	}
	if got := e.Selected(); !slices.Equal(got, values(days, 7)) {
		t.Fatalf("first click should keep the day, got %v", got)
	}
	e.Click(days[6])
	if got := e.Selected(); len(got) != 0 {
		t.Fatalf("second click should remove the day, got %v", got)
	}

	e.Click(days[1])
	e.Click(days[4])
	e.Click(days[1])
	if got := e.Selected(); !slices.Equal(got, values(days, 5)) {
		t.Fatalf("Selected()=%v want only day 5", got)
	}
}

func TestRangeResetsOnThirdClick(t *testing.T) {
	days := month()
	e := New(Range)
	e.Click(days[4])
	e.Click(days[9])
	eps := e.Endpoints()
	if len(eps) != 2 || eps[0].Number != 5 || eps[1].Number != 10 {
		t.Fatalf("unexpected endpoints %+v", eps)
	}
	if e.Hover(days[7], days) {
		t.Fatalf("hover with a complete range must be a no-op")
	}
	if got := e.Selected(); !slices.Equal(got, values(days, 5, 10)) {
		t.Fatalf("Selected()=%v want days 5 and 10", got)
	}

	e.Click(days[2])
	eps = e.Endpoints()
	if len(eps) != 1 || eps[0].Number != 3 {
		t.Fatalf("unexpected endpoints after reset %+v", eps)
	}
	if got := e.Selected(); !slices.Equal(got, values(days, 3)) {
		t.Fatalf("Selected()=%v want only day 3", got)
	}
}

func TestRangeRejectsEarlierSecondEndpoint(t *testing.T) {
	days := month()
	e := New(Range)
	e.Click(days[9])
	if e.Click(days[4]) {
		t.Fatalf("earlier endpoint should be rejected")
	}
	if eps := e.Endpoints(); len(eps) != 1 || eps[0].Number != 10 {
		t.Fatalf("endpoints changed: %+v", eps)
	}
	if got := e.Selected(); !slices.Equal(got, values(days, 10)) {
		t.Fatalf("Selected()=%v want day 10", got)
	}
}

func TestRangeInvariantHolds(t *testing.T) {
	days := month()
	e := New(Range)
	for _, n := range []int{12, 3, 20, 1, 30, 15, 15, 7, 2, 28} {
		e.Click(days[n-1])
		eps := e.Endpoints()
		if len(eps) > 2 {
			t.Fatalf("more than two endpoints: %+v", eps)
		}
		if len(eps) == 2 && eps[0].Timestamp > eps[1].Timestamp {
			t.Fatalf("endpoints out of order: %d > %d", eps[0].Number, eps[1].Number)
		}
	}
}

func TestHoverPreviewSkipsDisabledDays(t *testing.T) {
	days := month(12, 13)
	e := New(Range)
	e.Click(days[9])
	if !e.Hover(days[14], days) {
		t.Fatalf("hover should recompute the preview")
	}
	want := values(days, 10, 11, 14, 15)
	if got := e.Selected(); !slices.Equal(got, want) {
		t.Fatalf("Selected()=%v want %v", got, want)
	}
	if got := e.Temporary(); !slices.Equal(got, want) {
		t.Fatalf("Temporary()=%v want %v", got, want)
	}

	// Shrinking the preview drops days that are no longer on the walk.
	e.Hover(days[10], days)
	if got := e.Selected(); !slices.Equal(got, values(days, 10, 11)) {
		t.Fatalf("Selected()=%v after shrinking", got)
	}

	e.Click(days[10])
	if got := e.Temporary(); len(got) != 0 {
		t.Fatalf("completed range should leave no temporary values, got %v", got)
	}
	if got := e.Selected(); !slices.Equal(got, values(days, 10, 11)) {
		t.Fatalf("Selected()=%v after completing", got)
	}
}

func TestHoverBeforeStartIsIgnored(t *testing.T) {
	days := month()
	e := New(Range)
	e.Click(days[9])
	if e.Hover(days[3], days) {
		t.Fatalf("hover before endpoint 0 should be ignored")
	}
	if New(Single).Hover(days[3], days) {
		t.Fatalf("hover outside range mode should be ignored")
	}
}

func TestDisabledDayLeavesStateUnchanged(t *testing.T) {
	days := month(8)
	for _, mode := range []Mode{Single, Multi, Range} {
		e := New(mode)
		e.Click(days[2])
		before := e.Selected()
		if e.Click(days[7]) {
			t.Fatalf("%v: disabled click accepted", mode)
		}
		if e.Hover(days[7], days) {
			t.Fatalf("%v: disabled hover accepted", mode)
		}
		if got := e.Selected(); !slices.Equal(got, before) {
			t.Fatalf("%v: selection changed to %v", mode, got)
		}
	}
}

func TestSetRangeTogglesAndKeepsSelection(t *testing.T) {
	days := month()
	e := New(Multi)
	e.Click(days[0])
	e.SetRange()
	if e.Mode() != Range {
		t.Fatalf("expected range mode, got %v", e.Mode())
	}
	if got := e.Selected(); !slices.Equal(got, values(days, 1)) {
		t.Fatalf("SetRange should not clear selection, got %v", got)
	}
	e.SetRange()
	if e.Mode() != Multi {
		t.Fatalf("expected multi mode restored, got %v", e.Mode())
	}
}

func TestFirstRangeClickKeepsEarlierPicks(t *testing.T) {
	days := month()
	e := New(Multi)
	e.Click(days[0])
	e.Click(days[1])
	e.SetRange()
	if !e.Click(days[9]) {
		t.Fatalf("first range click refused")
	}
	if got := e.Selected(); !slices.Equal(got, values(days, 1, 2, 10)) {
		t.Fatalf("Selected()=%v want days 1, 2 and 10", got)
	}
	if eps := e.Endpoints(); len(eps) != 1 || eps[0].Number != 10 {
		t.Fatalf("Endpoints()=%v", eps)
	}

	// The third click starts a fresh range.
	e.Click(days[11])
	e.Click(days[14])
	if got := e.Selected(); !slices.Equal(got, values(days, 15)) {
		t.Fatalf("Selected()=%v want day 15 only", got)
	}
}

func TestClear(t *testing.T) {
	days := month()
	e := New(Range)
	e.Click(days[0])
	e.Hover(days[4], days)
	e.Clear()
	if len(e.Selected()) != 0 || len(e.Temporary()) != 0 || len(e.Endpoints()) != 0 {
		t.Fatalf("Clear left state behind")
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{Single, Multi, Range} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q)=%v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("weekly"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
