package rules

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

var (
	// ErrInvalidWeekday indicates a weekday index outside 0..6.
	ErrInvalidWeekday = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
	// ErrEmptyHighlightDays indicates a highlight rule that matches nothing.
	ErrEmptyHighlightDays = errors.New("highlight rule has no days")
	// ErrInvertedRange indicates a date range whose end precedes its start.
	ErrInvertedRange = errors.New("date range ends before it starts")
	// ErrMinAfterMax indicates MinDate is later than MaxDate.
	ErrMinAfterMax = errors.New("min date is after max date")
	// ErrRecurrence indicates an unparsable or unanchored recurrence rule.
	ErrRecurrence = errors.New("invalid recurrence rule")
	// ErrZeroDate indicates a date spec without a date.
	ErrZeroDate = errors.New("date is not set")
)

// DateSpec selects days: a single date, an inclusive range of dates, or a
// recurrence. Endpoints are compared at local midnight of the evaluated day.
type DateSpec struct {
	Start time.Time
	End   time.Time // zero for a single date

	rule   *rrule.RRule
	source string
}

// On matches exactly one date.
func On(t time.Time) DateSpec {
	return DateSpec{Start: t}
}

// Between matches every date from start to end, both included.
func Between(start, end time.Time) DateSpec {
	return DateSpec{Start: start, End: end}
}

// Recurring matches every date produced by an RFC 5545 RRULE, counted from
// the date `from`. The rule may be given with or without the "RRULE:" prefix.
func Recurring(rule string, from time.Time) (DateSpec, error) {
	if from.IsZero() {
		return DateSpec{}, fmt.Errorf("%w: %q has no start date", ErrRecurrence, rule)
	}
	src := strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	r, err := rrule.StrToRRule(src)
	if err != nil {
		return DateSpec{}, fmt.Errorf("%w: %v", ErrRecurrence, err)
	}
	start := midnight(from, from.Location())
	r.DTStart(start)
	return DateSpec{Start: start, rule: r, source: src}, nil
}

// IsRange reports whether d covers an inclusive range.
func (d DateSpec) IsRange() bool {
	return d.rule == nil && !d.End.IsZero()
}

// IsRecurring reports whether d is driven by a recurrence rule.
func (d DateSpec) IsRecurring() bool {
	return d.rule != nil
}

// Rule returns the recurrence source, empty for plain dates.
func (d DateSpec) Rule() string {
	return d.source
}

// Matches reports whether day falls on d. day is expected to be at
// local midnight; its location is used to normalise the dates of d.
func (d DateSpec) Matches(day time.Time) bool {
	loc := day.Location()
	day = midnight(day, loc)
	switch {
	case d.rule != nil:
		next := d.rule.After(day, true)
		return !next.IsZero() && next.Before(day.AddDate(0, 0, 1))
	case d.End.IsZero():
		return day.Equal(midnight(d.Start, loc))
	default:
		return !day.Before(midnight(d.Start, loc)) && !day.After(midnight(d.End, loc))
	}
}

func (d DateSpec) validate() error {
	if d.Start.IsZero() {
		return ErrZeroDate
	}
	if d.rule == nil && !d.End.IsZero() && d.End.Before(d.Start) {
		return fmt.Errorf("%w: %s > %s", ErrInvertedRange, d.Start.Format(time.DateOnly), d.End.Format(time.DateOnly))
	}
	return nil
}

// Highlight carries the presentation attached to a highlighted day.
type Highlight struct {
	Title      string
	Color      string
	Background string
}

// HighlightRule marks Days with an optional title and colors.
type HighlightRule struct {
	Days       []DateSpec
	Title      string
	Color      string
	Background string
}

func (h HighlightRule) matches(day time.Time) bool {
	for _, spec := range h.Days {
		if spec.Matches(day) {
			return true
		}
	}
	return false
}

// RuleSet is the immutable configuration consulted while building a month.
// Zero time values mean "not set".
type RuleSet struct {
	WeekStart                 time.Weekday
	MinDate                   time.Time
	MaxDate                   time.Time
	DisabledWeekdays          []time.Weekday
	DisablePastDaysRelativeTo time.Time
	DisabledDates             []DateSpec
	Highlights                []HighlightRule
}

// Validate reports the first configuration problem, so callers get a single
// diagnostic up front instead of failures while evaluating days.
func (rs *RuleSet) Validate() error {
	if !validWeekday(rs.WeekStart) {
		return fmt.Errorf("week start %d: %w", rs.WeekStart, ErrInvalidWeekday)
	}
	for _, wd := range rs.DisabledWeekdays {
		if !validWeekday(wd) {
			return fmt.Errorf("disabled weekday %d: %w", wd, ErrInvalidWeekday)
		}
	}
	if !rs.MinDate.IsZero() && !rs.MaxDate.IsZero() && rs.MinDate.After(rs.MaxDate) {
		return ErrMinAfterMax
	}
	for i, spec := range rs.DisabledDates {
		if err := spec.validate(); err != nil {
			return fmt.Errorf("disabled date %d: %w", i, err)
		}
	}
	for i, h := range rs.Highlights {
		if len(h.Days) == 0 {
			return fmt.Errorf("highlight rule %d: %w", i, ErrEmptyHighlightDays)
		}
		for j, spec := range h.Days {
			if err := spec.validate(); err != nil {
				return fmt.Errorf("highlight rule %d day %d: %w", i, j, err)
			}
		}
	}
	return nil
}

// IsWeekend reports whether wd is Saturday or Sunday.
func IsWeekend(wd time.Weekday) bool {
	return wd == time.Saturday || wd == time.Sunday
}

// IsDisabled reports whether day can never be selected.
func (rs *RuleSet) IsDisabled(day time.Time) bool {
	loc := day.Location()
	day = midnight(day, loc)
	for _, wd := range rs.DisabledWeekdays {
		if day.Weekday() == wd {
			return true
		}
	}
	if !rs.DisablePastDaysRelativeTo.IsZero() && day.Before(midnight(rs.DisablePastDaysRelativeTo, loc)) {
		return true
	}
	if !rs.MinDate.IsZero() {
		// The boundary is the day before MinDate, inclusive.
		if !day.After(midnight(rs.MinDate, loc).AddDate(0, 0, -1)) {
			return true
		}
	}
	if !rs.MaxDate.IsZero() {
		if !day.Before(midnight(rs.MaxDate, loc).AddDate(0, 0, 1)) {
			return true
		}
	}
	for _, spec := range rs.DisabledDates {
		if spec.Matches(day) {
			return true
		}
	}
	return false
}

// HighlightFor folds every matching highlight rule in declared order, later
// rules overwriting earlier ones field by field. Disabled days are never
// highlighted.
func (rs *RuleSet) HighlightFor(day time.Time) (Highlight, bool) {
	if rs.IsDisabled(day) {
		return Highlight{}, false
	}
	var (
		out     Highlight
		matched bool
	)
	for _, h := range rs.Highlights {
		if !h.matches(day) {
			continue
		}
		matched = true
		if h.Title != "" {
			out.Title = h.Title
		}
		if h.Color != "" {
			out.Color = h.Color
		}
		if h.Background != "" {
			out.Background = h.Background
		}
	}
	return out, matched
}

func validWeekday(wd time.Weekday) bool {
	return wd >= time.Sunday && wd <= time.Saturday
}

// midnight keeps t's own calendar date and pins it to 00:00 in loc.
func midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
