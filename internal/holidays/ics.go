package holidays

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/lululau/pickcal/internal/rules"
)

// LoadICSFile reads an iCalendar file and converts its events into highlight
// rules. See LoadICS.
func LoadICSFile(path string, color string, loc *time.Location) ([]rules.HighlightRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ics file: %w", err)
	}
	defer f.Close()
	return LoadICS(f, color, loc)
}

// LoadICS converts every VEVENT into one highlight rule titled with its
// SUMMARY. All-day events cover DTSTART up to the day before DTEND; timed
// events cover the dates they touch; RRULE events recur from DTSTART.
// Events that cannot be read are logged and skipped.
func LoadICS(r io.Reader, color string, loc *time.Location) ([]rules.HighlightRule, error) {
	if loc == nil {
		loc = time.Local
	}
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ics: %w", err)
	}

	var out []rules.HighlightRule
	for _, ev := range cal.Events() {
		spec, err := eventDays(ev, loc)
		if err != nil {
			slog.Warn("skipping ics event", "uid", propValue(ev, ical.ComponentPropertyUniqueId), "err", err)
			continue
		}
		out = append(out, rules.HighlightRule{
			Days:  []rules.DateSpec{spec},
			Title: propValue(ev, ical.ComponentPropertySummary),
			Color: color,
		})
	}
	return out, nil
}

func eventDays(ev *ical.VEvent, loc *time.Location) (rules.DateSpec, error) {
	allDay := isAllDay(ev)

	var (
		start, end time.Time
		err        error
	)
	if allDay {
		start, err = ev.GetAllDayStartAt()
	} else {
		start, err = ev.GetStartAt()
		start = start.In(loc)
	}
	if err != nil {
		return rules.DateSpec{}, err
	}
	start = dateIn(start, loc)

	if rrule := propValue(ev, ical.ComponentPropertyRrule); rrule != "" {
		return rules.Recurring(rrule, start)
	}

	if allDay {
		end, err = ev.GetAllDayEndAt()
		if err != nil {
			return rules.On(start), nil
		}
		// DTEND of an all-day event is exclusive.
		end = dateIn(end, loc).AddDate(0, 0, -1)
	} else {
		startAt, _ := ev.GetStartAt()
		end, err = ev.GetEndAt()
		if err != nil || !end.After(startAt) {
			return rules.On(start), nil
		}
		// DTEND is exclusive: an event ending at midnight does not touch
		// the next day.
		end = dateIn(end.In(loc).Add(-time.Nanosecond), loc)
	}
	if !end.After(start) {
		return rules.On(start), nil
	}
	return rules.Between(start, end), nil
}

func isAllDay(ev *ical.VEvent) bool {
	prop := ev.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil {
		return false
	}
	if vs, ok := prop.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(prop.Value, "T")
}

func propValue(ev *ical.VEvent, p ical.ComponentProperty) string {
	if prop := ev.GetProperty(p); prop != nil {
		return prop.Value
	}
	return ""
}

// dateIn keeps the calendar date of t and pins it to midnight in loc.
func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
