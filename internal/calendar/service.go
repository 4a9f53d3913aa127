package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	calendarlib "github.com/Lofanmi/chinese-calendar-golang/calendar"
	"github.com/lululau/pickcal/internal/rules"
)

// Supported Gregorian year range enforced by the upstream lunar library.
const (
	MinSupportedYear = 1900
	MaxSupportedYear = 3000
)

// Request is the visible-month cursor: a year/month plus the anchor day used
// while navigating.
type Request struct {
	Year  int
	Month int
	Day   int
}

// Normalize keeps the month within 1..12 by rolling the year value.
func (r Request) Normalize() Request {
	for r.Month > 12 {
		r.Month -= 12
		r.Year++
	}
	for r.Month < 1 {
		r.Month += 12
		r.Year--
	}
	if r.Day < 1 {
		r.Day = 1
	}
	return r
}

// NextMonth moves the request to the following month.
func (r Request) NextMonth() Request {
	r.Month++
	return r.Normalize()
}

// PreviousMonth moves the request to the preceding month.
func (r Request) PreviousMonth() Request {
	r.Month--
	return r.Normalize()
}

// NextYear moves to the following year.
func (r Request) NextYear() Request {
	r.Year++
	return r
}

// PreviousYear moves to the preceding year.
func (r Request) PreviousYear() Request {
	r.Year--
	return r
}

// Value is the canonical identity of a day for selection membership. Exactly
// one field is meaningful: Text when a display format is configured, else
// Timestamp.
type Value struct {
	Timestamp int64
	Text      string
}

func (v Value) String() string {
	if v.Text != "" {
		return v.Text
	}
	return strconv.FormatInt(v.Timestamp, 10)
}

// TimestampValue is the default canonical projection.
func TimestampValue(day time.Time) Value {
	return Value{Timestamp: day.Unix()}
}

// Selection answers membership queries while a month is built.
type Selection interface {
	Contains(v Value) bool
}

// Day describes one calendar day of the visible month.
type Day struct {
	Date          time.Time // local midnight
	Number        int
	Timestamp     int64
	Weekday       time.Weekday
	Value         Value
	IsWeekend     bool
	IsDisabled    bool
	IsToday       bool
	IsSelected    bool
	IsHighlighted bool
	Highlight     rules.Highlight
	// Lunar is the lunar day alias, solar term or lunar month name.
	Lunar string
}

// MonthView is one built month.
type MonthView struct {
	Year      int
	Month     time.Month
	WeekStart time.Weekday
	Offset    int
	Weekdays  []time.Weekday
	Days      []Day
}

// Weeks tiles the days into rows of seven; blank cells are nil.
func (v MonthView) Weeks() [][]*Day {
	cells := make([]*Day, v.Offset, v.Offset+len(v.Days)+6)
	for i := range v.Days {
		cells = append(cells, &v.Days[i])
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}
	weeks := make([][]*Day, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// Find returns the day with the given day-of-month number.
func (v MonthView) Find(number int) (Day, bool) {
	if number < 1 || number > len(v.Days) {
		return Day{}, false
	}
	return v.Days[number-1], true
}

// Service builds day descriptors. It holds no per-build state.
type Service struct {
	now       func() time.Time
	loc       *time.Location
	canonical func(time.Time) Value
	lunar     bool
}

// Option configures the Service.
type Option func(*Service)

// WithNow overrides the clock, which is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLocation sets the zone whose midnights identify days.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithCanonical sets the projection of a day onto its selection value.
func WithCanonical(fn func(time.Time) Value) Option {
	return func(s *Service) {
		if fn != nil {
			s.canonical = fn
		}
	}
}

// WithLunar attaches lunar labels to every day.
func WithLunar(enabled bool) Option {
	return func(s *Service) {
		s.lunar = enabled
	}
}

// NewService constructs a Service.
func NewService(opts ...Option) *Service {
	s := &Service{
		now:       time.Now,
		loc:       time.Local,
		canonical: TimestampValue,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	// ErrYearOutOfRange indicates the requested year is unsupported.
	ErrYearOutOfRange = fmt.Errorf("year must be between %d and %d", MinSupportedYear, MaxSupportedYear)
	// ErrInvalidMonth indicates the month is not in the 1..12 range.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
)

// Location returns the zone used for day identity.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Now returns the current instant of the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Midnight returns the local midnight of t's calendar date.
func (s *Service) Midnight(t time.Time) time.Time {
	y, m, d := t.In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

// Month builds the descriptors of every day of the requested month.
func (s *Service) Month(year, month int, rs *rules.RuleSet, sel Selection) (MonthView, error) {
	if year < MinSupportedYear || year > MaxSupportedYear {
		return MonthView{}, ErrYearOutOfRange
	}
	if month < 1 || month > 12 {
		return MonthView{}, ErrInvalidMonth
	}
	if rs == nil {
		rs = &rules.RuleSet{}
	}

	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	count := DaysInMonth(year, time.Month(month))
	today := s.Midnight(s.now())

	days := make([]Day, count)
	for i := range days {
		days[i] = s.buildDay(time.Date(year, time.Month(month), i+1, 0, 0, 0, 0, s.loc), rs, sel, today)
	}

	return MonthView{
		Year:      year,
		Month:     time.Month(month),
		WeekStart: rs.WeekStart,
		Offset:    LeadingOffset(firstDay.Weekday(), rs.WeekStart),
		Weekdays:  OrderedWeekdays(rs.WeekStart),
		Days:      days,
	}, nil
}

// Span builds the descriptors of every day from `from` to `to`, both
// included, regardless of month boundaries.
func (s *Service) Span(from, to time.Time, rs *rules.RuleSet, sel Selection) ([]Day, error) {
	from, to = s.Midnight(from), s.Midnight(to)
	if from.Year() < MinSupportedYear || to.Year() > MaxSupportedYear {
		return nil, ErrYearOutOfRange
	}
	if to.Before(from) {
		return nil, nil
	}
	if rs == nil {
		rs = &rules.RuleSet{}
	}
	today := s.Midnight(s.now())
	var days []Day
	for cursor := from; !cursor.After(to); cursor = cursor.AddDate(0, 0, 1) {
		days = append(days, s.buildDay(cursor, rs, sel, today))
	}
	return days, nil
}

func (s *Service) buildDay(day time.Time, rs *rules.RuleSet, sel Selection, today time.Time) Day {
	value := s.canonical(day)
	out := Day{
		Date:       day,
		Number:     day.Day(),
		Timestamp:  day.Unix(),
		Weekday:    day.Weekday(),
		Value:      value,
		IsWeekend:  rules.IsWeekend(day.Weekday()),
		IsDisabled: rs.IsDisabled(day),
		IsToday:    sameDay(day, today),
		IsSelected: sel != nil && sel.Contains(value),
	}
	if h, ok := rs.HighlightFor(day); ok {
		out.IsHighlighted = true
		out.Highlight = h
	}
	if s.lunar {
		out.Lunar = lunarLabel(day)
	}
	return out
}

// lunarLabel prefers the solar term, then the lunar month name on the first
// day of a lunar month, then the lunar day.
func lunarLabel(day time.Time) string {
	cal := calendarlib.BySolar(
		int64(day.Year()),
		int64(day.Month()),
		int64(day.Day()),
		12, 0, 0,
	)
	if solarterm := cal.Solar.CurrentSolarterm; solarterm != nil && solarterm.IsInDay(&day) {
		return solarterm.Alias()
	}
	alias := cal.Lunar.DayAlias()
	if month := cal.Lunar.MonthAlias(); alias == "初一" && month != "" {
		return month
	}
	return alias
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
