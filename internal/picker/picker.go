// Package picker assembles a month calendar widget: it owns the visible-month
// cursor and the selection engine, rebuilds day descriptors whenever either
// changes and runs the caller's hooks.
package picker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lululau/pickcal/internal/calendar"
	"github.com/lululau/pickcal/internal/locale"
	"github.com/lululau/pickcal/internal/rules"
	"github.com/lululau/pickcal/internal/selection"
)

const isoPattern = "yyyy-MM-DD"

// ErrNoLocale is returned when a picker is built without names to display.
var ErrNoLocale = errors.New("picker: locale is required")

// Hook is called with the picker that fired it.
type Hook func(*Picker)

// Hooks are optional callbacks.
type Hooks struct {
	OnLoad   Hook // after the first build
	OnChange Hook // after Prev, Next and GoTo
	OnSelect Hook // after every accepted click
	OnClear  Hook // after Clear
}

// Picker is one calendar widget instance.
type Picker struct {
	svc     *calendar.Service
	svcOpts []calendar.Option
	rules   *rules.RuleSet
	locale  *locale.Locale

	format     string
	formatter  locale.Formatter
	monthShort bool
	weekShort  bool

	engine *selection.Engine
	mode   selection.Mode

	defaultDate time.Time
	today       time.Time
	cursor      calendar.Request
	view        calendar.MonthView

	hooks  Hooks
	logger *slog.Logger
}

// Option configures a Picker.
type Option func(*Picker)

// WithServiceOptions passes options to the day descriptor builder.
func WithServiceOptions(opts ...calendar.Option) Option {
	return func(p *Picker) {
		p.svcOpts = append(p.svcOpts, opts...)
	}
}

// WithMode sets the initial selection mode.
func WithMode(m selection.Mode) Option {
	return func(p *Picker) {
		p.mode = m
	}
}

// WithFormat stores selections as strings rendered with pattern.
func WithFormat(pattern string) Option {
	return func(p *Picker) {
		p.format = pattern
	}
}

// WithFormatter replaces the pattern formatter.
func WithFormatter(f locale.Formatter) Option {
	return func(p *Picker) {
		if f != nil {
			p.formatter = f
		}
	}
}

// WithShortNames picks abbreviated month and weekday names for labels.
func WithShortNames(month, week bool) Option {
	return func(p *Picker) {
		p.monthShort = month
		p.weekShort = week
	}
}

// WithDefaultDate opens the picker on the month of t instead of today.
func WithDefaultDate(t time.Time) Option {
	return func(p *Picker) {
		p.defaultDate = t
	}
}

// WithHooks installs the callbacks.
func WithHooks(h Hooks) Option {
	return func(p *Picker) {
		p.hooks = h
	}
}

// WithLogger sets the logger; the default discards records.
func WithLogger(l *slog.Logger) Option {
	return func(p *Picker) {
		if l != nil {
			p.logger = l
		}
	}
}

// New validates the configuration, builds the first month and fires OnLoad.
func New(rs *rules.RuleSet, loc *locale.Locale, opts ...Option) (*Picker, error) {
	if loc == nil {
		return nil, ErrNoLocale
	}
	if err := loc.Validate(); err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	if rs == nil {
		rs = &rules.RuleSet{}
	}
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("picker: invalid rules: %w", err)
	}

	p := &Picker{
		rules:  rs,
		locale: loc,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}

	svcOpts := append([]calendar.Option{}, p.svcOpts...)
	if p.format != "" {
		svcOpts = append(svcOpts, calendar.WithCanonical(p.formatted))
	}
	p.svc = calendar.NewService(svcOpts...)
	if p.formatter == nil {
		p.formatter = locale.PatternFormatter{Location: p.svc.Location()}
	}
	p.engine = selection.New(p.mode)

	p.today = p.svc.Now()
	start := p.today
	if !p.defaultDate.IsZero() {
		start = p.defaultDate
	}
	start = start.In(p.svc.Location())
	cursor := calendar.Request{Year: start.Year(), Month: int(start.Month()), Day: 1}
	if err := p.show(cursor); err != nil {
		return nil, err
	}
	p.logger.Debug("picker loaded", "year", cursor.Year, "month", cursor.Month, "mode", p.engine.Mode())
	p.fire(p.hooks.OnLoad)
	return p, nil
}

func (p *Picker) formatted(day time.Time) calendar.Value {
	return calendar.Value{Text: p.formatter.Format(day.Unix(), p.format, p.locale)}
}

// show rebuilds the grid for cursor and commits the cursor only on success.
func (p *Picker) show(cursor calendar.Request) error {
	cursor = cursor.Normalize()
	view, err := p.svc.Month(cursor.Year, cursor.Month, p.rules, p.engine)
	if err != nil {
		return err
	}
	p.cursor = cursor
	p.view = view
	return nil
}

func (p *Picker) refresh() {
	if err := p.show(p.cursor); err != nil {
		// The cursor was valid when it was committed.
		p.logger.Error("rebuild failed", "err", err)
	}
}

func (p *Picker) fire(h Hook) {
	if h != nil {
		h(p)
	}
}

// Prev moves to the previous month.
func (p *Picker) Prev() error {
	return p.navigate(p.cursor.PreviousMonth())
}

// Next moves to the next month.
func (p *Picker) Next() error {
	return p.navigate(p.cursor.NextMonth())
}

// GoTo moves to an arbitrary month; month may be outside 1..12 and is
// normalised.
func (p *Picker) GoTo(year, month int) error {
	return p.navigate(calendar.Request{Year: year, Month: month, Day: p.cursor.Day})
}

func (p *Picker) navigate(to calendar.Request) error {
	if err := p.show(to); err != nil {
		p.logger.Debug("navigation refused", "year", to.Year, "month", to.Month, "err", err)
		return err
	}
	p.logger.Debug("navigated", "year", p.cursor.Year, "month", p.cursor.Month)
	p.fire(p.hooks.OnChange)
	return nil
}

// GoToday shows the month containing the instant the picker was created.
// The selection is kept.
func (p *Picker) GoToday() error {
	t := p.today.In(p.svc.Location())
	return p.show(calendar.Request{Year: t.Year(), Month: int(t.Month()), Day: 1})
}

// Clear resets the anchor day, empties the selection and fires OnClear.
func (p *Picker) Clear() error {
	p.engine.Clear()
	cursor := p.cursor
	cursor.Day = 1
	if err := p.show(cursor); err != nil {
		return err
	}
	p.logger.Debug("selection cleared")
	p.fire(p.hooks.OnClear)
	return nil
}

// SetRange toggles range mode.
func (p *Picker) SetRange() {
	p.engine.SetRange()
	p.logger.Debug("mode changed", "mode", p.engine.Mode())
}

// Click applies a click on a day of the visible month. It reports false when
// the day does not exist or the click was ignored.
func (p *Picker) Click(number int) bool {
	day, ok := p.view.Find(number)
	if !ok {
		return false
	}
	if !p.engine.Click(day) {
		p.logger.Debug("click ignored", "day", day.Date.Format(time.DateOnly), "disabled", day.IsDisabled)
		return false
	}
	p.refresh()
	p.logger.Debug("day clicked", "day", day.Date.Format(time.DateOnly), "selected", len(p.engine.Selected()))
	p.fire(p.hooks.OnSelect)
	return true
}

// Hover previews a range ending on a day of the visible month. The first
// endpoint may lie in an earlier month.
func (p *Picker) Hover(number int) bool {
	day, ok := p.view.Find(number)
	if !ok {
		return false
	}
	eps := p.engine.Endpoints()
	if p.engine.Mode() != selection.Range || len(eps) != 1 || day.Timestamp < eps[0].Timestamp {
		return false
	}
	walk, err := p.svc.Span(eps[0].Date, day.Date, p.rules, p.engine)
	if err != nil {
		p.logger.Error("range preview failed", "err", err)
		return false
	}
	if !p.engine.Hover(day, walk) {
		return false
	}
	p.refresh()
	return true
}

// View returns the current month grid.
func (p *Picker) View() calendar.MonthView {
	return p.view
}

// Days returns the descriptors of the visible month.
func (p *Picker) Days() []calendar.Day {
	return p.view.Days
}

// Cursor returns the visible-month cursor.
func (p *Picker) Cursor() calendar.Request {
	return p.cursor
}

// Selected returns the selected values in selection order.
func (p *Picker) Selected() []calendar.Value {
	return p.engine.Selected()
}

// Display renders a selected value for people: the formatted text when a
// format is configured, else the ISO date.
func (p *Picker) Display(v calendar.Value) string {
	if v.Text != "" {
		return v.Text
	}
	return p.formatter.Format(v.Timestamp, isoPattern, p.locale)
}

// Endpoints returns the range boundaries clicked so far.
func (p *Picker) Endpoints() []calendar.Day {
	return p.engine.Endpoints()
}

// Mode reports the selection mode.
func (p *Picker) Mode() selection.Mode {
	return p.engine.Mode()
}

// Peek builds the month offset months after the visible one without moving
// the cursor or firing hooks.
func (p *Picker) Peek(offset int) (calendar.MonthView, error) {
	if offset == 0 {
		return p.view, nil
	}
	to := calendar.Request{Year: p.cursor.Year, Month: p.cursor.Month + offset, Day: 1}.Normalize()
	return p.svc.Month(to.Year, to.Month, p.rules, p.engine)
}

// Label is the month name followed by the year.
func (p *Picker) Label() string {
	return p.LabelFor(p.view)
}

// LabelFor is Label for any built month.
func (p *Picker) LabelFor(v calendar.MonthView) string {
	return p.locale.MonthName(v.Month, p.monthShort) + " " + fmt.Sprint(v.Year)
}

// WeekdayLabels returns the column headers starting at the week start.
func (p *Picker) WeekdayLabels() []string {
	out := make([]string, len(p.view.Weekdays))
	for i, wd := range p.view.Weekdays {
		out[i] = p.locale.WeekdayName(wd, p.weekShort)
	}
	return out
}
