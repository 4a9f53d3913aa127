package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lululau/pickcal/internal/holidays"
	"github.com/lululau/pickcal/internal/rules"
)

// Weekday accepts either an index (0 = Sunday) or an English day name.
type Weekday time.Weekday

// UnmarshalYAML implements yaml.Unmarshaler.
func (w *Weekday) UnmarshalYAML(node *yaml.Node) error {
	wd, err := ParseWeekday(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*w = Weekday(wd)
	return nil
}

// ParseWeekday parses "0".."6", "sunday".."saturday" or their three-letter
// forms.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("weekday %d: %w", n, rules.ErrInvalidWeekday)
		}
		return time.Weekday(n), nil
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if s == name || s == name[:3] {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// DateEntry is one configured date: a single day, an inclusive [from, to]
// pair or a recurrence {rrule, from}.
type DateEntry struct {
	From  string `yaml:"from"`
	To    string `yaml:"to,omitempty"`
	RRule string `yaml:"rrule,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *DateEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*d = DateEntry{From: node.Value}
		return nil
	case yaml.SequenceNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: a date range needs exactly two dates", node.Line)
		}
		*d = DateEntry{From: node.Content[0].Value, To: node.Content[1].Value}
		return nil
	case yaml.MappingNode:
		type plain DateEntry
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*d = DateEntry(p)
		return nil
	}
	return fmt.Errorf("line %d: unsupported date entry", node.Line)
}

// Spec converts the entry into a rule date spec in loc.
func (d DateEntry) Spec(loc *time.Location) (rules.DateSpec, error) {
	from, err := ParseDate(d.From, loc)
	if err != nil {
		return rules.DateSpec{}, err
	}
	if d.RRule != "" {
		return rules.Recurring(d.RRule, from)
	}
	if d.To == "" {
		return rules.On(from), nil
	}
	to, err := ParseDate(d.To, loc)
	if err != nil {
		return rules.DateSpec{}, err
	}
	return rules.Between(from, to), nil
}

// Highlight is one configured highlight rule.
type Highlight struct {
	Days       []DateEntry `yaml:"days"`
	Title      string      `yaml:"title,omitempty"`
	Color      string      `yaml:"color,omitempty"`
	Background string      `yaml:"background,omitempty"`
}

// Config is the picker configuration file.
type Config struct {
	WeekStart  Weekday `yaml:"week_start"`
	Mode       string  `yaml:"mode"`
	Format     string  `yaml:"format,omitempty"`
	Lang       string  `yaml:"lang"`
	LangFile   string  `yaml:"lang_file,omitempty"`
	MonthShort bool    `yaml:"month_short"`
	WeekShort  bool    `yaml:"week_short"`
	Lunar      bool    `yaml:"lunar"`

	// DefaultDate opens the picker on its month and anchors DisablePastDays.
	DefaultDate     string `yaml:"default_date,omitempty"`
	MinDate         string `yaml:"min_date,omitempty"`
	MaxDate         string `yaml:"max_date,omitempty"`
	DisablePastDays bool   `yaml:"disable_past_days"`

	DisabledWeekdays []Weekday   `yaml:"disabled_weekdays,omitempty"`
	DisabledDates    []DateEntry `yaml:"disabled_dates,omitempty"`
	Highlights       []Highlight `yaml:"highlights,omitempty"`

	// HolidaysFile is holiday JSON data turned into highlights.
	HolidaysFile string `yaml:"holidays_file,omitempty"`
	// ICSFiles are iCalendar files whose events become highlights.
	ICSFiles []string `yaml:"ics_files,omitempty"`
	ICSColor string   `yaml:"ics_color,omitempty"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	return &Config{
		WeekStart: Weekday(time.Sunday),
		Mode:      "single",
		Lang:      "en",
		ICSColor:  "#10B981",
	}
}

// Normalize fills in missing values.
func (c *Config) Normalize() {
	if c.Mode == "" {
		c.Mode = "single"
	}
	if c.Lang == "" {
		c.Lang = "en"
	}
	if c.ICSColor == "" {
		c.ICSColor = "#10B981"
	}
}

// Load reads a YAML configuration file. An empty path yields Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML configuration.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

// ParseDate parses YYYY-MM-DD at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// DefaultTime returns the parsed default date, zero when unset.
func (c *Config) DefaultTime(loc *time.Location) (time.Time, error) {
	if c.DefaultDate == "" {
		return time.Time{}, nil
	}
	return ParseDate(c.DefaultDate, loc)
}

// RuleSet builds the rule set in loc, including highlights read from the
// holiday and iCalendar files. now anchors DisablePastDays when no default
// date is set.
func (c *Config) RuleSet(loc *time.Location, now time.Time) (*rules.RuleSet, error) {
	if loc == nil {
		loc = time.Local
	}
	rs := &rules.RuleSet{WeekStart: time.Weekday(c.WeekStart)}

	var err error
	if c.MinDate != "" {
		if rs.MinDate, err = ParseDate(c.MinDate, loc); err != nil {
			return nil, fmt.Errorf("min_date: %w", err)
		}
	}
	if c.MaxDate != "" {
		if rs.MaxDate, err = ParseDate(c.MaxDate, loc); err != nil {
			return nil, fmt.Errorf("max_date: %w", err)
		}
	}
	if c.DisablePastDays {
		anchor, err := c.DefaultTime(loc)
		if err != nil {
			return nil, fmt.Errorf("default_date: %w", err)
		}
		if anchor.IsZero() {
			anchor = now.In(loc)
		}
		rs.DisablePastDaysRelativeTo = anchor
	}
	for _, wd := range c.DisabledWeekdays {
		rs.DisabledWeekdays = append(rs.DisabledWeekdays, time.Weekday(wd))
	}
	for i, entry := range c.DisabledDates {
		spec, err := entry.Spec(loc)
		if err != nil {
			return nil, fmt.Errorf("disabled_dates[%d]: %w", i, err)
		}
		rs.DisabledDates = append(rs.DisabledDates, spec)
	}

	if c.HolidaysFile != "" {
		data, err := holidays.LoadFromFile(c.HolidaysFile)
		if err != nil {
			return nil, err
		}
		rs.Highlights = append(rs.Highlights, holidays.Rules(data, holidays.DefaultPalette, loc)...)
	}
	for _, path := range c.ICSFiles {
		hl, err := holidays.LoadICSFile(path, c.ICSColor, loc)
		if err != nil {
			return nil, err
		}
		rs.Highlights = append(rs.Highlights, hl...)
	}
	// Configured highlights come last so they win over imported ones.
	for i, h := range c.Highlights {
		rule := rules.HighlightRule{Title: h.Title, Color: h.Color, Background: h.Background}
		for j, entry := range h.Days {
			spec, err := entry.Spec(loc)
			if err != nil {
				return nil, fmt.Errorf("highlights[%d].days[%d]: %w", i, j, err)
			}
			rule.Days = append(rule.Days, spec)
		}
		rs.Highlights = append(rs.Highlights, rule)
	}

	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}
