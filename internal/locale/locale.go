// Package locale provides month and weekday names and the date formatter
// used for formatted selection values.
package locale

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"golang.org/x/text/language"
)

//go:embed langs/*.json
var langFS embed.FS

var (
	// ErrIncompleteLocale indicates a locale missing some names.
	ErrIncompleteLocale = errors.New("locale needs 12 months and 7 days in both long and short forms")
	// ErrUnknownLanguage indicates no bundled language matches the request.
	ErrUnknownLanguage = errors.New("no language file matches")
)

// Locale holds names indexed from January and from Sunday.
type Locale struct {
	Tag         string   `json:"-"`
	Months      []string `json:"months"`
	MonthsShort []string `json:"monthsShort"`
	Days        []string `json:"days"`
	DaysShort   []string `json:"daysShort"`
}

// Validate checks that every name list is complete.
func (l *Locale) Validate() error {
	if l == nil || len(l.Months) != 12 || len(l.MonthsShort) != 12 || len(l.Days) != 7 || len(l.DaysShort) != 7 {
		return ErrIncompleteLocale
	}
	return nil
}

// MonthName returns the long or short name of m.
func (l *Locale) MonthName(m time.Month, short bool) string {
	if short {
		return l.MonthsShort[m-1]
	}
	return l.Months[m-1]
}

// WeekdayName returns the long or short name of d.
func (l *Locale) WeekdayName(d time.Weekday, short bool) string {
	if short {
		return l.DaysShort[d]
	}
	return l.Days[d]
}

// Languages lists the bundled language tags.
func Languages() []language.Tag {
	entries, err := langFS.ReadDir("langs")
	if err != nil {
		return nil
	}
	tags := make([]language.Tag, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".json")
		if tag, err := language.Parse(name); err == nil {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Load returns the bundled locale closest to lang ("en", "pt-BR", "zh-Hans").
func Load(lang string) (*Locale, error) {
	want, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}
	tags := Languages()
	if len(tags) == 0 {
		return nil, ErrUnknownLanguage
	}
	_, idx, conf := language.NewMatcher(tags).Match(want)
	if conf == language.No {
		return nil, fmt.Errorf("%w %q", ErrUnknownLanguage, lang)
	}
	tag := tags[idx]
	data, err := langFS.ReadFile(path.Join("langs", tag.String()+".json"))
	if err != nil {
		return nil, err
	}
	l, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("language %s: %w", tag, err)
	}
	l.Tag = tag.String()
	return l, nil
}

// LoadFile reads a language file in the bundled JSON layout.
func LoadFile(path string) (*Locale, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read language file: %w", err)
	}
	l, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("language file %s: %w", path, err)
	}
	return l, nil
}

func decode(data []byte) (*Locale, error) {
	var l Locale
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse language JSON: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}
