// Package selection tracks which days are picked in single, multi or range
// mode. The engine only sees day descriptors; it never reads rules itself, so
// a day's IsDisabled flag decides whether an intent is honoured.
package selection

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lululau/pickcal/internal/calendar"
)

// Mode is the selection behaviour.
type Mode int

const (
	Single Mode = iota
	Multi
	Range
)

func (m Mode) String() string {
	switch m {
	case Single:
		return "single"
	case Multi:
		return "multi"
	case Range:
		return "range"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts the names returned by String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single":
		return Single, nil
	case "multi", "multiple":
		return Multi, nil
	case "range":
		return Range, nil
	}
	return Single, fmt.Errorf("unknown selection mode %q", s)
}

// Engine owns the selection state of one picker.
type Engine struct {
	mode      Mode
	base      Mode // restored when range mode is toggled off
	selected  []calendar.Value
	temporary []calendar.Value
	endpoints []calendar.Day
}

// New returns an empty engine in mode.
func New(mode Mode) *Engine {
	base := mode
	if base == Range {
		base = Single
	}
	return &Engine{mode: mode, base: base}
}

// Mode reports the active mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Selected returns a copy of the selected values in selection order.
func (e *Engine) Selected() []calendar.Value {
	return slices.Clone(e.selected)
}

// Temporary returns the values added by an unfinished range preview.
func (e *Engine) Temporary() []calendar.Value {
	return slices.Clone(e.temporary)
}

// Endpoints returns the clicked range boundaries.
func (e *Engine) Endpoints() []calendar.Day {
	return slices.Clone(e.endpoints)
}

// Contains implements calendar.Selection.
func (e *Engine) Contains(v calendar.Value) bool {
	return slices.Contains(e.selected, v)
}

// Click applies a click on day and reports whether the state changed.
// Disabled days are ignored in every mode.
func (e *Engine) Click(day calendar.Day) bool {
	if day.IsDisabled {
		return false
	}
	switch e.mode {
	case Multi:
		if i := slices.Index(e.selected, day.Value); i >= 0 {
			e.selected = slices.Delete(e.selected, i, i+1)
		} else {
			e.selected = append(e.selected, day.Value)
		}
		e.temporary = removeValue(e.temporary, day.Value)
		return true
	case Range:
		return e.clickRange(day)
	default:
		e.selected = []calendar.Value{day.Value}
		e.temporary = nil
		return true
	}
}

func (e *Engine) clickRange(day calendar.Day) bool {
	switch len(e.endpoints) {
	case 2:
		e.endpoints = []calendar.Day{day}
		e.selected = []calendar.Value{day.Value}
		e.temporary = nil
	case 1:
		if day.Timestamp < e.endpoints[0].Timestamp {
			return false
		}
		e.endpoints = append(e.endpoints, day)
		if !e.Contains(day.Value) {
			e.selected = append(e.selected, day.Value)
		}
		e.temporary = nil
	default:
		// Picks made before the range started are kept.
		e.endpoints = []calendar.Day{day}
		if !e.Contains(day.Value) {
			e.selected = append(e.selected, day.Value)
		}
		e.temporary = nil
	}
	return true
}

// Hover previews a range ending at day. walk must cover the days from the
// first endpoint to day in ascending order; days outside that interval are
// skipped. It reports whether the preview was recomputed.
func (e *Engine) Hover(day calendar.Day, walk []calendar.Day) bool {
	if e.mode != Range || len(e.endpoints) != 1 || day.IsDisabled {
		return false
	}
	start := e.endpoints[0]
	if day.Timestamp < start.Timestamp {
		return false
	}
	e.selected = e.selected[:0]
	e.temporary = e.temporary[:0]
	for _, d := range walk {
		if d.Timestamp < start.Timestamp || d.Timestamp > day.Timestamp || d.IsDisabled {
			continue
		}
		e.selected = append(e.selected, d.Value)
		e.temporary = append(e.temporary, d.Value)
	}
	if !e.Contains(start.Value) {
		e.selected = slices.Insert(e.selected, 0, start.Value)
	}
	return true
}

// Clear empties the selection, the preview and the range endpoints.
func (e *Engine) Clear() {
	e.selected = nil
	e.temporary = nil
	e.endpoints = nil
}

// SetRange toggles between range mode and the previous mode. Existing
// selections are kept as they are.
func (e *Engine) SetRange() {
	if e.mode == Range {
		e.mode = e.base
		return
	}
	e.base = e.mode
	e.mode = Range
}

func removeValue(values []calendar.Value, v calendar.Value) []calendar.Value {
	return slices.DeleteFunc(values, func(x calendar.Value) bool { return x == v })
}
