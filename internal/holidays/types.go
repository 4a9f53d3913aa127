package holidays

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HolidayEntry is one dated entry of the holiday data: a day off, or a
// make-up working day when Holiday is false. Other fields of the data file
// are ignored.
type HolidayEntry struct {
	Name    string
	Holiday bool
}

// UnmarshalJSON accepts the holiday flag as a boolean or as a string, where
// any non-empty string other than "false" counts as a holiday.
func (h *HolidayEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name    string          `json:"name"`
		Holiday json.RawMessage `json:"holiday"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	h.Name = raw.Name
	h.Holiday = false
	if len(raw.Holiday) == 0 {
		return nil
	}
	var flag any
	if err := json.Unmarshal(raw.Holiday, &flag); err != nil {
		return fmt.Errorf("holiday flag of %q: %w", raw.Name, err)
	}
	switch v := flag.(type) {
	case bool:
		h.Holiday = v
	case string:
		h.Holiday = v != "" && !strings.EqualFold(v, "false")
	}
	return nil
}

// HolidayData is the layout of a holiday data file: one entry per year, each
// mapping "MM-DD" to the entry for that date.
type HolidayData []struct {
	Year    string                   `json:"year"`
	Holiday map[string]*HolidayEntry `json:"holiday"`
}

// Palette colors the rules produced from holiday data.
type Palette struct {
	Holiday string // days off
	Workday string // make-up working days
}

// DefaultPalette matches the renderer's holiday legend.
var DefaultPalette = Palette{
	Holiday: "#3B82F6",
	Workday: "#F97316",
}
