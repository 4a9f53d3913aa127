package holidays

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/lululau/pickcal/internal/rules"
)

// LoadFromFile loads holiday data from a JSON file.
func LoadFromFile(path string) (map[string]map[string]*HolidayEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holidays file: %w", err)
	}
	return Parse(data)
}

// Parse decodes holiday JSON into year -> "MM-DD" -> entry.
func Parse(data []byte) (map[string]map[string]*HolidayEntry, error) {
	var holidayData HolidayData
	if err := json.Unmarshal(data, &holidayData); err != nil {
		return nil, fmt.Errorf("failed to parse holidays JSON: %w", err)
	}

	result := make(map[string]map[string]*HolidayEntry)
	for _, yearData := range holidayData {
		result[yearData.Year] = yearData.Holiday
	}

	return result, nil
}

// Rules turns holiday data into highlight rules, one per dated entry, titled
// with the holiday name. Days off and make-up workdays get the palette's two
// colors. Rules are ordered by date so later data never hides earlier data by
// accident.
func Rules(data map[string]map[string]*HolidayEntry, palette Palette, loc *time.Location) []rules.HighlightRule {
	if loc == nil {
		loc = time.Local
	}
	var out []rules.HighlightRule
	for yearStr, days := range data {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			continue
		}
		for key, entry := range days {
			if entry == nil {
				continue
			}
			md, err := time.Parse("01-02", key)
			if err != nil {
				continue
			}
			color := palette.Workday
			if entry.Holiday {
				color = palette.Holiday
			}
			out = append(out, rules.HighlightRule{
				Days:  []rules.DateSpec{rules.On(time.Date(year, md.Month(), md.Day(), 0, 0, 0, 0, loc))},
				Title: entry.Name,
				Color: color,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Days[0].Start.Before(out[j].Days[0].Start)
	})
	return out
}
