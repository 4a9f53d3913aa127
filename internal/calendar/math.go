package calendar

import "time"

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// LeadingOffset is the number of blank cells before day 1 when rows start on
// weekStart. Sunday is laid out as the last column unless it is the start.
func LeadingOffset(firstWeekday, weekStart time.Weekday) int {
	if firstWeekday == weekStart {
		return 0
	}
	if firstWeekday == time.Sunday {
		return 7 - int(weekStart)
	}
	return ((int(firstWeekday)-int(weekStart))%7 + 7) % 7
}

// OrderedWeekdays lists the seven weekdays beginning at weekStart.
func OrderedWeekdays(weekStart time.Weekday) []time.Weekday {
	out := make([]time.Weekday, 7)
	for i := range out {
		out[i] = time.Weekday((int(weekStart) + i) % 7)
	}
	return out
}
