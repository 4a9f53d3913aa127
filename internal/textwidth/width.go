// Package textwidth measures strings in terminal columns.
package textwidth

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StringWidth returns the widest line of s in monospace columns. Wide and
// fullwidth East Asian runes take two columns; ANSI colour sequences none.
func StringWidth(s string) int {
	if s == "" {
		return 0
	}
	maxWidth := 0
	for _, line := range strings.Split(s, "\n") {
		if w := lineWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// PadRight appends spaces until the rendered width matches target.
func PadRight(s string, target int) string {
	diff := target - StringWidth(s)
	if diff <= 0 {
		return s
	}
	return s + strings.Repeat(" ", diff)
}

// PadLeft prepends spaces until the rendered width matches target.
func PadLeft(s string, target int) string {
	diff := target - StringWidth(s)
	if diff <= 0 {
		return s
	}
	return strings.Repeat(" ", diff) + s
}

// Center pads both sides; an odd remainder goes to the right.
func Center(s string, target int) string {
	diff := target - StringWidth(s)
	if diff <= 0 {
		return s
	}
	left := diff / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", diff-left)
}

// Truncate cuts s so that it fits in target columns. Colour sequences are
// dropped when cutting is needed.
func Truncate(s string, target int) string {
	if StringWidth(s) <= target {
		return s
	}
	var sb strings.Builder
	used := 0
	for _, r := range stripANSI(s) {
		w := runeWidth(r)
		if used+w > target {
			break
		}
		sb.WriteRune(r)
		used += w
	}
	return sb.String()
}

func lineWidth(s string) int {
	n := 0
	for _, r := range stripANSI(s) {
		n += runeWidth(r)
	}
	return n
}

func runeWidth(r rune) int {
	if r == '\r' || r < 0x20 {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

func stripANSI(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}
