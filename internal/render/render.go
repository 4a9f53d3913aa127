package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/pickcal/internal/calendar"
	"github.com/lululau/pickcal/internal/rules"
	"github.com/lululau/pickcal/internal/textwidth"
)

const (
	cellPadding = 1
	minCell     = 3
	blockGap    = "  "
)

var (
	noColorMode bool // Global flag to disable all color output
)

// SetNoColor sets the global no-color flag
func SetNoColor(disable bool) {
	noColorMode = disable
}

// NoColor reports whether colors are disabled.
func NoColor() bool {
	return noColorMode
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FEC260"))
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A5B4FC"))
	cellStyle     = lipgloss.NewStyle()
	weekendStyle  = cellStyle.Foreground(lipgloss.Color("#FCA5A5"))
	todayStyle    = cellStyle.Foreground(lipgloss.Color("#34D399")).Bold(true)
	disabledStyle = cellStyle.Foreground(lipgloss.Color("#6B7280")).Strikethrough(true)
	selectedStyle = cellStyle.
			Foreground(lipgloss.Color("#1F2937")).
			Background(lipgloss.Color("#FEC260")).
			Bold(true)
	focusStyle        = lipgloss.NewStyle().Underline(true).Bold(true)
	legendStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	tableWrapperStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#475569")).
				Padding(0, 1)
)

// Month is what one calendar block shows.
type Month struct {
	Title    string
	Weekdays []string
	View     calendar.MonthView
	// Focus is the day number under the keyboard cursor, 0 for none.
	Focus int
}

// MonthBlock packages rendered lines with their visual width/height.
type MonthBlock struct {
	Lines  []string
	Width  int
	Height int
}

// BuildBlocks converts months into renderable blocks.
func BuildBlocks(months []Month) []MonthBlock {
	blocks := make([]MonthBlock, len(months))
	for i, m := range months {
		blocks[i] = BuildBlock(m)
	}
	return blocks
}

// BuildBlock draws the title, the weekday header and one row per week. A
// second row carries lunar labels when the days have them.
func BuildBlock(m Month) MonthBlock {
	inner := columnWidth(m.View)
	withLunar := hasLunar(m.View)

	rows := make([]string, 0, 2+len(m.View.Days)/7*2)
	header := make([]string, len(m.Weekdays))
	for i, label := range m.Weekdays {
		cell := pad(textwidth.Center(textwidth.Truncate(label, inner), inner))
		if !noColorMode {
			cell = headerStyle.Render(cell)
		}
		header[i] = cell
	}
	rows = append(rows, strings.Join(header, ""), "")

	for _, week := range m.View.Weeks() {
		numbers := make([]string, len(week))
		lunar := make([]string, len(week))
		for i, day := range week {
			if day == nil {
				numbers[i] = strings.Repeat(" ", inner+cellPadding*2)
				lunar[i] = numbers[i]
				continue
			}
			focused := day.Number == m.Focus
			numbers[i] = dayCell(*day, textwidth.PadLeft(strconv.Itoa(day.Number), 2), inner, focused)
			lunar[i] = dayCell(*day, day.Lunar, inner, false)
		}
		rows = append(rows, strings.Join(numbers, ""))
		if withLunar {
			rows = append(rows, strings.Join(lunar, ""))
		}
	}

	grid := strings.Join(rows, "\n")
	title := m.Title
	if !noColorMode {
		grid = tableWrapperStyle.Render(grid)
		title = titleStyle.Render(title)
	}
	gridLines := strings.Split(grid, "\n")
	width := textwidth.StringWidth(grid)
	lines := append([]string{textwidth.Center(title, width), ""}, gridLines...)
	for _, line := range lines {
		width = max(width, textwidth.StringWidth(line))
	}
	return MonthBlock{Lines: lines, Width: width, Height: len(lines)}
}

// dayCell renders one padded cell. Without colors the padding carries
// markers: [x] selected, >x< focus, {x} both, (x) disabled.
func dayCell(day calendar.Day, content string, inner int, focused bool) string {
	body := textwidth.Center(content, inner)
	if noColorMode {
		left, right := " ", " "
		switch {
		case day.IsSelected && focused:
			left, right = "{", "}"
		case day.IsSelected:
			left, right = "[", "]"
		case focused:
			left, right = ">", "<"
		case day.IsDisabled:
			left, right = "(", ")"
		}
		return left + body + right
	}
	style := dayStyle(day)
	if focused {
		body = focusStyle.Inherit(style).Render(body)
		return style.Render(" ") + body + style.Render(" ")
	}
	return style.Render(pad(body))
}

// dayStyle layers, lowest first: weekend, highlight, today, disabled and
// selected.
func dayStyle(day calendar.Day) lipgloss.Style {
	style := cellStyle
	if day.IsWeekend {
		style = weekendStyle
	}
	if day.IsHighlighted {
		style = highlightStyle(style, day.Highlight)
	}
	if day.IsToday {
		style = todayStyle
	}
	if day.IsDisabled {
		style = disabledStyle
	}
	if day.IsSelected {
		style = selectedStyle
	}
	return style
}

func highlightStyle(base lipgloss.Style, h rules.Highlight) lipgloss.Style {
	if h.Color != "" {
		base = base.Foreground(lipgloss.Color(h.Color))
	}
	if h.Background != "" {
		base = base.Background(lipgloss.Color(h.Background))
	}
	return base
}

func pad(s string) string {
	p := strings.Repeat(" ", cellPadding)
	return p + s + p
}

func columnWidth(view calendar.MonthView) int {
	width := minCell
	for _, day := range view.Days {
		width = max(width, textwidth.StringWidth(day.Lunar))
	}
	return width
}

func hasLunar(view calendar.MonthView) bool {
	for _, day := range view.Days {
		if day.Lunar != "" {
			return true
		}
	}
	return false
}

// Layout places blocks side by side, wrapping to a new row when the next
// block would exceed width.
func Layout(blocks []MonthBlock, width int) string {
	if len(blocks) == 0 {
		return ""
	}
	var rows []string
	var current []string
	used := 0
	flush := func() {
		if len(current) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current, used = nil, 0
		}
	}
	for _, block := range blocks {
		need := block.Width
		if used > 0 {
			need += len(blockGap)
		}
		if used > 0 && width > 0 && used+need > width {
			flush()
			need = block.Width
		}
		if used > 0 {
			current = append(current, blockGap)
		}
		padded := make([]string, len(block.Lines))
		for i, line := range block.Lines {
			padded[i] = textwidth.PadRight(line, block.Width)
		}
		current = append(current, strings.Join(padded, "\n"))
		used += need
	}
	flush()
	return strings.Join(rows, "\n\n")
}

// Legend lists the titled highlights shown in the views, each in its own
// colors, in first-seen order.
func Legend(views []calendar.MonthView) string {
	seen := make(map[rules.Highlight]bool)
	var items []string
	for _, view := range views {
		for _, day := range view.Days {
			h := day.Highlight
			if !day.IsHighlighted || h.Title == "" || seen[h] {
				continue
			}
			seen[h] = true
			if noColorMode {
				items = append(items, "* "+h.Title)
				continue
			}
			swatch := highlightStyle(cellStyle, h).Render("■")
			items = append(items, swatch+" "+legendStyle.Render(h.Title))
		}
	}
	return strings.Join(items, "  ")
}
