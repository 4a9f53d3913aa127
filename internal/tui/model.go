package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/pickcal/internal/calendar"
	"github.com/lululau/pickcal/internal/picker"
	"github.com/lululau/pickcal/internal/render"
)

// ErrCanceled is returned by Run when the user leaves without confirming.
var ErrCanceled = errors.New("selection canceled")

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	promptStyle = lipgloss.NewStyle().Bold(true)
)

type inputMode int

const (
	inputNone inputMode = iota
	inputYear
	inputMonth
)

// Options tune the interactive view.
type Options struct {
	// Months is the number of months drawn side by side.
	Months int
}

// Run starts the interactive Bubble Tea UI and returns the confirmed
// selection.
func Run(p *picker.Picker, opts Options) ([]calendar.Value, error) {
	m := newModel(p, opts)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	final, err := prog.Run()
	if err != nil {
		return nil, err
	}
	if fm, ok := final.(model); ok && fm.canceled {
		return nil, ErrCanceled
	}
	return p.Selected(), nil
}

type model struct {
	picker    *picker.Picker
	months    int
	focus     int
	width     int
	keys      keyMap
	help      help.Model
	inputMode inputMode
	input     textinput.Model
	statusMsg string
	canceled  bool
}

func newModel(p *picker.Picker, opts Options) model {
	ti := textinput.New()
	ti.CharLimit = 16
	ti.Prompt = "> "
	h := help.New()
	if render.NoColor() {
		h.Styles = help.Styles{}
	}
	months := opts.Months
	if months < 1 {
		months = 1
	}
	return model{
		picker: p,
		months: months,
		focus:  initialFocus(p),
		keys:   defaultKeyMap(),
		help:   h,
		input:  ti,
	}
}

func initialFocus(p *picker.Picker) int {
	for _, d := range p.Days() {
		if d.IsToday {
			return d.Number
		}
	}
	return 1
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		if m.inputMode != inputNone {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""
	cursor := m.picker.Cursor()
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.canceled = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-7)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(7)
	case key.Matches(msg, m.keys.Select):
		if !m.picker.Click(m.focus) {
			m.statusMsg = "day not available"
		}
	case key.Matches(msg, m.keys.PrevMonth):
		m.report(m.picker.Prev())
	case key.Matches(msg, m.keys.NextMonth):
		m.report(m.picker.Next())
	case key.Matches(msg, m.keys.PrevYear):
		m.report(m.picker.GoTo(cursor.Year-1, cursor.Month))
	case key.Matches(msg, m.keys.NextYear):
		m.report(m.picker.GoTo(cursor.Year+1, cursor.Month))
	case key.Matches(msg, m.keys.Today):
		m.report(m.picker.GoToday())
		m.focus = initialFocus(m.picker)
	case key.Matches(msg, m.keys.Clear):
		m.report(m.picker.Clear())
	case key.Matches(msg, m.keys.Range):
		m.picker.SetRange()
	case key.Matches(msg, m.keys.Year):
		m.activateInput(inputYear)
	case key.Matches(msg, m.keys.Month):
		m.activateInput(inputMonth)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.clampFocus()
	return m, nil
}

// moveFocus walks the focus by delta days, following it into the adjacent
// month, and previews the range ending on the new day.
func (m *model) moveFocus(delta int) {
	day, ok := m.picker.View().Find(m.focus)
	if !ok {
		return
	}
	target := day.Date.AddDate(0, 0, delta)
	view := m.picker.View()
	if target.Year() != view.Year || target.Month() != view.Month {
		if err := m.picker.GoTo(target.Year(), int(target.Month())); err != nil {
			m.report(err)
			return
		}
	}
	m.focus = target.Day()
	m.picker.Hover(m.focus)
}

func (m *model) clampFocus() {
	if n := len(m.picker.Days()); m.focus > n {
		m.focus = n
	}
	if m.focus < 1 {
		m.focus = 1
	}
}

func (m *model) report(err error) {
	if err != nil {
		m.statusMsg = err.Error()
	}
}

func (m model) View() string {
	if m.inputMode != inputNone {
		return m.inputView()
	}

	body, err := m.renderCalendar()
	status := m.statusMsg
	if err != nil {
		status = err.Error()
	}

	sb := strings.Builder{}
	sb.WriteString(body)
	sb.WriteString("\n\n")
	sb.WriteString(m.summary())
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	if status != "" {
		sb.WriteString("\n")
		if render.NoColor() {
			sb.WriteString(status)
		} else {
			sb.WriteString(statusStyle.Render(status))
		}
	}
	return sb.String()
}

func (m model) renderCalendar() (string, error) {
	months, err := render.Collect(m.picker, m.months, m.focus)
	if err != nil {
		return "", err
	}
	width := m.width
	if width <= 0 {
		width = 100
	}
	out := render.Layout(render.BuildBlocks(months), width)
	views := make([]calendar.MonthView, len(months))
	for i, mo := range months {
		views[i] = mo.View
	}
	if legend := render.Legend(views); legend != "" {
		out += "\n\n" + legend
	}
	return out, nil
}

// summary is the mode and the current selection on one line.
func (m model) summary() string {
	selected := m.picker.Selected()
	texts := make([]string, len(selected))
	for i, v := range selected {
		texts[i] = m.picker.Display(v)
	}
	line := fmt.Sprintf("%s: %s", m.picker.Mode(), strings.Join(texts, ", "))
	if len(texts) == 0 {
		line = fmt.Sprintf("%s: nothing selected", m.picker.Mode())
	}
	if m.width > 0 {
		line = truncate(line, m.width)
	}
	if render.NoColor() {
		return line
	}
	return infoStyle.Render(line)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width || width < 4 {
		return s
	}
	return string(r[:width-3]) + "..."
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = inputNone
		m.statusMsg = ""
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.applyInput()
		return m, nil
	case tea.KeyCtrlC:
		m.canceled = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) activateInput(mode inputMode) {
	m.inputMode = mode
	m.input.SetValue("")
	switch mode {
	case inputYear:
		m.input.Placeholder = strconv.Itoa(m.picker.Cursor().Year)
	case inputMonth:
		m.input.Placeholder = strconv.Itoa(m.picker.Cursor().Month)
	}
	m.input.CursorEnd()
	m.input.Focus()
	m.statusMsg = ""
}

func (m *model) applyInput() {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		m.statusMsg = "enter a number"
		return
	}
	cursor := m.picker.Cursor()
	year, month := cursor.Year, cursor.Month
	switch m.inputMode {
	case inputYear:
		fields := strings.Fields(value)
		if len(fields) > 2 {
			m.statusMsg = "expected: year or year month"
			return
		}
		y, err := strconv.Atoi(fields[0])
		if err != nil {
			m.statusMsg = "invalid year"
			return
		}
		year = y
		if len(fields) == 2 {
			mo, err := strconv.Atoi(fields[1])
			if err != nil || mo < 1 || mo > 12 {
				m.statusMsg = "month must be between 1 and 12"
				return
			}
			month = mo
		}
	case inputMonth:
		num, err := strconv.Atoi(value)
		if err != nil {
			m.statusMsg = "invalid month"
			return
		}
		if num < 1 || num > 12 {
			m.statusMsg = "month must be between 1 and 12"
			return
		}
		month = num
	}
	if err := m.picker.GoTo(year, month); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.clampFocus()
	m.statusMsg = ""
	m.inputMode = inputNone
	m.input.Blur()
}

func (m model) inputView() string {
	var label string
	switch m.inputMode {
	case inputYear:
		label = "Year, or year and month (enter to confirm, esc to cancel)"
	case inputMonth:
		label = "Month 1-12 (enter to confirm, esc to cancel)"
	default:
		return ""
	}
	body := label + "\n\n" + m.input.View()
	if m.statusMsg != "" {
		body += "\n" + m.statusMsg
	}
	if render.NoColor() {
		return body
	}
	return promptStyle.Render(label) + "\n\n" + m.input.View() + "\n" + statusStyle.Render(m.statusMsg)
}
