package render

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/lululau/pickcal/internal/calendar"
	"github.com/lululau/pickcal/internal/picker"
)

// PlainOptions controls how the non-interactive renderer behaves.
type PlainOptions struct {
	Writer io.Writer
	Picker *picker.Picker
	// Months is the number of consecutive months drawn, starting with the
	// visible one.
	Months int
	Width  int
}

// RunPlain renders the requested months exactly once.
func RunPlain(opts PlainOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Picker == nil {
		return fmt.Errorf("render: no picker")
	}
	months, err := Collect(opts.Picker, opts.Months, 0)
	if err != nil {
		return err
	}
	width := opts.Width
	if width == 0 {
		width = DetectWidth()
	}
	output := Layout(BuildBlocks(months), width)
	if output == "" {
		return nil
	}
	if _, err := fmt.Fprintln(opts.Writer, output); err != nil {
		return err
	}

	views := make([]calendar.MonthView, len(months))
	for i, m := range months {
		views[i] = m.View
	}
	if legend := Legend(views); legend != "" {
		_, err = fmt.Fprintln(opts.Writer, "\n"+legend)
	}
	return err
}

// Collect prepares n consecutive months starting with the picker's visible
// one. focus marks a day of the first month.
func Collect(p *picker.Picker, n, focus int) ([]Month, error) {
	if n < 1 {
		n = 1
	}
	labels := p.WeekdayLabels()
	months := make([]Month, 0, n)
	for i := 0; i < n; i++ {
		view, err := p.Peek(i)
		if err != nil {
			if i == 0 {
				return nil, err
			}
			// Stop at the end of the supported range.
			break
		}
		m := Month{Title: p.LabelFor(view), Weekdays: labels, View: view}
		if i == 0 {
			m.Focus = focus
		}
		months = append(months, m)
	}
	return months, nil
}

// DetectWidth tries to determine the terminal width, falling back to 100 cols.
func DetectWidth() int {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) {
		if w, _, err := term.GetSize(int(fd)); err == nil {
			return w
		}
	}
	return 100
}
