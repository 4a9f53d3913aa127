package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lululau/pickcal/internal/calendar"
	"github.com/lululau/pickcal/internal/locale"
	"github.com/lululau/pickcal/internal/picker"
	"github.com/lululau/pickcal/internal/rules"
)

func newPicker(t *testing.T, rs *rules.RuleSet, lang string, opts ...picker.Option) *picker.Picker {
	t.Helper()
	l, err := locale.Load(lang)
	if err != nil {
		t.Fatalf("locale.Load: %v", err)
	}
	now := time.Date(2024, time.February, 14, 9, 0, 0, 0, time.UTC)
	base := []picker.Option{
		picker.WithShortNames(false, true),
		picker.WithServiceOptions(
			calendar.WithLocation(time.UTC),
			calendar.WithNow(func() time.Time { return now }),
			calendar.WithLunar(lang == "zh-CN"),
		),
	}
	p, err := picker.New(rs, l, append(base, opts...)...)
	if err != nil {
		t.Fatalf("picker.New: %v", err)
	}
	return p
}

func noColor(t *testing.T) {
	t.Helper()
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })
}

func TestPlainMarksSelectionAndDisabledDays(t *testing.T) {
	noColor(t)
	rs := &rules.RuleSet{DisabledWeekdays: []time.Weekday{time.Sunday}}
	p := newPicker(t, rs, "en")
	p.Click(9)

	var buf bytes.Buffer
	if err := RunPlain(PlainOptions{Writer: &buf, Picker: p, Width: 80}); err != nil {
		t.Fatalf("RunPlain: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"February 2024", " Sun ", "[ 9 ]", "( 4 )", " 29 "} {
		if !strings.Contains(out, want) {
			t.Fatalf("output misses %q:\n%s", want, out)
		}
	}
}

func TestMonthBlockContainsLunarLabels(t *testing.T) {
	noColor(t)
	p := newPicker(t, nil, "zh-CN")
	months, err := Collect(p, 1, 0)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	output := Layout(BuildBlocks(months), 120)
	if !strings.Contains(output, "初") && !strings.Contains(output, "廿") {
		t.Fatalf("expected lunar labels in layout, got:\n%s", output)
	}
}

func TestFocusMarker(t *testing.T) {
	noColor(t)
	p := newPicker(t, nil, "en")
	months, err := Collect(p, 1, 20)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	block := BuildBlock(months[0])
	if !strings.Contains(strings.Join(block.Lines, "\n"), ">20 <") {
		t.Fatalf("focus marker missing:\n%s", strings.Join(block.Lines, "\n"))
	}
}

func TestLayoutWrapsToWidth(t *testing.T) {
	noColor(t)
	p := newPicker(t, nil, "en")
	months, err := Collect(p, 3, 0)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	blocks := BuildBlocks(months)
	wide := Layout(blocks, 1000)
	if strings.Contains(wide, "\n\n\n") || !strings.Contains(strings.Split(wide, "\n")[0], "April 2024") {
		t.Fatalf("expected three months on one row:\n%s", wide)
	}
	narrow := Layout(blocks, blocks[0].Width)
	if got := strings.Count(narrow, "2024"); got != 3 {
		t.Fatalf("expected three titles, got %d", got)
	}
	if strings.Contains(strings.Split(narrow, "\n")[0], "March 2024") {
		t.Fatalf("narrow layout should stack months:\n%s", narrow)
	}
}

func TestLegend(t *testing.T) {
	noColor(t)
	rs := &rules.RuleSet{Highlights: []rules.HighlightRule{
		{Days: []rules.DateSpec{rules.On(time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC))}, Title: "Release", Color: "#f00"},
	}}
	p := newPicker(t, rs, "en")
	if got := Legend([]calendar.MonthView{p.View()}); got != "* Release" {
		t.Fatalf("Legend()=%q", got)
	}
}
