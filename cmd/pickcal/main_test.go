package main

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/lululau/pickcal/internal/calendar"
	"github.com/lululau/pickcal/internal/config"
)

func TestParseRequest(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		args     []string
		year     int
		month    int
		yearOnly bool
	}{
		{"month", []string{"9"}, now.Year(), 9, false},
		{"year", []string{"1983"}, 1983, 1, true},
		{"year month", []string{"2012", "12"}, 2012, 12, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, yearOnly, err := parseRequest(tt.args)
			if err != nil {
				t.Fatalf("parseRequest: %v", err)
			}
			if req.Year != tt.year || req.Month != tt.month || yearOnly != tt.yearOnly {
				t.Fatalf("got %+v yearOnly=%v", req, yearOnly)
			}
		})
	}

	if req, _, err := parseRequest(nil); err != nil || req != nil {
		t.Fatalf("no arguments should leave the request unset")
	}
	for _, args := range [][]string{{"x"}, {"2012", "13"}, {"1", "2", "3"}} {
		if _, _, err := parseRequest(args); err == nil {
			t.Fatalf("parseRequest(%v) should fail", args)
		}
	}
	if _, _, err := parseRequest([]string{"9999"}); !errors.Is(err, calendar.ErrYearOutOfRange) {
		t.Fatalf("expected ErrYearOutOfRange, got %v", err)
	}
}

func TestNewLoggerRejectsLevel(t *testing.T) {
	if _, _, err := newLogger("", "loud", true); err == nil {
		t.Fatalf("expected error")
	}
	l, closeFn, err := newLogger("", "debug", false)
	if err != nil || l == nil {
		t.Fatalf("newLogger: %v", err)
	}
	closeFn()
}

func TestHooksLogNavigation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	p, err := buildPicker(config.Default(), &calendar.Request{Year: 2024, Month: 2, Day: 1}, logger)
	if err != nil {
		t.Fatalf("buildPicker: %v", err)
	}
	if err := p.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	p.Click(4)
	if err := p.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"calendar loaded", "month changed", "March 2024", "selection changed", "selection cleared"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log misses %q:\n%s", want, out)
		}
	}
}
