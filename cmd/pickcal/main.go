package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/lululau/pickcal/internal/calendar"
	"github.com/lululau/pickcal/internal/config"
	"github.com/lululau/pickcal/internal/locale"
	"github.com/lululau/pickcal/internal/picker"
	"github.com/lululau/pickcal/internal/render"
	"github.com/lululau/pickcal/internal/selection"
	"github.com/lululau/pickcal/internal/tui"
)

var (
	configPath  = flag.String("config", "", "YAML configuration file")
	plain       = flag.Bool("n", false, "render once and exit (non-interactive)")
	months      = flag.Int("months", 0, "number of months to show")
	modeFlag    = flag.String("mode", "", "selection mode: single, multi or range")
	formatFlag  = flag.String("format", "", "output pattern, e.g. yyyy-MM-DD or DD/MM/yy")
	langFlag    = flag.String("lang", "", "language tag, e.g. en, pt-BR, zh-CN")
	noColor     = flag.Bool("N", false, "disable all color output")
	noColorLong = flag.Bool("no-color", false, "disable all color output")
	logPath     = flag.String("log", "", "write logs to this file")
	logLevel    = flag.String("log-level", "info", "log level: debug, info, warn or error")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [options] [year] [month]\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), `
  no arguments   pick a day in the current month
  9              open September of this year
  1983           open 1983 (twelve months with -n)
  2012 12        open December 2012

options:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(); err != nil {
		if errors.Is(err, tui.ErrCanceled) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	if *noColor || *noColorLong {
		render.SetNoColor(true)
	}

	logger, closeLog, err := newLogger(*logPath, *logLevel, *plain)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cfg)

	req, yearOnly, err := parseRequest(flag.Args())
	if err != nil {
		return err
	}

	p, err := buildPicker(cfg, req, logger)
	if err != nil {
		return err
	}

	n := *months
	if n <= 0 && yearOnly && *plain {
		n = 12
	}
	if *plain {
		return render.RunPlain(render.PlainOptions{Picker: p, Months: n})
	}

	selected, err := tui.Run(p, tui.Options{Months: n})
	if err != nil {
		return err
	}
	for _, v := range selected {
		fmt.Println(p.Display(v))
	}
	return nil
}

func applyFlags(cfg *config.Config) {
	if *modeFlag != "" {
		cfg.Mode = *modeFlag
	}
	if *formatFlag != "" {
		cfg.Format = *formatFlag
	}
	if *langFlag != "" {
		cfg.Lang = *langFlag
		cfg.LangFile = ""
	}
}

func buildPicker(cfg *config.Config, req *calendar.Request, logger *slog.Logger) (*picker.Picker, error) {
	loc := time.Local
	rs, err := cfg.RuleSet(loc, time.Now())
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var names *locale.Locale
	if cfg.LangFile != "" {
		names, err = locale.LoadFile(cfg.LangFile)
	} else {
		names, err = locale.Load(cfg.Lang)
	}
	if err != nil {
		return nil, err
	}

	mode, err := selection.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	opts := []picker.Option{
		picker.WithServiceOptions(calendar.WithLocation(loc), calendar.WithLunar(cfg.Lunar)),
		picker.WithMode(mode),
		picker.WithFormat(cfg.Format),
		picker.WithShortNames(cfg.MonthShort, cfg.WeekShort),
		picker.WithLogger(logger),
		picker.WithHooks(logHooks(logger)),
	}

	start, err := cfg.DefaultTime(loc)
	if err != nil {
		return nil, fmt.Errorf("default_date: %w", err)
	}
	if req != nil {
		start = time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, loc)
	}
	if !start.IsZero() {
		opts = append(opts, picker.WithDefaultDate(start))
	}
	return picker.New(rs, names, opts...)
}

// logHooks reports every picker event to logger.
func logHooks(logger *slog.Logger) picker.Hooks {
	return picker.Hooks{
		OnLoad: func(p *picker.Picker) {
			logger.Info("calendar loaded", "month", p.Label(), "mode", p.Mode())
		},
		OnChange: func(p *picker.Picker) {
			logger.Info("month changed", "month", p.Label())
		},
		OnSelect: func(p *picker.Picker) {
			logger.Info("selection changed", "count", len(p.Selected()))
		},
		OnClear: func(*picker.Picker) {
			logger.Info("selection cleared")
		},
	}
}

// newLogger writes to path when given, to stderr in plain mode and nowhere
// while the interactive UI owns the terminal.
func newLogger(path, level string, plainMode bool) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	var w io.Writer = io.Discard
	closeFn := func() {}
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { f.Close() }
	case plainMode:
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), closeFn, nil
}

// parseRequest returns nil when no month was named on the command line.
// yearOnly reports a lone year argument.
func parseRequest(args []string) (*calendar.Request, bool, error) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())
	yearOnly := false

	switch len(args) {
	case 0:
		return nil, false, nil
	case 1:
		val, err := parseNumber(args[0], "month/year")
		if err != nil {
			return nil, false, err
		}
		if val >= 1 && val <= 12 {
			month = val
		} else {
			year = val
			month = 1
			yearOnly = true
		}
	case 2:
		y, err := parseNumber(args[0], "year")
		if err != nil {
			return nil, false, err
		}
		m, err := parseNumber(args[1], "month")
		if err != nil {
			return nil, false, err
		}
		if m < 1 || m > 12 {
			return nil, false, fmt.Errorf("month must be between 1 and 12 (got %d)", m)
		}
		year = y
		month = m
	default:
		return nil, false, errors.New("too many arguments, see -help")
	}

	if year < calendar.MinSupportedYear || year > calendar.MaxSupportedYear {
		return nil, false, calendar.ErrYearOutOfRange
	}
	req := calendar.Request{Year: year, Month: month, Day: 1}.Normalize()
	return &req, yearOnly, nil
}

func parseNumber(value string, field string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as %s", value, field)
	}
	return n, nil
}
