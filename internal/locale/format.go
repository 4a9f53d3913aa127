package locale

import (
	"strconv"
	"strings"
	"time"
)

// Formatter projects a day onto its display string.
type Formatter interface {
	Format(timestamp int64, pattern string, l *Locale) string
}

// PatternFormatter understands the tokens
//
//	dd   day            DD   zero-padded day
//	mm   month          MM   zero-padded month
//	mmm  short month    MMM  month name
//	yyyy, YYYY  year    yy, YY  two-digit year
//
// Any other text is copied unchanged.
type PatternFormatter struct {
	// Location interprets timestamps; nil means time.Local.
	Location *time.Location
}

var tokens = []string{"yyyy", "YYYY", "mmm", "MMM", "dd", "DD", "mm", "MM", "yy", "YY"}

// Format implements Formatter.
func (f PatternFormatter) Format(timestamp int64, pattern string, l *Locale) string {
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	t := time.Unix(timestamp, 0).In(loc)

	var sb strings.Builder
	for i := 0; i < len(pattern); {
		tok := matchToken(pattern[i:])
		if tok == "" {
			sb.WriteByte(pattern[i])
			i++
			continue
		}
		sb.WriteString(expand(tok, t, l))
		i += len(tok)
	}
	return sb.String()
}

func matchToken(s string) string {
	for _, tok := range tokens {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

func expand(tok string, t time.Time, l *Locale) string {
	switch tok {
	case "dd":
		return strconv.Itoa(t.Day())
	case "DD":
		return pad2(t.Day())
	case "mm":
		return strconv.Itoa(int(t.Month()))
	case "MM":
		return pad2(int(t.Month()))
	case "mmm":
		if l == nil {
			return t.Month().String()[:3]
		}
		return l.MonthName(t.Month(), true)
	case "MMM":
		if l == nil {
			return t.Month().String()
		}
		return l.MonthName(t.Month(), false)
	case "yyyy", "YYYY":
		return strconv.Itoa(t.Year())
	default: // yy, YY
		return pad2(t.Year() % 100)
	}
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
