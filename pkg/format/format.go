// Package format renders audience figures for display.
package format

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

var (
	numberPattern   = regexp.MustCompile(`^\d[\d\s\x{00a0}\x{202f},.]*`)
	groupingPattern = regexp.MustCompile(`^\d{1,3}([.,])\d{3}(?:[.,]\d{3})*$`)
	separatorRunes  = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "\t", "")
)

// multipliers is checked in order, so longer suffixes come first.
var multipliers = []struct {
	suffix string
	factor float64
}{
	{"billion", 1e9},
	{"million", 1e6},
	{"thousand", 1e3},
	{"млрд", 1e9},
	{"млн", 1e6},
	{"тыс", 1e3},
	{"k", 1e3},
	{"к", 1e3},
	{"m", 1e6},
	{"м", 1e6},
	{"b", 1e9},
}

// Count parses an audience count as platforms print it: "12 345",
// "1,234", "1.2K", "3,4 млн", "987 subscribers".
func Count(raw string) (int64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	num := numberPattern.FindString(s)
	if num == "" {
		return 0, false
	}
	rest := strings.TrimSpace(s[len(num):])
	num = strings.TrimRight(separatorRunes.Replace(num), ".,")

	factor := 1.0
	for _, m := range multipliers {
		if !strings.HasPrefix(rest, m.suffix) {
			continue
		}
		next, _ := utf8.DecodeRuneInString(rest[len(m.suffix):])
		if next == utf8.RuneError || !unicode.IsLetter(next) {
			factor = m.factor
		}
		break
	}

	if factor == 1 && groupingPattern.MatchString(num) {
		num = strings.NewReplacer(",", "", ".", "").Replace(num)
	} else {
		num = strings.ReplaceAll(num, ",", ".")
	}

	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	v := math.Round(f * factor)
	if math.IsNaN(v) || math.IsInf(v, 0) || v >= math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

// Subscribers renders a raw subscriber count with space digit grouping.
// Blank input yields "0"; input that is not a count is returned trimmed.
func Subscribers(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "0"
	}
	n, ok := Count(trimmed)
	if !ok {
		return trimmed
	}
	return Grouped(n)
}

// Grouped formats n with a space between thousands groups: 1234567 -> "1 234 567".
func Grouped(n int64) string {
	return strings.ReplaceAll(humanize.Comma(n), ",", " ")
}

// Compact formats n in short form: 950 -> "950", 1234 -> "1.2K", 3400000 -> "3.4M".
func Compact(n int64) string {
	abs := math.Abs(float64(n))
	switch {
	case abs >= 1e9:
		return short(float64(n)/1e9) + "B"
	case abs >= 1e6:
		return short(float64(n)/1e6) + "M"
	case abs >= 1e3:
		return short(float64(n)/1e3) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

// short keeps one decimal, truncated, and drops a trailing ".0".
// The epsilon absorbs binary error such as 8.2*10 = 81.999...
func short(f float64) string {
	s := strconv.FormatFloat(math.Trunc(f*10+math.Copysign(1e-9, f))/10, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}
