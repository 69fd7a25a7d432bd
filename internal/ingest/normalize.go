package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// NormalizeDate turns a raw cell value into a canonical YYYY-MM-DD calendar
// day. Time-of-day and timezone suffixes are discarded; anything after the
// day that is not a time suffix invalidates the whole value. Returns
// ok=false for empty or unparseable input; callers drop such rows rather
// than erroring.
func NormalizeDate(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < len(dayLayout) {
		return "", false
	}
	if rest := trimmed[len(dayLayout):]; rest != "" && rest[0] != 'T' && rest[0] != ' ' {
		return "", false
	}
	day, err := time.Parse(dayLayout, trimmed[:len(dayLayout)])
	if err != nil {
		return "", false
	}
	return day.Format(dayLayout), true
}

// ParseNumber extracts a number from a spreadsheet cell, tolerating currency
// symbols, thousands separators, and stray whitespace. Every character except
// digits, '-' and '.' is stripped; decimal points after the first are
// collapsed so "1.234.56" parses as 1.23456. Returns 0 for empty or
// non-finite results. Total over all inputs, never errors.
func ParseNumber(raw string) float64 {
	var b strings.Builder
	sawDot := false
	for _, c := range raw {
		switch {
		case c >= '0' && c <= '9' || c == '-':
			b.WriteRune(c)
		case c == '.':
			if !sawDot {
				b.WriteRune(c)
				sawDot = true
			}
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0
	}
	return n
}
