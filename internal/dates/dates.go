// Package dates resolves classifier-extracted date strings into concrete
// service dates. Callers speak dates in many shapes ("2025-09-05",
// "5th September", "05/09/2025"), and the classifier is only asked to pass
// them through, so the parsing tolerance lives here.
package dates

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// fallbackDays is how far out a service is pushed when the caller asked to
// reschedule but no usable date could be parsed.
const fallbackDays = 30

// Numeric forms are read day-first, matching how callers speak them.
var layouts = []string{
	"2006-01-02",
	"2 January 2006",
	"2 Jan 2006",
	"2-1-2006",
	"2/1/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January",
	"2 Jan",
	"January 2",
	"Jan 2",
}

var ordinalPattern = regexp.MustCompile(`(?i)(\d+)(st|nd|rd|th)\b`)

// Resolve turns raw classifier output into a date. Empty input and the
// classifier's "None" marker resolve to thirty days from today, as does
// anything that cannot be parsed. When several comma-separated dates were
// extracted, the first one wins.
func Resolve(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "none") {
		return fallback()
	}

	if t, ok := parse(s); ok {
		return t
	}

	if i := strings.Index(s, ","); i >= 0 {
		if t, ok := parse(strings.TrimSpace(s[:i])); ok {
			return t
		}
	}

	return fallback()
}

func parse(s string) (time.Time, bool) {
	cleaned := ordinalPattern.ReplaceAllString(s, "$1")

	for _, layout := range layouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return normalize(t), true
		}
	}

	if t, err := dateparse.ParseAny(cleaned); err == nil {
		return normalize(t), true
	}

	return time.Time{}, false
}

// normalize truncates to a UTC calendar date and substitutes the current
// year when the input carried none. Layouts without a year parse to year 0,
// and some loose formats land on 1900.
func normalize(t time.Time) time.Time {
	year := t.Year()
	if year == 0 || year == 1900 {
		year = time.Now().UTC().Year()
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func fallback() time.Time {
	d := time.Now().UTC().AddDate(0, 0, fallbackDays)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
