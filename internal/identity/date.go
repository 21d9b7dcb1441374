package identity

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical textual form of a calendar date.
const DateLayout = "2006-01-02"

// accepted input layouts, tried in order
var dateLayouts = []string{
	DateLayout,
	"01-02-2006",
	"01/02/2006",
	"2006/01/02",
	"1/2/2006",
	"2006-1-2",
	time.RFC3339,
}

// AddDays shifts a calendar date by days, which may be negative. The
// time-of-day and zone of d are discarded.
func AddDays(d time.Time, days int) time.Time {
	return Day(d).AddDate(0, 0, days)
}

// Day truncates t to midnight UTC on its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses s using the accepted layouts and returns the calendar date.
func ParseDate(s string) (time.Time, error) {
	return ParseDateWith(s)
}

// ParseDateWith is ParseDate with extra layouts tried before the accepted
// ones, for files written with a configured layout.
func ParseDateWith(s string, layouts ...string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("parse date: empty")
	}
	for _, set := range [][]string{layouts, dateLayouts} {
		for _, layout := range set {
			if layout == "" {
				continue
			}
			if t, err := time.Parse(layout, s); err == nil {
				return Day(t), nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: unrecognized format", s)
}
