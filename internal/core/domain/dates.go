package domain

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DayParser turns a stored date string into a calendar day.
type DayParser struct {
	Name  string
	Parse func(string) (time.Time, error)
}

func layoutParser(layout string) DayParser {
	return DayParser{
		Name: layout,
		Parse: func(s string) (time.Time, error) {
			return time.ParseInLocation(layout, s, time.UTC)
		},
	}
}

// DayParsers is tried in order; the first success wins.
// The canonical DD-MM-YY layout always comes first, free-form text is the last resort.
var DayParsers = []DayParser{
	layoutParser(DayKeyLayout),
	layoutParser("02-01-2006"),
	layoutParser("2006-01-02"),
	layoutParser("02/01/2006"),
	layoutParser("02/01/06"),
	layoutParser("02.01.2006"),
	{
		Name: "dateparse",
		Parse: func(s string) (time.Time, error) {
			return dateparse.ParseIn(s, time.UTC, dateparse.PreferMonthFirst(false))
		},
	},
}

// ParseDay returns the UTC midnight of the day described by s.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, p := range DayParsers {
		t, err := p.Parse(s)
		if err == nil {
			return Midnight(t), true
		}
	}
	return time.Time{}, false
}

// Midnight drops the time of day, keeping the calendar date as written.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
