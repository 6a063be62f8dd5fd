package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrDurationRequired = errors.New("duration is required")
	ErrInvalidDuration  = errors.New("duration must be a non-negative number of minutes")
	ErrInvalidHardness  = errors.New("hardness must be between 1 and 10")
	ErrInvalidDate      = errors.New("invalid session date")
	ErrInvalidMinutes   = errors.New("minutes must be a positive number")
)

const (
	DayKeyLayout = "02-01-06"
	ClockLayout  = "15:04"

	UntitledTitle   = "untitled"
	TimedTitle      = "Timed Session"
	DefaultHardness = 5
	MinHardness     = 1
	MaxHardness     = 10
)

// SessionEntry is one logged focus session. Hardness 0 means "not recorded".
type SessionEntry struct {
	Date     string `json:"date" db:"date" yaml:"date"`
	Clock    string `json:"clock" db:"clock" yaml:"clock"`
	Title    string `json:"title" db:"title" yaml:"title"`
	Duration int    `json:"duration" db:"duration" yaml:"duration"`
	Note     string `json:"note" db:"note" yaml:"note"`
	Hardness int    `json:"hardness" db:"hardness" yaml:"hardness"`
}

// NewSessionEntry stamps an entry with the day key and clock of at.
func NewSessionEntry(title string, duration, hardness int, note string, at time.Time) SessionEntry {
	e := SessionEntry{
		Date:     DayKey(at),
		Clock:    at.Format(ClockLayout),
		Title:    strings.TrimSpace(title),
		Duration: duration,
		Note:     note,
		Hardness: hardness,
	}
	e.Normalize()
	return e
}

// Normalize applies the storage defaults: day key dates, sentinel title, LF notes and a
// non-negative duration. Dates no parser understands are kept as written.
func (e *SessionEntry) Normalize() {
	e.Date = CanonicalDate(e.Date)
	e.Clock = strings.TrimSpace(e.Clock)
	e.Title = strings.TrimSpace(e.Title)
	e.Note = NormalizeNote(e.Note)
	if e.Title == "" {
		e.Title = UntitledTitle
	}
	if e.Duration < 0 {
		e.Duration = 0
	}
}

func (e SessionEntry) Validate() error {
	if strings.TrimSpace(e.Date) == "" {
		return ErrInvalidDate
	}
	if e.Duration < 0 {
		return ErrInvalidDuration
	}
	if e.Hardness != 0 && !ValidHardness(e.Hardness) {
		return ErrInvalidHardness
	}
	return nil
}

// Day resolves the calendar day of the entry using the ordered date parsers.
func (e SessionEntry) Day() (time.Time, bool) {
	return ParseDay(e.Date)
}

// At combines the day and the clock. Entries without a usable clock sort at midnight.
func (e SessionEntry) At() (time.Time, bool) {
	day, ok := e.Day()
	if !ok {
		return time.Time{}, false
	}
	if c, err := time.Parse(ClockLayout, strings.TrimSpace(e.Clock)); err == nil {
		return day.Add(time.Duration(c.Hour())*time.Hour + time.Duration(c.Minute())*time.Minute), true
	}
	return day, true
}

// CanonicalDate rewrites a parseable date as its day key.
func CanonicalDate(s string) string {
	s = strings.TrimSpace(s)
	if day, ok := ParseDay(s); ok {
		return DayKey(day)
	}
	return s
}

// NormalizeNote stores notes with LF line breaks and no surrounding blanks, which is what
// a CSV round trip gives back.
func NormalizeNote(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}

// HasValidHardness reports whether the hardness takes part in averages.
func (e SessionEntry) HasValidHardness() bool {
	return ValidHardness(e.Hardness)
}

func ValidHardness(h int) bool {
	return h >= MinHardness && h <= MaxHardness
}

// DayKey formats t as the DD-MM-YY grouping key.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseMinutes coerces free text into whole minutes. Anything unparsable yields 0.
func ParseMinutes(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(f)
}

// ParseHardness reads a stored hardness; empty or invalid text becomes 0.
func ParseHardness(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// FormHardness is the form rule: anything outside 1..10 falls back to the default.
func FormHardness(s string) int {
	h, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !ValidHardness(h) {
		return DefaultHardness
	}
	return h
}

// EntryMatcher selects an entry for removal. All fields take part in the first pass,
// hardness is dropped in the fallback pass.
type EntryMatcher struct {
	Date     string
	Clock    string
	Title    string
	Duration int
	Note     string
	Hardness int
}

func MatcherFor(e SessionEntry) EntryMatcher {
	return EntryMatcher{
		Date:     e.Date,
		Clock:    e.Clock,
		Title:    e.Title,
		Duration: e.Duration,
		Note:     e.Note,
		Hardness: e.Hardness,
	}
}

// Normalized puts the matched fields in the form entries are stored in.
func (m EntryMatcher) Normalized() EntryMatcher {
	e := SessionEntry{Date: m.Date, Clock: m.Clock, Title: m.Title, Duration: m.Duration, Note: m.Note}
	e.Normalize()
	m.Date, m.Clock, m.Title, m.Duration, m.Note = e.Date, e.Clock, e.Title, e.Duration, e.Note
	return m
}

func (m EntryMatcher) Matches(e SessionEntry) bool {
	return m.MatchesIgnoringHardness(e) && m.Hardness == e.Hardness
}

func (m EntryMatcher) MatchesIgnoringHardness(e SessionEntry) bool {
	return m.Date == e.Date &&
		m.Clock == e.Clock &&
		m.Title == e.Title &&
		m.Duration == e.Duration &&
		m.Note == e.Note
}
