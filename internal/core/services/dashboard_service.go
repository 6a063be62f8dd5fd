package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

const (
	shareTopN  = 6
	tableTopN  = 12
	otherLabel = "Other"
)

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type DashboardService struct {
	repo domain.EntryRepository
}

func NewDashboardService(repo domain.EntryRepository) *DashboardService {
	return &DashboardService{
		repo: repo,
	}
}

// Load reads the stored snapshot and builds the dashboard for filter.
func (s *DashboardService) Load(ctx context.Context, filter domain.DashboardFilter) (*domain.Dashboard, error) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: failed to load entries: %w", err)
	}
	for i := range entries {
		entries[i].Normalize()
	}
	return s.Build(entries, filter)
}

type session struct {
	day   time.Time
	at    time.Time
	entry domain.SessionEntry
}

// Build filters entries and computes every dashboard series. Entries without a parseable date are
// ignored; when none remain the result is domain.ErrNoData, and when the filters exclude everything
// it is domain.ErrNoMatchingSessions.
func (s *DashboardService) Build(entries []domain.SessionEntry, f domain.DashboardFilter) (*domain.Dashboard, error) {
	var all []session
	for _, e := range entries {
		at, ok := e.At()
		if !ok {
			continue
		}
		e.Title = titleOf(e)
		all = append(all, session{day: domain.Midnight(at), at: at, entry: e})
	}
	if len(all) == 0 {
		return nil, domain.ErrNoData
	}

	d := &domain.Dashboard{DataStart: all[0].day, DataEnd: all[0].day}
	titleSet := make(map[string]bool)
	for _, x := range all {
		if x.day.Before(d.DataStart) {
			d.DataStart = x.day
		}
		if x.day.After(d.DataEnd) {
			d.DataEnd = x.day
		}
		titleSet[x.entry.Title] = true
	}
	for t := range titleSet {
		d.Titles = append(d.Titles, t)
	}
	sort.Strings(d.Titles)

	d.RangeStart, d.RangeEnd = d.DataStart, d.DataEnd
	if !f.From.IsZero() {
		d.RangeStart = domain.Midnight(f.From)
	}
	if !f.To.IsZero() {
		d.RangeEnd = domain.Midnight(f.To)
	}

	filtered := applyFilter(all, f, d.RangeStart, d.RangeEnd)
	if len(filtered) == 0 {
		return nil, domain.ErrNoMatchingSessions
	}
	d.FilteredCount = len(filtered)
	for _, x := range filtered {
		d.Sessions = append(d.Sessions, x.entry)
	}

	d.Year, d.Month = d.DataEnd.Year(), d.DataEnd.Month()
	if f.Year > 0 {
		d.Year = f.Year
	}
	if f.Month >= 1 && f.Month <= 12 {
		d.Month = time.Month(f.Month)
	}

	d.MonthSeries = monthlyTotals(filtered, d.Year, d.Month)
	d.KPIs = kpis(d.MonthSeries, filtered)

	running := 0
	for i, day := range d.MonthSeries {
		running += day.Minutes
		d.Cumulative = append(d.Cumulative, running)
		if day.Minutes > 0 && (d.BestDay == nil || day.Minutes > d.BestDay.Minutes) {
			d.BestDay = &d.MonthSeries[i]
		}
	}

	var days []time.Time
	for _, x := range filtered {
		d.WeekdayTotals[weekdayIndex(x.day)] += max(0, x.entry.Duration)
		days = append(days, x.day)
	}
	d.CurrentStreak, d.LongestStreak = domain.CalculateStreaks(days, time.Time{})

	ranked := rankTitles(filtered)
	d.TopTitlesShare = topShare(ranked, shareTopN)
	if len(ranked) > tableTopN {
		d.TopTitles = ranked[:tableTopN]
	} else {
		d.TopTitles = ranked
	}

	d.Insights = insights(filtered, d)
	d.Inspector = inspect(filtered, pickDay(d.MonthSeries, f.SelectedDay))
	return d, nil
}

func applyFilter(all []session, f domain.DashboardFilter, from, to time.Time) []session {
	titles := make(map[string]bool, len(f.Titles))
	for _, t := range f.Titles {
		titles[t] = true
	}
	hMax := f.MaxHardness()

	var out []session
	for _, x := range all {
		switch {
		case x.day.Before(from) || x.day.After(to):
		case len(titles) > 0 && !titles[x.entry.Title]:
		case x.entry.Duration < f.MinDuration:
		case x.entry.Hardness < f.HardnessMin || x.entry.Hardness > hMax:
		default:
			out = append(out, x)
		}
	}
	return out
}

func monthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

func monthlyTotals(list []session, year int, month time.Month) []domain.DailyTotal {
	first, last := monthBounds(year, month)
	perDay := make(map[time.Time]int)
	for _, x := range list {
		if !x.day.Before(first) && !x.day.After(last) {
			perDay[x.day] += max(0, x.entry.Duration)
		}
	}

	var out []domain.DailyTotal
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		out = append(out, domain.DailyTotal{Day: d, Minutes: perDay[d]})
	}
	return out
}

func kpis(month []domain.DailyTotal, filtered []session) domain.DashboardKPIs {
	var k domain.DashboardKPIs
	for _, d := range month {
		k.TotalMinutes += d.Minutes
		if d.Minutes > 0 {
			k.ActiveDays++
		}
	}
	if k.ActiveDays > 0 {
		k.AvgPerActiveDay = k.TotalMinutes / k.ActiveDays
	}

	if len(filtered) > 0 {
		sum := 0
		for _, x := range filtered {
			sum += max(0, x.entry.Duration)
		}
		k.AvgSession = sum / len(filtered)
	}
	return k
}

// weekdayIndex maps Monday to 0 and Sunday to 6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func rankTitles(list []session) []domain.ShareSlice {
	totals := make(map[string]int)
	for _, x := range list {
		totals[x.entry.Title] += max(0, x.entry.Duration)
	}
	out := make([]domain.ShareSlice, 0, len(totals))
	for t, m := range totals {
		out = append(out, domain.ShareSlice{Label: t, Minutes: m})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func topShare(ranked []domain.ShareSlice, n int) []domain.ShareSlice {
	if len(ranked) <= n {
		return append([]domain.ShareSlice(nil), ranked...)
	}
	out := append([]domain.ShareSlice(nil), ranked[:n]...)
	other := 0
	for _, r := range ranked[n:] {
		other += r.Minutes
	}
	if other > 0 {
		out = append(out, domain.ShareSlice{Label: otherLabel, Minutes: other})
	}
	return out
}

func insights(filtered []session, d *domain.Dashboard) []string {
	var out []string

	prevYear, prevMonth := d.Year, d.Month-1
	if d.Month == time.January {
		prevYear, prevMonth = d.Year-1, time.December
	}
	prevTotal := 0
	for _, day := range monthlyTotals(filtered, prevYear, prevMonth) {
		prevTotal += day.Minutes
	}
	if prevTotal > 0 {
		pct := 100 * float64(d.KPIs.TotalMinutes-prevTotal) / float64(prevTotal)
		sign := ""
		if pct >= 0 {
			sign = "+"
		}
		out = append(out, fmt.Sprintf("%s%.1f%% vs previous month (%d min)", sign, pct, prevTotal))
	} else {
		out = append(out, "No data for previous month to compare")
	}

	best := 0
	for i, v := range d.WeekdayTotals {
		if v > d.WeekdayTotals[best] {
			best = i
		}
	}
	if d.WeekdayTotals[best] > 0 {
		out = append(out, fmt.Sprintf("Best weekday: %s (%d min)", weekdayNames[best], d.WeekdayTotals[best]))
	}
	return out
}

// pickDay clamps the requested day into the month, defaulting to the last day with minutes.
func pickDay(month []domain.DailyTotal, requested time.Time) time.Time {
	first, last := month[0].Day, month[len(month)-1].Day
	if !requested.IsZero() {
		day := domain.Midnight(requested)
		if day.Before(first) {
			return first
		}
		if day.After(last) {
			return last
		}
		return day
	}
	for i := len(month) - 1; i >= 0; i-- {
		if month[i].Minutes > 0 {
			return month[i].Day
		}
	}
	return last
}

func inspect(filtered []session, day time.Time) domain.DayInspection {
	var picked []session
	for _, x := range filtered {
		if x.day.Equal(day) {
			picked = append(picked, x)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].at.Before(picked[j].at)
	})

	in := domain.DayInspection{Day: day, Count: len(picked)}
	for _, x := range picked {
		in.TotalMinutes += max(0, x.entry.Duration)
		in.Sessions = append(in.Sessions, domain.InspectedSession{
			At:       x.at,
			Clock:    x.entry.Clock,
			Title:    x.entry.Title,
			Duration: x.entry.Duration,
			Hardness: x.entry.Hardness,
			Note:     x.entry.Note,
		})
	}
	if in.Count > 0 {
		in.AvgMinutes = in.TotalMinutes / in.Count
	}
	return in
}

// SessionsOn keeps the entries dated on day, in stored order.
func SessionsOn(entries []domain.SessionEntry, day time.Time) []domain.SessionEntry {
	day = domain.Midnight(day)
	var out []domain.SessionEntry
	for _, e := range entries {
		if d, ok := e.Day(); ok && d.Equal(day) {
			out = append(out, e)
		}
	}
	return out
}
