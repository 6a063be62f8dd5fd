package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

const (
	weekDays  = 7
	trendDays = 14
)

type StatsService struct {
	repo domain.EntryRepository
}

func NewStatsService(repo domain.EntryRepository) *StatsService {
	return &StatsService{
		repo: repo,
	}
}

// AggregateDay recomputes the totals of one day from the full list.
func (s *StatsService) AggregateDay(entries []domain.SessionEntry, day string) domain.DayAggregate {
	return domain.AggregateDay(entries, day)
}

// Days aggregates every day bucket in order of first appearance.
func (s *StatsService) Days(entries []domain.SessionEntry) []domain.DayAggregate {
	keys := domain.DayKeys(entries)
	out := make([]domain.DayAggregate, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.AggregateDay(entries, k))
	}
	return out
}

// LoadOverview reads the stored snapshot and builds the chart overview from it.
func (s *StatsService) LoadOverview(ctx context.Context, latest time.Time) (*domain.Overview, error) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats service: failed to load entries: %w", err)
	}
	for i := range entries {
		entries[i].Normalize()
	}
	return s.Overview(entries, latest)
}

type datedEntry struct {
	day   time.Time
	entry domain.SessionEntry
}

func dated(entries []domain.SessionEntry) []datedEntry {
	out := make([]datedEntry, 0, len(entries))
	for _, e := range entries {
		day, ok := e.Day()
		if !ok {
			continue
		}
		out = append(out, datedEntry{day: domain.Midnight(day), entry: e})
	}
	return out
}

// Overview builds the chart series for the latest day, the 7 day window ending on it and the
// 14 day trend. A zero latest means the most recent day in the data.
func (s *StatsService) Overview(entries []domain.SessionEntry, latest time.Time) (*domain.Overview, error) {
	rows := dated(entries)
	if len(rows) == 0 {
		return nil, domain.ErrNoData
	}

	if latest.IsZero() {
		for _, r := range rows {
			if r.day.After(latest) {
				latest = r.day
			}
		}
	}
	latest = domain.Midnight(latest)
	weekStart := latest.AddDate(0, 0, -(weekDays - 1))
	trendStart := latest.AddDate(0, 0, -(trendDays - 1))

	var today, week []domain.SessionEntry
	perDay := make(map[time.Time]int)
	days := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		days = append(days, r.day)
		if r.day.Equal(latest) {
			today = append(today, r.entry)
		}
		if !r.day.Before(weekStart) && !r.day.After(latest) {
			week = append(week, r.entry)
		}
		if !r.day.Before(trendStart) && !r.day.After(latest) {
			perDay[r.day] += max(0, r.entry.Duration)
		}
	}

	ov := &domain.Overview{
		LatestDay:  latest,
		WeekStart:  weekStart,
		TrendStart: trendStart,
		Today:      ByTitle(today),
		Week:       ByTitle(week),
	}
	ov.TotalToday = sumTitles(ov.Today)
	ov.TotalWeek = sumTitles(ov.Week)

	for d := trendStart; !d.After(latest); d = d.AddDate(0, 0, 1) {
		ov.Trend = append(ov.Trend, domain.DailyTotal{Day: d, Minutes: perDay[d]})
	}

	ordering := ov.Week
	if len(ordering) == 0 {
		ordering = ov.Today
	}
	for _, t := range ordering {
		ov.TitleOrdering = append(ov.TitleOrdering, t.Title)
	}
	ov.Stack = stackWeek(rows, weekStart, latest, ov.TitleOrdering)

	ov.CurrentStreak, ov.LongestStreak = domain.CalculateStreaks(days, latest)
	return ov, nil
}

// ByTitle sums minutes per title, largest first, ties broken by title.
// AvgHardness is the mean of the valid 1..10 values, 0 when there are none.
func ByTitle(entries []domain.SessionEntry) []domain.TitleTotal {
	type acc struct {
		total, hSum, hCount int
	}
	byTitle := make(map[string]*acc)
	for _, e := range entries {
		title := titleOf(e)
		a, ok := byTitle[title]
		if !ok {
			a = &acc{}
			byTitle[title] = a
		}
		a.total += max(0, e.Duration)
		if e.HasValidHardness() {
			a.hSum += e.Hardness
			a.hCount++
		}
	}

	out := make([]domain.TitleTotal, 0, len(byTitle))
	for title, a := range byTitle {
		t := domain.TitleTotal{Title: title, TotalDuration: a.total}
		if a.hCount > 0 {
			t.AvgHardness = float64(a.hSum) / float64(a.hCount)
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalDuration != out[j].TotalDuration {
			return out[i].TotalDuration > out[j].TotalDuration
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func stackWeek(rows []datedEntry, from, to time.Time, titles []string) domain.StackedSeries {
	st := domain.StackedSeries{
		Titles: titles,
		Values: make(map[string][]int, len(titles)),
	}
	pos := make(map[time.Time]int)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		pos[d] = len(st.Days)
		st.Days = append(st.Days, d)
	}
	for _, t := range titles {
		st.Values[t] = make([]int, len(st.Days))
	}
	for _, r := range rows {
		i, ok := pos[r.day]
		if !ok {
			continue
		}
		if vals, ok := st.Values[titleOf(r.entry)]; ok {
			vals[i] += max(0, r.entry.Duration)
		}
	}
	return st
}

func sumTitles(list []domain.TitleTotal) int {
	total := 0
	for _, t := range list {
		total += t.TotalDuration
	}
	return total
}

func titleOf(e domain.SessionEntry) string {
	if e.Title == "" {
		return domain.UntitledTitle
	}
	return e.Title
}
