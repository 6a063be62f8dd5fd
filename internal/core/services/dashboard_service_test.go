package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
	"github.com/comitanigiacomo/concentria/internal/core/services"
)

func dashboardFixture() []domain.SessionEntry {
	return []domain.SessionEntry{
		// December 2024
		sample("30-12-24", "09:00", "Math", 100, 5),
		// January 2025
		sample("06-01-25", "09:00", "Math", 60, 6),  // Monday
		sample("06-01-25", "08:00", "Read", 30, 0),  // Monday, earlier
		sample("07-01-25", "09:00", "Code", 90, 8),  // Tuesday
		sample("08-01-25", "09:00", "Code", 10, 2),  // Wednesday
		sample("20-01-25", "21:00", "Math", 40, 10), // Monday
		sample("bad-date", "09:00", "Ghost", 500, 5),
	}
}

func TestDashboardService_Build_Defaults(t *testing.T) {
	svc := services.NewDashboardService(nil)

	d, err := svc.Build(dashboardFixture(), domain.DashboardFilter{})
	require.NoError(t, err)

	assert.Equal(t, day(2024, 12, 30), d.DataStart)
	assert.Equal(t, day(2025, 1, 20), d.DataEnd)
	assert.Equal(t, []string{"Code", "Math", "Read"}, d.Titles)
	assert.Equal(t, 6, d.FilteredCount)

	t.Run("month defaults to the latest data month", func(t *testing.T) {
		assert.Equal(t, 2025, d.Year)
		assert.Equal(t, time.January, d.Month)
		require.Len(t, d.MonthSeries, 31)
		assert.Equal(t, 90, d.MonthSeries[5].Minutes)
		assert.Equal(t, 0, d.MonthSeries[0].Minutes)
	})

	t.Run("kpis", func(t *testing.T) {
		assert.Equal(t, 230, d.KPIs.TotalMinutes)
		assert.Equal(t, 4, d.KPIs.ActiveDays)
		assert.Equal(t, 57, d.KPIs.AvgPerActiveDay)
		assert.Equal(t, 55, d.KPIs.AvgSession)
	})

	t.Run("best day and cumulative", func(t *testing.T) {
		require.NotNil(t, d.BestDay)
		assert.Equal(t, day(2025, 1, 6), d.BestDay.Day)
		assert.Equal(t, 90, d.BestDay.Minutes)
		require.Len(t, d.Cumulative, 31)
		assert.Equal(t, 230, d.Cumulative[30])
	})

	t.Run("weekday totals start on monday", func(t *testing.T) {
		assert.Equal(t, [7]int{230, 90, 10, 0, 0, 0, 0}, d.WeekdayTotals)
	})

	t.Run("titles", func(t *testing.T) {
		assert.Equal(t, []domain.ShareSlice{
			{Label: "Math", Minutes: 200},
			{Label: "Code", Minutes: 100},
			{Label: "Read", Minutes: 30},
		}, d.TopTitles)
		assert.Equal(t, d.TopTitles, d.TopTitlesShare)
	})

	t.Run("insights compare with the previous month", func(t *testing.T) {
		require.Len(t, d.Insights, 2)
		assert.Equal(t, "+130.0% vs previous month (100 min)", d.Insights[0])
		assert.Equal(t, "Best weekday: Mon (230 min)", d.Insights[1])
	})

	t.Run("inspector defaults to the last active day", func(t *testing.T) {
		assert.Equal(t, day(2025, 1, 20), d.Inspector.Day)
		assert.Equal(t, 1, d.Inspector.Count)
		assert.Equal(t, 40, d.Inspector.TotalMinutes)
	})

	t.Run("streaks", func(t *testing.T) {
		assert.Equal(t, 1, d.CurrentStreak)
		assert.Equal(t, 3, d.LongestStreak)
	})
}

func TestDashboardService_Build_Filters(t *testing.T) {
	svc := services.NewDashboardService(nil)

	t.Run("titles and min duration", func(t *testing.T) {
		d, err := svc.Build(dashboardFixture(), domain.DashboardFilter{
			Titles:      []string{"Code", "Math"},
			MinDuration: 50,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, d.FilteredCount)
		for _, s := range d.Sessions {
			assert.NotEqual(t, "Read", s.Title)
			assert.GreaterOrEqual(t, s.Duration, 50)
		}
	})

	t.Run("hardness range treats unset as zero", func(t *testing.T) {
		d, err := svc.Build(dashboardFixture(), domain.DashboardFilter{HardnessMin: 1})
		require.NoError(t, err)
		assert.Equal(t, 5, d.FilteredCount, "the unset hardness session is excluded")

		five := 5
		d, err = svc.Build(dashboardFixture(), domain.DashboardFilter{HardnessMin: 0, HardnessMax: &five})
		require.NoError(t, err)
		assert.Equal(t, 3, d.FilteredCount)
	})

	t.Run("zero hardness range keeps only unset hardness", func(t *testing.T) {
		zero := 0
		d, err := svc.Build(dashboardFixture(), domain.DashboardFilter{HardnessMax: &zero})
		require.NoError(t, err)
		require.Equal(t, 1, d.FilteredCount)
		assert.Equal(t, "Read", d.Sessions[0].Title)

		_, err = svc.Build(dashboardFixture(), domain.DashboardFilter{HardnessMin: 1, HardnessMax: &zero})
		assert.ErrorIs(t, err, domain.ErrNoMatchingSessions)
	})

	t.Run("date range", func(t *testing.T) {
		d, err := svc.Build(dashboardFixture(), domain.DashboardFilter{
			From: day(2025, 1, 7),
			To:   day(2025, 1, 8),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, d.FilteredCount)
		assert.Equal(t, "No data for previous month to compare", d.Insights[0])
	})

	t.Run("explicit month and selected day", func(t *testing.T) {
		d, err := svc.Build(dashboardFixture(), domain.DashboardFilter{
			Year:        2025,
			Month:       1,
			SelectedDay: day(2025, 1, 6),
		})
		require.NoError(t, err)
		require.Len(t, d.Inspector.Sessions, 2)
		assert.Equal(t, "08:00", d.Inspector.Sessions[0].Clock, "sessions sorted by time")
		assert.Equal(t, 45, d.Inspector.AvgMinutes)
	})

	t.Run("month without data falls back to its last day", func(t *testing.T) {
		d, err := svc.Build(dashboardFixture(), domain.DashboardFilter{Year: 2025, Month: 2})
		require.NoError(t, err)
		assert.Equal(t, day(2025, 2, 28), d.Inspector.Day)
		assert.Equal(t, 0, d.Inspector.Count)
		assert.Nil(t, d.BestDay)
		assert.Equal(t, 0, d.KPIs.TotalMinutes)
	})

	t.Run("selected day is clamped into the month", func(t *testing.T) {
		d, err := svc.Build(dashboardFixture(), domain.DashboardFilter{SelectedDay: day(2025, 3, 1)})
		require.NoError(t, err)
		assert.Equal(t, day(2025, 1, 31), d.Inspector.Day)
	})

	t.Run("no matching sessions", func(t *testing.T) {
		_, err := svc.Build(dashboardFixture(), domain.DashboardFilter{MinDuration: 10_000})
		assert.ErrorIs(t, err, domain.ErrNoMatchingSessions)
	})

	t.Run("no data", func(t *testing.T) {
		_, err := svc.Build([]domain.SessionEntry{sample("nope", "", "A", 1, 1)}, domain.DashboardFilter{})
		assert.ErrorIs(t, err, domain.ErrNoData)
	})
}

func TestDashboardService_TopShareGroupsOther(t *testing.T) {
	var entries []domain.SessionEntry
	for i := 0; i < 14; i++ {
		entries = append(entries, sample("06-01-25", "09:00", fmt.Sprintf("T%02d", i), 100-i, 5))
	}

	d, err := services.NewDashboardService(nil).Build(entries, domain.DashboardFilter{})
	require.NoError(t, err)

	require.Len(t, d.TopTitlesShare, 7)
	assert.Equal(t, "Other", d.TopTitlesShare[6].Label)
	other := 0
	for i := 6; i < 14; i++ {
		other += 100 - i
	}
	assert.Equal(t, other, d.TopTitlesShare[6].Minutes)
	assert.Len(t, d.TopTitles, 12)
}

func TestDashboardService_Load(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEntryRepo)
	repo.On("Load", ctx).Return(dashboardFixture(), nil)

	d, err := services.NewDashboardService(repo).Load(ctx, domain.DashboardFilter{})
	require.NoError(t, err)
	assert.Equal(t, 6, d.FilteredCount)
	repo.AssertExpectations(t)
}

func TestSessionsOn(t *testing.T) {
	got := services.SessionsOn(dashboardFixture(), day(2025, 1, 6))
	require.Len(t, got, 2)
	assert.Equal(t, "Math", got[0].Title)
}
