package domain

import "time"

type DayAggregate struct {
	Day          string  `json:"day" yaml:"day"`
	Sessions     int     `json:"sessions" yaml:"sessions"`
	TotalMinutes int     `json:"total_minutes" yaml:"total_minutes"`
	AvgHardness  float64 `json:"avg_hardness" yaml:"avg_hardness"`
	Points       float64 `json:"points" yaml:"points"`
}

type TitleTotal struct {
	Title         string  `json:"title" yaml:"title"`
	TotalDuration int     `json:"total_duration" yaml:"total_duration"`
	AvgHardness   float64 `json:"avg_hardness" yaml:"avg_hardness"`
}

type DailyTotal struct {
	Day     time.Time `json:"day" yaml:"day"`
	Minutes int       `json:"minutes" yaml:"minutes"`
}

// StackedSeries holds one row per title, each row aligned with Days.
type StackedSeries struct {
	Days   []time.Time      `json:"days" yaml:"days"`
	Titles []string         `json:"titles" yaml:"titles"`
	Values map[string][]int `json:"values" yaml:"values"`
}

// Overview is the aggregate behind the chart window: latest day, last 7 days and a 14 day trend.
type Overview struct {
	LatestDay     time.Time     `json:"latest_day" yaml:"latest_day"`
	WeekStart     time.Time     `json:"week_start" yaml:"week_start"`
	TrendStart    time.Time     `json:"trend_start" yaml:"trend_start"`
	Today         []TitleTotal  `json:"today" yaml:"today"`
	Week          []TitleTotal  `json:"week" yaml:"week"`
	TotalToday    int           `json:"total_today" yaml:"total_today"`
	TotalWeek     int           `json:"total_week" yaml:"total_week"`
	Trend         []DailyTotal  `json:"trend" yaml:"trend"`
	Stack         StackedSeries `json:"stack" yaml:"stack"`
	TitleOrdering []string      `json:"title_ordering" yaml:"title_ordering"`
	CurrentStreak int           `json:"current_streak" yaml:"current_streak"`
	LongestStreak int           `json:"longest_streak" yaml:"longest_streak"`
}

// DashboardFilter narrows the sessions shown by the web dashboard. Zero values mean "no limit";
// a nil HardnessMax means 10. Unset hardness counts as 0 against the hardness range, so a 0..0
// range keeps only sessions without a hardness.
type DashboardFilter struct {
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	Titles      []string  `json:"titles"`
	MinDuration int       `json:"min_duration"`
	HardnessMin int       `json:"hardness_min"`
	HardnessMax *int      `json:"hardness_max,omitempty"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	SelectedDay time.Time `json:"selected_day"`
}

// MaxHardness is the upper bound of the hardness range.
func (f DashboardFilter) MaxHardness() int {
	if f.HardnessMax == nil {
		return MaxHardness
	}
	return *f.HardnessMax
}

type DashboardKPIs struct {
	TotalMinutes    int `json:"total_minutes"`
	ActiveDays      int `json:"active_days"`
	AvgPerActiveDay int `json:"avg_per_active_day"`
	AvgSession      int `json:"avg_session"`
}

type InspectedSession struct {
	At       time.Time `json:"at"`
	Clock    string    `json:"time"`
	Title    string    `json:"title"`
	Duration int       `json:"min"`
	Hardness int       `json:"hardness"`
	Note     string    `json:"note"`
}

type DayInspection struct {
	Day          time.Time          `json:"day"`
	TotalMinutes int                `json:"total_minutes"`
	Count        int                `json:"count"`
	AvgMinutes   int                `json:"avg_minutes"`
	Sessions     []InspectedSession `json:"sessions"`
}

type ShareSlice struct {
	Label   string `json:"label"`
	Minutes int    `json:"minutes"`
}

type Dashboard struct {
	RangeStart     time.Time      `json:"range_start"`
	RangeEnd       time.Time      `json:"range_end"`
	DataStart      time.Time      `json:"data_start"`
	DataEnd        time.Time      `json:"data_end"`
	Titles         []string       `json:"titles"`
	Year           int            `json:"year"`
	Month          time.Month     `json:"month"`
	MonthSeries    []DailyTotal   `json:"month_series"`
	Cumulative     []int          `json:"cumulative"`
	BestDay        *DailyTotal    `json:"best_day,omitempty"`
	KPIs           DashboardKPIs  `json:"kpis"`
	Inspector      DayInspection  `json:"inspector"`
	CurrentStreak  int            `json:"current_streak"`
	LongestStreak  int            `json:"longest_streak"`
	WeekdayTotals  [7]int         `json:"weekday_totals"`
	TopTitlesShare []ShareSlice   `json:"top_titles_share"`
	TopTitles      []ShareSlice   `json:"top_titles"`
	Insights       []string       `json:"insights"`
	Sessions       []SessionEntry `json:"-"`
	FilteredCount  int            `json:"filtered_count"`
}
