package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

const dayLabel = "02-01-06"

var _ Sink = (*EChartsSink)(nil)

// EChartsSink writes standalone HTML pages; the echarts runtime is loaded from its CDN.
type EChartsSink struct {
	Theme string
}

func NewEChartsSink() *EChartsSink {
	return &EChartsSink{Theme: types.ThemeChalk}
}

func (s *EChartsSink) init(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: title,
		Theme:     s.Theme,
		Width:     "560px",
		Height:    "340px",
	})
}

func (s *EChartsSink) RenderOverview(w io.Writer, ov *domain.Overview) error {
	if ov == nil {
		return fmt.Errorf("render: nil overview")
	}

	day := ov.LatestDay.Format(dayLabel)
	header := fmt.Sprintf("Today: %s %dm | 7d: %dm | Max streak: %dd | Current streak: %dd",
		day, ov.TotalToday, ov.TotalWeek, ov.LongestStreak, ov.CurrentStreak)

	page := components.NewPage()
	page.PageTitle = "Concentria: " + header
	page.AddCharts(
		s.titleBar("Today (by title)", header, ov.Today),
		s.titlePie("Today (share)", ov.Today),
		s.titleBar("Last 7 Days (by title)", ov.WeekStart.Format(dayLabel)+" → "+day, ov.Week),
		s.titlePie("Last 7 Days (share)", ov.Week),
		s.trendLine(fmt.Sprintf("Last 14 Days — %s → %s", ov.TrendStart.Format(dayLabel), day), ov.Trend),
		s.stack("Last 7 Days — Daily stack", ov.Stack),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render: overview page: %w", err)
	}
	return nil
}

func (s *EChartsSink) RenderDashboard(w io.Writer, d *domain.Dashboard) error {
	if d == nil {
		return fmt.Errorf("render: nil dashboard")
	}

	month := fmt.Sprintf("%s %d", d.Month, d.Year)

	days := make([]string, len(d.MonthSeries))
	minutes := make([]opts.BarData, len(d.MonthSeries))
	cumulative := make([]opts.LineData, len(d.Cumulative))
	for i, p := range d.MonthSeries {
		days[i] = strconv.Itoa(p.Day.Day())
		minutes[i] = opts.BarData{Value: p.Minutes}
	}
	for i, v := range d.Cumulative {
		cumulative[i] = opts.LineData{Value: v}
	}

	monthly := charts.NewBar()
	monthly.SetGlobalOptions(s.init(month), charts.WithTitleOpts(opts.Title{
		Title:    "Monthly Focus — " + month,
		Subtitle: bestDayText(d.BestDay),
	}))
	monthly.SetXAxis(days).AddSeries("Minutes", minutes)

	cum := charts.NewLine()
	cum.SetGlobalOptions(s.init(month), charts.WithTitleOpts(opts.Title{Title: "Cumulative minutes (month)"}))
	cum.SetXAxis(days).AddSeries("Cumulative", cumulative)

	weekday := charts.NewBar()
	weekday.SetGlobalOptions(s.init(month), charts.WithTitleOpts(opts.Title{Title: "Minutes by weekday"}))
	wd := make([]opts.BarData, len(d.WeekdayTotals))
	for i, v := range d.WeekdayTotals {
		wd[i] = opts.BarData{Value: v}
	}
	weekday.SetXAxis([]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}).AddSeries("Minutes", wd)

	share := charts.NewPie()
	share.SetGlobalOptions(s.init(month), charts.WithTitleOpts(opts.Title{Title: "Top titles share"}))
	slices := make([]opts.PieData, len(d.TopTitlesShare))
	for i, sl := range d.TopTitlesShare {
		slices[i] = opts.PieData{Name: sl.Label, Value: sl.Minutes}
	}
	share.AddSeries("Share", slices)

	page := components.NewPage()
	page.PageTitle = "Concentria — " + month
	page.AddCharts(monthly, cum, weekday, share)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render: dashboard page: %w", err)
	}
	return nil
}

func (s *EChartsSink) titleBar(title, subtitle string, totals []domain.TitleTotal) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(s.init(title), charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}))

	names := make([]string, len(totals))
	data := make([]opts.BarData, len(totals))
	for i, t := range totals {
		names[i] = t.Title
		data[i] = opts.BarData{Name: t.Title, Value: t.TotalDuration}
	}
	bar.SetXAxis(names).AddSeries("Minutes", data)
	return bar
}

func (s *EChartsSink) titlePie(title string, totals []domain.TitleTotal) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(s.init(title), charts.WithTitleOpts(opts.Title{Title: title}))

	data := make([]opts.PieData, len(totals))
	for i, t := range totals {
		data[i] = opts.PieData{Name: t.Title, Value: t.TotalDuration}
	}
	pie.AddSeries("Minutes", data)
	return pie
}

func (s *EChartsSink) trendLine(title string, trend []domain.DailyTotal) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(s.init(title), charts.WithTitleOpts(opts.Title{Title: title}))

	days := make([]string, len(trend))
	data := make([]opts.LineData, len(trend))
	for i, p := range trend {
		days[i] = p.Day.Format(dayLabel)
		data[i] = opts.LineData{Value: p.Minutes}
	}
	line.SetXAxis(days).AddSeries("Minutes", data)
	return line
}

func (s *EChartsSink) stack(title string, st domain.StackedSeries) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(s.init(title), charts.WithTitleOpts(opts.Title{Title: title}))

	days := make([]string, len(st.Days))
	for i, d := range st.Days {
		days[i] = d.Format(dayLabel)
	}
	bar.SetXAxis(days)
	for _, t := range st.Titles {
		vals := st.Values[t]
		data := make([]opts.BarData, len(vals))
		for i, v := range vals {
			data[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(t, data, charts.WithBarChartOpts(opts.BarChart{Stack: "minutes"}))
	}
	return bar
}

func bestDayText(best *domain.DailyTotal) string {
	if best == nil {
		return ""
	}
	return fmt.Sprintf("Best: %d (%dm)", best.Day.Day(), best.Minutes)
}
