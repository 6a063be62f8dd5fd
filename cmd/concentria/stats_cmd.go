package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/gosuri/uitable"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/concentria/internal/adapters/render"
	"github.com/comitanigiacomo/concentria/internal/adapters/repository"
	"github.com/comitanigiacomo/concentria/internal/core/domain"
	"github.com/comitanigiacomo/concentria/internal/core/services"
)

const (
	overviewFileName = "overview.html"
	isoDay           = "2006-01-02"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var output, latest string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print today, last 7 days and the 14 day trend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var ref time.Time
			if latest != "" {
				day, ok := domain.ParseDay(latest)
				if !ok {
					return fmt.Errorf("%w: %q", domain.ErrInvalidDate, latest)
				}
				ref = day
			}

			ctx := context.Background()
			a, err := loadApp(ctx, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			ov, err := a.stats.Overview(a.entries.Entries(), ref)
			if errors.Is(err, domain.ErrNoData) {
				_, _ = fmt.Fprintln(out, "No data: log a session first.")
				return nil
			}
			if err != nil {
				return err
			}

			switch output {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(ov); err != nil {
					return err
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(ov)
			case "table", "":
				writeOverviewTable(out, ov)
				return nil
			default:
				return fmt.Errorf("unknown output %q (want table, yaml or json)", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "table|yaml|json")
	cmd.Flags().StringVar(&latest, "latest", "", "treat this day as today (default latest logged day)")
	return cmd
}

func writeOverviewTable(out io.Writer, ov *domain.Overview) {
	_, _ = fmt.Fprintf(out, "%s %s  %s\n", bold("Latest day"), ov.LatestDay.Format(isoDay), faint(fmt.Sprintf("%d min", ov.TotalToday)))
	_, _ = fmt.Fprintf(out, "%s %s..%s  %s\n", bold("Last 7 days"), ov.WeekStart.Format(isoDay), ov.LatestDay.Format(isoDay), faint(fmt.Sprintf("%d min", ov.TotalWeek)))
	_, _ = fmt.Fprintf(out, "%s current %dd, longest %dd\n\n", bold("Streak"), ov.CurrentStreak, ov.LongestStreak)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Title"), bold("Today"), bold("7 days"), bold("Avg hardness"))
	today := make(map[string]int, len(ov.Today))
	for _, t := range ov.Today {
		today[t.Title] = t.TotalDuration
	}
	for _, t := range ov.Week {
		tbl.AddRow(t.Title, today[t.Title], t.TotalDuration, fmt.Sprintf("%.1f", t.AvgHardness))
	}
	_, _ = fmt.Fprintln(out, tbl)

	trend := uitable.New()
	trend.Separator = "  "
	trend.AddRow(bold("Day"), bold("Minutes"))
	for _, d := range ov.Trend {
		trend.AddRow(d.Day.Format("Mon 02 Jan"), d.Minutes)
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, trend)
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		outPath string
		noOpen  bool
	)

	cmd := &cobra.Command{
		Use:   "render [file.csv]",
		Short: "Render the chart overview to HTML and open it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			var entries []domain.SessionEntry
			if len(args) == 1 {
				entries, err = repository.NewCSVEntryRepository(args[0]).Load(ctx)
				if err != nil {
					return err
				}
			} else {
				a, err := loadApp(ctx, opts, false)
				if err != nil {
					return err
				}
				entries = a.entries.Entries()
				a.Close()
			}

			ov, err := services.NewStatsService(nil).Overview(entries, time.Time{})
			if errors.Is(err, domain.ErrNoData) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No data: log a session first.")
				return nil
			}
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = filepath.Join(cfg.DataDir, overviewFileName)
			}
			if err := render.OverviewFile(render.NewEChartsSink(), ov, outPath); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "overview written to %s\n", outPath)

			if noOpen {
				return nil
			}
			return browser.OpenFile(outPath)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output HTML file (default <data_dir>/overview.html)")
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "write the page without opening a browser")
	return cmd
}
