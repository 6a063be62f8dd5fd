package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/concentria/internal/adapters/export"
	"github.com/comitanigiacomo/concentria/internal/adapters/repository"
	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)

// parseDayFlag accepts any supported date layout and returns the stored day key.
func parseDayFlag(value string) (string, error) {
	day, ok := domain.ParseDay(value)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDate, value)
	}
	return domain.DayKey(day), nil
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		title, note, date, clock string
		duration, hardness       int
	)

	cmd := &cobra.Command{
		Use:   "add --title <title> --duration <minutes>",
		Short: "Log a focus session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(title) == "" {
				return domain.ErrTitleRequired
			}
			if duration <= 0 {
				return domain.ErrDurationRequired
			}
			if !domain.ValidHardness(hardness) {
				hardness = domain.DefaultHardness
			}

			entry := domain.NewSessionEntry(title, duration, hardness, note, time.Now())
			if date != "" {
				key, err := parseDayFlag(date)
				if err != nil {
					return err
				}
				entry.Date = key
			}
			if clock != "" {
				entry.Clock = strings.TrimSpace(clock)
			}

			ctx := context.Background()
			a, err := loadApp(ctx, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			added, err := a.entries.Add(ctx, entry)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s %s %s (%d min, hardness %d)\n",
				added.Date, added.Clock, added.Title, added.Duration, added.Hardness)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "session title")
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "duration in minutes")
	cmd.Flags().IntVar(&hardness, "hardness", domain.DefaultHardness, "hardness 1-10")
	cmd.Flags().StringVarP(&note, "note", "n", "", "free text note")
	cmd.Flags().StringVar(&date, "date", "", "session day (default today)")
	cmd.Flags().StringVar(&clock, "clock", "", "session time HH:MM (default now)")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List sessions grouped by day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			a, err := loadApp(ctx, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			keys := canonicalKeys(a.entries.Days())
			if day != "" {
				key, err := parseDayFlag(day)
				if err != nil {
					return err
				}
				keys = []string{key}
			}

			entries := a.entries.Entries()
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(out, "no sessions")
				return nil
			}

			for _, key := range keys {
				sessions := sessionsOnKey(entries, key)
				agg := a.stats.AggregateDay(rekey(sessions, key), key)
				if agg.Sessions == 0 {
					continue
				}
				_, _ = fmt.Fprintf(out, "%s  %s\n", bold(key), faint(fmt.Sprintf(
					"%d min  %d sessions  avg hardness %.1f  %.1f pts",
					agg.TotalMinutes, agg.Sessions, agg.AvgHardness, agg.Points)))

				tbl := uitable.New()
				tbl.Separator = "  "
				tbl.MaxColWidth = 48
				tbl.AddRow(bold("#"), bold("Time"), bold("Title"), bold("Min"), bold("Hardness"), bold("Note"))
				for i, e := range sessions {
					tbl.AddRow(i+1, e.Clock, e.Title, e.Duration, hardnessText(e.Hardness), e.Note)
				}
				_, _ = fmt.Fprintln(out, tbl)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "only show this day")
	return cmd
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	var (
		day   string
		index int
	)

	cmd := &cobra.Command{
		Use:   "rm --day <day> --index <n>",
		Short: "Remove the n-th session of a day as numbered by ls",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(day) == "" {
				return fmt.Errorf("--day is required")
			}
			key, err := parseDayFlag(day)
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, err := loadApp(ctx, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			sessions := sessionsOnKey(a.entries.Entries(), key)
			if index < 1 || index > len(sessions) {
				return fmt.Errorf("%w: %s has %d sessions", domain.ErrEntryNotFound, key, len(sessions))
			}

			removed, err := a.entries.Remove(ctx, domain.MatcherFor(sessions[index-1]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s %s %s (%d min)\n",
				removed.Date, removed.Clock, removed.Title, removed.Duration)
			return nil
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "session day")
	cmd.Flags().IntVar(&index, "index", 1, "position within the day, starting at 1")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import sessions from a CSV file with any column order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			incoming, unreadable, err := repository.DecodeCSV(f)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}

			ctx := context.Background()
			a, err := loadApp(ctx, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			imported, invalid, err := a.entries.Import(ctx, incoming, replace)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d sessions (%d skipped)\n", imported, unreadable+invalid)
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "replace the stored sessions instead of appending")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var format, output, day string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export sessions as csv or xlsx",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, err := loadApp(ctx, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			entries := a.entries.Entries()
			if day != "" {
				key, err := parseDayFlag(day)
				if err != nil {
					return err
				}
				entries = sessionsOnKey(entries, key)
			}

			if output == "" || output == "-" {
				return export.Write(cmd.OutOrStdout(), f, entries)
			}
			file, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := export.Write(file, f, entries); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "exported %d sessions to %s\n", len(entries), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatCSV), "csv|xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&day, "day", "", "only export this day")
	return cmd
}

// sessionsOnKey keeps file order, which is the order ls numbers sessions in.
func sessionsOnKey(entries []domain.SessionEntry, key string) []domain.SessionEntry {
	var out []domain.SessionEntry
	for _, e := range entries {
		if e.Date == key {
			out = append(out, e)
			continue
		}
		if d, ok := e.Day(); ok && domain.DayKey(d) == key {
			out = append(out, e)
		}
	}
	return out
}

// canonicalKeys maps stored day strings to day keys, keeping first appearance order.
func canonicalKeys(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		if d, ok := domain.ParseDay(k); ok {
			k = domain.DayKey(d)
		}
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

func rekey(sessions []domain.SessionEntry, key string) []domain.SessionEntry {
	out := make([]domain.SessionEntry, len(sessions))
	for i, e := range sessions {
		e.Date = key
		out[i] = e
	}
	return out
}

func hardnessText(h int) string {
	if h == 0 {
		return "-"
	}
	return strconv.Itoa(h)
}
