package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

// CSVHeader is the column order written by the store.
var CSVHeader = []string{"date", "clock", "title", "duration", "note", "hardness"}

// EncodeCSV writes the header and one row per entry. Unset hardness is written as an empty cell.
func EncodeCSV(w io.Writer, entries []domain.SessionEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, e := range entries {
		hardness := ""
		if e.Hardness != 0 {
			hardness = strconv.Itoa(e.Hardness)
		}
		row := []string{e.Date, e.Clock, e.Title, strconv.Itoa(e.Duration), e.Note, hardness}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeCSV reads entries by header name, so any column order is accepted and missing columns
// default to empty. Rows without a date or that fail to parse are skipped and counted.
func DecodeCSV(r io.Reader) ([]domain.SessionEntry, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		entries []domain.SessionEntry
		skipped int
		line    = 1
	)
	for {
		row, err := cr.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			log.Printf("[STORE] Skipping malformed row %d: %v", line, err)
			skipped++
			continue
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("read csv: %w", err)
		}

		e := domain.SessionEntry{
			Date:     cell(row, "date"),
			Clock:    cell(row, "clock"),
			Title:    cell(row, "title"),
			Duration: domain.ParseMinutes(cell(row, "duration")),
			Note:     cell(row, "note"),
			Hardness: domain.ParseHardness(cell(row, "hardness")),
		}
		if e.Date == "" {
			skipped++
			continue
		}
		entries = append(entries, e)
	}

	return entries, skipped, nil
}
