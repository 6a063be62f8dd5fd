package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/comitanigiacomo/concentria/internal/adapters/repository"
	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"

	SheetName = "sessions"
)

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// FileName builds the download name, e.g. sessions-2025-01-06.xlsx.
func (f Format) FileName(base string) string {
	return base + "." + string(f)
}

func Write(w io.Writer, f Format, entries []domain.SessionEntry) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, entries)
	case FormatXLSX:
		return WriteXLSX(w, entries)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// WriteCSV uses the storage codec so exports can be imported back unchanged.
func WriteCSV(w io.Writer, entries []domain.SessionEntry) error {
	if err := repository.EncodeCSV(w, entries); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}

func WriteXLSX(w io.Writer, entries []domain.SessionEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("export xlsx: %w", err)
	}

	header := make([]interface{}, len(repository.CSVHeader))
	for i, h := range repository.CSVHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("export xlsx: header: %w", err)
	}

	for i, e := range entries {
		var hardness interface{}
		if e.Hardness != 0 {
			hardness = e.Hardness
		}
		row := []interface{}{e.Date, e.Clock, e.Title, e.Duration, e.Note, hardness}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export xlsx: %w", err)
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("export xlsx: row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export xlsx: write: %w", err)
	}
	return nil
}
