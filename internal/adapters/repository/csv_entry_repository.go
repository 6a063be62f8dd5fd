package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

var _ domain.EntryRepository = (*CSVEntryRepository)(nil)

// CSVEntryRepository stores the whole session list in one CSV file.
type CSVEntryRepository struct {
	path string
}

func NewCSVEntryRepository(path string) *CSVEntryRepository {
	return &CSVEntryRepository{path: path}
}

func (r *CSVEntryRepository) Path() string {
	return r.path
}

// Load returns an empty list when the file does not exist yet.
func (r *CSVEntryRepository) Load(ctx context.Context) ([]domain.SessionEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.SessionEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository: open %s: %w", r.path, err)
	}
	defer f.Close()

	entries, skipped, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("repository: %s: %w", r.path, err)
	}
	if skipped > 0 {
		log.Printf("[STORE] Skipped %d unreadable rows in %s", skipped, r.path)
	}
	if entries == nil {
		entries = []domain.SessionEntry{}
	}
	return entries, nil
}

// Save writes the snapshot to a temporary file next to the target and renames it into place,
// so readers never observe a half written file.
func (r *CSVEntryRepository) Save(ctx context.Context, entries []domain.SessionEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("repository: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("repository: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := EncodeCSV(tmp, entries); err != nil {
		tmp.Close()
		return fmt.Errorf("repository: write csv: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("repository: sync csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("repository: close csv: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("repository: chmod csv: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("repository: replace %s: %w", r.path, err)
	}
	return nil
}
