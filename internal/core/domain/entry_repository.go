package domain

import (
	"context"
	"errors"
)

var (
	ErrEntryNotFound      = errors.New("session entry not found")
	ErrPersist            = errors.New("failed to persist session entries")
	ErrNoData             = errors.New("no sessions with a valid date")
	ErrNoMatchingSessions = errors.New("no sessions match the filters")
)

type EntryRepository interface {
	// Load returns every stored entry in file order.
	// Rows that cannot be parsed are skipped by the implementation, never reported as an error.
	Load(ctx context.Context) ([]SessionEntry, error)

	// Save replaces the whole stored snapshot with entries.
	// Implementations must not append: the writer and the reader agree on one full image.
	Save(ctx context.Context, entries []SessionEntry) error
}
