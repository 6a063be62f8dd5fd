package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

var _ domain.EntryRepository = (*InMemoryEntryRepository)(nil)

// InMemoryEntryRepository keeps the snapshot in process. Used by tests and by `--storage memory`.
type InMemoryEntryRepository struct {
	entries []domain.SessionEntry
	saves   int

	mu sync.RWMutex
}

func NewInMemoryEntryRepository(seed ...domain.SessionEntry) *InMemoryEntryRepository {
	return &InMemoryEntryRepository{
		entries: append([]domain.SessionEntry(nil), seed...),
	}
}

func (r *InMemoryEntryRepository) Load(ctx context.Context) ([]domain.SessionEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.SessionEntry{}, r.entries...), nil
}

func (r *InMemoryEntryRepository) Save(ctx context.Context, entries []domain.SessionEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append([]domain.SessionEntry(nil), entries...)
	r.saves++
	return nil
}

// Saves counts the snapshots written so far.
func (r *InMemoryEntryRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.saves
}
