package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

// EntryService owns the in-memory session list. Memory is the source of truth: every mutation
// rewrites the whole snapshot through the repository.
type EntryService struct {
	repo    domain.EntryRepository
	mu      sync.RWMutex
	entries []domain.SessionEntry
}

func NewEntryService(repo domain.EntryRepository) *EntryService {
	return &EntryService{
		repo: repo,
	}
}

// LoadAll replaces the in-memory list with the stored snapshot, normalized.
// On failure the previous list is kept.
func (s *EntryService) LoadAll(ctx context.Context) error {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("entry service: failed to load entries: %w", err)
	}

	for i := range entries {
		entries[i].Normalize()
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	log.Printf("[STORE] Loaded %d entries", len(entries))
	return nil
}

// Add appends a new entry and persists. A failed save keeps the entry in memory and
// returns an error wrapping domain.ErrPersist.
func (s *EntryService) Add(ctx context.Context, entry domain.SessionEntry) (domain.SessionEntry, error) {
	entry.Normalize()
	if err := entry.Validate(); err != nil {
		return domain.SessionEntry{}, err
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.persist(ctx, snapshot); err != nil {
		return entry, err
	}
	return entry, nil
}

// Remove deletes the first entry matching every field, falling back to the first one that
// matches ignoring hardness.
func (s *EntryService) Remove(ctx context.Context, m domain.EntryMatcher) (domain.SessionEntry, error) {
	m = m.Normalized()

	s.mu.Lock()
	idx := -1
	for i, e := range s.entries {
		if m.Matches(e) {
			idx = i
			break
		}
	}
	if idx < 0 {
		for i, e := range s.entries {
			if m.MatchesIgnoringHardness(e) {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.SessionEntry{}, domain.ErrEntryNotFound
	}

	removed := s.entries[idx]
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.persist(ctx, snapshot); err != nil {
		return removed, err
	}
	return removed, nil
}

// Import appends entries in one save, or replaces the list when replace is set. Entries that fail
// validation are skipped and counted.
func (s *EntryService) Import(ctx context.Context, entries []domain.SessionEntry, replace bool) (int, int, error) {
	valid := make([]domain.SessionEntry, 0, len(entries))
	skipped := 0
	for _, e := range entries {
		e.Normalize()
		if err := e.Validate(); err != nil {
			skipped++
			continue
		}
		valid = append(valid, e)
	}

	s.mu.Lock()
	if replace {
		s.entries = nil
	}
	s.entries = append(s.entries, valid...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	log.Printf("[STORE] Imported %d entries (%d skipped)", len(valid), skipped)
	if err := s.persist(ctx, snapshot); err != nil {
		return len(valid), skipped, err
	}
	return len(valid), skipped, nil
}

// ClearAll drops every entry and persists the empty list.
func (s *EntryService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()

	return s.persist(ctx, nil)
}

// Save rewrites the stored snapshot from memory.
func (s *EntryService) Save(ctx context.Context) error {
	s.mu.RLock()
	snapshot := s.snapshotLocked()
	s.mu.RUnlock()

	return s.persist(ctx, snapshot)
}

// Entries returns a copy of the list in insertion order.
func (s *EntryService) Entries() []domain.SessionEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Days lists the distinct day keys in order of first appearance.
func (s *EntryService) Days() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.DayKeys(s.entries)
}

func (s *EntryService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *EntryService) snapshotLocked() []domain.SessionEntry {
	out := make([]domain.SessionEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *EntryService) persist(ctx context.Context, snapshot []domain.SessionEntry) error {
	if err := s.repo.Save(ctx, snapshot); err != nil {
		log.Printf("[STORE] Failed to save %d entries: %v", len(snapshot), err)
		return fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}
	return nil
}
