// Package history manages the per-owner working set of recent strategy
// sessions. The set is small and recency-ordered; older entries are evicted
// once the cap is reached.
package history

import (
	"context"
	"sync"

	"github.com/viralgrowth/viralgrowth/internal/model"
)

// Store persists per-owner history working sets.
type Store interface {
	LoadHistory(ctx context.Context, ownerID string) ([]model.HistoryEntry, error)
	SaveHistory(ctx context.Context, ownerID string, entries []model.HistoryEntry) error
	ClearHistory(ctx context.Context, ownerID string) error
}

// MemoryStore is an in-process Store for tests and single-node setups.
type MemoryStore struct {
	mu   sync.Mutex
	sets map[string][]model.HistoryEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string][]model.HistoryEntry)}
}

func (s *MemoryStore) LoadHistory(_ context.Context, ownerID string) ([]model.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.sets[ownerID]
	if !ok {
		return nil, nil
	}
	out := make([]model.HistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (s *MemoryStore) SaveHistory(_ context.Context, ownerID string, entries []model.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]model.HistoryEntry, len(entries))
	copy(stored, entries)
	s.sets[ownerID] = stored
	return nil
}

func (s *MemoryStore) ClearHistory(_ context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sets, ownerID)
	return nil
}
