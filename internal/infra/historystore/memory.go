package historystore

import (
	"context"
	"sync"
	"time"

	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
)

// MemoryStore is an in-memory history store for tests/dev.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]time.Time)}
}

// Get implements outfit.HistoryStore.
func (s *MemoryStore) Get(_ context.Context, itemID string) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ts, ok := s.data[itemID]
	return ts, ok, nil
}

// Put records the timestamp, keeping the newest value per item.
func (s *MemoryStore) Put(_ context.Context, itemID string, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.data[itemID]; ok && existing.After(ts) {
		return nil
	}
	s.data[itemID] = ts
	return nil
}

// LoadAll implements outfit.HistoryStore.
func (s *MemoryStore) LoadAll(_ context.Context) (map[string]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]time.Time, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out, nil
}

var _ outfit.HistoryStore = (*MemoryStore)(nil)
