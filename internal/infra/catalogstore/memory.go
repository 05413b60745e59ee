package catalogstore

import (
	"context"
	"sync"

	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
)

// MemorySource is an in-memory catalog used for tests/dev.
type MemorySource struct {
	mu    sync.RWMutex
	items []outfit.GarmentItem
}

// NewMemorySource constructs a catalog seeded with validated items.
func NewMemorySource(items []outfit.GarmentItem) (*MemorySource, error) {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	return &MemorySource{items: items}, nil
}

// List implements outfit.CatalogSource.
func (s *MemorySource) List(_ context.Context) ([]outfit.GarmentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]outfit.GarmentItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Add appends a validated item, used when the wardrobe feeds the engine.
func (s *MemorySource) Add(item outfit.GarmentItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return nil
}

var _ outfit.CatalogSource = (*MemorySource)(nil)
