package wardroberepo

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/vaesta/outfit-advisor/internal/domain/wardrobe"
)

type memoryItem struct {
	item      wardrobe.Item
	embedding []float32
}

// MemoryRepository is an in-memory wardrobe.Repository used for tests/dev.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	order []string
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]memoryItem)}
}

// Insert implements wardrobe.Repository.
func (r *MemoryRepository) Insert(_ context.Context, item wardrobe.Item, embedding []float32) (wardrobe.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[item.ID]; !exists {
		r.order = append(r.order, item.ID)
	}
	r.items[item.ID] = memoryItem{
		item:      item,
		embedding: append([]float32(nil), embedding...),
	}
	return item, nil
}

// Remove implements wardrobe.Repository.
func (r *MemoryRepository) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List implements wardrobe.Repository.
func (r *MemoryRepository) List(_ context.Context) ([]wardrobe.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]wardrobe.Item, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.items[id].item)
	}
	return items, nil
}

// SearchNearest implements wardrobe.Repository with a linear scan.
func (r *MemoryRepository) SearchNearest(_ context.Context, embedding []float32, limit int) ([]wardrobe.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matches []wardrobe.Match
	for _, id := range r.order {
		candidate := r.items[id]
		if len(candidate.embedding) == 0 {
			continue
		}
		matches = append(matches, wardrobe.Match{
			Item:     candidate.item,
			Distance: euclideanDistance(embedding, candidate.embedding),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Distance < matches[j].Distance })
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func euclideanDistance(a, b []float32) float64 {
	length := len(a)
	if len(b) < length {
		length = len(b)
	}
	var sum float64
	for i := 0; i < length; i++ {
		diff := float64(a[i] - b[i])
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

var _ wardrobe.Repository = (*MemoryRepository)(nil)
