package feedbackrepo

import (
	"context"
	"sync"

	"github.com/vaesta/outfit-advisor/internal/domain/evaluation"
)

// MemoryRepository is an in-memory evaluation.Repository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []evaluation.Feedback
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Save implements evaluation.Repository.
func (r *MemoryRepository) Save(_ context.Context, fb evaluation.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, fb)
	return nil
}

// List implements evaluation.Repository.
func (r *MemoryRepository) List(_ context.Context) ([]evaluation.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]evaluation.Feedback(nil), r.entries...), nil
}

var _ evaluation.Repository = (*MemoryRepository)(nil)
