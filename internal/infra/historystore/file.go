package historystore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
)

// FileStore persists recommendation history as a JSON object of
// item id → RFC3339 timestamp, rewritten atomically on every Put.
type FileStore struct {
	mu   sync.Mutex
	path string
	data map[string]time.Time
}

// NewFileStore loads existing history from path, tolerating a missing file.
func NewFileStore(path string) (*FileStore, error) {
	store := &FileStore{path: path, data: make(map[string]time.Time)}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}

	var wire map[string]string
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("parse history file: %w", err)
	}
	for id, stamp := range wire {
		ts, err := time.Parse(time.RFC3339, stamp)
		if err != nil {
			// Entries written by hand or by older versions are skipped,
			// not fatal: missing history only weakens diversity.
			continue
		}
		store.data[id] = ts
	}
	return store, nil
}

// Get implements outfit.HistoryStore.
func (s *FileStore) Get(_ context.Context, itemID string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts, ok := s.data[itemID]
	return ts, ok, nil
}

// Put records the timestamp and flushes the file. Older timestamps never
// overwrite newer ones.
func (s *FileStore) Put(_ context.Context, itemID string, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.data[itemID]; ok && existing.After(ts) {
		return nil
	}
	s.data[itemID] = ts
	return s.flushLocked()
}

// LoadAll implements outfit.HistoryStore.
func (s *FileStore) LoadAll(_ context.Context) (map[string]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]time.Time, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out, nil
}

func (s *FileStore) flushLocked() error {
	wire := make(map[string]string, len(s.data))
	for id, ts := range s.data {
		wire[id] = ts.UTC().Format(time.RFC3339)
	}
	payload, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

var _ outfit.HistoryStore = (*FileStore)(nil)
