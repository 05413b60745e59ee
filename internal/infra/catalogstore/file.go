package catalogstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
)

// FileSource serves a static JSON garment dataset. The file is parsed and
// validated once at construction; scoring never revalidates items.
type FileSource struct {
	items []outfit.GarmentItem
}

// NewFileSource loads and validates the dataset at path.
func NewFileSource(path string, logger *slog.Logger) (*FileSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog dataset: %w", err)
	}

	var items []outfit.GarmentItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse catalog dataset: %w", err)
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("catalog dataset: %w", err)
		}
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("catalog dataset: duplicate garment id %q", item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	logger.Info("catalog dataset loaded", "path", path, "items", len(items))
	return &FileSource{items: items}, nil
}

// List implements outfit.CatalogSource.
func (s *FileSource) List(_ context.Context) ([]outfit.GarmentItem, error) {
	out := make([]outfit.GarmentItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

var _ outfit.CatalogSource = (*FileSource)(nil)
