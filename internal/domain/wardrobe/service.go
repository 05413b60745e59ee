package wardrobe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/vaesta/outfit-advisor/pkg/errors"
)

// Config wires runtime limits for the wardrobe domain.
type Config struct {
	MaxImageBytes int64
	SearchLimit   int
}

// Service manages the user's personal wardrobe.
type Service interface {
	AddItem(ctx context.Context, req AddItemRequest) (Item, error)
	RemoveItem(ctx context.Context, id string) error
	ListItems(ctx context.Context) ([]Item, error)
	SearchSimilar(ctx context.Context, query string, limit int) ([]Match, error)
}

type service struct {
	cfg      Config
	repo     Repository
	storage  ImageStorage
	vision   VisionClient
	embedder Embedder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the wardrobe domain.
func NewService(cfg Config, repo Repository, storage ImageStorage, vision VisionClient, embedder Embedder, logger *slog.Logger) Service {
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = 8 << 20
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 10
	}
	return &service{
		cfg:      cfg,
		repo:     repo,
		storage:  storage,
		vision:   vision,
		embedder: embedder,
		logger:   logger.With("component", "wardrobe.service"),
		now:      time.Now,
	}
}

// AddItem stores the photo, extracts garment attributes from it and persists
// the resulting item with a search embedding.
func (s *service) AddItem(ctx context.Context, req AddItemRequest) (Item, error) {
	if len(req.ImageData) == 0 {
		return Item{}, apperrors.Wrap("invalid_input", "image payload cannot be empty", nil)
	}
	if int64(len(req.ImageData)) > s.cfg.MaxImageBytes {
		return Item{}, apperrors.Wrap("invalid_input", fmt.Sprintf("image exceeds %d bytes", s.cfg.MaxImageBytes), nil)
	}
	if !strings.HasPrefix(req.MimeType, "image/") {
		return Item{}, apperrors.Wrap("invalid_input", fmt.Sprintf("unsupported content type %q", req.MimeType), nil)
	}

	attrs, err := s.vision.ExtractAttributes(ctx, req.ImageData, req.MimeType)
	if err != nil {
		return Item{}, apperrors.Wrap("vision_error", "attribute extraction failed", err)
	}

	item := Item{
		ID:             uuid.NewString(),
		Category:       attrs.Category,
		Color:          attrs.Color,
		Pattern:        attrs.Pattern,
		Warmth:         attrs.Warmth,
		Impermeability: attrs.Impermeability,
		Layering:       attrs.Layering,
		Description:    attrs.Description,
		CreatedAt:      s.now().UTC(),
	}
	item.ImageKey = "wardrobe/" + item.ID
	// Attribute bounds are validated here, at load time, so the scorer
	// can trust every persisted item.
	if err := item.Garment().Validate(); err != nil {
		return Item{}, apperrors.Wrap("vision_error", "extracted attributes out of range", err)
	}

	if _, err := s.storage.Put(ctx, item.ImageKey, req.ImageData, req.MimeType); err != nil {
		return Item{}, apperrors.Wrap("storage_error", "image upload failed", err)
	}

	embedding, err := s.embedItem(ctx, item)
	if err != nil {
		// Search degrades without an embedding; the item itself is kept.
		s.logger.Warn("embedding failed, item stored without search vector", "item", item.ID, "error", err)
		embedding = nil
	}

	stored, err := s.repo.Insert(ctx, item, embedding)
	if err != nil {
		return Item{}, apperrors.Wrap("storage_error", "persist wardrobe item", err)
	}

	s.logger.Info("wardrobe item added", "item", stored.ID, "category", stored.Category)
	return stored, nil
}

func (s *service) RemoveItem(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.Wrap("invalid_input", "item id cannot be empty", nil)
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return apperrors.Wrap("storage_error", "list wardrobe items", err)
	}
	var imageKey string
	for _, item := range items {
		if item.ID == id {
			imageKey = item.ImageKey
			break
		}
	}
	if imageKey == "" {
		return apperrors.Wrap("not_found", fmt.Sprintf("wardrobe item %s not found", id), nil)
	}
	if err := s.repo.Remove(ctx, id); err != nil {
		return apperrors.Wrap("storage_error", "remove wardrobe item", err)
	}
	if err := s.storage.Delete(ctx, imageKey); err != nil {
		s.logger.Warn("orphaned image left in storage", "key", imageKey, "error", err)
	}
	return nil
}

func (s *service) ListItems(ctx context.Context) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "list wardrobe items", err)
	}
	return items, nil
}

// SearchSimilar finds wardrobe items whose descriptions embed closest to the
// free-text query.
func (s *service) SearchSimilar(ctx context.Context, query string, limit int) ([]Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Wrap("invalid_input", "search query cannot be empty", nil)
	}
	if limit <= 0 || limit > s.cfg.SearchLimit {
		limit = s.cfg.SearchLimit
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil || len(vectors) == 0 {
		return nil, apperrors.Wrap("search_error", "embed search query", err)
	}

	matches, err := s.repo.SearchNearest(ctx, vectors[0], limit)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "similarity search", err)
	}
	return matches, nil
}

func (s *service) embedItem(ctx context.Context, item Item) ([]float32, error) {
	text := strings.TrimSpace(fmt.Sprintf("%s %s %s %s", item.Color, item.Pattern, item.Category, item.Description))
	vectors, err := s.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vector")
	}
	return vectors[0], nil
}
