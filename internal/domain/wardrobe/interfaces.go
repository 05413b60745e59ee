package wardrobe

import (
	"context"
	"io"
)

// Repository persists wardrobe items and their search embeddings.
type Repository interface {
	Insert(ctx context.Context, item Item, embedding []float32) (Item, error)
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]Item, error)
	SearchNearest(ctx context.Context, embedding []float32, limit int) ([]Match, error)
}

// ImageStorage stores garment photos.
type ImageStorage interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (StoredObject, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// VisionClient extracts garment attributes from a photo.
type VisionClient interface {
	ExtractAttributes(ctx context.Context, imageData []byte, mimeType string) (Attributes, error)
}

// Embedder converts texts to vectors for similarity search.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
