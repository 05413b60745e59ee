package wardrobe

import (
	"context"

	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
)

// CatalogAdapter exposes the wardrobe as a catalog the recommendation engine
// can score, so users with enough items get outfits from their own clothes.
type CatalogAdapter struct {
	repo Repository
}

// NewCatalogAdapter wraps a wardrobe repository.
func NewCatalogAdapter(repo Repository) *CatalogAdapter {
	return &CatalogAdapter{repo: repo}
}

// List implements outfit.CatalogSource.
func (a *CatalogAdapter) List(ctx context.Context) ([]outfit.GarmentItem, error) {
	items, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	garments := make([]outfit.GarmentItem, 0, len(items))
	for _, item := range items {
		garments = append(garments, item.Garment())
	}
	return garments, nil
}

var _ outfit.CatalogSource = (*CatalogAdapter)(nil)
