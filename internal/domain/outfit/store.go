package outfit

import (
	"context"
	"time"
)

// HistoryStore records when each item was last recommended. Implementations
// must keep timestamps monotonic per item: a Put carrying an older timestamp
// than the stored one is ignored.
type HistoryStore interface {
	Get(ctx context.Context, itemID string) (time.Time, bool, error)
	Put(ctx context.Context, itemID string, ts time.Time) error
	LoadAll(ctx context.Context) (map[string]time.Time, error)
}

// CatalogSource supplies the garments eligible for recommendation. Items are
// expected to be validated by the source at load time.
type CatalogSource interface {
	List(ctx context.Context) ([]GarmentItem, error)
}

// WeatherClient resolves current conditions for a city.
type WeatherClient interface {
	Current(ctx context.Context, city string) (WeatherReading, error)
}
