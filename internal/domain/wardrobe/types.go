package wardrobe

import (
	"time"

	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
)

// Item is one garment in the user's wardrobe, created from an uploaded photo.
type Item struct {
	ID             string          `json:"id"`
	Category       outfit.Category `json:"category"`
	Color          string          `json:"color"`
	Pattern        outfit.Pattern  `json:"pattern"`
	Warmth         int             `json:"warmthScore"`
	Impermeability int             `json:"impermeabilityScore"`
	Layering       int             `json:"layeringScore"`
	Description    string          `json:"description"`
	ImageKey       string          `json:"imageKey"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Garment projects the item into the shape the recommendation engine scores.
func (i Item) Garment() outfit.GarmentItem {
	return outfit.GarmentItem{
		ID:             i.ID,
		Category:       i.Category,
		Color:          i.Color,
		Pattern:        i.Pattern,
		Warmth:         i.Warmth,
		Impermeability: i.Impermeability,
		Layering:       i.Layering,
	}
}

// Attributes are the garment properties extracted from an item photo.
type Attributes struct {
	Category       outfit.Category `json:"category"`
	Color          string          `json:"color"`
	Pattern        outfit.Pattern  `json:"pattern"`
	Warmth         int             `json:"warmth"`
	Impermeability int             `json:"impermeability"`
	Layering       int             `json:"layering"`
	Description    string          `json:"description"`
}

// AddItemRequest carries an uploaded garment photo.
type AddItemRequest struct {
	ImageData []byte
	MimeType  string
}

// Match pairs an item with its embedding distance to a search query.
type Match struct {
	Item     Item    `json:"item"`
	Distance float64 `json:"distance"`
}

// StoredObject describes a persisted image.
type StoredObject struct {
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	ETag     string `json:"etag,omitempty"`
}
