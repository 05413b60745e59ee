package outfit

import (
	"fmt"
	"math"
	"strings"

	apperrors "github.com/vaesta/outfit-advisor/pkg/errors"
)

// Category identifies the slot a garment can fill in an outfit.
type Category string

const (
	CategoryOuterwear Category = "outerwear"
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryDress     Category = "dress"
	CategoryShoes     Category = "shoes"
	CategoryAccessory Category = "accessory"
)

// Pattern classifies how visually loud a garment reads.
type Pattern string

const (
	PatternSolid     Pattern = "solid"
	PatternPatterned Pattern = "patterned"
	PatternBusy      Pattern = "busy"
)

// WeatherReading is the pre-parsed weather snapshot the engine consumes.
// It is produced by the weather collaborator, never by the engine itself.
type WeatherReading struct {
	City            string  `json:"city"`
	TemperatureC    float64 `json:"temperatureC"`
	PrecipitationMM float64 `json:"precipitationMm"`
	WindSpeedKMH    float64 `json:"windSpeedKmh"`
	TempSwing       bool    `json:"tempSwing"`
}

// Physical plausibility bounds for a surface reading.
const (
	minTemperatureC = -90.0
	maxTemperatureC = 60.0
)

// Validate rejects non-finite or physically impossible readings.
func (r WeatherReading) Validate() error {
	for name, v := range map[string]float64{
		"temperature":   r.TemperatureC,
		"precipitation": r.PrecipitationMM,
		"windSpeed":     r.WindSpeedKMH,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return apperrors.Wrap("invalid_input", fmt.Sprintf("weather %s is not finite", name), nil)
		}
	}
	if r.TemperatureC < minTemperatureC || r.TemperatureC > maxTemperatureC {
		return apperrors.Wrap("invalid_input", fmt.Sprintf("temperature %.1f°C outside physical range", r.TemperatureC), nil)
	}
	if r.PrecipitationMM < 0 {
		return apperrors.Wrap("invalid_input", "precipitation cannot be negative", nil)
	}
	if r.WindSpeedKMH < 0 {
		return apperrors.Wrap("invalid_input", "wind speed cannot be negative", nil)
	}
	return nil
}

// RequiredAttributes are the target garment attributes derived from weather.
type RequiredAttributes struct {
	Warmth         int `json:"warmth"`         // 1..5
	Impermeability int `json:"impermeability"` // 1..3
	Layering       int `json:"layering"`       // 3..5
}

// GarmentItem is one catalog entry. Owned by the catalog collaborator and
// read-only to the engine; attribute bounds are checked at load time.
type GarmentItem struct {
	ID             string   `json:"id"`
	Category       Category `json:"category"`
	Color          string   `json:"color"`
	Pattern        Pattern  `json:"pattern"`
	Warmth         int      `json:"warmthScore"`
	Impermeability int      `json:"impermeabilityScore"`
	Layering       int      `json:"layeringScore"`
}

// Validate checks the fixed-shape invariants promised to the scorer.
func (g GarmentItem) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return apperrors.Wrap("invalid_input", "garment id cannot be empty", nil)
	}
	switch g.Category {
	case CategoryOuterwear, CategoryTop, CategoryBottom, CategoryDress, CategoryShoes, CategoryAccessory:
	default:
		return apperrors.Wrap("invalid_input", fmt.Sprintf("garment %s: unknown category %q", g.ID, g.Category), nil)
	}
	switch g.Pattern {
	case PatternSolid, PatternPatterned, PatternBusy:
	default:
		return apperrors.Wrap("invalid_input", fmt.Sprintf("garment %s: unknown pattern %q", g.ID, g.Pattern), nil)
	}
	if g.Warmth < 1 || g.Warmth > 5 {
		return apperrors.Wrap("invalid_input", fmt.Sprintf("garment %s: warmth score %d outside 1-5", g.ID, g.Warmth), nil)
	}
	if g.Impermeability < 1 || g.Impermeability > 3 {
		return apperrors.Wrap("invalid_input", fmt.Sprintf("garment %s: impermeability score %d outside 1-3", g.ID, g.Impermeability), nil)
	}
	if g.Layering < 1 || g.Layering > 5 {
		return apperrors.Wrap("invalid_input", fmt.Sprintf("garment %s: layering score %d outside 1-5", g.ID, g.Layering), nil)
	}
	return nil
}

// ScoredItem pairs a garment with the scores computed for one request.
type ScoredItem struct {
	Item             GarmentItem `json:"item"`
	Fitness          float64     `json:"fitness"`
	DiversityPenalty float64     `json:"diversityPenalty"`
	FinalScore       float64     `json:"finalScore"`
}

// Selection is a scored item placed into a slot, carrying the color
// adjustment it received against the items chosen before it.
type Selection struct {
	Slot            Category    `json:"slot"`
	Item            GarmentItem `json:"item"`
	Fitness         float64     `json:"fitness"`
	DiversityPenalty float64    `json:"diversityPenalty"`
	ColorAdjustment float64     `json:"colorAdjustment"`
	AdjustedScore   float64     `json:"adjustedScore"`
}

// Outfit is the transient result of one recommendation request.
type Outfit struct {
	Type         string       `json:"type"` // "layered" or "dress"
	Selections   []Selection  `json:"selections"`
	Alternatives []ScoredItem `json:"alternatives,omitempty"`
	MatchPercent float64      `json:"matchPercent"`
}

// Request is the payload accepted by the recommendation service.
type Request struct {
	City string `json:"city"`
}

// Response is serialized back to API consumers.
type Response struct {
	City         string             `json:"city"`
	Weather      WeatherReading     `json:"weather"`
	Required     RequiredAttributes `json:"required"`
	Outfit       Outfit             `json:"outfit"`
	Warnings     []string           `json:"warnings,omitempty"`
}
