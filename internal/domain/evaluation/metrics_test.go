package evaluation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
)

func TestPrecisionAtK(t *testing.T) {
	recommended := []string{"a", "b", "c", "d"}
	relevant := []string{"a", "c", "x"}

	require.InDelta(t, 2.0/3.0, PrecisionAtK(recommended, relevant, 3), 1e-9)
	require.InDelta(t, 0.5, PrecisionAtK(recommended, relevant, 4), 1e-9)
	require.Zero(t, PrecisionAtK(nil, relevant, 3))
	require.Zero(t, PrecisionAtK(recommended, relevant, 0))
}

func TestRecallAtK(t *testing.T) {
	recommended := []string{"a", "b", "c"}
	relevant := []string{"a", "c", "x", "y"}

	require.InDelta(t, 0.5, RecallAtK(recommended, relevant, 3), 1e-9)
	require.InDelta(t, 0.25, RecallAtK(recommended, relevant, 1), 1e-9)
	require.Zero(t, RecallAtK(recommended, nil, 3))
}

func TestF1AtK(t *testing.T) {
	recommended := []string{"a", "b"}
	relevant := []string{"a", "b"}
	require.InDelta(t, 1.0, F1AtK(recommended, relevant, 2), 1e-9)
	require.Zero(t, F1AtK([]string{"x"}, []string{"a"}, 1))
}

func TestNDCGAtK(t *testing.T) {
	// Perfectly ordered scores normalize to 1.
	require.InDelta(t, 1.0, NDCGAtK([]float64{5, 4, 3}, 3), 1e-9)
	// Reversed order is strictly worse.
	reversed := NDCGAtK([]float64{3, 4, 5}, 3)
	require.Greater(t, 1.0, reversed)
	require.Greater(t, reversed, 0.0)
	require.Zero(t, NDCGAtK(nil, 3))
	require.Zero(t, NDCGAtK([]float64{0, 0}, 2))
}

func TestWarmthAccuracy(t *testing.T) {
	// Exact match in the freezing band.
	require.InDelta(t, 1.0, WarmthAccuracy(5, 0), 1e-9)
	// One level off costs a quarter.
	require.InDelta(t, 0.75, WarmthAccuracy(4, 0), 1e-9)
	// Maximum miss floors at zero.
	require.Zero(t, WarmthAccuracy(5, 35))
}

func TestWeatherMatchScore(t *testing.T) {
	warmCoat := outfit.GarmentItem{ID: "coat", Category: outfit.CategoryOuterwear, Warmth: 5, Impermeability: 3, Layering: 1}
	tee := outfit.GarmentItem{ID: "tee", Category: outfit.CategoryTop, Warmth: 1, Impermeability: 1, Layering: 5}

	cold := outfit.WeatherReading{City: "Oslo", TemperatureC: 2}
	require.InDelta(t, 1.0, WeatherMatchScore([]outfit.GarmentItem{warmCoat}, cold), 1e-9)

	// Summer-weight garment in freezing weather scores the full penalty.
	require.InDelta(t, 0.0, WeatherMatchScore([]outfit.GarmentItem{tee}, cold), 1e-9)

	// Heavy rain rewards waterproof garments.
	storm := outfit.WeatherReading{City: "Bergen", TemperatureC: 8, PrecipitationMM: 5}
	require.InDelta(t, 1.0, WeatherMatchScore([]outfit.GarmentItem{warmCoat}, storm), 1e-9)

	// No garments yields the neutral midpoint.
	require.InDelta(t, 0.5, WeatherMatchScore(nil, cold), 1e-9)
}
