package evaluation

import (
	"math"
	"sort"

	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
)

// PrecisionAtK is the fraction of the top-k recommended ids that are relevant.
func PrecisionAtK(recommended, relevant []string, k int) float64 {
	if len(recommended) == 0 || k <= 0 {
		return 0
	}
	topK := recommended
	if len(topK) > k {
		topK = topK[:k]
	}
	hits := countHits(topK, relevant)
	return float64(hits) / float64(len(topK))
}

// RecallAtK is the fraction of relevant ids found in the top-k recommendations.
func RecallAtK(recommended, relevant []string, k int) float64 {
	if len(relevant) == 0 {
		return 0
	}
	topK := recommended
	if len(topK) > k {
		topK = topK[:k]
	}
	hits := countHits(topK, relevant)
	return float64(hits) / float64(len(relevant))
}

// F1AtK is the harmonic mean of precision and recall at k.
func F1AtK(recommended, relevant []string, k int) float64 {
	p := PrecisionAtK(recommended, relevant, k)
	r := RecallAtK(recommended, relevant, k)
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// NDCGAtK measures ranking quality of the given per-position relevance scores
// with logarithmic position discounting, normalized against the ideal order.
func NDCGAtK(relevanceScores []float64, k int) float64 {
	if len(relevanceScores) == 0 || k <= 0 {
		return 0
	}
	scores := relevanceScores
	if len(scores) > k {
		scores = scores[:k]
	}

	var dcg float64
	for i, score := range scores {
		dcg += score / math.Log2(float64(i)+2)
	}

	ideal := append([]float64(nil), scores...)
	sort.Sort(sort.Reverse(sort.Float64Slice(ideal)))
	var idcg float64
	for i, score := range ideal {
		idcg += score / math.Log2(float64(i)+2)
	}
	if idcg == 0 {
		return 0
	}
	return dcg / idcg
}

// WarmthAccuracy scores how close a recommended warmth level sits to the level
// the temperature calls for, normalized by the maximum possible error.
func WarmthAccuracy(recommendedWarmth int, actualTempC float64) float64 {
	var expected int
	switch {
	case actualTempC < 5:
		expected = 5
	case actualTempC < 15:
		expected = 4
	case actualTempC < 25:
		expected = 3
	case actualTempC < 32:
		expected = 2
	default:
		expected = 1
	}
	accuracy := 1.0 - math.Abs(float64(recommendedWarmth-expected))/4.0
	return math.Max(0, accuracy)
}

// WeatherMatchScore scores how well the chosen garments fit the reading,
// combining warmth appropriateness with rain protection. Returns 0-1.
func WeatherMatchScore(items []outfit.GarmentItem, weather outfit.WeatherReading) float64 {
	if len(items) == 0 {
		return 0.5
	}

	var scores []float64
	for _, item := range items {
		warmth := float64(item.Warmth)
		switch {
		case weather.TemperatureC < 10 && item.Warmth >= 4:
			scores = append(scores, 1.0)
		case weather.TemperatureC < 20 && item.Warmth >= 3:
			scores = append(scores, 1.0)
		case weather.TemperatureC >= 20 && item.Warmth <= 2:
			scores = append(scores, 1.0)
		default:
			var expected float64
			switch {
			case weather.TemperatureC < 5:
				expected = 5
			case weather.TemperatureC < 15:
				expected = 4
			case weather.TemperatureC < 25:
				expected = 3
			default:
				expected = 1
			}
			scores = append(scores, 1.0-math.Abs(warmth-expected)/4.0)
		}

		if weather.PrecipitationMM > 0 {
			switch {
			case weather.PrecipitationMM > 2.5 && item.Impermeability >= 3:
				scores = append(scores, 1.0)
			case weather.PrecipitationMM > 0.5 && item.Impermeability >= 2:
				scores = append(scores, 1.0)
			default:
				scores = append(scores, 0.5)
			}
		}
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

func countHits(topK, relevant []string) int {
	relevantSet := make(map[string]struct{}, len(relevant))
	for _, id := range relevant {
		relevantSet[id] = struct{}{}
	}
	hits := 0
	for _, id := range topK {
		if _, ok := relevantSet[id]; ok {
			hits++
		}
	}
	return hits
}
