package outfit

import (
	"math"
	"sort"
	"time"
)

// Fitness weights. They must sum to exactly 1.0; TestFitnessWeightsSumToOne
// guards the invariant.
const (
	weightWarmth         = 0.40
	weightImpermeability = 0.25
	weightLayering       = 0.15
	weightStyle          = 0.20
)

// fitScale is the ceiling of each per-attribute fit term, so fitness lands
// on a 0-10 scale.
const fitScale = 10.0

// NeutralStyleFit is the documented no-op default for the style placeholder:
// the midpoint of the fit scale, contributing the same constant to every
// item until personalization lands.
const NeutralStyleFit = 5.0

// Fitness scores one garment against the required attributes. Exact matches
// score highest; mismatches decay linearly and never go negative.
func Fitness(item GarmentItem, req RequiredAttributes, styleFit float64) float64 {
	return weightWarmth*attributeFit(item.Warmth, req.Warmth) +
		weightImpermeability*attributeFit(item.Impermeability, req.Impermeability) +
		weightLayering*attributeFit(item.Layering, req.Layering) +
		weightStyle*styleFit
}

func attributeFit(value, required int) float64 {
	fit := fitScale - math.Abs(float64(value-required))
	if fit < 0 {
		return 0
	}
	return fit
}

// rankCategory scores every catalog item of the given category and returns
// them ordered by final score descending, ties broken by item ID so ranking
// is reproducible.
func rankCategory(catalog []GarmentItem, cat Category, req RequiredAttributes, styleFit float64, history map[string]time.Time, now time.Time) []ScoredItem {
	var ranked []ScoredItem
	for _, item := range catalog {
		if item.Category != cat {
			continue
		}
		fitness := Fitness(item, req, styleFit)
		penalty := DiversityPenalty(item, history, now)
		ranked = append(ranked, ScoredItem{
			Item:             item,
			Fitness:          fitness,
			DiversityPenalty: penalty,
			FinalScore:       fitness + penalty,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FinalScore != ranked[j].FinalScore {
			return ranked[i].FinalScore > ranked[j].FinalScore
		}
		return ranked[i].Item.ID < ranked[j].Item.ID
	})
	return ranked
}
