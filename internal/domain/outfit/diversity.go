package outfit

import "time"

type diversityRule struct {
	cooldown time.Duration
	penalty  float64
}

// diversityRules holds the per-category cooldown windows. Dress wear is
// tracked in history but carries no penalty; outerwear has no cooldown at all.
var diversityRules = map[Category]diversityRule{
	CategoryTop:       {cooldown: 48 * time.Hour, penalty: -7.0},
	CategoryBottom:    {cooldown: 72 * time.Hour, penalty: -3.0},
	CategoryOuterwear: {cooldown: 0, penalty: 0},
	CategoryDress:     {cooldown: 24 * time.Hour, penalty: 0},
}

// DiversityPenalty returns the additive score adjustment for an item that was
// recommended within its category's cooldown window. Items absent from
// history, or last worn before the window opened, are not penalized. The
// penalty may drive a final score negative; negative scores stay ranked.
func DiversityPenalty(item GarmentItem, history map[string]time.Time, now time.Time) float64 {
	rule, ok := diversityRules[item.Category]
	if !ok || rule.penalty == 0 || rule.cooldown == 0 {
		return 0
	}
	lastWorn, ok := history[item.ID]
	if !ok {
		return 0
	}
	if now.Sub(lastWorn) < rule.cooldown {
		return rule.penalty
	}
	return 0
}
