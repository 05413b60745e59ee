package outfit

import (
	"sort"
	"time"

	apperrors "github.com/vaesta/outfit-advisor/pkg/errors"
)

// OutfitTypeLayered and OutfitTypeDress name the two mutually exclusive
// outfit shapes the assembler can produce.
const (
	OutfitTypeLayered = "layered"
	OutfitTypeDress   = "dress"
)

// Assemble greedily builds a complete outfit from the catalog: optional
// outerwear first, then top+bottom or a dress, then optional shoes and an
// accessory. Each slot re-ranks its candidates by final score plus the summed
// color adjustment against everything already chosen, without backtracking.
//
// The dress path is taken only when the required warmth is mild (<= 3) and the
// best dress beats the averaged adjusted score of the best top+bottom pair, or
// when no top+bottom pair exists at all.
func Assemble(catalog []GarmentItem, req RequiredAttributes, history map[string]time.Time, now time.Time, cfg Config) (Outfit, error) {
	rank := func(cat Category) []ScoredItem {
		return rankCategory(catalog, cat, req, cfg.StyleFit, history, now)
	}

	outers := rank(CategoryOuterwear)
	tops := rank(CategoryTop)
	bottoms := rank(CategoryBottom)
	dresses := rank(CategoryDress)

	var (
		selections []Selection
		chosen     []GarmentItem
	)
	pick := func(slot Category, candidates []ScoredItem) (Selection, []ScoredItem) {
		return selectBest(slot, candidates, chosen)
	}

	// Cold enough for outerwear: select it before anything else so later
	// slots can color-match against it.
	if req.Warmth >= 3 && len(outers) > 0 && outers[0].FinalScore > 0 {
		sel, _ := pick(CategoryOuterwear, outers)
		selections = append(selections, sel)
		chosen = append(chosen, sel.Item)
	}

	layeredPossible := len(tops) > 0 && len(bottoms) > 0
	dressPossible := req.Warmth <= 3 && len(dresses) > 0

	if !layeredPossible && !dressPossible {
		switch {
		case len(tops) == 0 && len(bottoms) == 0:
			return Outfit{}, apperrors.Wrap("incomplete_catalog", "no top or bottom candidates in catalog", nil)
		case len(tops) == 0:
			return Outfit{}, apperrors.Wrap("incomplete_catalog", "no top candidates in catalog", nil)
		default:
			return Outfit{}, apperrors.Wrap("incomplete_catalog", "no bottom candidates in catalog", nil)
		}
	}

	var (
		topSel, bottomSel, dressSel Selection
		topAlts, dressAlts          []ScoredItem
		layeredScore                float64
	)
	if layeredPossible {
		topSel, topAlts = pick(CategoryTop, tops)
		bottomSel, _ = selectBest(CategoryBottom, bottoms, append(append([]GarmentItem{}, chosen...), topSel.Item))
		layeredScore = (topSel.AdjustedScore + bottomSel.AdjustedScore) / 2
	}
	if dressPossible {
		dressSel, dressAlts = pick(CategoryDress, dresses)
	}

	var (
		kind         string
		alternatives []ScoredItem
	)
	if dressPossible && (!layeredPossible || dressSel.AdjustedScore > layeredScore) {
		kind = OutfitTypeDress
		selections = append(selections, dressSel)
		chosen = append(chosen, dressSel.Item)
		alternatives = clip(dressAlts, cfg.Alternatives)
	} else {
		kind = OutfitTypeLayered
		selections = append(selections, topSel)
		chosen = append(chosen, topSel.Item)
		selections = append(selections, bottomSel)
		chosen = append(chosen, bottomSel.Item)
		alternatives = clip(topAlts, cfg.Alternatives)
	}

	// Optional finishing slots: only added when they still score positive
	// after color adjustment.
	for _, cat := range []Category{CategoryShoes, CategoryAccessory} {
		candidates := rank(cat)
		if len(candidates) == 0 {
			continue
		}
		sel, _ := pick(cat, candidates)
		if sel.AdjustedScore <= 0 {
			continue
		}
		selections = append(selections, sel)
		chosen = append(chosen, sel.Item)
	}

	return Outfit{
		Type:         kind,
		Selections:   selections,
		Alternatives: alternatives,
		MatchPercent: matchPercent(selections),
	}, nil
}

// selectBest re-ranks candidates by final score plus the summed pairwise
// color adjustment against already chosen items, then takes the head. Ties
// fall back to item ID so selection stays deterministic.
func selectBest(slot Category, candidates []ScoredItem, chosen []GarmentItem) (Selection, []ScoredItem) {
	type adjusted struct {
		scored ScoredItem
		adj    float64
		score  float64
	}
	ranked := make([]adjusted, 0, len(candidates))
	for _, cand := range candidates {
		var adj float64
		for _, picked := range chosen {
			adj += ColorAdjustment(picked, cand.Item)
		}
		ranked = append(ranked, adjusted{scored: cand, adj: adj, score: cand.FinalScore + adj})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].scored.Item.ID < ranked[j].scored.Item.ID
	})

	best := ranked[0]
	sel := Selection{
		Slot:             slot,
		Item:             best.scored.Item,
		Fitness:          best.scored.Fitness,
		DiversityPenalty: best.scored.DiversityPenalty,
		ColorAdjustment:  best.adj,
		AdjustedScore:    best.score,
	}
	alts := make([]ScoredItem, 0, len(ranked)-1)
	for _, r := range ranked[1:] {
		alts = append(alts, r.scored)
	}
	return sel, alts
}

// matchPercent is the mean of each selected item's fitness normalized to
// 0-100. Fitness lives on a 0-10 scale, so the mean maps directly.
func matchPercent(selections []Selection) float64 {
	if len(selections) == 0 {
		return 0
	}
	var sum float64
	for _, sel := range selections {
		sum += sel.Fitness
	}
	pct := sum / float64(len(selections)) / fitScale * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func clip(items []ScoredItem, max int) []ScoredItem {
	if max <= 0 || len(items) <= max {
		return items
	}
	return items[:max]
}
