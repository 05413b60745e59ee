package outfit

import "strings"

// clashPairs lists color combinations considered aesthetically incompatible.
var clashPairs = [][2]string{
	{"red", "green"},
	{"blue", "orange"},
	{"purple", "yellow"},
	{"red", "bright blue"},
	{"pink", "dark blue"},
}

var neutralColors = []string{"black", "white", "grey", "navy", "beige"}

// Adjustment penalties and bonus applied between two chosen items.
const (
	colorClashPenalty = -5.0
	busyPairPenalty   = -2.0
	neutralPairBonus  = 1.0
)

// ColorAdjustment scores the pairwise compatibility of two garments.
// Symmetric: ColorAdjustment(a, b) == ColorAdjustment(b, a).
func ColorAdjustment(a, b GarmentItem) float64 {
	colorA := strings.ToLower(a.Color)
	colorB := strings.ToLower(b.Color)

	for _, pair := range clashPairs {
		if (strings.Contains(colorA, pair[0]) && strings.Contains(colorB, pair[1])) ||
			(strings.Contains(colorB, pair[0]) && strings.Contains(colorA, pair[1])) {
			return colorClashPenalty
		}
	}

	if a.Pattern == PatternBusy && b.Pattern == PatternBusy {
		return busyPairPenalty
	}

	if isNeutral(colorA) && isNeutral(colorB) {
		return neutralPairBonus
	}
	return 0
}

func isNeutral(color string) bool {
	for _, n := range neutralColors {
		if strings.Contains(color, n) {
			return true
		}
	}
	return false
}
