package engine

import "github.com/MikeGii/vomm-sub000/internal/rng"

// Yield bonus odds per kitchen tier.
const (
	smallDoubleChance  = 0.20
	mediumDoubleChance = 0.40
	largeTripleChance  = 0.30
	largeDoubleChance  = 0.60
)

// DecideYieldMultiplier draws the production multiplier for one crafting
// call. The large kitchen rolls for 3x first and only on failure rolls an
// independent 2x; the two rolls are separate draws, not one three-way split.
// A single decision applies to every produced line of the call.
func DecideYieldMultiplier(kitchen KitchenSize, src rng.Source) int {
	switch kitchen {
	case KitchenSmall:
		if src.Float64() < smallDoubleChance {
			return 2
		}
	case KitchenMedium:
		if src.Float64() < mediumDoubleChance {
			return 2
		}
	case KitchenLarge:
		if src.Float64() < largeTripleChance {
			return 3
		}
		if src.Float64() < largeDoubleChance {
			return 2
		}
	}
	return 1
}
