package engine

import "math"

const (
	// BaseLevelExperience is the XP needed to leave level 0.
	BaseLevelExperience = 100

	// LevelCurveFactor steepens each successive level threshold.
	LevelCurveFactor = 1.15

	// MaxLevelsPerGain caps how many levels a single experience grant can
	// award. Excess experience is retained, not discarded, so it carries
	// into the next grant.
	MaxLevelsPerGain = 10

	// MaxTrainingBonus caps the summed ability bonus at 1000% (a factor of
	// 10) before it is applied as a multiplier.
	MaxTrainingBonus = 10.0

	// ReputationPerLevel and ReputationCapPerCall bound the reputation
	// awarded for physical levels gained within one training action.
	ReputationPerLevel   = 2
	ReputationCapPerCall = 100
)

// ExperienceForNextLevel returns the XP threshold to leave the given level.
func ExperienceForNextLevel(level int) int {
	if level <= 0 {
		return BaseLevelExperience
	}
	return int(math.Floor(float64(level+1) * 100 * LevelCurveFactor))
}

// TrainingMultiplier converts a summed ability bonus (1.0 == +100%) into the
// gain multiplier, capping the sum first.
func TrainingMultiplier(bonusSum float64) float64 {
	if bonusSum < 0 {
		bonusSum = 0
	}
	return 1 + math.Min(MaxTrainingBonus, bonusSum)
}

// ApplyExperience adds rawGain XP to an attribute and rolls overflow into
// levels, at most MaxLevelsPerGain per call. Experience is never lost: any
// overflow past the cap stays banked on the attribute.
func ApplyExperience(attr AttributeData, rawGain int) (AttributeData, int) {
	if rawGain < 0 {
		rawGain = 0
	}
	if attr.ExperienceForNextLevel < 1 {
		attr.ExperienceForNextLevel = ExperienceForNextLevel(attr.Level)
	}

	attr.Experience += rawGain
	levelsGained := 0
	for attr.Experience >= attr.ExperienceForNextLevel && levelsGained < MaxLevelsPerGain {
		attr.Experience -= attr.ExperienceForNextLevel
		attr.Level++
		attr.ExperienceForNextLevel = ExperienceForNextLevel(attr.Level)
		levelsGained++
	}
	return attr, levelsGained
}

// ReputationAward converts physical levels gained in one call into a
// reputation grant.
func ReputationAward(levelsGained int) int {
	if levelsGained <= 0 {
		return 0
	}
	award := levelsGained * ReputationPerLevel
	if award > ReputationCapPerCall {
		award = ReputationCapPerCall
	}
	return award
}

// GainExperience applies one skill's XP grant on the player, scaling physical
// gains by the ability training bonus and accumulating reputation for
// physical levels. bonusSum is ignored for craft skills.
func GainExperience(p *PlayerState, skill Skill, rawGain int, bonusSum float64) int {
	gain := rawGain
	if skill.IsPhysical() {
		gain = int(math.Floor(float64(rawGain) * TrainingMultiplier(bonusSum)))
	}

	attr, levels := ApplyExperience(p.Attributes[skill], gain)
	p.Attributes[skill] = attr

	if skill.IsPhysical() && levels > 0 {
		p.Reputation += ReputationAward(levels)
	}
	return levels
}
