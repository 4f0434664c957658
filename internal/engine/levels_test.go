package engine

import "testing"

func TestExperienceForNextLevel(t *testing.T) {
	if got := ExperienceForNextLevel(0); got != 100 {
		t.Fatalf("ExperienceForNextLevel(0)=%d, want 100", got)
	}
	// floor((1+1)*100*1.15) = 230
	if got := ExperienceForNextLevel(1); got != 230 {
		t.Fatalf("ExperienceForNextLevel(1)=%d, want 230", got)
	}
	// floor((5+1)*100*1.15) = 690
	if got := ExperienceForNextLevel(5); got != 690 {
		t.Fatalf("ExperienceForNextLevel(5)=%d, want 690", got)
	}
}

func TestApplyExperienceSingleLevel(t *testing.T) {
	attr := AttributeData{Level: 0, Experience: 90, ExperienceForNextLevel: 100}
	got, levels := ApplyExperience(attr, 20)
	if levels != 1 {
		t.Fatalf("levels=%d, want 1", levels)
	}
	if got.Level != 1 || got.Experience != 10 {
		t.Fatalf("got level=%d exp=%d, want level=1 exp=10", got.Level, got.Experience)
	}
	if got.ExperienceForNextLevel != ExperienceForNextLevel(1) {
		t.Fatalf("threshold=%d, want %d", got.ExperienceForNextLevel, ExperienceForNextLevel(1))
	}
	if got.Experience >= got.ExperienceForNextLevel {
		t.Fatalf("invariant broken: exp %d >= threshold %d", got.Experience, got.ExperienceForNextLevel)
	}
}

func TestApplyExperienceLevelCapRetainsExcess(t *testing.T) {
	attr := AttributeData{Level: 0, Experience: 0, ExperienceForNextLevel: 100}
	got, levels := ApplyExperience(attr, 1_000_000)
	if levels != MaxLevelsPerGain {
		t.Fatalf("levels=%d, want cap %d", levels, MaxLevelsPerGain)
	}
	if got.Level != MaxLevelsPerGain {
		t.Fatalf("level=%d, want %d", got.Level, MaxLevelsPerGain)
	}
	// The excess past the cap stays banked, so a second grant of zero still levels.
	if got.Experience < got.ExperienceForNextLevel {
		t.Fatalf("expected banked overflow, got exp=%d threshold=%d", got.Experience, got.ExperienceForNextLevel)
	}
	again, more := ApplyExperience(got, 0)
	if more != MaxLevelsPerGain {
		t.Fatalf("second call levels=%d, want %d", more, MaxLevelsPerGain)
	}
	if again.Level != 2*MaxLevelsPerGain {
		t.Fatalf("second call level=%d, want %d", again.Level, 2*MaxLevelsPerGain)
	}
}

// Experience is conserved: what went in equals what is banked plus what was
// spent on level thresholds.
func TestApplyExperienceConservation(t *testing.T) {
	attr := AttributeData{Level: 3, Experience: 50, ExperienceForNextLevel: ExperienceForNextLevel(3)}
	rawGain := 5000

	got, levels := ApplyExperience(attr, rawGain)

	spent := 0
	for lvl := attr.Level; lvl < attr.Level+levels; lvl++ {
		spent += ExperienceForNextLevel(lvl)
	}
	if attr.Experience+rawGain != got.Experience+spent {
		t.Fatalf("experience lost: before=%d gain=%d, after=%d spent=%d",
			attr.Experience, rawGain, got.Experience, spent)
	}
}

func TestTrainingMultiplierCap(t *testing.T) {
	if got := TrainingMultiplier(0); got != 1 {
		t.Fatalf("TrainingMultiplier(0)=%v, want 1", got)
	}
	if got := TrainingMultiplier(0.5); got != 1.5 {
		t.Fatalf("TrainingMultiplier(0.5)=%v, want 1.5", got)
	}
	// Sum caps at 1000% before applying.
	if got := TrainingMultiplier(25); got != 11 {
		t.Fatalf("TrainingMultiplier(25)=%v, want 11", got)
	}
	if got := TrainingMultiplier(-3); got != 1 {
		t.Fatalf("TrainingMultiplier(-3)=%v, want 1", got)
	}
}

func TestReputationAward(t *testing.T) {
	if got := ReputationAward(0); got != 0 {
		t.Fatalf("ReputationAward(0)=%d, want 0", got)
	}
	if got := ReputationAward(3); got != 6 {
		t.Fatalf("ReputationAward(3)=%d, want 6", got)
	}
	if got := ReputationAward(80); got != ReputationCapPerCall {
		t.Fatalf("ReputationAward(80)=%d, want cap %d", got, ReputationCapPerCall)
	}
}

func TestGainExperienceBonusOnlyForPhysical(t *testing.T) {
	p := &PlayerState{}
	p.Normalize()

	// Physical skill: 100 XP with +100% bonus lands 200.
	GainExperience(p, SkillStrength, 100, 1.0)
	str := p.Attributes[SkillStrength]
	if str.Level != 1 || str.Experience != 100 {
		t.Fatalf("strength level=%d exp=%d, want level=1 exp=100", str.Level, str.Experience)
	}

	// Craft skill: bonus argument is ignored.
	GainExperience(p, SkillCooking, 100, 1.0)
	cook := p.Attributes[SkillCooking]
	if cook.Level != 1 || cook.Experience != 0 {
		t.Fatalf("cooking level=%d exp=%d, want level=1 exp=0", cook.Level, cook.Experience)
	}
}

func TestGainExperienceReputation(t *testing.T) {
	p := &PlayerState{}
	p.Normalize()

	GainExperience(p, SkillAgility, 500, 0) // levels 0->1 (100), 1->2 (230): 2 levels
	if p.Reputation != 4 {
		t.Fatalf("reputation=%d, want 4", p.Reputation)
	}

	rep := p.Reputation
	GainExperience(p, SkillCooking, 500, 0)
	if p.Reputation != rep {
		t.Fatalf("craft levels must not award reputation, got %d", p.Reputation)
	}
}
