package engine

import (
	"context"
	"fmt"
)

// TrainingResult reports one completed training click.
type TrainingResult struct {
	Category   Category
	ActionID   string
	XPGained   map[Skill]int
	LevelsUp   map[Skill]int
	Reputation int // reputation gained by this click
	Craft      *CraftOutcome

	RemainingClicks int
	TotalDone       int
}

// BulkTrainingResult reports a 5x run. Each iteration reads, mutates and
// commits independently, so a failure on iteration k leaves the first k-1
// durably applied; Completed then holds those and Err the stopping error.
type BulkTrainingResult struct {
	Completed []*TrainingResult
	Err       error
}

// BulkTrainingClicks is how many clicks the bulk variant attempts.
const BulkTrainingClicks = 5

// PerformTraining executes one training click: quota repair, crafting or
// sports XP, click consumption, one atomic write.
func (s *Service) PerformTraining(ctx context.Context, playerID string, category Category, actionID string) (*TrainingResult, error) {
	if !category.IsValid() {
		return nil, InvalidRecipeError{ID: actionID, Reason: fmt.Sprintf("unknown category %q", category)}
	}

	p, err := s.Player(ctx, playerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	q, repaired := ResolveQuota(p.Quotas[category], p.VIP, p.Working, now)
	p.Quotas[category] = q
	if repaired {
		// Persist the repair on its own so a failed action still lands it.
		// A later repair call inside the same hour is a no-op.
		if err := s.store.Write(ctx, p); err != nil {
			return nil, fmt.Errorf("persist quota repair: %w", err)
		}
	}

	if q.RemainingClicks == 0 {
		return nil, QuotaExhaustedError{Category: category}
	}

	res := &TrainingResult{
		Category: category,
		ActionID: actionID,
		XPGained: map[Skill]int{},
		LevelsUp: map[Skill]int{},
	}
	repBefore := p.Reputation

	if category.IsCrafting() {
		if err := s.resolveCraftAction(ctx, p, category, actionID, res); err != nil {
			return nil, err
		}
	} else {
		if err := s.resolveSportsAction(p, actionID, res); err != nil {
			return nil, err
		}
	}

	p.Quotas[category] = ConsumeClick(p.Quotas[category])
	res.RemainingClicks = p.Quotas[category].RemainingClicks
	res.TotalDone = p.Quotas[category].TotalDone
	res.Reputation = p.Reputation - repBefore

	if err := s.store.Write(ctx, p); err != nil {
		return nil, fmt.Errorf("persist training: %w", err)
	}

	s.record(ctx, playerID, "training_click:"+string(category), 1, actionID)
	if res.Craft != nil {
		for _, line := range res.Craft.Produced {
			s.record(ctx, playerID, "item_produced", line.Quantity, line.BaseID)
		}
	}
	return res, nil
}

// PerformTraining5x runs five sequential clicks, each against freshly read
// state. It is deliberately not one transaction across all five.
func (s *Service) PerformTraining5x(ctx context.Context, playerID string, category Category, actionID string) *BulkTrainingResult {
	bulk := &BulkTrainingResult{}
	for i := 0; i < BulkTrainingClicks; i++ {
		res, err := s.PerformTraining(ctx, playerID, category, actionID)
		if err != nil {
			bulk.Err = err
			return bulk
		}
		bulk.Completed = append(bulk.Completed, res)
	}
	return bulk
}

func (s *Service) resolveSportsAction(p *PlayerState, actionID string, res *TrainingResult) error {
	act, ok := s.catalog.Activities[actionID]
	if !ok {
		return InvalidRecipeError{ID: actionID}
	}
	skill := Skill(act.Skill)
	if !skill.IsPhysical() {
		return InvalidRecipeError{ID: actionID, Reason: "not a sports activity"}
	}

	bonus := s.bonuses.TrainingBonus(p.CompletedCourses, skill)
	levels := GainExperience(p, skill, act.XP, bonus)
	res.XPGained[skill] = act.XP
	res.LevelsUp[skill] = levels
	return nil
}

func (s *Service) resolveCraftAction(ctx context.Context, p *PlayerState, category Category, recipeID string, res *TrainingResult) error {
	recipe, ok := s.catalog.Recipes[recipeID]
	if !ok {
		return InvalidRecipeError{ID: recipeID}
	}
	if Category(recipe.Category) != category {
		return InvalidRecipeError{ID: recipeID, Reason: fmt.Sprintf("not a %s recipe", category)}
	}
	if !RecipeLevelMet(p, recipe) {
		return InvalidRecipeError{ID: recipeID, Reason: fmt.Sprintf("requires skill level %d", recipe.RequiredLevel)}
	}

	kitchen, err := s.kitchen.KitchenSize(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("kitchen lookup: %w", err)
	}

	successRate := NoDeviceSuccessRate
	if recipe.RequiresDevice {
		successRate, err = s.workshop.SuccessRate(ctx, p.ID, recipe.Category)
		if err != nil {
			return fmt.Errorf("workshop lookup: %w", err)
		}
	}

	outcome, err := ResolveCraft(p, recipe, kitchen, successRate, s.rand)
	if err != nil {
		return err
	}
	res.Craft = outcome

	// Skill XP is earned for the attempt, craft skills take no bonus.
	for skillName, xp := range recipe.SkillRewards {
		skill := Skill(skillName)
		levels := GainExperience(p, skill, xp, 0)
		res.XPGained[skill] += xp
		res.LevelsUp[skill] += levels
	}
	return nil
}

// ConsumeQuotaBooster repairs the category quota, then applies a quota
// booster lot and persists.
func (s *Service) ConsumeQuotaBooster(ctx context.Context, playerID string, category Category, lotID string, quantity int) (*QuotaBoostResult, error) {
	if !category.IsValid() {
		return nil, QuotaAlreadyFullError{Category: category}
	}
	p, err := s.Player(ctx, playerID)
	if err != nil {
		return nil, err
	}

	q, repaired := ResolveQuota(p.Quotas[category], p.VIP, p.Working, s.now())
	p.Quotas[category] = q
	// The repair is real state even when the booster is then rejected.
	if repaired {
		if err := s.store.Write(ctx, p); err != nil {
			return nil, fmt.Errorf("persist quota repair: %w", err)
		}
	}

	res, err := ApplyQuotaBooster(p, category, lotID, quantity, s.catalog)
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(ctx, p); err != nil {
		return nil, fmt.Errorf("persist quota boost: %w", err)
	}
	s.record(ctx, playerID, "booster_used:quota", quantity, string(category))
	return res, nil
}

// CompressTimer applies a time-compression booster to the active course or
// work session and persists.
func (s *Service) CompressTimer(ctx context.Context, playerID string, target TimedTaskTarget, lotID string) (*TimerBoostResult, error) {
	if !target.IsValid() {
		return nil, NoActiveTaskError{Target: target}
	}
	p, err := s.Player(ctx, playerID)
	if err != nil {
		return nil, err
	}

	res, err := ApplyTimerCompression(p, target, lotID, s.now(), s.catalog)
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(ctx, p); err != nil {
		return nil, fmt.Errorf("persist timer boost: %w", err)
	}
	s.record(ctx, playerID, "booster_used:timer", 1, string(target))
	return res, nil
}
