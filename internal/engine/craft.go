package engine

import (
	"github.com/MikeGii/vomm-sub000/internal/catalog"
	"github.com/MikeGii/vomm-sub000/internal/rng"
)

// WorkshopRollCeiling is the exclusive upper bound of the success roll.
const WorkshopRollCeiling = 100

// ProducedItem is one line of a crafting call's output, after yield.
type ProducedItem struct {
	BaseID   string
	Quantity int
}

// CraftOutcome summarizes one resolved crafting call for the caller and the
// progress sink.
type CraftOutcome struct {
	RecipeID string
	Produced []ProducedItem

	// GateRolled is true for device-gated recipes; GatePassed then reports
	// whether production happened. Materials are consumed either way.
	GateRolled bool
	GatePassed bool

	// Multiplier is the single yield decision applied to every line.
	Multiplier int
}

// ResolveCraft validates and consumes a recipe's materials from the player's
// inventory, rolls the workshop gate when the recipe needs a device, and adds
// production. Validation failures return before any mutation.
func ResolveCraft(p *PlayerState, recipe catalog.RecipeDef, kitchen KitchenSize, successRate int, src rng.Source) (*CraftOutcome, error) {
	// Sufficiency first, reporting every short material at once.
	var deficits []MaterialDeficit
	for _, req := range recipe.RequiredItems {
		have := SumQuantityByBaseID(p.Inventory, req.BaseID, catalog.CategoryCrafting)
		if have < req.Quantity {
			deficits = append(deficits, MaterialDeficit{BaseID: req.BaseID, Needed: req.Quantity, Have: have})
		}
	}
	if len(deficits) > 0 {
		return nil, MissingMaterialsError{RecipeID: recipe.ID, Deficits: deficits}
	}

	for _, req := range recipe.RequiredItems {
		p.Inventory = consumeFromLots(p.Inventory, req.BaseID, req.Quantity)
	}

	out := &CraftOutcome{RecipeID: recipe.ID, Multiplier: 1}

	if recipe.RequiresDevice {
		out.GateRolled = true
		roll := src.Intn(WorkshopRollCeiling)
		if roll >= clampRate(successRate) {
			// Failed craft: materials are gone, nothing is produced.
			return out, nil
		}
		out.GatePassed = true
	}

	out.Multiplier = DecideYieldMultiplier(kitchen, src)
	for _, prod := range recipe.ProducedItems {
		qty := prod.Quantity * out.Multiplier
		p.Inventory = addToInventory(p.Inventory, prod.BaseID, qty, catalog.CategoryCrafting)
		out.Produced = append(out.Produced, ProducedItem{BaseID: prod.BaseID, Quantity: qty})
	}
	return out, nil
}

// RecipeLevelMet reports whether the player meets the recipe's level
// requirement on at least one of its rewarded skills.
func RecipeLevelMet(p *PlayerState, recipe catalog.RecipeDef) bool {
	if recipe.RequiredLevel <= 0 {
		return true
	}
	for skill := range recipe.SkillRewards {
		if p.Attributes[Skill(skill)].Level >= recipe.RequiredLevel {
			return true
		}
	}
	return false
}

func clampRate(rate int) int {
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}
