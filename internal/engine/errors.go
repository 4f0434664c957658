package engine

import (
	"fmt"
	"strings"
)

// QuotaExhaustedError is returned when a training click is requested with no
// remaining quota in the category.
type QuotaExhaustedError struct {
	Category Category
}

func (e QuotaExhaustedError) Error() string {
	return fmt.Sprintf("no %s training clicks left this hour", e.Category)
}

// MaterialDeficit reports one insufficient crafting material.
type MaterialDeficit struct {
	BaseID string
	Needed int
	Have   int
}

// MissingMaterialsError is returned when a recipe's sufficiency check fails.
// It carries one deficit per short material; no state was mutated.
type MissingMaterialsError struct {
	RecipeID string
	Deficits []MaterialDeficit
}

func (e MissingMaterialsError) Error() string {
	parts := make([]string, 0, len(e.Deficits))
	for _, d := range e.Deficits {
		parts = append(parts, fmt.Sprintf("%s (need %d, have %d)", d.BaseID, d.Needed, d.Have))
	}
	return fmt.Sprintf("missing materials for %s: %s", e.RecipeID, strings.Join(parts, ", "))
}

// BoosterNotFoundError is returned when the named lot does not exist, is not
// a matching consumable, or holds fewer units than requested.
type BoosterNotFoundError struct {
	LotID string
}

func (e BoosterNotFoundError) Error() string {
	return fmt.Sprintf("booster lot %s not found or not usable here", e.LotID)
}

// BoosterAlreadyUsedError is returned when a timed task was already
// compressed once.
type BoosterAlreadyUsedError struct {
	Target TimedTaskTarget
}

func (e BoosterAlreadyUsedError) Error() string {
	return fmt.Sprintf("a booster was already used on this %s", e.Target)
}

// QuotaAlreadyFullError is returned when a quota booster is used on a full
// quota. Nothing is consumed.
type QuotaAlreadyFullError struct {
	Category Category
}

func (e QuotaAlreadyFullError) Error() string {
	return fmt.Sprintf("%s quota is already full", e.Category)
}

// InvalidRecipeError is returned for unknown or category-mismatched recipe
// and activity ids.
type InvalidRecipeError struct {
	ID     string
	Reason string
}

func (e InvalidRecipeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unknown recipe or activity: %s", e.ID)
	}
	return fmt.Sprintf("recipe or activity %s: %s", e.ID, e.Reason)
}

// NoActiveTaskError is returned when a timer booster targets a course or work
// session that is not running.
type NoActiveTaskError struct {
	Target TimedTaskTarget
}

func (e NoActiveTaskError) Error() string {
	return fmt.Sprintf("no active %s to boost", e.Target)
}
