package engine

import (
	"time"

	"github.com/MikeGii/vomm-sub000/internal/catalog"
)

// Skill identifies one trainable attribute.
type Skill string

// Physical skills, trained through sports activities.
const (
	SkillStrength     Skill = "strength"
	SkillAgility      Skill = "agility"
	SkillDexterity    Skill = "dexterity"
	SkillEndurance    Skill = "endurance"
	SkillIntelligence Skill = "intelligence"
)

// Craft and utility skills, trained through crafting recipes.
const (
	SkillCooking      Skill = "cooking"
	SkillBrewing      Skill = "brewing"
	SkillChemistry    Skill = "chemistry"
	SkillSewing       Skill = "sewing"
	SkillKnitting     Skill = "knitting"
	SkillWoodworking  Skill = "woodworking"
	SkillMetalworking Skill = "metalworking"
)

// PhysicalSkills are the skills eligible for the ability training bonus and
// the reputation award on level-up.
var PhysicalSkills = []Skill{
	SkillStrength, SkillAgility, SkillDexterity, SkillEndurance, SkillIntelligence,
}

// CraftSkills receive no training bonus.
var CraftSkills = []Skill{
	SkillCooking, SkillBrewing, SkillChemistry,
	SkillSewing, SkillKnitting, SkillWoodworking, SkillMetalworking,
}

// AllSkills is PhysicalSkills followed by CraftSkills.
var AllSkills = append(append([]Skill{}, PhysicalSkills...), CraftSkills...)

func (s Skill) IsPhysical() bool {
	for _, p := range PhysicalSkills {
		if s == p {
			return true
		}
	}
	return false
}

func (s Skill) IsValid() bool {
	for _, k := range AllSkills {
		if s == k {
			return true
		}
	}
	return false
}

// Category is one of the three independent hourly training budgets.
type Category string

const (
	CategorySports     Category = "sports"
	CategoryKitchen    Category = "kitchen"
	CategoryHandicraft Category = "handicraft"
)

var AllCategories = []Category{CategorySports, CategoryKitchen, CategoryHandicraft}

func (c Category) IsValid() bool {
	switch c {
	case CategorySports, CategoryKitchen, CategoryHandicraft:
		return true
	default:
		return false
	}
}

// IsCrafting reports whether training in this category runs a recipe.
func (c Category) IsCrafting() bool {
	return c == CategoryKitchen || c == CategoryHandicraft
}

// KitchenSize is the owned crafting facility tier driving the yield bonus.
type KitchenSize string

const (
	KitchenNone   KitchenSize = "none"
	KitchenSmall  KitchenSize = "small"
	KitchenMedium KitchenSize = "medium"
	KitchenLarge  KitchenSize = "large"
)

func (k KitchenSize) IsValid() bool {
	switch k {
	case KitchenNone, KitchenSmall, KitchenMedium, KitchenLarge:
		return true
	default:
		return false
	}
}

// TimedTaskTarget selects which active timed task a compression booster hits.
type TimedTaskTarget string

const (
	TargetCourse TimedTaskTarget = "course"
	TargetWork   TimedTaskTarget = "work"
)

func (t TimedTaskTarget) IsValid() bool {
	return t == TargetCourse || t == TargetWork
}

// AttributeData is the per-skill ledger entry.
// Invariant after any update: Experience < ExperienceForNextLevel.
type AttributeData struct {
	Level                  int `json:"level"`
	Experience             int `json:"experience"`
	ExperienceForNextLevel int `json:"experienceForNextLevel"`
}

// PlayerAttributes maps skill name to its ledger entry. Missing skills are
// backfilled with defaults by EnsureAttributes.
type PlayerAttributes map[Skill]AttributeData

// EnsureAttributes backfills every known skill that is missing an entry.
func EnsureAttributes(attrs PlayerAttributes) PlayerAttributes {
	if attrs == nil {
		attrs = PlayerAttributes{}
	}
	for _, s := range AllSkills {
		if _, ok := attrs[s]; !ok {
			attrs[s] = AttributeData{Level: 0, Experience: 0, ExperienceForNextLevel: ExperienceForNextLevel(0)}
		}
	}
	return attrs
}

// TrainingQuota is one hourly-reset click budget.
type TrainingQuota struct {
	RemainingClicks int       `json:"remainingClicks"`
	LastResetTime   time.Time `json:"lastResetTime"`
	TotalDone       int       `json:"totalDone"`
}

// MaxClicks derives the quota ceiling from VIP and working status.
// It is never stored.
func MaxClicks(vip, working bool) int {
	switch {
	case vip && !working:
		return 100
	case vip && working:
		return 30
	case !vip && !working:
		return 50
	default:
		return 10
	}
}

// InventoryLot is one stack of a base item. Multiple lots may share a BaseID;
// the owned total is the sum across matching lots.
type InventoryLot struct {
	ID       string               `json:"id"`
	BaseID   string               `json:"baseId"`
	Quantity int                  `json:"quantity"`
	Category catalog.ItemCategory `json:"category"`
	Equipped bool                 `json:"equipped,omitempty"`
}

// ActiveTimedTask is a running course or work session. EndsAt may shrink at
// most once, through a time-compression booster.
type ActiveTimedTask struct {
	StartedAt   time.Time `json:"startedAt"`
	EndsAt      time.Time `json:"endsAt"`
	BoosterUsed bool      `json:"boosterUsed"`
}

// PlayerState is the whole persisted aggregate. One engine call owns the
// in-memory copy exclusively; the store is the writer of record.
type PlayerState struct {
	ID      string
	Version int64

	VIP     bool
	Working bool

	Reputation int

	Attributes PlayerAttributes
	Quotas     map[Category]TrainingQuota
	Inventory  []InventoryLot

	Course *ActiveTimedTask
	Work   *ActiveTimedTask

	CompletedCourses []string
}

// Normalize backfills lazily-created sub-state so the rest of the engine can
// assume fully populated maps.
func (p *PlayerState) Normalize() {
	p.Attributes = EnsureAttributes(p.Attributes)
	if p.Quotas == nil {
		p.Quotas = map[Category]TrainingQuota{}
	}
	for _, c := range AllCategories {
		if _, ok := p.Quotas[c]; !ok {
			p.Quotas[c] = TrainingQuota{RemainingClicks: MaxClicks(p.VIP, p.Working)}
		}
	}
}
