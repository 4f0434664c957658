// Package catalog loads the item, recipe, activity and booster definitions
// that drive training and crafting. Definitions ship embedded as YAML and can
// be overridden from a local directory.
package catalog

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

// ItemCategory partitions inventory lots. Crafting material sufficiency only
// counts lots in CategoryCrafting.
type ItemCategory string

const (
	CategoryCrafting   ItemCategory = "crafting"
	CategoryConsumable ItemCategory = "consumable"
)

func (c ItemCategory) IsValid() bool {
	switch c {
	case CategoryCrafting, CategoryConsumable:
		return true
	default:
		return false
	}
}

// BoosterKind selects the consumable effect family.
type BoosterKind string

const (
	BoosterQuotaRestore    BoosterKind = "quota_restore"
	BoosterTimeCompression BoosterKind = "time_compression"
)

// ConsumableEffect describes what consuming one unit of an item does.
// Exactly one family applies, selected by Kind.
type ConsumableEffect struct {
	Kind BoosterKind `yaml:"kind"`

	// quota_restore
	Category      string `yaml:"category,omitempty"`
	ClicksPerUnit int    `yaml:"clicks_per_unit,omitempty"`

	// time_compression
	Target  string `yaml:"target,omitempty"` // "course" or "work"
	Percent int    `yaml:"percent,omitempty"`
}

// ItemDef is a base item. Inventory lots reference items by BaseID.
type ItemDef struct {
	BaseID     string            `yaml:"base_id"`
	Name       string            `yaml:"name"`
	Category   ItemCategory      `yaml:"category"`
	Consumable *ConsumableEffect `yaml:"consumable,omitempty"`
}

// ItemRef is a (base item, quantity) pair used by recipe inputs and outputs.
type ItemRef struct {
	BaseID   string `yaml:"base_id"`
	Quantity int    `yaml:"quantity"`
}

// RecipeDef is a crafting recipe for the kitchen or handicraft category.
type RecipeDef struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	Category       string         `yaml:"category"` // "kitchen" or "handicraft"
	RequiredLevel  int            `yaml:"required_level"`
	RequiredItems  []ItemRef      `yaml:"required_items"`
	ProducedItems  []ItemRef      `yaml:"produced_items"`
	SkillRewards   map[string]int `yaml:"skill_rewards"`
	RequiresDevice bool           `yaml:"requires_workshop_device"`
}

// ActivityDef is a sports training activity: one click, one skill, fixed XP.
type ActivityDef struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Skill string `yaml:"skill"`
	XP    int    `yaml:"xp"`
}

// Catalog holds every loaded definition, indexed by id.
type Catalog struct {
	Items      map[string]ItemDef
	Recipes    map[string]RecipeDef
	Activities map[string]ActivityDef
}

type itemsFile struct {
	Items []ItemDef `yaml:"items"`
}

type recipesFile struct {
	Recipes []RecipeDef `yaml:"recipes"`
}

type activitiesFile struct {
	Activities []ActivityDef `yaml:"activities"`
}

// Load parses the embedded catalogs.
func Load() (*Catalog, error) {
	read := func(name string) ([]byte, error) {
		return embedded.ReadFile("data/" + name)
	}
	return load(read)
}

// LoadDir parses catalogs from a directory, falling back to the embedded
// copy for any file the directory does not provide.
func LoadDir(dir string) (*Catalog, error) {
	read := func(name string) ([]byte, error) {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return b, nil
		}
		if os.IsNotExist(err) {
			return embedded.ReadFile("data/" + name)
		}
		return nil, err
	}
	return load(read)
}

func load(read func(name string) ([]byte, error)) (*Catalog, error) {
	c := &Catalog{
		Items:      map[string]ItemDef{},
		Recipes:    map[string]RecipeDef{},
		Activities: map[string]ActivityDef{},
	}

	b, err := read("items.yaml")
	if err != nil {
		return nil, fmt.Errorf("read items catalog: %w", err)
	}
	var items itemsFile
	if err := yaml.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("parse items catalog: %w", err)
	}
	for _, it := range items.Items {
		if _, dup := c.Items[it.BaseID]; dup {
			return nil, fmt.Errorf("duplicate item %q", it.BaseID)
		}
		c.Items[it.BaseID] = it
	}

	b, err = read("recipes.yaml")
	if err != nil {
		return nil, fmt.Errorf("read recipes catalog: %w", err)
	}
	var recipes recipesFile
	if err := yaml.Unmarshal(b, &recipes); err != nil {
		return nil, fmt.Errorf("parse recipes catalog: %w", err)
	}
	for _, r := range recipes.Recipes {
		if _, dup := c.Recipes[r.ID]; dup {
			return nil, fmt.Errorf("duplicate recipe %q", r.ID)
		}
		c.Recipes[r.ID] = r
	}

	b, err = read("activities.yaml")
	if err != nil {
		return nil, fmt.Errorf("read activities catalog: %w", err)
	}
	var acts activitiesFile
	if err := yaml.Unmarshal(b, &acts); err != nil {
		return nil, fmt.Errorf("parse activities catalog: %w", err)
	}
	for _, a := range acts.Activities {
		if _, dup := c.Activities[a.ID]; dup {
			return nil, fmt.Errorf("duplicate activity %q", a.ID)
		}
		c.Activities[a.ID] = a
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	for id, it := range c.Items {
		if !it.Category.IsValid() {
			return fmt.Errorf("item %q: invalid category %q", id, it.Category)
		}
		if it.Consumable != nil {
			if err := validateEffect(id, it.Consumable); err != nil {
				return err
			}
		}
	}

	for id, r := range c.Recipes {
		if r.Category != "kitchen" && r.Category != "handicraft" {
			return fmt.Errorf("recipe %q: invalid category %q", id, r.Category)
		}
		if len(r.RequiredItems) == 0 {
			return fmt.Errorf("recipe %q: no required items", id)
		}
		if len(r.ProducedItems) == 0 {
			return fmt.Errorf("recipe %q: no produced items", id)
		}
		for _, ref := range append(append([]ItemRef{}, r.RequiredItems...), r.ProducedItems...) {
			if ref.Quantity <= 0 {
				return fmt.Errorf("recipe %q: item %q quantity must be positive", id, ref.BaseID)
			}
			if _, ok := c.Items[ref.BaseID]; !ok {
				return fmt.Errorf("recipe %q: unknown item %q", id, ref.BaseID)
			}
		}
		if len(r.SkillRewards) == 0 {
			return fmt.Errorf("recipe %q: no skill rewards", id)
		}
		for skill, xp := range r.SkillRewards {
			if xp <= 0 {
				return fmt.Errorf("recipe %q: skill %q reward must be positive", id, skill)
			}
		}
	}

	for id, a := range c.Activities {
		if a.Skill == "" {
			return fmt.Errorf("activity %q: missing skill", id)
		}
		if a.XP <= 0 {
			return fmt.Errorf("activity %q: xp must be positive", id)
		}
	}
	return nil
}

func validateEffect(itemID string, e *ConsumableEffect) error {
	switch e.Kind {
	case BoosterQuotaRestore:
		if e.Category == "" || e.ClicksPerUnit <= 0 {
			return fmt.Errorf("item %q: quota_restore needs category and positive clicks_per_unit", itemID)
		}
	case BoosterTimeCompression:
		if e.Target != "course" && e.Target != "work" {
			return fmt.Errorf("item %q: time_compression target must be course or work", itemID)
		}
		if e.Percent <= 0 || e.Percent > 100 {
			return fmt.Errorf("item %q: time_compression percent must be in (0,100]", itemID)
		}
	default:
		return fmt.Errorf("item %q: unknown consumable kind %q", itemID, e.Kind)
	}
	return nil
}
