package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Items) == 0 || len(c.Recipes) == 0 || len(c.Activities) == 0 {
		t.Fatalf("empty catalog: items=%d recipes=%d activities=%d",
			len(c.Items), len(c.Recipes), len(c.Activities))
	}

	gloves, ok := c.Recipes["sew_gloves"]
	if !ok {
		t.Fatal("sew_gloves recipe missing")
	}
	if gloves.Category != "handicraft" {
		t.Fatalf("sew_gloves category=%q, want handicraft", gloves.Category)
	}
	if len(gloves.RequiredItems) != 2 {
		t.Fatalf("sew_gloves inputs=%d, want 2", len(gloves.RequiredItems))
	}

	drink, ok := c.Items["energy_drink"]
	if !ok || drink.Consumable == nil {
		t.Fatal("energy_drink consumable missing")
	}
	if drink.Consumable.Kind != BoosterQuotaRestore || drink.Consumable.ClicksPerUnit <= 0 {
		t.Fatalf("energy_drink effect=%+v", drink.Consumable)
	}
}

// Every recipe input and output must reference a defined item, and activities
// must name a skill; Load enforces this, so a loaded catalog is internally
// consistent.
func TestLoadCrossReferences(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for id, r := range c.Recipes {
		for _, ref := range r.RequiredItems {
			if _, ok := c.Items[ref.BaseID]; !ok {
				t.Errorf("recipe %s: input %q not in items", id, ref.BaseID)
			}
		}
		for _, ref := range r.ProducedItems {
			if _, ok := c.Items[ref.BaseID]; !ok {
				t.Errorf("recipe %s: output %q not in items", id, ref.BaseID)
			}
		}
	}
}

func TestLoadDirOverridesOneFile(t *testing.T) {
	dir := t.TempDir()
	override := `activities:
  - id: push_ups
    name: Push Ups
    skill: strength
    xp: 5
`
	if err := os.WriteFile(filepath.Join(dir, "activities.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if _, ok := c.Activities["push_ups"]; !ok {
		t.Fatal("override activity missing")
	}
	if _, ok := c.Activities["weight_lifting"]; ok {
		t.Fatal("embedded activities should be replaced by the override file")
	}
	// Items and recipes still come from the embedded copy.
	if _, ok := c.Recipes["sew_gloves"]; !ok {
		t.Fatal("embedded recipes missing under partial override")
	}
}

func TestLoadDirRejectsBadRecipe(t *testing.T) {
	dir := t.TempDir()
	bad := `recipes:
  - id: broken
    name: Broken
    category: kitchen
    required_items:
      - base_id: no_such_item
        quantity: 1
    produced_items:
      - base_id: bread
        quantity: 1
    skill_rewards:
      cooking: 5
`
	if err := os.WriteFile(filepath.Join(dir, "recipes.yaml"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected validation error for unknown item reference")
	}
}
