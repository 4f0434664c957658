package engine

import (
	"context"
	"sort"
	"time"

	"github.com/MikeGii/vomm-sub000/internal/catalog"
)

// QuotaView is the read model for one category budget.
type QuotaView struct {
	Category        Category
	RemainingClicks int
	MaxClicks       int
	TotalDone       int
	NextReset       time.Time
}

// AttributeView is the read model for one skill.
type AttributeView struct {
	Skill    Skill
	Physical bool
	AttributeData
}

// ItemView groups the lots of one base item.
type ItemView struct {
	BaseID   string
	Name     string
	Category catalog.ItemCategory
	Total    int
	Lots     []InventoryLot
}

// RecipeView pairs a recipe with the player's current readiness.
type RecipeView struct {
	Recipe       catalog.RecipeDef
	LevelMet     bool
	HasMaterials bool
	Deficits     []MaterialDeficit
}

// StatusView is everything the status command and the dashboard render.
type StatusView struct {
	Player     *PlayerState
	Quotas     []QuotaView
	Attributes []AttributeView
	Items      []ItemView
}

// Status assembles the read model for a player. Quotas are shown as they
// would be after repair, without persisting anything.
func (s *Service) Status(ctx context.Context, playerID string) (*StatusView, error) {
	p, err := s.Player(ctx, playerID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	view := &StatusView{Player: p}
	for _, c := range AllCategories {
		q, _ := ResolveQuota(p.Quotas[c], p.VIP, p.Working, now)
		view.Quotas = append(view.Quotas, QuotaView{
			Category:        c,
			RemainingClicks: q.RemainingClicks,
			MaxClicks:       MaxClicks(p.VIP, p.Working),
			TotalDone:       q.TotalDone,
			NextReset:       NextReset(now),
		})
	}

	for _, skill := range AllSkills {
		view.Attributes = append(view.Attributes, AttributeView{
			Skill:         skill,
			Physical:      skill.IsPhysical(),
			AttributeData: p.Attributes[skill],
		})
	}

	view.Items = groupInventory(p.Inventory, s.catalog)
	return view, nil
}

// Recipes lists every recipe in a category with readiness marks.
func (s *Service) Recipes(ctx context.Context, playerID string, category Category) ([]RecipeView, error) {
	p, err := s.Player(ctx, playerID)
	if err != nil {
		return nil, err
	}

	var views []RecipeView
	for _, r := range s.catalog.Recipes {
		if category.IsValid() && Category(r.Category) != category {
			continue
		}
		rv := RecipeView{Recipe: r, LevelMet: RecipeLevelMet(p, r), HasMaterials: true}
		for _, req := range r.RequiredItems {
			have := SumQuantityByBaseID(p.Inventory, req.BaseID, catalog.CategoryCrafting)
			if have < req.Quantity {
				rv.HasMaterials = false
				rv.Deficits = append(rv.Deficits, MaterialDeficit{BaseID: req.BaseID, Needed: req.Quantity, Have: have})
			}
		}
		views = append(views, rv)
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].Recipe.RequiredLevel != views[j].Recipe.RequiredLevel {
			return views[i].Recipe.RequiredLevel < views[j].Recipe.RequiredLevel
		}
		return views[i].Recipe.ID < views[j].Recipe.ID
	})
	return views, nil
}

func groupInventory(inv []InventoryLot, cat *catalog.Catalog) []ItemView {
	byBase := map[string]*ItemView{}
	var order []string
	for _, lot := range inv {
		iv, ok := byBase[lot.BaseID]
		if !ok {
			name := lot.BaseID
			if def, known := cat.Items[lot.BaseID]; known {
				name = def.Name
			}
			iv = &ItemView{BaseID: lot.BaseID, Name: name, Category: lot.Category}
			byBase[lot.BaseID] = iv
			order = append(order, lot.BaseID)
		}
		iv.Total += lot.Quantity
		iv.Lots = append(iv.Lots, lot)
	}

	sort.Strings(order)
	views := make([]ItemView, 0, len(order))
	for _, base := range order {
		views = append(views, *byBase[base])
	}
	return views
}
