package engine

import (
	"github.com/google/uuid"

	"github.com/MikeGii/vomm-sub000/internal/catalog"
)

// SumQuantityByBaseID totals the owned quantity of a base item across all
// lots in the given category.
func SumQuantityByBaseID(inv []InventoryLot, baseID string, category catalog.ItemCategory) int {
	total := 0
	for _, lot := range inv {
		if lot.BaseID == baseID && lot.Category == category {
			total += lot.Quantity
		}
	}
	return total
}

// consumeFromLots removes `amount` units of a base item from crafting lots,
// greedily in stored order. Lots drained to zero are dropped, a partially
// drained lot is reduced in place. The caller must have verified sufficiency.
func consumeFromLots(inv []InventoryLot, baseID string, amount int) []InventoryLot {
	out := inv[:0]
	for _, lot := range inv {
		if amount > 0 && lot.BaseID == baseID && lot.Category == catalog.CategoryCrafting {
			take := lot.Quantity
			if take > amount {
				take = amount
			}
			amount -= take
			lot.Quantity -= take
			if lot.Quantity == 0 {
				continue
			}
		}
		out = append(out, lot)
	}
	return out
}

// addToInventory merges quantity into an existing non-equipped lot sharing
// the base id, or appends a fresh lot.
func addToInventory(inv []InventoryLot, baseID string, quantity int, category catalog.ItemCategory) []InventoryLot {
	for i := range inv {
		if inv[i].BaseID == baseID && inv[i].Category == category && !inv[i].Equipped {
			inv[i].Quantity += quantity
			return inv
		}
	}
	return append(inv, InventoryLot{
		ID:       NewLotID(),
		BaseID:   baseID,
		Quantity: quantity,
		Category: category,
	})
}

// removeFromLot deducts quantity from one specific lot, dropping the lot when
// it reaches zero. Returns false when the lot is missing or too small.
func removeFromLot(inv []InventoryLot, lotID string, quantity int) ([]InventoryLot, bool) {
	for i := range inv {
		if inv[i].ID != lotID {
			continue
		}
		if inv[i].Quantity < quantity {
			return inv, false
		}
		inv[i].Quantity -= quantity
		if inv[i].Quantity == 0 {
			return append(inv[:i], inv[i+1:]...), true
		}
		return inv, true
	}
	return inv, false
}

// findLot returns the lot with the given id, or nil.
func findLot(inv []InventoryLot, lotID string) *InventoryLot {
	for i := range inv {
		if inv[i].ID == lotID {
			return &inv[i]
		}
	}
	return nil
}

// NewLotID mints an opaque lot identifier. Lot ids carry no semantics; the
// base item is always the separate BaseID field.
func NewLotID() string {
	return uuid.NewString()
}
