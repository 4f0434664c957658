package engine

import (
	"time"

	"github.com/MikeGii/vomm-sub000/internal/catalog"
)

// MinCompressedRemaining is the floor left on a timed task after a
// compression booster would have pushed its end into the past.
const MinCompressedRemaining = 60 * time.Second

// QuotaBoostResult reports an applied quota booster.
type QuotaBoostResult struct {
	Category        Category
	ClicksRestored  int
	RemainingClicks int
	UnitsConsumed   int
}

// ApplyQuotaBooster spends `quantity` units of the given consumable lot to
// refill a category quota, clamped at the derived ceiling. The caller-chosen
// quantity is always fully deducted; effect wasted by the clamp is not
// refunded. The quota must already be repaired for the current hour.
func ApplyQuotaBooster(p *PlayerState, category Category, lotID string, quantity int, cat *catalog.Catalog) (*QuotaBoostResult, error) {
	if quantity <= 0 {
		return nil, BoosterNotFoundError{LotID: lotID}
	}

	lot := findLot(p.Inventory, lotID)
	if lot == nil || lot.Category != catalog.CategoryConsumable || lot.Quantity < quantity {
		return nil, BoosterNotFoundError{LotID: lotID}
	}
	item, ok := cat.Items[lot.BaseID]
	if !ok || item.Consumable == nil || item.Consumable.Kind != catalog.BoosterQuotaRestore {
		return nil, BoosterNotFoundError{LotID: lotID}
	}
	if Category(item.Consumable.Category) != category {
		return nil, BoosterNotFoundError{LotID: lotID}
	}

	q := p.Quotas[category]
	max := MaxClicks(p.VIP, p.Working)
	if q.RemainingClicks >= max {
		return nil, QuotaAlreadyFullError{Category: category}
	}

	before := q.RemainingClicks
	q = RestoreClicks(q, item.Consumable.ClicksPerUnit*quantity, p.VIP, p.Working)
	p.Quotas[category] = q

	inv, ok := removeFromLot(p.Inventory, lotID, quantity)
	if !ok {
		return nil, BoosterNotFoundError{LotID: lotID}
	}
	p.Inventory = inv

	return &QuotaBoostResult{
		Category:        category,
		ClicksRestored:  q.RemainingClicks - before,
		RemainingClicks: q.RemainingClicks,
		UnitsConsumed:   quantity,
	}, nil
}

// TimerBoostResult reports an applied time-compression booster.
type TimerBoostResult struct {
	Target    TimedTaskTarget
	OldEnd    time.Time
	NewEnd    time.Time
	Reduction time.Duration
}

// ApplyTimerCompression spends one unit of the given consumable lot to shrink
// the matching active timed task. Each task can be compressed once; a new end
// that would land in the past clamps to now + MinCompressedRemaining.
func ApplyTimerCompression(p *PlayerState, target TimedTaskTarget, lotID string, now time.Time, cat *catalog.Catalog) (*TimerBoostResult, error) {
	lot := findLot(p.Inventory, lotID)
	if lot == nil || lot.Category != catalog.CategoryConsumable || lot.Quantity < 1 {
		return nil, BoosterNotFoundError{LotID: lotID}
	}
	item, ok := cat.Items[lot.BaseID]
	if !ok || item.Consumable == nil || item.Consumable.Kind != catalog.BoosterTimeCompression {
		return nil, BoosterNotFoundError{LotID: lotID}
	}
	if TimedTaskTarget(item.Consumable.Target) != target {
		return nil, BoosterNotFoundError{LotID: lotID}
	}

	var task *ActiveTimedTask
	switch target {
	case TargetCourse:
		task = p.Course
	case TargetWork:
		task = p.Work
	}
	if task == nil {
		return nil, NoActiveTaskError{Target: target}
	}
	if task.BoosterUsed {
		return nil, BoosterAlreadyUsedError{Target: target}
	}

	total := task.EndsAt.Sub(task.StartedAt)
	reduction := total * time.Duration(item.Consumable.Percent) / 100
	newEnd := task.EndsAt.Add(-reduction)
	if !newEnd.After(now) {
		newEnd = now.Add(MinCompressedRemaining)
	}

	res := &TimerBoostResult{
		Target:    target,
		OldEnd:    task.EndsAt,
		NewEnd:    newEnd,
		Reduction: task.EndsAt.Sub(newEnd),
	}

	task.EndsAt = newEnd
	task.BoosterUsed = true

	inv, ok := removeFromLot(p.Inventory, lotID, 1)
	if !ok {
		return nil, BoosterNotFoundError{LotID: lotID}
	}
	p.Inventory = inv

	return res, nil
}
