package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MikeGii/vomm-sub000/internal/catalog"
	"github.com/MikeGii/vomm-sub000/internal/rng"
)

// memStore hands out copies and keeps the written aggregate, so tests observe
// exactly what would have been persisted.
type memStore struct {
	players map[string]*PlayerState
	writes  int
}

func newMemStore() *memStore {
	return &memStore{players: map[string]*PlayerState{}}
}

func (m *memStore) GetOrCreate(_ context.Context, id string) (*PlayerState, error) {
	p, ok := m.players[id]
	if !ok {
		p = &PlayerState{ID: id}
		m.players[id] = p
	}
	return clonePlayer(p), nil
}

func (m *memStore) Write(_ context.Context, p *PlayerState) error {
	m.players[p.ID] = clonePlayer(p)
	m.writes++
	return nil
}

func clonePlayer(p *PlayerState) *PlayerState {
	out := *p
	out.Attributes = PlayerAttributes{}
	for k, v := range p.Attributes {
		out.Attributes[k] = v
	}
	out.Quotas = map[Category]TrainingQuota{}
	for k, v := range p.Quotas {
		out.Quotas[k] = v
	}
	out.Inventory = append([]InventoryLot(nil), p.Inventory...)
	out.CompletedCourses = append([]string(nil), p.CompletedCourses...)
	if p.Course != nil {
		c := *p.Course
		out.Course = &c
	}
	if p.Work != nil {
		w := *p.Work
		out.Work = &w
	}
	return &out
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	return c
}

func newTestService(t *testing.T, opts ...Option) (*Service, *memStore) {
	t.Helper()
	store := newMemStore()
	base := []Option{
		WithRand(rng.NewSeeded(1)),
		WithClock(func() time.Time {
			return time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
		}),
	}
	svc := NewService(store, testCatalog(t), append(base, opts...)...)
	return svc, store
}

func seedMaterials(store *memStore, id string, clicks int, lots ...InventoryLot) {
	p := &PlayerState{ID: id, Inventory: lots}
	p.Normalize()
	for _, c := range AllCategories {
		p.Quotas[c] = TrainingQuota{
			RemainingClicks: clicks,
			LastResetTime:   time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		}
	}
	store.players[id] = p
}

func TestPerformTrainingSports(t *testing.T) {
	svc, store := newTestService(t)
	seedMaterials(store, "p1", 50)

	res, err := svc.PerformTraining(context.Background(), "p1", CategorySports, "weight_lifting")
	if err != nil {
		t.Fatalf("PerformTraining: %v", err)
	}
	if res.XPGained[SkillStrength] != 10 {
		t.Fatalf("xp=%d, want 10", res.XPGained[SkillStrength])
	}
	if res.RemainingClicks != 49 || res.TotalDone != 1 {
		t.Fatalf("remaining=%d total=%d, want 49/1", res.RemainingClicks, res.TotalDone)
	}

	persisted := store.players["p1"]
	if persisted.Attributes[SkillStrength].Experience != 10 {
		t.Fatalf("persisted xp=%d, want 10", persisted.Attributes[SkillStrength].Experience)
	}
	if persisted.Quotas[CategorySports].RemainingClicks != 49 {
		t.Fatalf("persisted remaining=%d, want 49", persisted.Quotas[CategorySports].RemainingClicks)
	}
}

func TestPerformTrainingQuotaExhaustedLeavesStateUntouched(t *testing.T) {
	svc, store := newTestService(t)
	seedMaterials(store, "p1", 0)
	before := clonePlayer(store.players["p1"])

	_, err := svc.PerformTraining(context.Background(), "p1", CategorySports, "weight_lifting")
	var exhausted QuotaExhaustedError
	if !errors.As(err, &exhausted) || exhausted.Category != CategorySports {
		t.Fatalf("err=%v, want QuotaExhaustedError for sports", err)
	}

	after := store.players["p1"]
	if after.Attributes[SkillStrength] != before.Attributes[SkillStrength] {
		t.Fatal("attributes changed on a rejected click")
	}
	if after.Quotas[CategorySports].TotalDone != before.Quotas[CategorySports].TotalDone {
		t.Fatal("click counter changed on a rejected click")
	}
	if store.writes != 0 {
		t.Fatalf("writes=%d, want 0 (no repair was due)", store.writes)
	}
}

func TestPerformTrainingRepairPersistsEvenOnFailure(t *testing.T) {
	svc, store := newTestService(t)
	seedMaterials(store, "p1", 0)

	// Move the stored reset into the previous hour so a repair is due, then
	// fail the action on an unknown activity. The refill must still land.
	p := store.players["p1"]
	q := p.Quotas[CategorySports]
	q.LastResetTime = time.Date(2026, 3, 14, 11, 58, 0, 0, time.UTC)
	p.Quotas[CategorySports] = q

	_, err := svc.PerformTraining(context.Background(), "p1", CategorySports, "no_such_activity")
	var invalid InvalidRecipeError
	if !errors.As(err, &invalid) {
		t.Fatalf("err=%v, want InvalidRecipeError", err)
	}
	if got := store.players["p1"].Quotas[CategorySports].RemainingClicks; got != 50 {
		t.Fatalf("persisted remaining=%d, want repaired 50", got)
	}
}

func TestPerformTrainingHourRollover(t *testing.T) {
	now := time.Date(2026, 3, 14, 13, 58, 0, 0, time.UTC)
	svc, store := newTestService(t, WithClock(func() time.Time { return now }))
	seedMaterials(store, "p1", 1)
	p := store.players["p1"]
	q := p.Quotas[CategorySports]
	q.LastResetTime = now
	p.Quotas[CategorySports] = q

	ctx := context.Background()
	if _, err := svc.PerformTraining(ctx, "p1", CategorySports, "distance_run"); err != nil {
		t.Fatalf("first click: %v", err)
	}
	if _, err := svc.PerformTraining(ctx, "p1", CategorySports, "distance_run"); err == nil {
		t.Fatal("second click should have exhausted the quota")
	}

	// Four minutes later the hour bucket has flipped.
	now = time.Date(2026, 3, 14, 14, 2, 0, 0, time.UTC)
	res, err := svc.PerformTraining(ctx, "p1", CategorySports, "distance_run")
	if err != nil {
		t.Fatalf("post-reset click: %v", err)
	}
	if res.RemainingClicks != 49 {
		t.Fatalf("remaining=%d, want 49 after refill and one click", res.RemainingClicks)
	}
}

func TestPerformTrainingCraft(t *testing.T) {
	svc, store := newTestService(t)
	seedMaterials(store, "p1", 50,
		InventoryLot{ID: "t1", BaseID: "thread", Quantity: 2, Category: catalog.CategoryCrafting},
		InventoryLot{ID: "f1", BaseID: "fabric", Quantity: 1, Category: catalog.CategoryCrafting},
	)

	res, err := svc.PerformTraining(context.Background(), "p1", CategoryHandicraft, "sew_gloves")
	if err != nil {
		t.Fatalf("PerformTraining: %v", err)
	}
	if res.Craft == nil {
		t.Fatal("no craft outcome")
	}
	if res.XPGained[SkillSewing] == 0 {
		t.Fatal("sewing xp missing")
	}

	persisted := store.players["p1"]
	if got := SumQuantityByBaseID(persisted.Inventory, "thread", catalog.CategoryCrafting); got != 0 {
		t.Fatalf("persisted thread=%d, want 0", got)
	}
	if got := SumQuantityByBaseID(persisted.Inventory, "gloves", catalog.CategoryCrafting); got == 0 {
		t.Fatal("persisted gloves missing")
	}
}

func TestPerformTrainingCraftCategoryMismatch(t *testing.T) {
	svc, store := newTestService(t)
	seedMaterials(store, "p1", 50)

	_, err := svc.PerformTraining(context.Background(), "p1", CategoryKitchen, "sew_gloves")
	var invalid InvalidRecipeError
	if !errors.As(err, &invalid) {
		t.Fatalf("err=%v, want InvalidRecipeError for category mismatch", err)
	}
}

func TestPerformTrainingMissingMaterialsKeepsClick(t *testing.T) {
	svc, store := newTestService(t)
	seedMaterials(store, "p1", 50,
		InventoryLot{ID: "t1", BaseID: "thread", Quantity: 1, Category: catalog.CategoryCrafting},
		InventoryLot{ID: "f1", BaseID: "fabric", Quantity: 1, Category: catalog.CategoryCrafting},
	)

	_, err := svc.PerformTraining(context.Background(), "p1", CategoryHandicraft, "sew_gloves")
	var missing MissingMaterialsError
	if !errors.As(err, &missing) {
		t.Fatalf("err=%v, want MissingMaterialsError", err)
	}

	persisted := store.players["p1"]
	if got := persisted.Quotas[CategoryHandicraft].RemainingClicks; got != 50 {
		t.Fatalf("remaining=%d, want 50 (failed validation costs no click)", got)
	}
	if got := SumQuantityByBaseID(persisted.Inventory, "thread", catalog.CategoryCrafting); got != 1 {
		t.Fatalf("thread=%d, want 1 untouched", got)
	}
}

func TestPerformTraining5xStopsAtQuota(t *testing.T) {
	svc, store := newTestService(t)
	seedMaterials(store, "p1", 3)

	bulk := svc.PerformTraining5x(context.Background(), "p1", CategorySports, "distance_run")
	if len(bulk.Completed) != 3 {
		t.Fatalf("completed=%d, want 3", len(bulk.Completed))
	}
	var exhausted QuotaExhaustedError
	if !errors.As(bulk.Err, &exhausted) {
		t.Fatalf("bulk err=%v, want QuotaExhaustedError", bulk.Err)
	}

	// The three finished iterations are durable.
	persisted := store.players["p1"]
	if got := persisted.Quotas[CategorySports].TotalDone; got != 3 {
		t.Fatalf("persisted total=%d, want 3", got)
	}
}

func TestPerformTraining5xFull(t *testing.T) {
	svc, _ := newTestService(t)

	bulk := svc.PerformTraining5x(context.Background(), "p1", CategorySports, "distance_run")
	if bulk.Err != nil {
		t.Fatalf("bulk err=%v", bulk.Err)
	}
	if len(bulk.Completed) != 5 {
		t.Fatalf("completed=%d, want 5", len(bulk.Completed))
	}
	last := bulk.Completed[4]
	if last.TotalDone != 5 {
		t.Fatalf("total=%d, want 5", last.TotalDone)
	}
}

type failingSink struct{}

func (failingSink) RecordProgress(context.Context, string, string, int, string) error {
	return fmt.Errorf("sink down")
}

func TestProgressSinkFailureDoesNotFailTraining(t *testing.T) {
	svc, store := newTestService(t, WithProgressSink(failingSink{}))
	seedMaterials(store, "p1", 50)

	if _, err := svc.PerformTraining(context.Background(), "p1", CategorySports, "distance_run"); err != nil {
		t.Fatalf("PerformTraining: %v", err)
	}
	if got := store.players["p1"].Quotas[CategorySports].RemainingClicks; got != 49 {
		t.Fatalf("remaining=%d, want 49 (action applied despite sink failure)", got)
	}
}

func TestConsumeQuotaBoosterRepairsFirst(t *testing.T) {
	svc, store := newTestService(t)
	seedMaterials(store, "p1", 10,
		InventoryLot{ID: "b1", BaseID: "energy_drink", Quantity: 1, Category: catalog.CategoryConsumable},
	)

	// The stored quota is stale from the previous hour; after repair it is
	// full, so the booster is rejected without consuming the lot.
	p := store.players["p1"]
	q := p.Quotas[CategorySports]
	q.LastResetTime = time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC)
	p.Quotas[CategorySports] = q

	_, err := svc.ConsumeQuotaBooster(context.Background(), "p1", CategorySports, "b1", 1)
	var full QuotaAlreadyFullError
	if !errors.As(err, &full) {
		t.Fatalf("err=%v, want QuotaAlreadyFullError after repair", err)
	}

	// The repair itself is persisted even though the booster was rejected.
	if store.writes != 1 {
		t.Fatalf("writes=%d, want 1 (the repair)", store.writes)
	}
	saved := store.players["p1"].Quotas[CategorySports]
	if saved.RemainingClicks != 50 {
		t.Fatalf("persisted remaining=%d, want 50", saved.RemainingClicks)
	}
	if !saved.LastResetTime.Equal(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("persisted reset=%v, want current hour bucket", saved.LastResetTime)
	}
}

func TestConsumeQuotaBoosterApplied(t *testing.T) {
	svc, store := newTestService(t)
	seedMaterials(store, "p1", 10,
		InventoryLot{ID: "b1", BaseID: "energy_drink", Quantity: 2, Category: catalog.CategoryConsumable},
	)

	res, err := svc.ConsumeQuotaBooster(context.Background(), "p1", CategorySports, "b1", 2)
	if err != nil {
		t.Fatalf("ConsumeQuotaBooster: %v", err)
	}
	if res.RemainingClicks != 30 {
		t.Fatalf("remaining=%d, want 30", res.RemainingClicks)
	}

	persisted := store.players["p1"]
	if got := SumQuantityByBaseID(persisted.Inventory, "energy_drink", catalog.CategoryConsumable); got != 0 {
		t.Fatalf("persisted drinks=%d, want 0", got)
	}
}

func TestCompressTimerPersists(t *testing.T) {
	svc, store := newTestService(t)
	started := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	seedMaterials(store, "p1", 10,
		InventoryLot{ID: "n1", BaseID: "study_notes", Quantity: 1, Category: catalog.CategoryConsumable},
	)
	store.players["p1"].Course = &ActiveTimedTask{
		StartedAt: started,
		EndsAt:    started.Add(4 * time.Hour),
	}

	res, err := svc.CompressTimer(context.Background(), "p1", TargetCourse, "n1")
	if err != nil {
		t.Fatalf("CompressTimer: %v", err)
	}
	want := started.Add(2 * time.Hour)
	if !res.NewEnd.Equal(want) {
		t.Fatalf("NewEnd=%v, want %v", res.NewEnd, want)
	}

	persisted := store.players["p1"]
	if persisted.Course == nil || !persisted.Course.BoosterUsed {
		t.Fatal("compression not persisted")
	}
	if got := SumQuantityByBaseID(persisted.Inventory, "study_notes", catalog.CategoryConsumable); got != 0 {
		t.Fatalf("persisted notes=%d, want 0", got)
	}
}
