package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/MikeGii/vomm-sub000/internal/catalog"
	"github.com/MikeGii/vomm-sub000/internal/rng"
)

// Workshop success-rate defaults, applied by collaborators that have no
// better answer: an ungated bench always succeeds, an equipped device that
// reports no rate succeeds half the time.
const (
	NoDeviceSuccessRate = 100
	DeviceFallbackRate  = 50
)

// PlayerStore is the persistence port. Write must persist the whole
// aggregate atomically; concurrent writers are serialized by the store
// (the engine itself holds no locks).
type PlayerStore interface {
	GetOrCreate(ctx context.Context, id string) (*PlayerState, error)
	Write(ctx context.Context, p *PlayerState) error
}

// WorkshopOracle reports the success rate for device-gated recipes, already
// folded with the equipment defaults above.
type WorkshopOracle interface {
	SuccessRate(ctx context.Context, playerID, recipeKind string) (int, error)
}

// KitchenLookup resolves the player's crafting facility tier.
type KitchenLookup interface {
	KitchenSize(ctx context.Context, playerID string) (KitchenSize, error)
}

// TrainingBonusLookup sums the earned ability bonus for one physical skill.
// 1.0 means +100%.
type TrainingBonusLookup interface {
	TrainingBonus(completedCourses []string, skill Skill) float64
}

// ProgressSink receives fire-and-forget task/achievement progress. Failures
// never fail the training action; the service logs and moves on.
type ProgressSink interface {
	RecordProgress(ctx context.Context, playerID, kind string, amount int, itemTag string) error
}

// Service composes the ledger, quota, crafting and booster logic over the
// persistence port and the collaborator lookups.
type Service struct {
	store    PlayerStore
	catalog  *catalog.Catalog
	rand     rng.Source
	workshop WorkshopOracle
	kitchen  KitchenLookup
	bonuses  TrainingBonusLookup
	progress ProgressSink
	log      *slog.Logger
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

func WithRand(src rng.Source) Option                 { return func(s *Service) { s.rand = src } }
func WithWorkshop(o WorkshopOracle) Option           { return func(s *Service) { s.workshop = o } }
func WithKitchen(k KitchenLookup) Option             { return func(s *Service) { s.kitchen = k } }
func WithTrainingBonus(b TrainingBonusLookup) Option { return func(s *Service) { s.bonuses = b } }
func WithProgressSink(p ProgressSink) Option         { return func(s *Service) { s.progress = p } }
func WithLogger(l *slog.Logger) Option               { return func(s *Service) { s.log = l } }

// WithClock pins the service clock, used by quota and timer tests.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(store PlayerStore, cat *catalog.Catalog, opts ...Option) *Service {
	s := &Service{
		store:    store,
		catalog:  cat,
		rand:     rng.New(),
		workshop: staticWorkshop{},
		kitchen:  staticKitchen{},
		bonuses:  zeroBonuses{},
		progress: nil,
		log:      slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog exposes the loaded definitions for read-only callers (CLI, TUI).
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Player loads and normalizes the aggregate without mutating it.
func (s *Service) Player(ctx context.Context, playerID string) (*PlayerState, error) {
	p, err := s.store.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}
	p.Normalize()
	return p, nil
}

// record forwards to the progress sink, logging and swallowing failures.
func (s *Service) record(ctx context.Context, playerID, kind string, amount int, itemTag string) {
	if s.progress == nil {
		return
	}
	if err := s.progress.RecordProgress(ctx, playerID, kind, amount, itemTag); err != nil {
		s.log.Warn("progress record failed", "player", playerID, "kind", kind, "error", err)
	}
}

// staticWorkshop assumes no device is equipped.
type staticWorkshop struct{}

func (staticWorkshop) SuccessRate(context.Context, string, string) (int, error) {
	return NoDeviceSuccessRate, nil
}

// staticKitchen assumes no facility is owned.
type staticKitchen struct{}

func (staticKitchen) KitchenSize(context.Context, string) (KitchenSize, error) {
	return KitchenNone, nil
}

// zeroBonuses grants no ability bonus.
type zeroBonuses struct{}

func (zeroBonuses) TrainingBonus([]string, Skill) float64 { return 0 }
