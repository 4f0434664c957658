package root

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/MikeGii/vomm-sub000/internal/catalog"
	"github.com/MikeGii/vomm-sub000/internal/config"
	"github.com/MikeGii/vomm-sub000/internal/engine"
	"github.com/MikeGii/vomm-sub000/internal/rng"
	"github.com/MikeGii/vomm-sub000/internal/storage"
)

// app bundles everything a command needs.
type app struct {
	cfg     config.Config
	db      *sqlx.DB
	players *storage.PlayerRepo
	history *storage.ProgressRepo
	svc     *engine.Service
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	setupLogger(cfg.LogLevel)

	path := cfg.DBPath
	if path == "" {
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}

	db, err := storage.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	var cat *catalog.Catalog
	if cfg.CatalogDir != "" {
		cat, err = catalog.LoadDir(cfg.CatalogDir)
	} else {
		cat, err = catalog.Load()
	}
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	players := storage.NewPlayerRepo(db)
	history := storage.NewProgressRepo(db)

	opts := []engine.Option{
		engine.WithWorkshop(players),
		engine.WithKitchen(players),
		engine.WithProgressSink(history),
	}
	if cfg.Seed != 0 {
		opts = append(opts, engine.WithRand(rng.NewSeeded(cfg.Seed)))
	}

	a := &app{
		cfg:     cfg,
		db:      db,
		players: players,
		history: history,
		svc:     engine.NewService(players, cat, opts...),
	}
	cleanup := func() {
		_ = db.Close()
	}
	return a, cleanup, nil
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
