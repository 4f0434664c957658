// Package config reads CLI settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every environment-tunable setting. Zero values fall back to
// sensible defaults at the point of use.
type Config struct {
	// DBPath overrides the default ~/.vomm.db location.
	DBPath string `env:"VOMM_DB"`

	// CatalogDir points at local YAML catalogs overriding the embedded set.
	CatalogDir string `env:"VOMM_CATALOG_DIR"`

	// Seed pins the random source for reproducible sessions. 0 keeps the
	// crypto-seeded default.
	Seed int64 `env:"VOMM_SEED"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"VOMM_LOG_LEVEL" envDefault:"warn"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
