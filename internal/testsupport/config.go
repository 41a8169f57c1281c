package testsupport

import (
	"path/filepath"
	"testing"

	"broadwayscore/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ExportDir = filepath.Join(base, "export")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithMaxEditDistance overrides the fuzzy matching threshold.
func WithMaxEditDistance(distance int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.MaxEditDistance = distance
	}
}

// WithRevivalWindowDays overrides the revival separation window.
func WithRevivalWindowDays(days int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.RevivalWindowDays = days
	}
}

// WithQuarantineMinSignals overrides the quarantine signal threshold.
func WithQuarantineMinSignals(count int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Verification.QuarantineMinSignals = count
	}
}
