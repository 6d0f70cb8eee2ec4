// Package testsupport provides shared fixtures for package tests: configs
// seeded with per-test temp directories, ledger stores with registered
// cleanup, and artifact file helpers.
package testsupport

import (
	"path/filepath"
	"testing"

	"reclip/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults required fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DownloadDir = filepath.Join(base, "downloads")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.BackupDir = filepath.Join(base, "backups")
	cfg.Source.ChannelID = "UCtest"
	cfg.Source.AllowedCommenters = []string{"trusted"}
	cfg.Source.IncludeKeywords = []string{"asmr"}
	cfg.YouTube.AccessToken = "test-token"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithKeywords overrides the include/exclude keyword lists.
func WithKeywords(include, exclude []string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Source.IncludeKeywords = include
		cfg.Source.ExcludeKeywords = exclude
	}
}

// WithBatchSize overrides the catalog page size.
func WithBatchSize(size int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Source.BatchSize = size
	}
}
