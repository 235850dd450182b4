package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"forumarchive/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The store directory exists with an empty threads/ subdirectory; the output
// directory does not exist yet.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StoreDir = filepath.Join(base, "store")
	cfgVal.Paths.OutputDir = filepath.Join(base, "site")
	cfgVal.Site.Title = "Test Archive"
	cfgVal.Serve.Bind = "127.0.0.1:0"

	if err := os.MkdirAll(filepath.Join(cfgVal.Paths.StoreDir, "threads"), 0o755); err != nil {
		t.Fatalf("mkdir threads dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithCatalog enables the SQLite catalog at its default location.
func WithCatalog() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Enabled = true
		b.cfg.Catalog.Path = filepath.Join(b.baseDir, "site", "catalog.db")
	}
}

// WithSiteTitle overrides the archive title.
func WithSiteTitle(title string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Site.Title = title
	}
}

// WithoutThreadsDir removes the threads directory so the export precondition fails.
func WithoutThreadsDir() ConfigOption {
	return func(b *configBuilder) {
		if err := os.RemoveAll(filepath.Join(b.cfg.Paths.StoreDir, "threads")); err != nil {
			b.t.Fatalf("remove threads dir: %v", err)
		}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StoreDir)
}
