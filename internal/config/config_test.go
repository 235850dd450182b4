package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"forumarchive/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FORUMARCHIVE_STORE", "")
	t.Setenv("FORUMARCHIVE_OUTPUT", "")
	t.Setenv("FORUMARCHIVE_TITLE", "")
	work := t.TempDir()
	t.Chdir(work)
	return work
}

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	work := isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent")
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Paths.StoreDir != filepath.Join(work, "store") {
		t.Fatalf("unexpected store dir: %q", cfg.Paths.StoreDir)
	}
	if cfg.Paths.OutputDir != filepath.Join(work, "site_export") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Site.Title != "Delphi Forum Archive" {
		t.Fatalf("unexpected title: %q", cfg.Site.Title)
	}
	if cfg.Site.IndexThreadsPerFolder != 6 || cfg.Site.SnippetLength != 180 {
		t.Fatalf("unexpected site defaults: %+v", cfg.Site)
	}
	if cfg.Catalog.Enabled {
		t.Fatal("expected catalog disabled by default")
	}
	if cfg.CatalogPath() != filepath.Join(work, "site_export", "catalog.db") {
		t.Fatalf("unexpected catalog path: %q", cfg.CatalogPath())
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "forumarchive.toml")

	type payload struct {
		Paths struct {
			StoreDir string `toml:"store_dir"`
		} `toml:"paths"`
		Site struct {
			Title                 string `toml:"title"`
			IndexThreadsPerFolder int    `toml:"index_threads_per_folder"`
		} `toml:"site"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.StoreDir = filepath.Join(dir, "scrape")
	custom.Site.Title = "  Garden Club  "
	custom.Site.IndexThreadsPerFolder = 3
	custom.Logging.Format = "JSON"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.StoreDir != filepath.Join(dir, "scrape") {
		t.Fatalf("unexpected store dir: %q", cfg.Paths.StoreDir)
	}
	if cfg.Site.Title != "Garden Club" {
		t.Fatalf("expected trimmed title, got %q", cfg.Site.Title)
	}
	if cfg.Site.IndexThreadsPerFolder != 3 {
		t.Fatalf("unexpected preview count: %d", cfg.Site.IndexThreadsPerFolder)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected lowercased log format, got %q", cfg.Logging.Format)
	}
	if cfg.Site.SnippetLength != 180 {
		t.Fatalf("expected default snippet length, got %d", cfg.Site.SnippetLength)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(configPath, []byte("[site]\ntitel = \"typo\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadRejectsInvalidLogFormat(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, _, err := config.Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	work := isolate(t)
	t.Setenv("FORUMARCHIVE_TITLE", "From Env")
	t.Setenv("FORUMARCHIVE_OUTPUT", "out")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Site.Title != "From Env" {
		t.Fatalf("expected env title, got %q", cfg.Site.Title)
	}
	if cfg.Paths.OutputDir != filepath.Join(work, "out") {
		t.Fatalf("expected env output dir, got %q", cfg.Paths.OutputDir)
	}
}

func TestApplyOverrides(t *testing.T) {
	work := isolate(t)
	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.ApplyOverrides("scrape", "", "Flag Title"); err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}
	if cfg.Paths.StoreDir != filepath.Join(work, "scrape") {
		t.Fatalf("unexpected store dir: %q", cfg.Paths.StoreDir)
	}
	if cfg.Paths.OutputDir != filepath.Join(work, "site_export") {
		t.Fatalf("output dir should be unchanged: %q", cfg.Paths.OutputDir)
	}
	if cfg.Site.Title != "Flag Title" {
		t.Fatalf("unexpected title: %q", cfg.Site.Title)
	}

	if err := cfg.ApplyOverrides("same", "same", ""); err == nil {
		t.Fatal("expected error when store and output coincide")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	isolate(t)
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(target); err != nil || !exists {
		t.Fatalf("sample config should load cleanly: exists=%v err=%v", exists, err)
	}
}
