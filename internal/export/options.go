package export

import (
	"log/slog"
	"time"

	"forumarchive/internal/config"
)

// LockFileName is created inside the output directory for the duration of a run.
const LockFileName = ".forumarchive.lock"

// Options configures a run.
type Options struct {
	StoreDir    string
	OutputDir   string
	SiteTitle   string
	Description string
	// PreviewCount bounds the thread cards per folder on the index page.
	PreviewCount  int
	SnippetLength int
	// CatalogPath enables the SQLite catalog when non-empty.
	CatalogPath string

	Logger *slog.Logger
	Now    func() time.Time
}

// OptionsFromConfig maps loaded configuration onto run options.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	opts := Options{
		StoreDir:      cfg.Paths.StoreDir,
		OutputDir:     cfg.Paths.OutputDir,
		SiteTitle:     cfg.Site.Title,
		Description:   cfg.Site.Description,
		PreviewCount:  cfg.Site.IndexThreadsPerFolder,
		SnippetLength: cfg.Site.SnippetLength,
		Logger:        logger,
	}
	if cfg.Catalog.Enabled {
		opts.CatalogPath = cfg.CatalogPath()
	}
	return opts
}
