package config

const (
	defaultConfigPath            = "~/.config/forumarchive/config.toml"
	projectConfigName            = "forumarchive.toml"
	defaultStoreDir              = "store"
	defaultOutputDir             = "site_export"
	defaultSiteTitle             = "Delphi Forum Archive"
	defaultSiteDescription       = "Offline snapshot generated from Delphi Forums scrape."
	defaultIndexThreadsPerFolder = 6
	defaultSnippetLength         = 180
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultCatalogName           = "catalog.db"
	defaultServeBind             = "127.0.0.1:8080"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StoreDir:  defaultStoreDir,
			OutputDir: defaultOutputDir,
		},
		Site: Site{
			Title:                 defaultSiteTitle,
			Description:           defaultSiteDescription,
			IndexThreadsPerFolder: defaultIndexThreadsPerFolder,
			SnippetLength:         defaultSnippetLength,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Serve: Serve{
			Bind: defaultServeBind,
		},
	}
}
