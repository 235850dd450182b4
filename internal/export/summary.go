package export

import "time"

// FolderSummary describes one exported folder.
type FolderSummary struct {
	Name     string
	Slug     string
	Threads  int
	Messages int
}

// Summary reports what a run produced.
type Summary struct {
	RunID     string
	OutputDir string
	StartedAt time.Time
	Duration  time.Duration

	Threads int
	// Skipped counts records with no messages.
	Skipped int
	// Invalid counts records that could not be decoded.
	Invalid  int
	Messages int

	AssetsCopied  int
	AssetsReused  int
	AssetsMissing int

	Folders     []FolderSummary
	CatalogPath string
}

// FolderCount returns the number of folders exported.
func (s *Summary) FolderCount() int { return len(s.Folders) }
