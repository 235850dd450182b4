package contenthash

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"forumarchive/internal/fileutil"
	"forumarchive/internal/logging"
)

// ExportDirName is the directory, relative to the export root, that holds
// copied binaries.
const ExportDirName = "files"

// Stats counts resolver outcomes for a run.
type Stats struct {
	Copied  int
	Reused  int
	Missing int
}

// Resolver locates scraped binaries by hashed name and copies them into the
// export tree. It is safe for concurrent use; repeat requests for the same
// hashed name never copy twice.
type Resolver struct {
	sourceDir string
	exportDir string
	logger    *slog.Logger

	mu     sync.Mutex
	known  map[string]bool
	copied int
	reused int
	miss   int
}

// NewResolver builds a resolver reading from sourceDir (the store's files
// directory) and writing into exportDir.
func NewResolver(sourceDir, exportDir string, logger *slog.Logger) *Resolver {
	return &Resolver{
		sourceDir: sourceDir,
		exportDir: exportDir,
		logger:    logging.NewComponentLogger(logger, "assets"),
		known:     make(map[string]bool),
	}
}

// Resolve returns the export-relative path ("files/<name>") for url when the
// scraper captured it. ok is false when no binary exists; that is an expected
// outcome and never an error. err reports only I/O failures while copying.
func (r *Resolver) Resolve(url string) (rel string, ok bool, err error) {
	if strings.TrimSpace(url) == "" {
		return "", false, nil
	}
	name := Name(url)

	r.mu.Lock()
	defer r.mu.Unlock()

	if found, seen := r.known[name]; seen {
		if !found {
			r.miss++
			return "", false, nil
		}
		r.reused++
		return path.Join(ExportDirName, name), true, nil
	}

	source := filepath.Join(r.sourceDir, name)
	info, statErr := os.Stat(source)
	if statErr != nil || info.IsDir() {
		if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
			r.logger.Debug("asset lookup failed", logging.String("url", url), logging.Error(statErr))
		}
		r.known[name] = false
		r.miss++
		r.logger.Debug("asset not captured", logging.String("url", url), logging.String("hashed_name", name))
		return "", false, nil
	}

	destination := filepath.Join(r.exportDir, name)
	if _, err := os.Stat(destination); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(r.exportDir, 0o755); err != nil {
			return "", false, fmt.Errorf("create asset directory: %w", err)
		}
		if err := fileutil.CopyFile(source, destination); err != nil {
			return "", false, fmt.Errorf("copy asset %s: %w", name, err)
		}
		r.copied++
	} else {
		r.reused++
	}
	r.known[name] = true
	return path.Join(ExportDirName, name), true, nil
}

// Stats returns a snapshot of the resolver counters.
func (r *Resolver) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{Copied: r.copied, Reused: r.reused, Missing: r.miss}
}
