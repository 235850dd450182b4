package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"forumarchive/internal/archive"
	"forumarchive/internal/catalog"
	"forumarchive/internal/contenthash"
	"forumarchive/internal/fileutil"
	"forumarchive/internal/logging"
	"forumarchive/internal/render"
	"forumarchive/internal/store"
)

// Output layout relative to the export root.
const (
	IndexFile  = "index.html"
	FoldersDir = "folders"
	ThreadsDir = "threads"
)

// Run performs a full export. Missing assets, profiles, and dates never fail
// the run; only the missing threads directory, the output lock, and I/O
// errors do.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.StoreDir == "" || opts.OutputDir == "" {
		return nil, errors.New("store and output directories are required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	st := store.Open(opts.StoreDir, logger)
	if err := checkThreadsDir(st.ThreadsPath()); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	lock := flock.New(filepath.Join(opts.OutputDir, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrOutputLocked, opts.OutputDir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release output lock", logging.Error(err))
		}
	}()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger = logging.NewComponentLogger(logging.WithContext(ctx, logger), "export")

	e := &exporter{
		opts:    opts,
		logger:  logger,
		store:   st,
		folders: archive.NewFolderSet(logger),
		seen:    make(map[string]string),
		summary: &Summary{RunID: runID, OutputDir: opts.OutputDir, StartedAt: opts.Now()},
	}
	logger.Info("export started",
		logging.String("store", opts.StoreDir),
		logging.String("output", opts.OutputDir),
	)
	if err := e.run(ctx); err != nil {
		return nil, err
	}
	e.summary.Duration = opts.Now().Sub(e.summary.StartedAt)

	if opts.CatalogPath != "" {
		if err := e.recordCatalog(ctx); err != nil {
			return nil, err
		}
	}

	logger.Info("export complete",
		logging.Int("threads", e.summary.Threads),
		logging.Int("skipped", e.summary.Skipped),
		logging.Int("invalid", e.summary.Invalid),
		logging.Int("folders", e.summary.FolderCount()),
		logging.Int("messages", e.summary.Messages),
		logging.Int("assets_copied", e.summary.AssetsCopied),
		logging.Int("assets_missing", e.summary.AssetsMissing),
		logging.Duration("duration", e.summary.Duration),
	)
	return e.summary, nil
}

func checkThreadsDir(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return fmt.Errorf("%w: %s", ErrThreadsDirMissing, path)
	}
	if err != nil {
		return fmt.Errorf("stat threads directory: %w", err)
	}
	return nil
}

type exporter struct {
	opts     Options
	logger   *slog.Logger
	store    *store.Store
	resolver *contenthash.Resolver
	renderer *render.Renderer
	folders  *archive.FolderSet
	// seen maps thread ids to the record that last produced them.
	seen    map[string]string
	summary *Summary
}

func (e *exporter) run(ctx context.Context) error {
	if err := e.writeFile(filepath.Join(e.opts.OutputDir, filepath.FromSlash(render.StylesheetPath)), render.Stylesheet()); err != nil {
		return err
	}

	records, err := e.store.LoadProfiles()
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}
	e.resolver = contenthash.NewResolver(e.store.FilesPath(), filepath.Join(e.opts.OutputDir, contenthash.ExportDirName), e.logger)
	e.renderer, err = render.New(render.Options{
		SiteTitle:    e.opts.SiteTitle,
		Description:  e.opts.Description,
		PreviewCount: e.opts.PreviewCount,
		Assets:       e.resolver,
		Profiles:     archive.NewProfiles(records),
		Now:          e.opts.Now,
	})
	if err != nil {
		return err
	}

	paths, err := e.store.ThreadFiles()
	if err != nil {
		return fmt.Errorf("list thread records: %w", err)
	}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.exportThread(path); err != nil {
			return err
		}
	}

	folders := e.folders.Folders()
	for _, folder := range folders {
		doc, err := e.renderer.RenderFolder(folder)
		if err != nil {
			return err
		}
		if err := e.writeFile(filepath.Join(e.opts.OutputDir, FoldersDir, folder.PageName()), doc); err != nil {
			return err
		}
		e.summary.Folders = append(e.summary.Folders, FolderSummary{
			Name:     folder.Name,
			Slug:     folder.Slug,
			Threads:  len(folder.Threads),
			Messages: folder.MessageTotal(),
		})
	}

	doc, err := e.renderer.RenderIndex(folders)
	if err != nil {
		return err
	}
	if err := e.writeFile(filepath.Join(e.opts.OutputDir, IndexFile), doc); err != nil {
		return err
	}

	stats := e.resolver.Stats()
	e.summary.AssetsCopied = stats.Copied
	e.summary.AssetsReused = stats.Reused
	e.summary.AssetsMissing = stats.Missing
	return nil
}

func (e *exporter) exportThread(path string) error {
	rec, err := e.store.LoadThread(path)
	if err != nil {
		e.summary.Invalid++
		logging.WarnWithContext(e.logger, "skipping unreadable thread record", "thread_decode_failed",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "thread omitted from export"),
		)
		return nil
	}

	thread, ok := archive.BuildThread(rec, archive.BuildOptions{SnippetLength: e.opts.SnippetLength})
	if !ok {
		e.summary.Skipped++
		e.logger.Info("skipping thread with no messages", logging.String("path", path))
		return nil
	}
	if prev, dup := e.folders.Thread(thread.ID); dup {
		e.summary.Threads--
		e.summary.Messages -= prev.MessageCount()
		logging.WarnWithContext(e.logger, "duplicate thread id", "duplicate_thread_id",
			logging.String(logging.FieldThreadID, thread.ID),
			logging.String("path", path),
			logging.String("previous_path", e.seen[thread.ID]),
			logging.String(logging.FieldImpact, "later record replaces the earlier thread"),
		)
	}
	e.seen[thread.ID] = path

	e.folders.Add(thread)
	doc, err := e.renderer.RenderThread(thread)
	if err != nil {
		return err
	}
	if err := e.writeFile(filepath.Join(e.opts.OutputDir, ThreadsDir, thread.PageName()), doc); err != nil {
		return err
	}

	e.summary.Threads++
	e.summary.Messages += thread.MessageCount()
	e.logger.Debug("thread exported",
		logging.String(logging.FieldThreadID, thread.ID),
		logging.Int("messages", thread.MessageCount()),
	)
	return nil
}

func (e *exporter) writeFile(path string, data []byte) error {
	if err := fileutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (e *exporter) recordCatalog(ctx context.Context) error {
	c, err := catalog.Open(ctx, e.opts.CatalogPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer c.Close()

	run := catalog.Run{
		ID:            e.summary.RunID,
		StartedAt:     e.summary.StartedAt,
		FinishedAt:    e.summary.StartedAt.Add(e.summary.Duration),
		StoreDir:      e.opts.StoreDir,
		OutputDir:     e.opts.OutputDir,
		SiteTitle:     e.opts.SiteTitle,
		Threads:       e.summary.Threads,
		Skipped:       e.summary.Skipped,
		Folders:       e.summary.FolderCount(),
		Messages:      e.summary.Messages,
		AssetsCopied:  e.summary.AssetsCopied,
		AssetsMissing: e.summary.AssetsMissing,
	}
	if err := c.Record(ctx, run, e.folders.Folders()); err != nil {
		return fmt.Errorf("record catalog: %w", err)
	}
	e.summary.CatalogPath = c.Path()
	e.logger.Info("catalog updated", logging.String("path", c.Path()))
	return nil
}
