package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"forumarchive/internal/archive"
)

// Catalog is the export catalog backed by SQLite.
type Catalog struct {
	db   *sql.DB
	path string
}

// Run summarises one export.
type Run struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	StoreDir      string
	OutputDir     string
	SiteTitle     string
	Threads       int
	Skipped       int
	Folders       int
	Messages      int
	AssetsCopied  int
	AssetsMissing int
}

// Open creates or opens the catalog at path.
func Open(ctx context.Context, path string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	c := &Catalog{db: db, path: path}
	if err := c.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the underlying database connection.
func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Path returns the database file location.
func (c *Catalog) Path() string { return c.path }

// Record stores run and replaces the folder, thread, and message tables with
// the contents of folders. The whole write is one transaction. A thread id
// seen twice keeps the later thread, matching the page written last.
func (c *Catalog) Record(ctx context.Context, run Run, folders []*archive.Folder) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"messages", "threads", "folders"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, started_at, finished_at, store_dir, output_dir, site_title,
            threads, skipped, folders, messages, assets_copied, assets_missing
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.StoreDir,
		run.OutputDir,
		run.SiteTitle,
		run.Threads,
		run.Skipped,
		run.Folders,
		run.Messages,
		run.AssetsCopied,
		run.AssetsMissing,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, folder := range folders {
		if err := insertFolder(ctx, tx, folder); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record: %w", err)
	}
	return nil
}

func insertFolder(ctx context.Context, tx *sql.Tx, folder *archive.Folder) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO folders (slug, name, thread_count, message_count) VALUES (?, ?, ?, ?)`,
		folder.Slug, folder.Name, len(folder.Threads), folder.MessageTotal(),
	); err != nil {
		return fmt.Errorf("insert folder %s: %w", folder.Slug, err)
	}

	for _, thread := range folder.Threads {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO threads (
                id, folder_slug, title, views, first_author, first_date, last_date,
                message_count, reply_count, snippet, page
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			thread.ID,
			folder.Slug,
			thread.Title,
			nullableString(thread.Views),
			thread.FirstAuthor,
			nullableTime(thread.FirstDate),
			nullableTime(thread.LastDate),
			thread.MessageCount(),
			thread.ReplyCount(),
			thread.Snippet,
			"threads/"+thread.PageName(),
		); err != nil {
			return fmt.Errorf("insert thread %s: %w", thread.ID, err)
		}

		for i, msg := range thread.Messages {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO messages (
                    thread_id, position, message_id, author, recipient, posted_at,
                    raw_date, in_reply_to, image_count, attachment_count
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				thread.ID,
				i+1,
				msg.ID,
				msg.From,
				msg.To,
				nullableTime(msg.Date),
				nullableString(msg.RawDate),
				nullableString(msg.InReplyTo),
				len(msg.Images),
				len(msg.Attachments),
			); err != nil {
				return fmt.Errorf("insert message %s/%d: %w", thread.ID, i+1, err)
			}
		}
	}
	return nil
}
