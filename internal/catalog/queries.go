package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// FolderRow is a folder as stored in the catalog.
type FolderRow struct {
	Slug         string
	Name         string
	ThreadCount  int
	MessageCount int
}

// ThreadRow is a thread as stored in the catalog.
type ThreadRow struct {
	ID           string
	FolderSlug   string
	Title        string
	Views        string
	FirstAuthor  string
	FirstDate    *time.Time
	MessageCount int
	ReplyCount   int
	Page         string
}

// LatestRun returns the most recently finished run, or nil when the catalog is empty.
func (c *Catalog) LatestRun(ctx context.Context) (*Run, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, store_dir, output_dir, site_title,
                threads, skipped, folders, messages, assets_copied, assets_missing
         FROM runs ORDER BY finished_at DESC, rowid DESC LIMIT 1`)

	var (
		run                 Run
		startedRaw, doneRaw string
	)
	err := row.Scan(
		&run.ID, &startedRaw, &doneRaw, &run.StoreDir, &run.OutputDir, &run.SiteTitle,
		&run.Threads, &run.Skipped, &run.Folders, &run.Messages, &run.AssetsCopied, &run.AssetsMissing,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	run.StartedAt = parseTime(startedRaw)
	run.FinishedAt = parseTime(doneRaw)
	return &run, nil
}

// RunCount returns the number of recorded runs.
func (c *Catalog) RunCount(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}

// Folders lists the recorded folders ordered case-insensitively by name.
func (c *Catalog) Folders(ctx context.Context) ([]FolderRow, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT slug, name, thread_count, message_count
         FROM folders ORDER BY name COLLATE NOCASE, name`)
	if err != nil {
		return nil, fmt.Errorf("query folders: %w", err)
	}
	defer rows.Close()

	var out []FolderRow
	for rows.Next() {
		var fr FolderRow
		if err := rows.Scan(&fr.Slug, &fr.Name, &fr.ThreadCount, &fr.MessageCount); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		out = append(out, fr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}
	return out, nil
}

// FolderThreads lists the threads recorded for a folder slug ordered by id.
func (c *Catalog) FolderThreads(ctx context.Context, slug string) ([]ThreadRow, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, folder_slug, title, views, first_author, first_date,
                message_count, reply_count, page
         FROM threads WHERE folder_slug = ? ORDER BY id`, slug)
	if err != nil {
		return nil, fmt.Errorf("query threads: %w", err)
	}
	defer rows.Close()

	var out []ThreadRow
	for rows.Next() {
		var (
			tr        ThreadRow
			views     sql.NullString
			firstDate sql.NullString
		)
		if err := rows.Scan(&tr.ID, &tr.FolderSlug, &tr.Title, &views, &tr.FirstAuthor, &firstDate,
			&tr.MessageCount, &tr.ReplyCount, &tr.Page); err != nil {
			return nil, fmt.Errorf("scan thread: %w", err)
		}
		tr.Views = views.String
		if firstDate.Valid {
			ts := parseTime(firstDate.String)
			tr.FirstDate = &ts
		}
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate threads: %w", err)
	}
	return out, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(ts *time.Time) any {
	if ts == nil {
		return nil
	}
	return ts.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}
