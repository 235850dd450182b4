package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"forumarchive/internal/catalog"
	"forumarchive/internal/render"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var folderSlug string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the most recent export recorded in the catalog",
		Long: "Print the last recorded export and its per-folder totals.\n" +
			"With --folder, list the threads recorded for one folder slug instead.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			r := newReport(cmd.OutOrStdout())

			path := cfg.CatalogPath()
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				r.line("Catalog", levelWarn, "not found at "+path)
				r.plain("Enable [catalog] in the configuration and run `forumarchive export`.")
				return nil
			}

			c, err := catalog.Open(cmd.Context(), path)
			if err != nil {
				r.failure("Catalog", err)
				return err
			}
			defer c.Close()

			if folderSlug != "" {
				return printFolderThreads(cmd.Context(), r, c, folderSlug)
			}
			return printLatestRun(cmd.Context(), r, c)
		},
	}

	cmd.Flags().StringVar(&folderSlug, "folder", "", "List the recorded threads of one folder slug")
	return cmd
}

func printLatestRun(ctx context.Context, r *report, c *catalog.Catalog) error {
	run, err := c.LatestRun(ctx)
	if err != nil {
		return err
	}
	if run == nil {
		r.line("Catalog", levelWarn, "no runs recorded")
		return nil
	}
	runs, err := c.RunCount(ctx)
	if err != nil {
		return err
	}
	folders, err := c.Folders(ctx)
	if err != nil {
		return err
	}

	r.heading("Last export")
	r.line("Run", levelInfo, run.ID)
	r.line("Finished", levelInfo, run.FinishedAt.Local().Format(time.DateTime))
	r.line("Title", levelInfo, run.SiteTitle)
	r.line("Output", levelInfo, run.OutputDir)
	r.line("Threads", levelOK, strconv.Itoa(run.Threads))
	r.line("Folders", levelOK, strconv.Itoa(run.Folders))
	r.line("Messages", levelOK, strconv.Itoa(run.Messages))
	r.shortfall("Assets missing", run.AssetsMissing)
	r.line("Runs recorded", levelInfo, strconv.Itoa(runs))

	if len(folders) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(folders))
	for _, f := range folders {
		rows = append(rows, folderRow(f.Name, f.Slug, f.ThreadCount, f.MessageCount))
	}
	r.plain("")
	r.plain(renderTable(folderColumns, rows, nil))
	return nil
}

func printFolderThreads(ctx context.Context, r *report, c *catalog.Catalog, slug string) error {
	threads, err := c.FolderThreads(ctx, slug)
	if err != nil {
		return err
	}
	if len(threads) == 0 {
		r.line("Folder", levelWarn, fmt.Sprintf("no threads recorded for %q", slug))
		return nil
	}
	rows := make([][]string, 0, len(threads))
	for _, t := range threads {
		rows = append(rows, []string{
			t.ID,
			t.Title,
			t.FirstAuthor,
			render.LongTimestamp(t.FirstDate),
			strconv.Itoa(t.MessageCount),
			strconv.Itoa(t.ReplyCount),
		})
	}
	r.heading("Folder " + slug)
	r.plain(renderTable(threadColumns, rows, nil))
	return nil
}
