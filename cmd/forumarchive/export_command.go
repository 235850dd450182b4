package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"forumarchive/internal/export"
	"forumarchive/internal/textutil"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var storeDir, outputDir, title string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the scrape store into a static HTML site",
		Long: "Rebuild the whole archive: every thread page, every folder listing, and the index.\n" +
			"Files from earlier exports are overwritten but never removed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.ApplyOverrides(storeDir, outputDir, title); err != nil {
				return err
			}
			logger, err := ctx.logger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			summary, err := export.Run(cmd.Context(), export.OptionsFromConfig(cfg, logger))
			if err != nil {
				reportExportFailure(newReport(cmd.ErrOrStderr()), err)
				return fmt.Errorf("export failed: %w", err)
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeDir, "store", "", "Scrape store directory (threads/, profiles/, files/)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Destination directory for the generated site")
	cmd.Flags().StringVar(&title, "forum-title", "", "Title shown at the top of every page")
	return cmd
}

// reportExportFailure names the part of the configuration an operator has to
// fix for the known failure modes.
func reportExportFailure(r *report, err error) {
	switch {
	case errors.Is(err, export.ErrThreadsDirMissing):
		r.failure("Store", err)
		r.plain("Point --store (or [paths] store_dir) at a scrape containing threads/.")
	case errors.Is(err, export.ErrOutputLocked):
		r.failure("Output", err)
		r.plain("Wait for the other export to finish or choose a different --output.")
	default:
		r.failure("Export", err)
	}
}

func printSummary(out io.Writer, summary *export.Summary) {
	r := newReport(out)
	r.heading("Export complete")
	r.line("Output", levelOK, summary.OutputDir)
	r.line("Run", levelInfo, summary.RunID)
	r.line("Threads", levelOK, textutil.CountLabel(summary.Threads, "thread"))
	r.shortfall("Empty records", summary.Skipped)
	r.shortfall("Invalid records", summary.Invalid)
	r.line("Assets copied", levelOK, strconv.Itoa(summary.AssetsCopied))
	r.shortfall("Assets missing", summary.AssetsMissing)
	if summary.CatalogPath != "" {
		r.line("Catalog", levelOK, summary.CatalogPath)
	}

	if len(summary.Folders) == 0 {
		r.plain("No forums were captured in this archive.")
		return
	}
	rows := make([][]string, 0, len(summary.Folders))
	for _, folder := range summary.Folders {
		rows = append(rows, folderRow(folder.Name, folder.Slug, folder.Threads, folder.Messages))
	}
	r.plain("")
	r.plain(renderTable(folderColumns, rows,
		[]string{"Total", "", strconv.Itoa(summary.Threads), strconv.Itoa(summary.Messages)}))
}

func folderRow(name, slug string, threads, messages int) []string {
	return []string{name, export.FoldersDir + "/" + slug + ".html", strconv.Itoa(threads), strconv.Itoa(messages)}
}
