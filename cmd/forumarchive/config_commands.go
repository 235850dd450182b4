package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"forumarchive/internal/config"
	"forumarchive/internal/store"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the forumarchive configuration",
	}
	cmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := sampleConfigTarget(targetPath)
			if err != nil {
				return err
			}
			if err := writeSampleConfig(target, overwrite); err != nil {
				return err
			}
			r := newReport(cmd.OutOrStdout())
			r.line("Config", levelOK, "wrote sample to "+target)
			r.plain("Set [paths] store_dir to the scrape and output_dir to the site destination, then run forumarchive export.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Where to write the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

// sampleConfigTarget resolves the --path flag, falling back to the user
// configuration location.
func sampleConfigTarget(flag string) (string, error) {
	flag = strings.TrimSpace(flag)
	if flag == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(flag)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

func writeSampleConfig(target string, overwrite bool) error {
	if !overwrite {
		_, err := os.Stat(target)
		if err == nil {
			return fmt.Errorf("%s already exists (pass --overwrite to replace it)", target)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("check config path: %w", err)
		}
	}
	return config.CreateSample(target)
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load the configuration and show what an export would use",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newReport(cmd.OutOrStdout())
			cfg, path, exists, err := config.Load(strings.TrimSpace(*ctx.configFlag))
			if err != nil {
				r.failure("Config", err)
				return fmt.Errorf("load config: %w", err)
			}

			if exists {
				r.line("Config", levelOK, path)
			} else {
				r.line("Config", levelInfo, path+" (not found, defaults used)")
			}
			threads := filepath.Join(cfg.Paths.StoreDir, store.ThreadsDir)
			if info, err := os.Stat(threads); err == nil && info.IsDir() {
				r.line("Store", levelOK, cfg.Paths.StoreDir)
			} else {
				r.line("Store", levelWarn, "no threads directory under "+cfg.Paths.StoreDir+"; export will fail")
			}
			r.line("Output", levelInfo, cfg.Paths.OutputDir)
			r.line("Site title", levelInfo, cfg.Site.Title)
			if cfg.Catalog.Enabled {
				r.line("Catalog", levelInfo, cfg.CatalogPath())
			} else {
				r.line("Catalog", levelInfo, "disabled")
			}
			r.plain("Configuration valid")
			return nil
		},
	}
}
