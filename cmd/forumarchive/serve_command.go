package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"forumarchive/internal/export"
	"forumarchive/internal/logging"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind, outputDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview an exported site over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.ApplyOverrides("", outputDir, ""); err != nil {
				return err
			}
			if v := strings.TrimSpace(bind); v != "" {
				cfg.Serve.Bind = v
			}
			logger, err := ctx.logger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			app, err := newPreviewApp(cfg.Paths.OutputDir, logger)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- app.Listen(cfg.Serve.Bind)
			}()
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at http://%s/ (Ctrl+C to stop)\n", cfg.Paths.OutputDir, cfg.Serve.Bind)

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("preview server: %w", err)
				}
				return nil
			case <-runCtx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown preview server: %w", err)
			}
			logger.Info("preview server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (default from [serve] bind)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Exported site directory")
	return cmd
}

// newPreviewApp serves dir read-only. Dot files such as the export lock are
// hidden.
func newPreviewApp(dir string, logger *slog.Logger) (*fiber.App, error) {
	index := filepath.Join(dir, export.IndexFile)
	if _, err := os.Stat(index); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no exported site at %s; run `forumarchive export` first", dir)
		}
		return nil, fmt.Errorf("stat %s: %w", index, err)
	}

	logger = logging.NewComponentLogger(logger, "serve")
	app := fiber.New(fiber.Config{
		AppName:               "forumarchive",
		DisableStartupMessage: true,
	})
	app.Use(func(c *fiber.Ctx) error {
		for _, segment := range strings.Split(c.Path(), "/") {
			if strings.HasPrefix(segment, ".") {
				return fiber.ErrNotFound
			}
		}
		err := c.Next()
		logger.Debug("request",
			logging.String("method", c.Method()),
			logging.String("path", c.Path()),
			logging.Int("status", c.Response().StatusCode()),
		)
		return err
	})
	app.Static("/", dir, fiber.Static{
		Index:         export.IndexFile,
		Browse:        false,
		CacheDuration: -1,
	})
	return app, nil
}
