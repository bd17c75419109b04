// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package commands holds the albumctl cobra command tree.
package commands

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-press/internal/imgur"
	"github.com/taibuivan/yomira-press/internal/platform/config"
)

// NewRootCmd builds the albumctl command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "albumctl",
		Short: "Inspect and import imgur albums",
		Long: `albumctl runs the imgur import pipeline outside the HTTP server.

classify and extract only need network access to imgur. import also needs
DATABASE_URL and REDIS_URL and replaces the pages of an existing chapter.
migrate needs DATABASE_URL.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env is fine; the environment may already be set.
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newClassifyCmd())
	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newMigrateCmd())

	return cmd
}

// toolContext is the configuration and logger every subcommand starts from.
type toolContext struct {
	cfg    *config.ToolConfig
	logger *slog.Logger
}

func loadToolContext(cmd *cobra.Command) (*toolContext, error) {
	cfg, err := config.LoadTool()
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return &toolContext{cfg: cfg, logger: logger}, nil
}

func (tc *toolContext) importer() *imgur.Importer {
	return imgur.NewImporter(imgur.NewHTTPFetcher(imgur.Options{
		BaseURL:    tc.cfg.Imgur.BaseURL,
		UserAgent:  tc.cfg.Imgur.UserAgent,
		Timeout:    tc.cfg.Imgur.Timeout,
		MaxRetries: tc.cfg.Imgur.MaxRetries,
		Logger:     tc.logger,
	}), tc.logger)
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// errFailed is returned after a failure result was already printed, so the
// process exits non-zero.
var errFailed = errors.New("albumctl: pipeline failed")
