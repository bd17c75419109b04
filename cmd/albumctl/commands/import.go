// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-press/internal/core/chapter"
	pgstore "github.com/taibuivan/yomira-press/internal/platform/postgres"
	redisstore "github.com/taibuivan/yomira-press/internal/platform/redis"
)

func newImportCmd() *cobra.Command {
	var chapterID string

	cmd := &cobra.Command{
		Use:   "import --chapter <id> <url>",
		Short: "Replace a chapter's pages with the images of an imgur link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := loadToolContext(cmd)
			if err != nil {
				return err
			}
			if tc.cfg.DatabaseURL == "" || tc.cfg.RedisURL == "" {
				return fmt.Errorf("albumctl: import needs DATABASE_URL and REDIS_URL")
			}

			ctx := cmd.Context()

			pool, err := pgstore.NewPool(ctx, tc.cfg.DatabaseURL, pgstore.PoolOptions{MaxConns: 2}, tc.logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			rdb, err := redisstore.NewClient(ctx, tc.cfg.RedisURL, tc.logger)
			if err != nil {
				return err
			}
			defer rdb.Close()

			service := chapter.NewService(
				chapter.NewPostgresRepository(pool),
				chapter.NewRedisImportLock(rdb),
				tc.importer(),
				tc.cfg.ImportLockTTL,
				tc.logger,
			)

			result, err := service.ImportAlbum(ctx, chapterID, args[0])
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&chapterID, "chapter", "", "chapter id whose pages are replaced")
	_ = cmd.MarkFlagRequired("chapter")

	return cmd
}
