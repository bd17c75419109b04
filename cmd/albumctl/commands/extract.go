// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-press/internal/imgur"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <url>",
		Short: "Print the ordered page list of an imgur link without storing it",
		Long: `extract runs the full pipeline and prints the same JSON document the
parse endpoint returns: {"success":true,"images":[...]} or
{"success":false,"error":"..."}.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := loadToolContext(cmd)
			if err != nil {
				return err
			}

			images, err := tc.importer().Extract(cmd.Context(), args[0])
			result := imgur.NewResult(images, err)
			if err != nil {
				tc.logger.Debug("extract_failed", "error", err)
			}

			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Success {
				return errFailed
			}
			return nil
		},
	}
}
