// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-press/internal/imgur"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <url>",
		Short: "Report whether a link is an imgur album, gallery or direct image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := imgur.Classify(args[0])
			if err := writeJSON(cmd.OutOrStdout(), ref); err != nil {
				return err
			}
			if !ref.Valid() {
				return errFailed
			}
			return nil
		},
	}
}
