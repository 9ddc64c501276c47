// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/mtreilly/arc-bookshelf/internal/output"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show library statistics",
		Long:  `Display the number of books in the library and the percentage you have read.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.library(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := store.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			return output.WriteStats(cmd.OutOrStdout(), a.format, stats)
		},
	}
	return cmd
}
