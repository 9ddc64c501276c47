// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/mtreilly/arc-bookshelf/internal/output"
	"github.com/spf13/cobra"
)

func newRecommendCmd(a *app) *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "recommend <genre>",
		Short: "Recommend books from a genre",
		Long: `List books whose genre is exactly the given genre, ignoring case.
"Sci-Fi" does not match "Sci-Fi Adventure".

Examples:
  arc-bookshelf recommend sci-fi
  arc-bookshelf recommend "Historical Fiction" --long`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			genre := args[0]
			store, err := a.library(cmd.Context())
			if err != nil {
				return err
			}
			books, err := store.Recommend(cmd.Context(), genre)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(books) == 0 && !a.format.Structured() {
				fmt.Fprintf(w, "No recommendations found for the genre '%s'. Try adding books in this category!\n", genre)
				return nil
			}
			return output.WriteBooks(w, a.format, books, long)
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show full summaries")
	return cmd
}
