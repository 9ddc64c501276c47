// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		title   string
		author  string
		year    int
		genre   string
		read    bool
		rating  int
		summary string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the library",
		Long: `Add a new book to your collection.

Examples:
  arc-bookshelf add --title "Dune" --author "Frank Herbert" --year 1965 --genre Sci-Fi --read --rating 5
  arc-bookshelf add -t "Emma" -a "Jane Austen" -y 1815 -g Classic --summary "Matchmaking gone wrong"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book := library.NewBook(title, author, year, genre, read, rating, summary)
			if err := validateBook(book); err != nil {
				return err
			}

			store, err := a.library(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.Add(cmd.Context(), book); err != nil {
				return fmt.Errorf("add book: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%q has been added to your library!\n", title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Book title")
	cmd.Flags().StringVarP(&author, "author", "a", "", "Author")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Publication year (0-2100)")
	cmd.Flags().StringVarP(&genre, "genre", "g", "", "Genre")
	cmd.Flags().BoolVarP(&read, "read", "r", false, "Mark as read")
	cmd.Flags().IntVar(&rating, "rating", 0, "Rating (0-5)")
	cmd.Flags().StringVarP(&summary, "summary", "s", "", "Short summary")

	return cmd
}
