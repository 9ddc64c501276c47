// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mtreilly/arc-bookshelf/internal/library"
)

const summaryWidth = 40

// RatingText renders a rating as "4/5", or the placeholder when absent.
func RatingText(b library.Book) string {
	if b.Rating == nil {
		return library.NoRating
	}
	return b.RatingLabel() + "/5"
}

// BookLine renders one book on a single line.
func BookLine(b library.Book) string {
	return fmt.Sprintf("%q by %s (%d) - %s - %s", b.Title, b.Author, b.PublicationYear, b.Genre, RatingText(b))
}

// WriteBooks renders books in f. Table output uses one row per book; long
// output prints each book line followed by its full summary.
func WriteBooks(w io.Writer, f Format, books []library.Book, long bool) error {
	if f.Structured() {
		if books == nil {
			books = []library.Book{}
		}
		return Encode(w, f, books)
	}

	if long {
		for _, b := range books {
			if _, err := fmt.Fprintf(w, "%s\n    Summary: %s\n", BookLine(b), b.SummaryText()); err != nil {
				return err
			}
		}
		return nil
	}

	table := NewTable("Title", "Author", "Year", "Genre", "Read", "Rating", "Summary")
	for _, b := range books {
		read := "no"
		if b.ReadStatus {
			read = "yes"
		}
		table.AddRow(
			Truncate(b.Title, 45),
			Truncate(b.Author, 30),
			strconv.Itoa(b.PublicationYear),
			Truncate(b.Genre, 20),
			read,
			RatingText(b),
			Truncate(b.SummaryText(), summaryWidth),
		)
	}
	return table.Render(w)
}

// WriteStats renders library statistics in f.
func WriteStats(w io.Writer, f Format, s library.Stats) error {
	if f.Structured() {
		return Encode(w, f, s)
	}
	_, err := fmt.Fprintf(w, "Library Statistics\n==================\n\nTotal books:     %d\nPercentage read: %s\n",
		s.Total, s.PercentLabel())
	return err
}
