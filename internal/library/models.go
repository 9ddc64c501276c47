// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Display placeholders substituted at read time for values absent in storage.
const (
	NoRating  = "N/A"
	NoSummary = "No summary available"
)

// ErrUnknownField is returned when a search names a field outside the
// supported set.
var ErrUnknownField = errors.New("unknown search field")

// Book is a single record in the library.
//
// Rating and Summary are pointers so that records stored without them
// (older snapshots, NULL columns) stay absent on round trip. The JSON keys
// are the on-disk snapshot keys.
type Book struct {
	Title           string  `json:"Title" yaml:"title"`
	Author          string  `json:"Author" yaml:"author"`
	PublicationYear int     `json:"Publication Year" yaml:"publication_year" validate:"min=0,max=2100"`
	Genre           string  `json:"Genre" yaml:"genre"`
	ReadStatus      bool    `json:"Read Status" yaml:"read_status"`
	Rating          *int    `json:"Rating,omitempty" yaml:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Summary         *string `json:"Summary,omitempty" yaml:"summary,omitempty"`
}

// NewBook builds a Book with every field present.
func NewBook(title, author string, year int, genre string, read bool, rating int, summary string) Book {
	return Book{
		Title:           title,
		Author:          author,
		PublicationYear: year,
		Genre:           genre,
		ReadStatus:      read,
		Rating:          &rating,
		Summary:         &summary,
	}
}

// Clone returns a deep copy of b.
func (b Book) Clone() Book {
	c := b
	if b.Rating != nil {
		r := *b.Rating
		c.Rating = &r
	}
	if b.Summary != nil {
		s := *b.Summary
		c.Summary = &s
	}
	return c
}

// RatingLabel returns the rating as text, or NoRating when absent.
func (b Book) RatingLabel() string {
	if b.Rating == nil {
		return NoRating
	}
	return strconv.Itoa(*b.Rating)
}

// SummaryText returns the summary, or NoSummary when absent.
func (b Book) SummaryText() string {
	if b.Summary == nil {
		return NoSummary
	}
	return *b.Summary
}

// Field selects which book attribute a search matches against.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
)

// Fields lists every searchable field.
var Fields = []Field{FieldTitle, FieldAuthor}

// ParseField maps user input to a Field, ignoring case.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldTitle, FieldAuthor:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (choose title or author)", ErrUnknownField, s)
	}
}

func (f Field) known() bool {
	return slices.Contains(Fields, f)
}

func (f Field) valueOf(b Book) (string, error) {
	switch f {
	case FieldTitle:
		return b.Title, nil
	case FieldAuthor:
		return b.Author, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
}

// Stats summarizes the library.
type Stats struct {
	Total       int     `json:"total" yaml:"total"`
	Read        int     `json:"read" yaml:"read"`
	PercentRead float64 `json:"percent_read" yaml:"percent_read"`
}

func newStats(total, read int) Stats {
	s := Stats{Total: total, Read: read}
	if total > 0 {
		s.PercentRead = float64(read) / float64(total) * 100
	}
	return s
}

// PercentLabel formats PercentRead with two decimals for display.
func (s Stats) PercentLabel() string {
	return fmt.Sprintf("%.2f%%", s.PercentRead)
}
