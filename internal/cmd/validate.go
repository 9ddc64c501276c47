// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mtreilly/arc-bookshelf/internal/library"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldLabels names struct fields the way the user typed them.
var fieldLabels = map[string]string{
	"PublicationYear": "publication year",
	"Rating":          "rating",
}

// validateBook checks the input ranges of a book (year 0-2100, rating 0-5).
// The store accepts any values; these limits belong to the input surface.
func validateBook(b library.Book) error {
	err := validate.Struct(b)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label := fieldLabels[fe.StructField()]
		if label == "" {
			label = strings.ToLower(fe.StructField())
		}
		switch fe.Tag() {
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", label, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", label, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", label, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
