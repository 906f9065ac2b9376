// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package prompt

import (
	"time"

	"github.com/taibuivan/promptdeck/pkg/slice"
	"github.com/taibuivan/promptdeck/pkg/slug"
)

// # Row Normalization

// Row is the raw gateway shape of a prompt record. Historical backends
// disagreed on field names (the body lived in a "content" column), so every
// store hands its rows through [Normalize] instead of building a [Prompt]
// directly. Schema drift is a one-function concern.
type Row struct {
	ID            string
	Title         string
	Slug          string
	Body          string // current column
	Content       string // legacy column, used when Body is empty
	CategorySlugs []string
	Language      string
	Models        []string
	Tags          []string
	AuthorID      string
	AuthorName    string
	LikesCount    *int // nil when the backend omitted the count
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

/*
Normalize maps a raw gateway row into the stable [Prompt] shape.

It is a pure function: no I/O, no shared state. The mapping rules are:

  - Body prefers the current column, falling back to the legacy "content" column.
  - CategorySlugs are carried as-is; display Categories are derived by
    title-casing each slug ("creative-writing" -> "Creative Writing").
  - A missing author name becomes "Anonymous".
  - A missing like count becomes 0.

Parameters:
  - row: Row (Raw backend record, any historical shape)

Returns:
  - *Prompt: The normalized domain entity
*/
func Normalize(row Row) *Prompt {

	// Legacy backends stored the prompt text under "content"
	body := row.Body
	if body == "" {
		body = row.Content
	}

	// Absent author means the prompt predates account attribution
	authorName := row.AuthorName
	if authorName == "" {
		authorName = "Anonymous"
	}

	// Absent count means zero, never unknown
	likesCount := 0
	if row.LikesCount != nil {
		likesCount = *row.LikesCount
	}

	return &Prompt{
		ID:            row.ID,
		Title:         row.Title,
		Slug:          row.Slug,
		Body:          body,
		CategorySlugs: row.CategorySlugs,
		Categories:    slice.Map(row.CategorySlugs, slug.Display),
		Language:      row.Language,
		Models:        row.Models,
		Tags:          row.Tags,
		AuthorID:      row.AuthorID,
		AuthorName:    authorName,
		LikesCount:    likesCount,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
