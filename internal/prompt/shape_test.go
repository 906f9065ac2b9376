// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package prompt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/promptdeck/internal/prompt"
)

/*
TestNormalize_LegacyContentColumn verifies that the body falls back to the
legacy "content" column when the current column is empty.
*/
func TestNormalize_LegacyContentColumn(t *testing.T) {
	tests := []struct {
		name     string
		row      prompt.Row
		wantBody string
	}{
		{
			name:     "current column wins",
			row:      prompt.Row{Body: "current text", Content: "legacy text"},
			wantBody: "current text",
		},
		{
			name:     "legacy column as fallback",
			row:      prompt.Row{Content: "legacy text"},
			wantBody: "legacy text",
		},
		{
			name:     "both empty",
			row:      prompt.Row{},
			wantBody: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.wantBody, prompt.Normalize(test.row).Body)
		})
	}
}

/*
TestNormalize_AnonymousAuthor verifies the author fallback.
*/
func TestNormalize_AnonymousAuthor(t *testing.T) {
	// 1. Missing author resolves to the placeholder
	assert.Equal(t, "Anonymous", prompt.Normalize(prompt.Row{}).AuthorName)

	// 2. Present author passes through
	assert.Equal(t, "mai.tran", prompt.Normalize(prompt.Row{AuthorName: "mai.tran"}).AuthorName)
}

/*
TestNormalize_MissingLikeCount verifies that an omitted count becomes zero,
never a sentinel.
*/
func TestNormalize_MissingLikeCount(t *testing.T) {
	count := 42

	assert.Zero(t, prompt.Normalize(prompt.Row{}).LikesCount)
	assert.Equal(t, 42, prompt.Normalize(prompt.Row{LikesCount: &count}).LikesCount)
}

/*
TestNormalize_DisplayCategories verifies that category slugs derive
title-cased display names while the raw slugs are carried unchanged.
*/
func TestNormalize_DisplayCategories(t *testing.T) {
	row := prompt.Row{CategorySlugs: []string{"creative-writing", "programming"}}

	normalized := prompt.Normalize(row)

	assert.Equal(t, []string{"creative-writing", "programming"}, normalized.CategorySlugs)
	assert.Equal(t, []string{"Creative Writing", "Programming"}, normalized.Categories)
}

/*
TestNormalize_CarriesMetadata verifies that the stable fields pass through
untouched.
*/
func TestNormalize_CarriesMetadata(t *testing.T) {
	createdAt := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	row := prompt.Row{
		ID:        "prompt-1",
		Title:     "SQL Query Explainer",
		Slug:      "sql-query-explainer",
		Language:  "English",
		Models:    []string{"gpt-4o"},
		Tags:      []string{"sql"},
		AuthorID:  "user-1",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	normalized := prompt.Normalize(row)

	assert.Equal(t, row.ID, normalized.ID)
	assert.Equal(t, row.Title, normalized.Title)
	assert.Equal(t, row.Slug, normalized.Slug)
	assert.Equal(t, row.Language, normalized.Language)
	assert.Equal(t, row.Models, normalized.Models)
	assert.Equal(t, row.Tags, normalized.Tags)
	assert.Equal(t, row.AuthorID, normalized.AuthorID)
	assert.Equal(t, createdAt, normalized.CreatedAt)
}
