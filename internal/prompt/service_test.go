// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package prompt_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/promptdeck/internal/prompt"
)

// brokenRepo fails every operation; it drives the error-contract tests.
type brokenRepo struct{}

func (brokenRepo) List(context.Context, prompt.Filter, int, int) ([]*prompt.Prompt, int, error) {
	return nil, 0, errors.New("gateway down")
}

func (brokenRepo) FindByID(context.Context, string) (*prompt.Prompt, error) {
	return nil, errors.New("gateway down")
}

func (brokenRepo) ListByIDs(context.Context, []string) ([]*prompt.Prompt, error) {
	return nil, errors.New("gateway down")
}

func (brokenRepo) Create(context.Context, *prompt.Prompt) error {
	return errors.New("gateway down")
}

func newFixtureService(t *testing.T) *prompt.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return prompt.NewService(prompt.NewMemoryRepository(), logger)
}

/*
TestListPrompts_DefaultOrder verifies newest-first ordering over the seeded
catalogue and the pre-window total.
*/
func TestListPrompts_DefaultOrder(t *testing.T) {
	service := newFixtureService(t)

	prompts, total, err := service.ListPrompts(context.Background(), prompt.Filter{}, 9, 0)

	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, prompts, 5)

	// Newest creation first
	assert.Equal(t, "Cold Email Sharpener", prompts[0].Title)
	assert.Equal(t, "Socratic Code Reviewer", prompts[4].Title)
}

/*
TestListPrompts_Filters verifies every predicate and their conjunction.
*/
func TestListPrompts_Filters(t *testing.T) {
	service := newFixtureService(t)

	tests := []struct {
		name       string
		filter     prompt.Filter
		wantTotal  int
		wantTitles []string
	}{
		{
			name:       "query matches title case-insensitively",
			filter:     prompt.Filter{Query: "sql"},
			wantTotal:  1,
			wantTitles: []string{"SQL Query Explainer"},
		},
		{
			name:       "query matches body text",
			filter:     prompt.Filter{Query: "founding myths"},
			wantTotal:  1,
			wantTitles: []string{"Worldbuilding Seed Generator"},
		},
		{
			name:       "category is slug-normalized before matching",
			filter:     prompt.Filter{Category: "Creative Writing"},
			wantTotal:  1,
			wantTitles: []string{"Worldbuilding Seed Generator"},
		},
		{
			name:       "category exact containment",
			filter:     prompt.Filter{Category: "programming"},
			wantTotal:  2,
			wantTitles: []string{"SQL Query Explainer", "Socratic Code Reviewer"},
		},
		{
			name:       "language equality",
			filter:     prompt.Filter{Language: "Vietnamese"},
			wantTotal:  1,
			wantTitles: []string{"Bản tóm tắt cuộc họp"},
		},
		{
			name:      "predicates are conjunctive",
			filter:    prompt.Filter{Category: "programming", Language: "Vietnamese"},
			wantTotal: 0,
		},
		{
			name:      "no partial category match",
			filter:    prompt.Filter{Category: "program"},
			wantTotal: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			prompts, total, err := service.ListPrompts(context.Background(), test.filter, 9, 0)

			require.NoError(t, err)
			assert.Equal(t, test.wantTotal, total)
			require.Len(t, prompts, len(test.wantTitles))
			for i, title := range test.wantTitles {
				assert.Equal(t, title, prompts[i].Title)
			}
		})
	}
}

/*
TestListPrompts_Windowing verifies that the window applies after ordering
and that the total always reflects the unwindowed match count.
*/
func TestListPrompts_Windowing(t *testing.T) {
	service := newFixtureService(t)

	// 1. First window of two
	page, total, err := service.ListPrompts(context.Background(), prompt.Filter{}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "Cold Email Sharpener", page[0].Title)

	// 2. Second window continues where the first ended
	page, total, err = service.ListPrompts(context.Background(), prompt.Filter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "Bản tóm tắt cuộc họp", page[0].Title)

	// 3. A window past the end is a valid empty page
	page, total, err = service.ListPrompts(context.Background(), prompt.Filter{}, 9, 90)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

/*
TestListPrompts_GatewayFailure verifies the error contract: empty non-nil
slice, zero total, error propagated.
*/
func TestListPrompts_GatewayFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := prompt.NewService(brokenRepo{}, logger)

	prompts, total, err := service.ListPrompts(context.Background(), prompt.Filter{}, 9, 0)

	require.Error(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, prompts)
	assert.Empty(t, prompts)
}

/*
TestCreatePrompt_Validation verifies the business rules applied before
persistence.
*/
func TestCreatePrompt_Validation(t *testing.T) {
	service := newFixtureService(t)

	tests := []struct {
		name    string
		input   prompt.Prompt
		wantErr bool
	}{
		{
			name:    "missing title",
			input:   prompt.Prompt{Body: "some text"},
			wantErr: true,
		},
		{
			name:    "missing body",
			input:   prompt.Prompt{Title: "A Title"},
			wantErr: true,
		},
		{
			name: "too many categories",
			input: prompt.Prompt{
				Title:         "A Title",
				Body:          "some text",
				CategorySlugs: []string{"a", "b", "c", "d"},
			},
			wantErr: true,
		},
		{
			name:  "valid minimal prompt",
			input: prompt.Prompt{Title: "A Title", Body: "some text"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := service.CreatePrompt(context.Background(), &test.input)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

/*
TestCreatePrompt_Defaults verifies identity generation, slug derivation,
category normalization, and the language default.
*/
func TestCreatePrompt_Defaults(t *testing.T) {
	service := newFixtureService(t)

	input := prompt.Prompt{
		Title:         "Daily Standup Summarizer",
		Body:          "Summarize the standup notes below.",
		CategorySlugs: []string{"Productivity Tips"},
		LikesCount:    99,
	}

	require.NoError(t, service.CreatePrompt(context.Background(), &input))

	// 1. Generated identity and derived slug
	assert.NotEmpty(t, input.ID)
	assert.Equal(t, "daily-standup-summarizer", input.Slug)

	// 2. Categories slug-normalized with display names derived
	assert.Equal(t, []string{"productivity-tips"}, input.CategorySlugs)
	assert.Equal(t, []string{"Productivity Tips"}, input.Categories)

	// 3. Language defaulted, count reset to the trigger-owned zero
	assert.Equal(t, "English", input.Language)
	assert.Zero(t, input.LikesCount)

	// 4. Round-trip through the store
	stored, err := service.GetPrompt(context.Background(), input.ID)
	require.NoError(t, err)
	assert.Equal(t, "Daily Standup Summarizer", stored.Title)
}
