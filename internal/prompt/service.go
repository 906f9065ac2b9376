// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package prompt

import (
	"context"
	"log/slog"

	"github.com/taibuivan/promptdeck/internal/platform/validate"
	"github.com/taibuivan/promptdeck/pkg/slice"
	"github.com/taibuivan/promptdeck/pkg/slug"
	"github.com/taibuivan/promptdeck/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for the prompt library.
// It acts as the primary entry point for the discovery feed.
type Service struct {
	promptRepo Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(promptRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		promptRepo: promptRepo,
		logger:     logger,
	}
}

// # Prompt Lookups

/*
ListPrompts retrieves a paginated and filtered collection of prompts.

Description: This method orchestrates the discovery feed. Filter criteria are
passed to the repository for gateway-level filtering and ordering. The engine
never lets a storage error escape as a panic or a partial result: on any
gateway failure the result is an empty (non-nil) slice with total 0 alongside
the error, so callers can render an explicit error state distinct from an
empty state.

Parameters:
  - context: context.Context
  - filter: Filter (Search term, category slug, language)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Prompt: Slice of matching prompt records, never nil
  - int: Total count of records matching the filter (for pagination metadata)
  - error: System or repository level errors
*/
func (service *Service) ListPrompts(context context.Context, filter Filter, limit, offset int) ([]*Prompt, int, error) {

	prompts, total, err := service.promptRepo.List(context, filter, limit, offset)
	if err != nil {
		service.logger.ErrorContext(context, "prompt_list_failed",
			slog.String("query", filter.Query),
			slog.String("category", filter.Category),
			slog.Any("error", err),
		)
		return []*Prompt{}, 0, err
	}

	// A page past the last window is a valid empty result, not nil
	if prompts == nil {
		prompts = []*Prompt{}
	}

	return prompts, total, nil
}

/*
GetPrompt fetches a single prompt record by UUID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Prompt: The normalized domain entity
  - error: apperr.NotFound if no match is found
*/
func (service *Service) GetPrompt(context context.Context, id string) (*Prompt, error) {
	return service.promptRepo.FindByID(context, id)
}

// # Prompt Management

/*
CreatePrompt initialises a new prompt record in the system.

Description: Performs business validation on the metadata, slug-normalizes
the submitted categories, applies the default language, generates a stable
UUID v7 identity and an SEO-friendly slug before persisting. The like count
always starts at zero; it is owned by the relation trigger afterwards.

Parameters:
  - context: context.Context
  - prompt: *Prompt (The entity to be persisted)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreatePrompt(context context.Context, prompt *Prompt) error {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, prompt.Title).MaxLen(FieldTitle, prompt.Title, 300)
	validator.Required(FieldBody, prompt.Body)
	validator.MaxItems(FieldCategorySlugs, len(prompt.CategorySlugs), MaxCategories)

	if err := validator.Err(); err != nil {
		return err
	}

	// Categories are stored in slug form regardless of input casing
	prompt.CategorySlugs = slice.Map(prompt.CategorySlugs, slug.From)
	prompt.Categories = slice.Map(prompt.CategorySlugs, slug.Display)

	// Language defaulting
	if prompt.Language == "" {
		prompt.Language = DefaultLanguage
	}

	// Identity & Slug generation
	if prompt.ID == "" {
		prompt.ID = uuidv7.Must()
	}
	if prompt.Slug == "" {
		prompt.Slug = slug.From(prompt.Title)
	}

	// The count column is trigger-maintained; never seeded by the client
	prompt.LikesCount = 0

	// Persistence via Repository
	if err := service.promptRepo.Create(context, prompt); err != nil {
		return err
	}

	service.logger.Info("prompt_created",
		slog.String("prompt_id", prompt.ID),
		slog.String("title", prompt.Title),
	)

	return nil
}
