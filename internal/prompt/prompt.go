// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package prompt defines the core domain entities for the Promptdeck library.

It manages the lifecycle of shared LLM prompts including metadata, category
classification, and the filtered discovery feed.

Core Responsibility:

  - Catalogue: Defines the prompt entity and its category/language taxonomy.
  - Discovery: Translates filter state into gateway queries with stable
    pagination arithmetic.
  - Normalization: Adapts heterogeneous backend row shapes into one stable
    item shape consumed by every caller.

This package acts as the source of truth for all prompt-related data models.
*/
package prompt

import "time"

// # Core Entities

// Prompt is the central aggregate of the Promptdeck domain.
// It represents a single shared prompt in the library.
type Prompt struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"` // URL-safe identifier
	Body  string `json:"body"` // The prompt text itself

	// CategorySlugs is the storage form ("creative-writing"); Categories is
	// the display form ("Creative Writing") derived during normalization.
	CategorySlugs []string `json:"category_slugs"`
	Categories    []string `json:"categories"`

	Language string   `json:"language"`
	Models   []string `json:"models,omitempty"` // Target models, ordered by relevance
	Tags     []string `json:"tags,omitempty"`

	AuthorID   string `json:"author_id,omitempty"`
	AuthorName string `json:"author_name"`

	// LikesCount is maintained server-side; clients must treat it as
	// authoritative and never derive it locally.
	LikesCount int `json:"likes_count"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"` // nil = active; non-nil = soft-deleted
}

// # Search & Filtering

// Filter holds the parameters for a filtered prompt list query.
//
// Active predicates are combined with AND semantics: Query matches the title
// or body case-insensitively, Category is slug-normalized then matched for
// exact containment, Language is exact equality. Empty fields are ignored.
type Filter struct {
	Query    string `json:"q,omitempty"`        // Case-insensitive substring search
	Category string `json:"category,omitempty"` // Single category slug
	Language string `json:"language,omitempty"` // Exact language name (e.g. "English")
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	return f.Query == "" && f.Category == "" && f.Language == ""
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID            = "id"
	FieldTitle         = "title"
	FieldSlug          = "slug"
	FieldBody          = "body"
	FieldCategorySlugs = "category_slugs"
	FieldCategories    = "categories"
	FieldLanguage      = "language"
	FieldModels        = "models"
	FieldTags          = "tags"
	FieldAuthorID      = "author_id"
	FieldLikesCount    = "likes_count"
)

// MaxCategories is the recommended upper bound of categories per prompt,
// enforced at the API boundary (storage remains unbounded).
const MaxCategories = 3

// DefaultLanguage is applied when a prompt is created without a language.
const DefaultLanguage = "English"
