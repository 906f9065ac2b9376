// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package prompt

import "context"

// # Prompt Data Access

// Repository defines the data access contract for the prompt domain.
//
// Two interchangeable implementations exist: a PostgreSQL gateway for live
// traffic and a deterministic in-memory fixture with identical filter
// semantics for offline development and tests.
type Repository interface {

	/*
		List returns a filtered, paginated slice of prompts and the total count.

		The total reflects the filtered set before windowing; a page beyond the
		last window returns an empty slice with the total unchanged.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Search term, category slug, language)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Prompt: Slice of normalized prompt records, ordered created_at DESC
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Prompt, int, error)

	/*
		FindByID returns the prompt with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Prompt: The normalized domain entity
		  - error: apperr.NotFound if missing or soft-deleted
	*/
	FindByID(context context.Context, id string) (*Prompt, error)

	/*
		ListByIDs returns prompts for the given IDs preserving input order.

		Missing IDs are skipped silently; the result may be shorter than the
		input. Used by the favorites listing.

		Parameters:
		  - context: context.Context
		  - ids: []string (UUIDs, pre-ordered by the caller)

		Returns:
		  - []*Prompt: Normalized records in input order
		  - error: Database retrieval failures
	*/
	ListByIDs(context context.Context, ids []string) ([]*Prompt, error)

	/*
		Create persists a new prompt to the store.

		Parameters:
		  - context: context.Context
		  - prompt: *Prompt (Metadata and initial state, LikesCount 0)

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, prompt *Prompt) error
}
