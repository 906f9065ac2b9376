// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import "context"

// # Like Relation Data Access

// Repository defines the data access contract for the like relation.
//
// The live implementation rides on PostgreSQL with a unique
// (prompt_id, user_id) constraint; the fixture implementation mirrors the
// same semantics in memory, including the trigger-maintained count.
type Repository interface {

	/*
		Add creates the like edge for the pair.

		Parameters:
		  - context: context.Context
		  - promptID: string (UUID)
		  - userID: string (UUID)

		Returns:
		  - error: apperr.Conflict when the edge already exists,
		    apperr.NotFound when the prompt vanished, storage failures otherwise
	*/
	Add(context context.Context, promptID, userID string) error

	/*
		Remove deletes the like edge for the pair.

		Removing an absent edge is not an error; the outcome (no edge) is
		what the caller asked for.

		Parameters:
		  - context: context.Context
		  - promptID: string (UUID)
		  - userID: string (UUID)

		Returns:
		  - error: Storage failures only
	*/
	Remove(context context.Context, promptID, userID string) error

	/*
		Exists reports whether the like edge is present.

		Parameters:
		  - context: context.Context
		  - promptID: string (UUID)
		  - userID: string (UUID)

		Returns:
		  - bool: true when the user has liked the prompt
		  - error: Storage failures
	*/
	Exists(context context.Context, promptID, userID string) (bool, error)

	/*
		CountForPrompt returns the authoritative like count for a prompt.

		This is the dedicated read-after-write the toggle algorithm relies
		on: the count is maintained server-side (trigger in the live store)
		and must never be derived from known state plus one.

		Parameters:
		  - context: context.Context
		  - promptID: string (UUID)

		Returns:
		  - int: Current like count
		  - error: apperr.NotFound when the prompt does not exist
	*/
	CountForPrompt(context context.Context, promptID string) (int, error)

	/*
		ListFavorites returns the IDs of prompts the user has liked, newest
		like first, and the total number of liked prompts.

		Parameters:
		  - context: context.Context
		  - userID: string (UUID)
		  - limit: int
		  - offset: int

		Returns:
		  - []string: Prompt UUIDs ordered by like creation desc
		  - int: Total liked prompts before windowing
		  - error: Storage failures
	*/
	ListFavorites(context context.Context, userID string, limit, offset int) ([]string, int, error)
}
