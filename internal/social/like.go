// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package social manages the like relation between users and prompts.

It owns the optimistic interaction overlay that mediates every like toggle:
the overlay applies the expected transition before the network round-trip,
reconciles with the authoritative count on success, and rolls back to the
exact previous tuple on failure.

Core Responsibility:

  - Relation: Creates and destroys the unique (prompt, user) like edge.
  - Overlay: Keyed optimistic state, invalidated in full on each fresh fetch.
  - Reconciliation: The authoritative count always comes from a dedicated
    read-after-write, never from local arithmetic.
*/
package social

import "time"

// # Domain Entities

// LikeState is the displayed like tuple for a single prompt.
//
// A write into the overlay replaces the whole tuple atomically; Count and
// Liked are never updated independently.
type LikeState struct {
	Count int  `json:"count"`
	Liked bool `json:"liked"`
}

// Like is the persisted relation edge. At most one edge exists per
// (PromptID, UserID) pair; the storage layer enforces the uniqueness.
type Like struct {
	PromptID  string    `json:"prompt_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
