// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package social provides the PostgreSQL implementation for the like relation.

The edge table carries a composite primary key (promptid, userid), so the
uniqueness invariant is enforced by the engine and surfaces as a 23505 unique
violation on duplicate inserts. The per-prompt count lives on core.prompt and
is maintained by a trigger; this store only ever reads it.
*/
package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/promptdeck/internal/platform/apperr"
	"github.com/taibuivan/promptdeck/internal/platform/database/schema"
	"github.com/taibuivan/promptdeck/internal/platform/dberr"
)

// # PostgreSQL Repository

// likeRepository implements the [Repository] interface using pgx.
type likeRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed like store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &likeRepository{pool: pool}
}

// # Repository Implementation

/*
Add creates the like edge for the pair.

Description: A plain INSERT against the composite primary key. A duplicate
edge raises 23505 which is classified to apperr.Conflict; a prompt deleted
between the client's fetch and the toggle raises 23503 which is classified
to apperr.NotFound.

Parameters:
  - context: context.Context
  - promptID: string (UUID)
  - userID: string (UUID)

Returns:
  - error: apperr.Conflict, apperr.NotFound, or execution errors
*/
func (repository *likeRepository) Add(context context.Context, promptID, userID string) error {

	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.SocialPromptLike.Table,
		schema.SocialPromptLike.PromptID,
		schema.SocialPromptLike.UserID,
	)

	if _, err := repository.pool.Exec(context, query, promptID, userID); err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("like already exists")
		}
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("prompt")
		}
		return fmt.Errorf("postgres: failed to add like: %w", err)
	}

	return nil
}

/*
Remove deletes the like edge for the pair.

Description: Deleting an edge that is already gone affects zero rows and is
treated as success; the caller's desired end state holds either way.

Parameters:
  - context: context.Context
  - promptID: string (UUID)
  - userID: string (UUID)

Returns:
  - error: Execution errors only
*/
func (repository *likeRepository) Remove(context context.Context, promptID, userID string) error {

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2",
		schema.SocialPromptLike.Table,
		schema.SocialPromptLike.PromptID,
		schema.SocialPromptLike.UserID,
	)

	if _, err := repository.pool.Exec(context, query, promptID, userID); err != nil {
		return fmt.Errorf("postgres: failed to remove like: %w", err)
	}

	return nil
}

/*
Exists reports whether the like edge is present.

Parameters:
  - context: context.Context
  - promptID: string (UUID)
  - userID: string (UUID)

Returns:
  - bool: true when the edge exists
  - error: Execution errors
*/
func (repository *likeRepository) Exists(context context.Context, promptID, userID string) (bool, error) {

	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)",
		schema.SocialPromptLike.Table,
		schema.SocialPromptLike.PromptID,
		schema.SocialPromptLike.UserID,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, promptID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check like: %w", err)
	}

	return exists, nil
}

/*
CountForPrompt returns the authoritative like count for a prompt.

Description: Reads the trigger-maintained counter column on core.prompt
rather than counting edge rows. This is the read-after-write the toggle
reconciliation depends on; the trigger may have applied concurrent changes
the caller cannot see.

Parameters:
  - context: context.Context
  - promptID: string (UUID)

Returns:
  - int: Current like count
  - error: apperr.NotFound when the prompt does not exist
*/
func (repository *likeRepository) CountForPrompt(context context.Context, promptID string) (int, error) {

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL",
		schema.CorePrompt.LikesCount,
		schema.CorePrompt.Table,
		schema.CorePrompt.ID,
		schema.CorePrompt.DeletedAt,
	)

	var count int
	if err := repository.pool.QueryRow(context, query, promptID).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.NotFound("prompt")
		}
		return 0, fmt.Errorf("postgres: failed to read like count: %w", err)
	}

	return count, nil
}

/*
ListFavorites returns the IDs of prompts the user has liked, newest like
first, and the total number of liked prompts.

Parameters:
  - context: context.Context
  - userID: string (UUID)
  - limit: int
  - offset: int

Returns:
  - []string: Prompt UUIDs ordered by like creation desc
  - int: Total liked prompts before windowing
  - error: Execution errors
*/
func (repository *likeRepository) ListFavorites(context context.Context, userID string, limit, offset int) ([]string, int, error) {

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.SocialPromptLike.PromptID,
		schema.SocialPromptLike.Table,
		schema.SocialPromptLike.UserID,
		schema.SocialPromptLike.CreatedAt,
		schema.SocialPromptLike.PromptID,
	)

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list favorites: %w", err)
	}
	defer rows.Close()

	var promptIDs []string
	var totalCount int

	for rows.Next() {
		var promptID string
		if err := rows.Scan(&promptID, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan favorite: %w", err)
		}
		promptIDs = append(promptIDs, promptID)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: favorite row iteration failed: %w", err)
	}

	return promptIDs, totalCount, nil
}
