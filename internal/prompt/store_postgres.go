// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package prompt provides the PostgreSQL implementation for the library's data access.

It utilizes Postgres features to deliver a responsive discovery experience:
  - Window Functions: Calculates total result counts without a separate 'COUNT' query.
  - Array Containment: Uses the @> operator with a GIN index for category filtering.
  - ILIKE Matching: Case-insensitive substring search across title and body.

Every row leaves the store through [Normalize], so callers only ever see the
stable [Prompt] shape regardless of the underlying column layout.
*/
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/promptdeck/internal/platform/apperr"
	"github.com/taibuivan/promptdeck/internal/platform/database/schema"
	"github.com/taibuivan/promptdeck/pkg/slug"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type promptRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed prompt store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &promptRepository{pool: pool}
}

// selectColumns is the shared projection for prompt queries. The author name
// is resolved through a LEFT JOIN so prompts without an account still list.
func selectColumns() string {
	return fmt.Sprintf(`
		p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s,
		p.%s, COALESCE(NULLIF(a.%s, ''), a.%s, '') AS authorname,
		p.%s, p.%s, p.%s
	`,
		schema.CorePrompt.ID,
		schema.CorePrompt.Title,
		schema.CorePrompt.Slug,
		schema.CorePrompt.Content,
		schema.CorePrompt.CategorySlugs,
		schema.CorePrompt.Language,
		schema.CorePrompt.Models,
		schema.CorePrompt.Tags,
		schema.CorePrompt.AuthorID,
		schema.UserAccount.DisplayName,
		schema.UserAccount.Username,
		schema.CorePrompt.LikesCount,
		schema.CorePrompt.CreatedAt,
		schema.CorePrompt.UpdatedAt,
	)
}

// scanRow maps one result row into the raw [Row] shape.
// extra receives trailing scan targets (e.g. the window-function total).
func scanRow(scanner pgx.Row, extra ...any) (Row, error) {
	var row Row
	var authorID *string
	var likesCount int

	targets := []any{
		&row.ID,
		&row.Title,
		&row.Slug,
		&row.Content,
		&row.CategorySlugs,
		&row.Language,
		&row.Models,
		&row.Tags,
		&authorID,
		&row.AuthorName,
		&likesCount,
		&row.CreatedAt,
		&row.UpdatedAt,
	}
	targets = append(targets, extra...)

	if err := scanner.Scan(targets...); err != nil {
		return Row{}, err
	}

	if authorID != nil {
		row.AuthorID = *authorID
	}
	row.LikesCount = &likesCount

	return row, nil
}

// # Repository Implementation

/*
List returns a filtered, paginated slice of prompts and the total count.

Description: Builds the WHERE clause dynamically from the active filter
predicates and uses COUNT(*) OVER() to retrieve the pre-window total in the
same round-trip. Ordering is newest-first with the primary key as a
deterministic tie-breaker.

Parameters:
  - context: context.Context
  - filter: Filter (Search term, category slug, language)
  - limit: int
  - offset: int

Returns:
  - []*Prompt: Slice of normalized prompt entities
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *promptRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Prompt, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s p
		LEFT JOIN %s a ON a.%s = p.%s
		WHERE p.%s IS NULL
	`,
		selectColumns(),
		schema.CorePrompt.Table,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.CorePrompt.AuthorID,
		schema.CorePrompt.DeletedAt,
	))

	// Search Query Filtering (case-insensitive substring over title OR body)
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (p.%s ILIKE $%d OR p.%s ILIKE $%d)",
			schema.CorePrompt.Title, argID, schema.CorePrompt.Content, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Category Filtering (slug-normalized exact containment)
	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s @> ARRAY[$%d]::text[]",
			schema.CorePrompt.CategorySlugs, argID))
		args = append(args, slug.From(filter.Category))
		argID++
	}

	// Language Filtering (exact equality)
	if filter.Language != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", schema.CorePrompt.Language, argID))
		args = append(args, filter.Language)
		argID++
	}

	// Newest first, primary key as tie-breaker for stable pages
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY p.%s DESC, p.%s DESC",
		schema.CorePrompt.CreatedAt, schema.CorePrompt.ID))

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	// Query Execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list prompts: %w", err)
	}
	defer rows.Close()

	var prompts []*Prompt
	var totalCount int

	for rows.Next() {
		row, err := scanRow(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan prompt: %w", err)
		}
		prompts = append(prompts, Normalize(row))
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: prompt row iteration failed: %w", err)
	}

	return prompts, totalCount, nil
}

/*
FindByID retrieves a prompt record by its primary key.

Parameters:
  - context: context.Context
  - id: string (UUID primary key)

Returns:
  - *Prompt: The normalized prompt entity
  - error: apperr.NotFound if the prompt does not exist or is soft-deleted
*/
func (repository *promptRepository) FindByID(context context.Context, id string) (*Prompt, error) {

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s p
		LEFT JOIN %s a ON a.%s = p.%s
		WHERE p.%s = $1 AND p.%s IS NULL
	`,
		selectColumns(),
		schema.CorePrompt.Table,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.CorePrompt.AuthorID,
		schema.CorePrompt.ID, schema.CorePrompt.DeletedAt,
	)

	row, err := scanRow(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("prompt")
		}
		return nil, fmt.Errorf("postgres: failed to find prompt by id: %w", err)
	}

	return Normalize(row), nil
}

/*
ListByIDs returns prompts for the given IDs preserving input order.

Description: Fetches all matching rows with a single ANY($1) query, then
reorders in memory to match the caller's sequence. IDs that resolve to no
row (deleted prompts) are skipped without error.

Parameters:
  - context: context.Context
  - ids: []string (UUIDs, pre-ordered by the caller)

Returns:
  - []*Prompt: Normalized records in input order
  - error: Database execution errors
*/
func (repository *promptRepository) ListByIDs(context context.Context, ids []string) ([]*Prompt, error) {
	if len(ids) == 0 {
		return []*Prompt{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s p
		LEFT JOIN %s a ON a.%s = p.%s
		WHERE p.%s = ANY($1) AND p.%s IS NULL
	`,
		selectColumns(),
		schema.CorePrompt.Table,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.CorePrompt.AuthorID,
		schema.CorePrompt.ID, schema.CorePrompt.DeletedAt,
	)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list prompts by ids: %w", err)
	}
	defer rows.Close()

	// Collect by ID first, then replay the caller's order
	byID := make(map[string]*Prompt, len(ids))
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan prompt: %w", err)
		}
		normalized := Normalize(row)
		byID[normalized.ID] = normalized
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: prompt row iteration failed: %w", err)
	}

	ordered := make([]*Prompt, 0, len(byID))
	for _, id := range ids {
		if prompt, found := byID[id]; found {
			ordered = append(ordered, prompt)
		}
	}

	return ordered, nil
}

/*
Create persists a new prompt to the store.

Parameters:
  - context: context.Context
  - prompt: *Prompt (Metadata and initial state)

Returns:
  - error: Storage or constraint failures
*/
func (repository *promptRepository) Create(context context.Context, prompt *Prompt) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		schema.CorePrompt.Table,
		schema.CorePrompt.ID, schema.CorePrompt.Title, schema.CorePrompt.Slug,
		schema.CorePrompt.Content, schema.CorePrompt.CategorySlugs,
		schema.CorePrompt.Language, schema.CorePrompt.Models,
		schema.CorePrompt.Tags, schema.CorePrompt.AuthorID,
	)

	// AuthorID may be empty for anonymous imports; store NULL, not ""
	var authorID *string
	if prompt.AuthorID != "" {
		authorID = &prompt.AuthorID
	}

	_, err := repository.pool.Exec(context, query,
		prompt.ID,
		prompt.Title,
		prompt.Slug,
		prompt.Body,
		prompt.CategorySlugs,
		prompt.Language,
		prompt.Models,
		prompt.Tags,
		authorID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to create prompt: %w", err)
	}

	return nil
}
