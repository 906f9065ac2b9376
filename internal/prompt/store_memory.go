// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package prompt

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/promptdeck/internal/platform/apperr"
	"github.com/taibuivan/promptdeck/pkg/slice"
	"github.com/taibuivan/promptdeck/pkg/slug"
)

// # In-Memory Fixture Repository

// MemoryRepository implements [Repository] over a seeded in-process dataset.
//
// Filter semantics are byte-identical to the PostgreSQL store: the same
// predicates, the same AND combination, the same newest-first ordering, and
// the total is counted before windowing. Used for offline development
// (USE_FIXTURE_DATA) and as a deterministic test backend.
type MemoryRepository struct {
	mu      sync.RWMutex
	prompts []*Prompt
}

// NewMemoryRepository constructs a fixture store seeded with a small
// deterministic prompt catalogue.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{prompts: seedPrompts()}
}

// NewEmptyMemoryRepository constructs an unseeded fixture store for tests.
func NewEmptyMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// matches applies the filter predicates with AND semantics.
func matches(prompt *Prompt, filter Filter) bool {

	// Case-insensitive substring over title OR body
	if filter.Query != "" {
		needle := strings.ToLower(filter.Query)
		title := strings.ToLower(prompt.Title)
		body := strings.ToLower(prompt.Body)
		if !strings.Contains(title, needle) && !strings.Contains(body, needle) {
			return false
		}
	}

	// Slug-normalized exact containment
	if filter.Category != "" {
		if !slice.Contains(prompt.CategorySlugs, slug.From(filter.Category)) {
			return false
		}
	}

	// Exact language equality
	if filter.Language != "" && prompt.Language != filter.Language {
		return false
	}

	return true
}

// List filters, orders, counts, and windows the fixture dataset.
func (repository *MemoryRepository) List(_ context.Context, filter Filter, limit, offset int) ([]*Prompt, int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	filtered := slice.Filter(repository.prompts, func(prompt *Prompt) bool {
		return matches(prompt, filter)
	})

	// Newest first, ID as tie-breaker, matching the live store's ORDER BY
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].ID > filtered[j].ID
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	// Total reflects the filtered set before windowing
	total := len(filtered)

	if offset >= total {
		return []*Prompt{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	window := make([]*Prompt, end-offset)
	copy(window, filtered[offset:end])

	return window, total, nil
}

// FindByID returns the prompt with the given ID.
func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Prompt, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, prompt := range repository.prompts {
		if prompt.ID == id {
			clone := *prompt
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("prompt")
}

// ListByIDs returns prompts for the given IDs preserving input order.
func (repository *MemoryRepository) ListByIDs(_ context.Context, ids []string) ([]*Prompt, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	byID := make(map[string]*Prompt, len(repository.prompts))
	for _, prompt := range repository.prompts {
		byID[prompt.ID] = prompt
	}

	ordered := make([]*Prompt, 0, len(ids))
	for _, id := range ids {
		if prompt, found := byID[id]; found {
			clone := *prompt
			ordered = append(ordered, &clone)
		}
	}
	return ordered, nil
}

// Create appends a new prompt to the fixture dataset.
func (repository *MemoryRepository) Create(_ context.Context, prompt *Prompt) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	clone := *prompt
	repository.prompts = append(repository.prompts, &clone)
	return nil
}

// LikesCountFor returns the stored count for a prompt and whether the prompt
// exists. The social fixture store reads the authoritative count through this
// the way the live store reads the trigger-maintained column.
func (repository *MemoryRepository) LikesCountFor(id string) (int, bool) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, prompt := range repository.prompts {
		if prompt.ID == id {
			return prompt.LikesCount, true
		}
	}
	return 0, false
}

// AdjustLikesCount shifts the stored count for a prompt. The social fixture
// store calls this to mirror the likes_count trigger of the live schema.
func (repository *MemoryRepository) AdjustLikesCount(id string, delta int) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, prompt := range repository.prompts {
		if prompt.ID == id {
			prompt.LikesCount += delta
			if prompt.LikesCount < 0 {
				prompt.LikesCount = 0
			}
			return
		}
	}
}

// # Fixture Data

// seedPrompts returns the deterministic development catalogue. The rows pass
// through [Normalize] like real gateway rows, legacy "content" column
// included, so fixture mode exercises the same adaptation path.
func seedPrompts() []*Prompt {
	base := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	likes := func(n int) *int { return &n }

	rows := []Row{
		{
			ID:            "0194d2f0-0000-7000-8000-000000000001",
			Title:         "Socratic Code Reviewer",
			Slug:          "socratic-code-reviewer",
			Content:       "Review the following code as a Socratic mentor. Ask one probing question per issue instead of stating the fix outright.",
			CategorySlugs: []string{"programming", "code-review"},
			Language:      "English",
			Models:        []string{"gpt-4o", "claude-3-5-sonnet"},
			Tags:          []string{"mentoring", "code"},
			AuthorName:    "mai.tran",
			LikesCount:    likes(42),
			CreatedAt:     base,
			UpdatedAt:     base,
		},
		{
			ID:            "0194d2f0-0000-7000-8000-000000000002",
			Title:         "Worldbuilding Seed Generator",
			Slug:          "worldbuilding-seed-generator",
			Content:       "Generate three incompatible founding myths for the same fictional city, each told by a different unreliable narrator.",
			CategorySlugs: []string{"creative-writing"},
			Language:      "English",
			Models:        []string{"claude-3-5-sonnet"},
			Tags:          []string{"fiction", "worldbuilding"},
			AuthorName:    "duc.nguyen",
			LikesCount:    likes(17),
			CreatedAt:     base.Add(24 * time.Hour),
			UpdatedAt:     base.Add(24 * time.Hour),
		},
		{
			ID:            "0194d2f0-0000-7000-8000-000000000003",
			Title:         "Bản tóm tắt cuộc họp",
			Slug:          "ban-tom-tat-cuoc-hop",
			Content:       "Tóm tắt biên bản cuộc họp sau thành ba gạch đầu dòng hành động, mỗi gạch kèm người chịu trách nhiệm.",
			CategorySlugs: []string{"productivity"},
			Language:      "Vietnamese",
			Models:        []string{"gpt-4o-mini"},
			LikesCount:    likes(8),
			CreatedAt:     base.Add(48 * time.Hour),
			UpdatedAt:     base.Add(48 * time.Hour),
		},
		{
			ID:            "0194d2f0-0000-7000-8000-000000000004",
			Title:         "SQL Query Explainer",
			Slug:          "sql-query-explainer",
			Content:       "Explain this SQL query to a junior analyst. Walk through join order, filters, and the final projection in plain language.",
			CategorySlugs: []string{"programming", "data-analysis"},
			Language:      "English",
			Models:        []string{"gpt-4o"},
			Tags:          []string{"sql", "teaching"},
			CreatedAt:     base.Add(72 * time.Hour),
			UpdatedAt:     base.Add(72 * time.Hour),
		},
		{
			ID:            "0194d2f0-0000-7000-8000-000000000005",
			Title:         "Cold Email Sharpener",
			Slug:          "cold-email-sharpener",
			Content:       "Rewrite the email below to be under 90 words, lead with the recipient's problem, and end with a single low-friction ask.",
			CategorySlugs: []string{"marketing"},
			Language:      "English",
			Models:        []string{"claude-3-5-sonnet", "gpt-4o-mini"},
			Tags:          []string{"sales", "email"},
			AuthorName:    "mai.tran",
			LikesCount:    likes(23),
			CreatedAt:     base.Add(96 * time.Hour),
			UpdatedAt:     base.Add(96 * time.Hour),
		},
	}

	return slice.Map(rows, Normalize)
}
