// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/promptdeck/internal/platform/apperr"
)

// # In-Memory Fixture Repository

// PromptCounter is the slice of the fixture prompt store this package needs:
// reading back the authoritative count and mirroring the likes_count trigger
// of the live schema.
type PromptCounter interface {
	AdjustLikesCount(id string, delta int)
	LikesCountFor(id string) (int, bool)
}

// memoryEdge records one like with its creation instant for ordering.
type memoryEdge struct {
	promptID  string
	userID    string
	createdAt time.Time
}

// MemoryRepository implements [Repository] over an in-process edge set with
// the same semantics as the PostgreSQL store: unique pairs conflict, removes
// are idempotent, and the per-prompt count is read back from the prompt
// store the way the live store reads the trigger-maintained column.
type MemoryRepository struct {
	mu      sync.Mutex
	edges   []memoryEdge
	prompts PromptCounter
	now     func() time.Time
}

// NewMemoryRepository constructs a fixture like store bound to the fixture
// prompt catalogue.
func NewMemoryRepository(prompts PromptCounter) *MemoryRepository {
	return &MemoryRepository{prompts: prompts, now: time.Now}
}

// indexOf returns the edge position for the pair, or -1.
// Caller must hold the lock.
func (repository *MemoryRepository) indexOf(promptID, userID string) int {
	for i, edge := range repository.edges {
		if edge.promptID == promptID && edge.userID == userID {
			return i
		}
	}
	return -1
}

// Add creates the like edge, mirroring the count trigger.
func (repository *MemoryRepository) Add(_ context.Context, promptID, userID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.prompts.LikesCountFor(promptID); !found {
		return apperr.NotFound("prompt")
	}
	if repository.indexOf(promptID, userID) >= 0 {
		return apperr.Conflict("like already exists")
	}

	repository.edges = append(repository.edges, memoryEdge{
		promptID:  promptID,
		userID:    userID,
		createdAt: repository.now(),
	})
	repository.prompts.AdjustLikesCount(promptID, 1)
	return nil
}

// Remove deletes the like edge if present; absent edges are a no-op.
func (repository *MemoryRepository) Remove(_ context.Context, promptID, userID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	index := repository.indexOf(promptID, userID)
	if index < 0 {
		return nil
	}

	repository.edges = append(repository.edges[:index], repository.edges[index+1:]...)
	repository.prompts.AdjustLikesCount(promptID, -1)
	return nil
}

// Exists reports whether the like edge is present.
func (repository *MemoryRepository) Exists(_ context.Context, promptID, userID string) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	return repository.indexOf(promptID, userID) >= 0, nil
}

// CountForPrompt reads the authoritative count back from the prompt store.
func (repository *MemoryRepository) CountForPrompt(_ context.Context, promptID string) (int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	count, found := repository.prompts.LikesCountFor(promptID)
	if !found {
		return 0, apperr.NotFound("prompt")
	}
	return count, nil
}

// ListFavorites returns the user's liked prompt IDs, newest like first.
func (repository *MemoryRepository) ListFavorites(_ context.Context, userID string, limit, offset int) ([]string, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var mine []memoryEdge
	for _, edge := range repository.edges {
		if edge.userID == userID {
			mine = append(mine, edge)
		}
	}

	sort.SliceStable(mine, func(i, j int) bool {
		if mine[i].createdAt.Equal(mine[j].createdAt) {
			return mine[i].promptID > mine[j].promptID
		}
		return mine[i].createdAt.After(mine[j].createdAt)
	})

	total := len(mine)
	if offset >= total {
		return []string{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	promptIDs := make([]string, 0, end-offset)
	for _, edge := range mine[offset:end] {
		promptIDs = append(promptIDs, edge.promptID)
	}

	return promptIDs, total, nil
}
