// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"
	"log/slog"

	"github.com/taibuivan/promptdeck/internal/platform/apperr"
	"github.com/taibuivan/promptdeck/internal/platform/ctxutil"
	"github.com/taibuivan/promptdeck/internal/prompt"
)

// PromptSource is the slice of the prompt repository the favorites listing
// needs: hydrating liked prompt IDs into full records.
type PromptSource interface {
	ListByIDs(context context.Context, ids []string) ([]*prompt.Prompt, error)
}

// # Service Layer

// Service mediates every like and unlike action.
//
// No caller talks to the like repository or the overlay directly; the
// optimistic transition, the reconciliation read, and the rollback all live
// here so the invariants hold for every toggle in the process.
type Service struct {
	likeRepo Repository
	prompts  PromptSource
	overlay  *Overlay
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(likeRepo Repository, prompts PromptSource, overlay *Overlay, logger *slog.Logger) *Service {
	return &Service{
		likeRepo: likeRepo,
		prompts:  prompts,
		overlay:  overlay,
		logger:   logger,
	}
}

// Overlay exposes the interaction overlay for read-through display and for
// the listing handler's invalidation hook.
func (service *Service) Overlay() *Overlay {
	return service.overlay
}

// # Like Toggling

/*
Toggle flips the caller's like on a prompt and returns the reconciled state.

Description: The full optimistic protocol:

 1. Identity comes from the request context. An anonymous caller gets
    apperr.Unauthorized before any network call or overlay mutation.
 2. The optimistic inverse of the known tuple is written to the overlay
    before the storage round-trip, so renders during the flight show the
    expected outcome.
 3. Exactly one relation mutation runs: Remove when the known state is
    liked, Add otherwise. An Add that hits the uniqueness constraint means
    the edge already existed (another tab, a retry); the desired end state
    holds, so the conflict converts to success.
 4. The authoritative count comes from a dedicated read-after-write.
    Server-side aggregation may have applied changes the client never saw,
    so known.Count±1 is never trusted.
 5. Any failure, including the count read, restores the overlay to the
    exact known tuple and propagates the error.

A toggle superseded by a newer toggle or by a feed invalidation drops its
final write; the newest intent wins.

Parameters:
  - context: context.Context (Carries the authenticated claims)
  - promptID: string (UUID)
  - known: LikeState (The tuple the caller currently displays)

Returns:
  - LikeState: The reconciled tuple on success, the known tuple on failure
  - error: apperr.Unauthorized, relation or count-read failures
*/
func (service *Service) Toggle(context context.Context, promptID string, known LikeState) (LikeState, error) {

	// ── 1. Identity Precondition ──────────────────────────────────────
	claims := ctxutil.GetAuthUser(context)
	if claims == nil {
		return known, apperr.Unauthorized("Authentication required")
	}

	// ── 2. Optimistic Transition ──────────────────────────────────────
	liking := !known.Liked
	optimistic := LikeState{Liked: liking, Count: known.Count - 1}
	if liking {
		optimistic.Count = known.Count + 1
	}
	// A count can never render below zero, even from a stale known tuple;
	// the reconciliation read replaces this guess either way.
	if optimistic.Count < 0 {
		optimistic.Count = 0
	}
	stamp := service.overlay.Begin(promptID, optimistic)

	// ── 3. Relation Mutation ──────────────────────────────────────────
	var mutationErr error
	if liking {
		mutationErr = service.likeRepo.Add(context, promptID, claims.UserID)
		if apperr.IsConflict(mutationErr) {
			// The edge already exists; the caller's desired state holds.
			service.logger.InfoContext(context, "like_add_conflict_converged",
				slog.String("prompt_id", promptID),
				slog.String("user_id", claims.UserID),
			)
			mutationErr = nil
		}
	} else {
		mutationErr = service.likeRepo.Remove(context, promptID, claims.UserID)
	}

	if mutationErr != nil {
		service.overlay.Complete(promptID, stamp, known)
		service.logger.WarnContext(context, "like_toggle_rolled_back",
			slog.String("prompt_id", promptID),
			slog.Bool("liking", liking),
			slog.Any("error", mutationErr),
		)
		return known, mutationErr
	}

	// ── 4. Authoritative Reconciliation ───────────────────────────────
	count, err := service.likeRepo.CountForPrompt(context, promptID)
	if err != nil {
		service.overlay.Complete(promptID, stamp, known)
		service.logger.WarnContext(context, "like_count_read_failed",
			slog.String("prompt_id", promptID),
			slog.Any("error", err),
		)
		return known, err
	}

	final := LikeState{Count: count, Liked: liking}
	service.overlay.Complete(promptID, stamp, final)

	return final, nil
}

// # Like Queries

/*
StateFor resolves the displayed like tuple for a prompt: the overlay entry
when one exists, the fallback from the last fetch otherwise.
*/
func (service *Service) StateFor(promptID string, fallback LikeState) LikeState {
	return service.overlay.State(promptID, fallback)
}

/*
CurrentState reads the stored tuple for a prompt: the trigger-maintained
count and whether the current user holds the edge. An anonymous caller reads
Liked=false. The overlay is not consulted; callers that want the displayed
tuple layer [Service.StateFor] on top.

Parameters:
  - context: context.Context
  - promptID: string (UUID)

Returns:
  - LikeState: The stored count and engagement
  - error: Storage failures
*/
func (service *Service) CurrentState(context context.Context, promptID string) (LikeState, error) {
	liked, err := service.HasLiked(context, promptID)
	if err != nil {
		return LikeState{}, err
	}

	count, err := service.likeRepo.CountForPrompt(context, promptID)
	if err != nil {
		return LikeState{}, err
	}

	return LikeState{Count: count, Liked: liked}, nil
}

/*
HasLiked reports whether the current user has liked the prompt.

An anonymous caller has liked nothing; that is a false, not an error.

Parameters:
  - context: context.Context
  - promptID: string (UUID)

Returns:
  - bool: true when the authenticated user holds the edge
  - error: Storage failures
*/
func (service *Service) HasLiked(context context.Context, promptID string) (bool, error) {
	claims := ctxutil.GetAuthUser(context)
	if claims == nil {
		return false, nil
	}
	return service.likeRepo.Exists(context, promptID, claims.UserID)
}

/*
Favorites pages through the prompts the current user has liked, newest like
first. Every returned prompt is by definition liked, so its count pairs with
Liked=true. An anonymous caller gets an empty page, not an error.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*prompt.Prompt: Liked prompts in like-recency order, never nil
  - int: Total liked prompts before windowing
  - error: Storage failures
*/
func (service *Service) Favorites(context context.Context, limit, offset int) ([]*prompt.Prompt, int, error) {
	claims := ctxutil.GetAuthUser(context)
	if claims == nil {
		return []*prompt.Prompt{}, 0, nil
	}

	promptIDs, total, err := service.likeRepo.ListFavorites(context, claims.UserID, limit, offset)
	if err != nil {
		return []*prompt.Prompt{}, 0, err
	}

	prompts, err := service.prompts.ListByIDs(context, promptIDs)
	if err != nil {
		return []*prompt.Prompt{}, 0, err
	}
	if prompts == nil {
		prompts = []*prompt.Prompt{}
	}

	return prompts, total, nil
}
