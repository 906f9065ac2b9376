// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/promptdeck/internal/platform/apperr"
	"github.com/taibuivan/promptdeck/internal/platform/ctxutil"
	"github.com/taibuivan/promptdeck/internal/platform/sec"
	"github.com/taibuivan/promptdeck/internal/prompt"
	"github.com/taibuivan/promptdeck/internal/social"
)

// Seeded fixture prompt with 42 likes.
const fixturePromptID = "0194d2f0-0000-7000-8000-000000000001"

// faultyRepo wraps a real repository and injects failures per operation.
type faultyRepo struct {
	social.Repository
	addErr    error
	removeErr error
	countErr  error
}

func (f *faultyRepo) Add(ctx context.Context, promptID, userID string) error {
	if f.addErr != nil {
		return f.addErr
	}
	return f.Repository.Add(ctx, promptID, userID)
}

func (f *faultyRepo) Remove(ctx context.Context, promptID, userID string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	return f.Repository.Remove(ctx, promptID, userID)
}

func (f *faultyRepo) CountForPrompt(ctx context.Context, promptID string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.Repository.CountForPrompt(ctx, promptID)
}

// newFixtureService builds a service over the seeded fixture stores.
func newFixtureService(t *testing.T) (*social.Service, *faultyRepo, *prompt.MemoryRepository) {
	t.Helper()

	promptRepo := prompt.NewMemoryRepository()
	likeRepo := &faultyRepo{Repository: social.NewMemoryRepository(promptRepo)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return social.NewService(likeRepo, promptRepo, social.NewOverlay(), logger), likeRepo, promptRepo
}

// authedContext returns a context carrying claims for the given user.
func authedContext(userID string) context.Context {
	return ctxutil.WithAuthUser(context.Background(), &sec.AuthClaims{
		UserID:   userID,
		Username: "mai.tran",
		Role:     "member",
	})
}

/*
TestToggle_UnauthenticatedPrecondition verifies that an anonymous toggle is
rejected before any state changes: no relation mutation, no overlay entry.
*/
func TestToggle_UnauthenticatedPrecondition(t *testing.T) {
	service, _, _ := newFixtureService(t)
	known := social.LikeState{Count: 42, Liked: false}

	state, err := service.Toggle(context.Background(), fixturePromptID, known)

	// 1. Unauthorized error, known state echoed back
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthorized(err))
	assert.Equal(t, known, state)

	// 2. No overlay mutation happened
	assert.Zero(t, service.Overlay().Len())
}

/*
TestToggle_LikeReconcilesFromStore verifies the happy path: the edge is
created and the returned count comes from the authoritative read, not from
the client's known count plus one.
*/
func TestToggle_LikeReconcilesFromStore(t *testing.T) {
	service, _, _ := newFixtureService(t)
	ctx := authedContext("user-a")

	// The client's count is stale on purpose: the store holds 42.
	known := social.LikeState{Count: 30, Liked: false}

	state, err := service.Toggle(ctx, fixturePromptID, known)

	require.NoError(t, err)
	assert.True(t, state.Liked)
	// 42 from the store, +1 for the new edge. Never 30+1.
	assert.Equal(t, 43, state.Count)

	// The overlay holds the reconciled tuple for subsequent renders.
	assert.Equal(t, state, service.StateFor(fixturePromptID, social.LikeState{}))
}

/*
TestToggle_UnlikeReconcilesFromStore verifies the unlike direction against
the seeded count.
*/
func TestToggle_UnlikeReconcilesFromStore(t *testing.T) {
	service, _, _ := newFixtureService(t)
	ctx := authedContext("user-a")

	// Establish the edge first: 42 -> 43.
	_, err := service.Toggle(ctx, fixturePromptID, social.LikeState{Count: 42, Liked: false})
	require.NoError(t, err)

	state, err := service.Toggle(ctx, fixturePromptID, social.LikeState{Count: 43, Liked: true})

	require.NoError(t, err)
	assert.False(t, state.Liked)
	assert.Equal(t, 42, state.Count)
}

/*
TestToggle_AddConflictConverges verifies that a duplicate like converges to
success: the desired end state already holds server-side.
*/
func TestToggle_AddConflictConverges(t *testing.T) {
	service, repo, _ := newFixtureService(t)
	ctx := authedContext("user-a")

	// Simulate the race: another tab already created the edge.
	require.NoError(t, repo.Repository.Add(ctx, fixturePromptID, "user-a"))

	state, err := service.Toggle(ctx, fixturePromptID, social.LikeState{Count: 42, Liked: false})

	require.NoError(t, err)
	assert.True(t, state.Liked)
	// The edge existed before the toggle, so the count gained exactly one.
	assert.Equal(t, 43, state.Count)
}

/*
TestToggle_AddFailureRollsBack verifies that a failed mutation restores the
overlay to the exact known tuple and propagates the error.
*/
func TestToggle_AddFailureRollsBack(t *testing.T) {
	service, repo, _ := newFixtureService(t)
	ctx := authedContext("user-a")
	repo.addErr = errors.New("gateway down")

	known := social.LikeState{Count: 42, Liked: false}
	state, err := service.Toggle(ctx, fixturePromptID, known)

	// 1. Error propagated, known tuple echoed
	require.Error(t, err)
	assert.Equal(t, known, state)

	// 2. Overlay restored to the exact known tuple, not cleared
	assert.Equal(t, known, service.StateFor(fixturePromptID, social.LikeState{Count: 99}))
}

/*
TestToggle_RemoveFailureRollsBack verifies rollback on the unlike direction.
*/
func TestToggle_RemoveFailureRollsBack(t *testing.T) {
	service, repo, _ := newFixtureService(t)
	ctx := authedContext("user-a")

	_, err := service.Toggle(ctx, fixturePromptID, social.LikeState{Count: 42, Liked: false})
	require.NoError(t, err)

	repo.removeErr = errors.New("gateway down")
	known := social.LikeState{Count: 43, Liked: true}

	state, err := service.Toggle(ctx, fixturePromptID, known)

	require.Error(t, err)
	assert.Equal(t, known, state)
	assert.Equal(t, known, service.StateFor(fixturePromptID, social.LikeState{}))
}

/*
TestToggle_CountReadFailureRollsBack verifies that a failure on the
reconciliation read also rolls back, even though the mutation succeeded.
The next fetch will surface the mutation's effect.
*/
func TestToggle_CountReadFailureRollsBack(t *testing.T) {
	service, repo, _ := newFixtureService(t)
	ctx := authedContext("user-a")
	repo.countErr = errors.New("read timeout")

	known := social.LikeState{Count: 42, Liked: false}
	state, err := service.Toggle(ctx, fixturePromptID, known)

	require.Error(t, err)
	assert.Equal(t, known, state)
	assert.Equal(t, known, service.StateFor(fixturePromptID, social.LikeState{}))
}

/*
TestToggle_InvalidationDuringFlightDropsCompletion verifies the race between
a toggle and a feed refresh: the refresh clears the overlay, so the older
toggle's completion must not resurrect a stale tuple.
*/
func TestToggle_InvalidationDuringFlightDropsCompletion(t *testing.T) {
	service, _, _ := newFixtureService(t)
	overlay := service.Overlay()

	// Simulate the in-flight toggle at the overlay level: Begin happened,
	// then the feed invalidated before Complete.
	stamp := overlay.Begin(fixturePromptID, social.LikeState{Count: 43, Liked: true})
	overlay.InvalidateAll()

	applied := overlay.Complete(fixturePromptID, stamp, social.LikeState{Count: 43, Liked: true})

	assert.False(t, applied)
	// Display falls back to whatever the fresh fetch returned.
	fresh := social.LikeState{Count: 44, Liked: true}
	assert.Equal(t, fresh, service.StateFor(fixturePromptID, fresh))

	// A toggle begun after the refresh owns the key; the pre-refresh stamp
	// stays dead and cannot clobber it.
	overlay.Begin(fixturePromptID, social.LikeState{Count: 44, Liked: false})
	assert.False(t, overlay.Complete(fixturePromptID, stamp, social.LikeState{Count: 43, Liked: true}))
	assert.Equal(t, social.LikeState{Count: 44, Liked: false}, service.StateFor(fixturePromptID, fresh))
}

/*
TestCurrentState verifies the stored-tuple read: the trigger-maintained count
paired with the caller's engagement, anonymous callers reading liked=false.
*/
func TestCurrentState(t *testing.T) {
	service, repo, _ := newFixtureService(t)
	ctx := authedContext("user-a")

	// 1. Anonymous: seeded count, never liked
	state, err := service.CurrentState(context.Background(), fixturePromptID)
	require.NoError(t, err)
	assert.Equal(t, social.LikeState{Count: 42, Liked: false}, state)

	// 2. After the user likes, both halves of the tuple move
	_, err = service.Toggle(ctx, fixturePromptID, social.LikeState{Count: 42, Liked: false})
	require.NoError(t, err)

	state, err = service.CurrentState(ctx, fixturePromptID)
	require.NoError(t, err)
	assert.Equal(t, social.LikeState{Count: 43, Liked: true}, state)

	// 3. Storage failures propagate
	repo.countErr = errors.New("read timeout")
	_, err = service.CurrentState(ctx, fixturePromptID)
	require.Error(t, err)
}

/*
TestHasLiked_Anonymous verifies the probe contract for anonymous callers.
*/
func TestHasLiked_Anonymous(t *testing.T) {
	service, _, _ := newFixtureService(t)

	liked, err := service.HasLiked(context.Background(), fixturePromptID)

	require.NoError(t, err)
	assert.False(t, liked)
}

/*
TestFavorites_OrderAndHydration verifies that favorites page in like-recency
order and hydrate into full prompt records.
*/
func TestFavorites_OrderAndHydration(t *testing.T) {
	service, _, _ := newFixtureService(t)
	ctx := authedContext("user-a")

	first := "0194d2f0-0000-7000-8000-000000000001"
	second := "0194d2f0-0000-7000-8000-000000000002"

	_, err := service.Toggle(ctx, first, social.LikeState{Count: 42, Liked: false})
	require.NoError(t, err)
	_, err = service.Toggle(ctx, second, social.LikeState{Count: 17, Liked: false})
	require.NoError(t, err)

	favorites, total, err := service.Favorites(ctx, 10, 0)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, favorites, 2)

	// Newest like first.
	assert.Equal(t, second, favorites[0].ID)
	assert.Equal(t, first, favorites[1].ID)
	assert.Equal(t, "Worldbuilding Seed Generator", favorites[0].Title)
}

/*
TestFavorites_Anonymous verifies that an anonymous caller gets an empty
page, not an error.
*/
func TestFavorites_Anonymous(t *testing.T) {
	service, _, _ := newFixtureService(t)

	favorites, total, err := service.Favorites(context.Background(), 10, 0)

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, favorites)
	assert.Empty(t, favorites)
}
