// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/promptdeck/internal/social"
)

/*
TestOverlay_StateFallback verifies that reads without an entry return the
fallback tuple untouched.
*/
func TestOverlay_StateFallback(t *testing.T) {
	overlay := social.NewOverlay()
	fallback := social.LikeState{Count: 7, Liked: true}

	// 1. Empty overlay resolves to the fallback
	assert.Equal(t, fallback, overlay.State("prompt-1", fallback))

	// 2. An entry on another key does not leak across
	overlay.Begin("prompt-2", social.LikeState{Count: 1, Liked: true})
	assert.Equal(t, fallback, overlay.State("prompt-1", fallback))
}

/*
TestOverlay_BeginOverridesFallback verifies that an in-flight optimistic
entry wins over the fallback.
*/
func TestOverlay_BeginOverridesFallback(t *testing.T) {
	overlay := social.NewOverlay()
	optimistic := social.LikeState{Count: 8, Liked: true}

	overlay.Begin("prompt-1", optimistic)

	assert.Equal(t, optimistic, overlay.State("prompt-1", social.LikeState{Count: 7}))
}

/*
TestOverlay_CompleteAppliesFinal verifies the normal Begin/Complete cycle.
*/
func TestOverlay_CompleteAppliesFinal(t *testing.T) {
	overlay := social.NewOverlay()

	stamp := overlay.Begin("prompt-1", social.LikeState{Count: 8, Liked: true})
	final := social.LikeState{Count: 12, Liked: true}

	// 1. Completion with the matching stamp applies
	assert.True(t, overlay.Complete("prompt-1", stamp, final))
	assert.Equal(t, final, overlay.State("prompt-1", social.LikeState{}))
}

/*
TestOverlay_SupersededCompleteDropped verifies that a completion loses when
a newer toggle began on the same key.
*/
func TestOverlay_SupersededCompleteDropped(t *testing.T) {
	overlay := social.NewOverlay()

	first := overlay.Begin("prompt-1", social.LikeState{Count: 8, Liked: true})
	second := overlay.Begin("prompt-1", social.LikeState{Count: 7, Liked: false})

	// 1. The first toggle's completion is dropped
	assert.False(t, overlay.Complete("prompt-1", first, social.LikeState{Count: 99, Liked: true}))
	assert.Equal(t, social.LikeState{Count: 7, Liked: false}, overlay.State("prompt-1", social.LikeState{}))

	// 2. The second toggle's completion still applies
	assert.True(t, overlay.Complete("prompt-1", second, social.LikeState{Count: 7, Liked: false}))
}

/*
TestOverlay_InvalidateAllDropsInFlight verifies that a feed refresh clears
every entry, including entries owned by toggles still in flight. The fresh
fetch is newer information, so the stale completion must be dropped.
*/
func TestOverlay_InvalidateAllDropsInFlight(t *testing.T) {
	overlay := social.NewOverlay()

	stamp := overlay.Begin("prompt-1", social.LikeState{Count: 8, Liked: true})
	overlay.Begin("prompt-2", social.LikeState{Count: 3, Liked: false})

	overlay.InvalidateAll()

	// 1. All entries gone
	assert.Zero(t, overlay.Len())
	assert.Equal(t, social.LikeState{Count: 5}, overlay.State("prompt-1", social.LikeState{Count: 5}))

	// 2. The in-flight completion finds no entry and is dropped
	assert.False(t, overlay.Complete("prompt-1", stamp, social.LikeState{Count: 9, Liked: true}))
	assert.Zero(t, overlay.Len())
}

/*
TestOverlay_StaleStampAfterInvalidation verifies that a toggle begun before
a feed refresh can never complete against a toggle begun after it on the
same key. Stamps come from a process-wide clock that an invalidation does
not rewind, so the stale stamp cannot be reissued to the newer toggle.
*/
func TestOverlay_StaleStampAfterInvalidation(t *testing.T) {
	overlay := social.NewOverlay()

	// 1. A toggle begins, then a feed refresh wipes the overlay
	before := overlay.Begin("prompt-1", social.LikeState{Count: 6, Liked: true})
	overlay.InvalidateAll()

	// 2. A second toggle begins on the same key after the refresh
	after := overlay.Begin("prompt-1", social.LikeState{Count: 9, Liked: false})
	assert.NotEqual(t, before, after)

	// 3. The pre-refresh completion is dropped, not applied
	assert.False(t, overlay.Complete("prompt-1", before, social.LikeState{Count: 6, Liked: true}))
	assert.Equal(t, social.LikeState{Count: 9, Liked: false}, overlay.State("prompt-1", social.LikeState{}))

	// 4. The post-refresh toggle still owns the key
	assert.True(t, overlay.Complete("prompt-1", after, social.LikeState{Count: 10, Liked: false}))
}
