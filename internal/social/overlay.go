// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import "sync"

// # Interaction Overlay

// overlayEntry pairs an optimistic tuple with the stamp of the toggle that
// wrote it. Stamps order concurrent toggles on the same key: a completion
// carrying a stale stamp lost the race and is dropped.
type overlayEntry struct {
	state LikeState
	stamp uint64
}

// Overlay is the process-wide optimistic like cache.
//
// It is explicitly constructed with a defined lifetime (one per server) and
// passed by reference to whatever issues toggles and whatever renders state;
// there is no package-level singleton. All methods are safe for concurrent
// use; reads never perform I/O.
type Overlay struct {
	mu      sync.Mutex
	entries map[string]overlayEntry

	// clock issues stamps across all keys and never rewinds, so a stamp
	// handed out before an invalidation can never collide with one handed
	// out after it.
	clock uint64
}

// NewOverlay constructs an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{entries: make(map[string]overlayEntry)}
}

/*
State resolves the displayed like tuple for a prompt.

The overlay entry wins when present; otherwise the fallback (the prompt's
own fields as last fetched) is returned unchanged.

Parameters:
  - promptID: string
  - fallback: LikeState (Authoritative state from the last listing fetch)

Returns:
  - LikeState: The tuple the caller should display
*/
func (overlay *Overlay) State(promptID string, fallback LikeState) LikeState {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()

	if entry, found := overlay.entries[promptID]; found {
		return entry.state
	}
	return fallback
}

/*
Begin writes the optimistic tuple for an in-flight toggle and returns the
stamp the toggle must present to [Overlay.Complete].

A later Begin on the same key supersedes this one: the earlier toggle's
completion will be dropped.

Parameters:
  - promptID: string
  - optimistic: LikeState (The expected post-toggle tuple)

Returns:
  - uint64: Stamp identifying this toggle on this key
*/
func (overlay *Overlay) Begin(promptID string, optimistic LikeState) uint64 {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()

	overlay.clock++
	stamp := overlay.clock
	overlay.entries[promptID] = overlayEntry{state: optimistic, stamp: stamp}
	return stamp
}

/*
Complete applies a toggle's final tuple (reconciled count on success, the
exact previous tuple on rollback) if the toggle still owns the key.

Parameters:
  - promptID: string
  - stamp: uint64 (The value returned by the matching Begin)
  - final: LikeState

Returns:
  - bool: false when a newer toggle superseded this one and the write was dropped
*/
func (overlay *Overlay) Complete(promptID string, stamp uint64, final LikeState) bool {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()

	entry, found := overlay.entries[promptID]
	if !found || entry.stamp != stamp {
		return false
	}

	overlay.entries[promptID] = overlayEntry{state: final, stamp: stamp}
	return true
}

// InvalidateAll clears every overlay entry. Called after each successful
// listing fetch so freshly served counts become authoritative.
func (overlay *Overlay) InvalidateAll() {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()

	clear(overlay.entries)
}

// Len reports the number of live entries. Intended for tests and metrics.
func (overlay *Overlay) Len() int {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()

	return len(overlay.entries)
}
