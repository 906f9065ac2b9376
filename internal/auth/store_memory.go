// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/promptdeck/internal/platform/apperr"
	"github.com/taibuivan/promptdeck/internal/platform/sec"
)

// # In-Memory Stores (Fixture Mode)

// DevPassword is the shared password for every seeded fixture account.
const DevPassword = "promptdeck-dev"

// MemoryUserRepository is an in-memory [UserRepository] for fixture mode.
//
// It is seeded with the accounts referenced by the fixture prompt catalogue,
// so the feed's author names resolve to real, loginable users.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []*User
}

// NewMemoryUserRepository builds a user store seeded with fixture accounts.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: seedUsers()}
}

// NewEmptyMemoryUserRepository builds a user store with no seeded accounts.
func NewEmptyMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{}
}

// FindByID returns the account with the given ID.
func (repository *MemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	return repository.find(func(user *User) bool { return user.ID == id })
}

// FindByEmail returns the account with the given email, case-insensitively.
func (repository *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	return repository.find(func(user *User) bool { return strings.EqualFold(user.Email, email) })
}

// FindByUsername returns the account with the given username.
func (repository *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	return repository.find(func(user *User) bool { return user.Username == username })
}

// Create appends a new account, enforcing the same uniqueness the live
// schema enforces through constraints.
func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, existing := range repository.users {
		if existing.Username == user.Username || strings.EqualFold(existing.Email, user.Email) {
			return apperr.Conflict("Username or email is already registered")
		}
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	clone := *user
	repository.users = append(repository.users, &clone)
	return nil
}

// TouchLastLogin records a successful authentication timestamp.
func (repository *MemoryUserRepository) TouchLastLogin(_ context.Context, userID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, user := range repository.users {
		if user.ID == userID {
			now := time.Now()
			user.LastLoginAt = &now
			return nil
		}
	}
	return nil
}

// find returns a copy of the first matching user under a read lock.
func (repository *MemoryUserRepository) find(match func(*User) bool) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, user := range repository.users {
		if match(user) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("user")
}

// seedUsers returns the deterministic development accounts. All of them
// authenticate with [DevPassword].
func seedUsers() []*User {
	base := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)

	// Hashing at seed time keeps the plain password out of the binary's
	// data section while reusing the exact verification path of live mode.
	hash, err := sec.HashPassword(DevPassword)
	if err != nil {
		hash = ""
	}

	return []*User{
		{
			ID:           "0194d2e0-0000-7000-8000-00000000000a",
			Username:     "mai.tran",
			Email:        "mai.tran@promptdeck.app",
			PasswordHash: hash,
			DisplayName:  "Mai Tran",
			Role:         sec.RoleAdmin,
			CreatedAt:    base,
			UpdatedAt:    base,
		},
		{
			ID:           "0194d2e0-0000-7000-8000-00000000000b",
			Username:     "duc.nguyen",
			Email:        "duc.nguyen@promptdeck.app",
			PasswordHash: hash,
			DisplayName:  "Duc Nguyen",
			Role:         sec.RoleMember,
			CreatedAt:    base.Add(2 * time.Hour),
			UpdatedAt:    base.Add(2 * time.Hour),
		},
	}
}

// # In-Memory Sessions

// MemorySessionRepository is an in-memory [SessionRepository] for fixture mode.
//
// Expiry is checked lazily on lookup instead of with a sweeper, which is
// enough for a development process that restarts often.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemorySessionRepository builds an empty in-memory session store.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]*Session)}
}

// Create stores a session keyed by its token hash.
func (repository *MemorySessionRepository) Create(_ context.Context, session *Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()

	clone := *session
	repository.sessions[session.TokenHash] = &clone
	return nil
}

// FindByTokenHash returns the active session for the given token hash.
func (repository *MemorySessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*Session, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	session, found := repository.sessions[tokenHash]
	if !found {
		return nil, apperr.NotFound("session")
	}

	if time.Now().After(session.ExpiresAt) {
		delete(repository.sessions, tokenHash)
		return nil, apperr.NotFound("session")
	}

	clone := *session
	return &clone, nil
}

// Revoke removes the session with the given token hash. Idempotent.
func (repository *MemorySessionRepository) Revoke(_ context.Context, tokenHash string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	delete(repository.sessions, tokenHash)
	return nil
}
