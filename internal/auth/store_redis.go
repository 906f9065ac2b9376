// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/promptdeck/internal/platform/apperr"
	"github.com/taibuivan/promptdeck/internal/platform/constants"

	stdctx "context"
)

// # Redis Session Repository

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// # Why Redis for sessions?
//
// Sessions are pure expiring state: every entry carries its own deadline and
// is looked up by exactly one key (the token hash). Redis key TTLs make
// expiry automatic, so there is no sweeper job and no expiresat index to
// maintain. Revocation is a single DEL.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// sessionKey builds the namespaced Redis key for a token hash.
func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

/*
Create persists a new session keyed by its refresh-token hash.

Description: The key TTL is derived from the session's ExpiresAt, so Redis
evicts the entry at exactly the moment the refresh token stops being valid.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Encoding or storage failures
*/
func (repository *RedisSessionRepository) Create(context stdctx.Context, session *Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return apperr.ValidationError("Session expiry must be in the future")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis: failed to encode session: %w", err)
	}

	if err := repository.client.Set(context, sessionKey(session.TokenHash), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to store session: %w", err)
	}

	return nil
}

/*
FindByTokenHash returns the active session for the given token hash.

Description: A missing key means the session was revoked or has expired;
both surface as apperr.NotFound since the caller cannot distinguish them.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated entity
  - error: apperr.NotFound or connectivity failures
*/
func (repository *RedisSessionRepository) FindByTokenHash(context stdctx.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.Get(context, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("session")
		}
		return nil, fmt.Errorf("redis: failed to load session: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis: failed to decode session: %w", err)
	}
	session.TokenHash = tokenHash

	return session, nil
}

/*
Revoke permanently invalidates the session with the given token hash.

Description: Deleting a key that no longer exists is a no-op, which makes
revocation idempotent.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Revoke(context stdctx.Context, tokenHash string) error {
	if err := repository.client.Del(context, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("redis: failed to revoke session: %w", err)
	}
	return nil
}
