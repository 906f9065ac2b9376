// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements identity and session management for Promptdeck.

It defines the core domain entities (User, Session) and the logic for
registration, credential verification, and refresh-token rotation.

# Architecture

The entities defined here have no external dependencies beyond the [sec]
role type. Persistence is split by volatility: user accounts live in
PostgreSQL while refresh-token sessions live in Redis, where their TTL
matches the token lifetime exactly.
*/
package auth

import (
	"time"

	"github.com/taibuivan/promptdeck/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Promptdeck platform.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string       `json:"display_name"`
	AvatarURL    string       `json:"avatar_url,omitempty"`
	Role         sec.UserRole `json:"role"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session represents an active refresh-token session.
//
// Sessions are keyed by the SHA-256 hash of the opaque refresh token, so a
// storage leak never exposes a usable token.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldLogin       = "login"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
)
