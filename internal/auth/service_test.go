// Copyright (c) 2026 Promptdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/promptdeck/internal/auth"
	"github.com/taibuivan/promptdeck/internal/platform/apperr"
	"github.com/taibuivan/promptdeck/internal/platform/constants"
	"github.com/taibuivan/promptdeck/internal/platform/sec"
)

func newFixtureAuthService(t *testing.T) *auth.Service {
	t.Helper()

	tokens, err := sec.NewEphemeralTokenService(constants.AuthIssuer)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(
		auth.NewMemoryUserRepository(),
		auth.NewMemorySessionRepository(),
		tokens,
		logger,
	)
}

/*
TestRegister_Conflicts verifies the uniqueness checks against the seeded
fixture accounts.
*/
func TestRegister_Conflicts(t *testing.T) {
	service := newFixtureAuthService(t)

	tests := []struct {
		name  string
		input auth.RegisterInput
	}{
		{
			name: "duplicate email",
			input: auth.RegisterInput{
				Username: "someone.new",
				Email:    "mai.tran@promptdeck.app",
				Password: "longenoughpass",
			},
		},
		{
			name: "duplicate username",
			input: auth.RegisterInput{
				Username: "mai.tran",
				Email:    "someone.new@promptdeck.app",
				Password: "longenoughpass",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			user, err := service.Register(context.Background(), test.input)

			assert.Nil(t, user)
			assert.True(t, apperr.IsConflict(err))
		})
	}
}

/*
TestRegister_NewAccount verifies enrollment defaults: member role, hashed
password, display name fallback.
*/
func TestRegister_NewAccount(t *testing.T) {
	service := newFixtureAuthService(t)

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "linh.pham",
		Email:    "linh.pham@promptdeck.app",
		Password: "longenoughpass",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleMember, user.Role)
	assert.Equal(t, "linh.pham", user.DisplayName)
	assert.NotEqual(t, "longenoughpass", user.PasswordHash)

	// The new account can authenticate immediately.
	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "linh.pham",
		Password: "longenoughpass",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.User.ID)
}

/*
TestLogin_Flexible verifies the email-or-username lookup and the generic
rejection message for bad credentials.
*/
func TestLogin_Flexible(t *testing.T) {
	service := newFixtureAuthService(t)

	// 1. By username
	session, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "mai.tran",
		Password: auth.DevPassword,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	// 2. By email
	_, err = service.Login(context.Background(), auth.LoginInput{
		Login:    "mai.tran@promptdeck.app",
		Password: auth.DevPassword,
	})
	assert.NoError(t, err)

	// 3. Wrong password and unknown identity both yield the same rejection
	_, badPassErr := service.Login(context.Background(), auth.LoginInput{
		Login:    "mai.tran",
		Password: "wrong-password",
	})
	_, unknownErr := service.Login(context.Background(), auth.LoginInput{
		Login:    "nobody",
		Password: auth.DevPassword,
	})
	require.Error(t, badPassErr)
	require.Error(t, unknownErr)
	assert.Equal(t, badPassErr.Error(), unknownErr.Error())
}

/*
TestRefreshSession_Rotation verifies that a refresh rotates the token pair
and that the old refresh token dies with the rotation.
*/
func TestRefreshSession_Rotation(t *testing.T) {
	service := newFixtureAuthService(t)
	ctx := context.Background()

	session, err := service.Login(ctx, auth.LoginInput{
		Login:    "duc.nguyen",
		Password: auth.DevPassword,
	})
	require.NoError(t, err)

	// 1. Rotation succeeds and issues a different refresh token
	rotated, err := service.RefreshSession(ctx, session.RefreshToken, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// 2. The consumed token is dead: replaying it is unauthorized
	_, err = service.RefreshSession(ctx, session.RefreshToken, "test-agent", "127.0.0.1")
	assert.True(t, apperr.IsUnauthorized(err))

	// 3. The rotated token still works
	_, err = service.RefreshSession(ctx, rotated.RefreshToken, "test-agent", "127.0.0.1")
	assert.NoError(t, err)
}

/*
TestLogout_Idempotent verifies that revoking an unknown or already revoked
token still reports success.
*/
func TestLogout_Idempotent(t *testing.T) {
	service := newFixtureAuthService(t)
	ctx := context.Background()

	session, err := service.Login(ctx, auth.LoginInput{
		Login:    "duc.nguyen",
		Password: auth.DevPassword,
	})
	require.NoError(t, err)

	// 1. First logout revokes the session
	require.NoError(t, service.Logout(ctx, session.RefreshToken))

	// 2. The token can no longer refresh
	_, err = service.RefreshSession(ctx, session.RefreshToken, "test-agent", "127.0.0.1")
	assert.True(t, apperr.IsUnauthorized(err))

	// 3. Repeated and bogus logouts still succeed
	assert.NoError(t, service.Logout(ctx, session.RefreshToken))
	assert.NoError(t, service.Logout(ctx, "never-issued-token"))
}

/*
TestCurrentUser verifies profile resolution from verified claims.
*/
func TestCurrentUser(t *testing.T) {
	service := newFixtureAuthService(t)

	user, err := service.CurrentUser(context.Background(), "0194d2e0-0000-7000-8000-00000000000a")
	require.NoError(t, err)
	assert.Equal(t, "mai.tran", user.Username)

	_, err = service.CurrentUser(context.Background(), "missing-id")
	assert.Error(t, err)
}
