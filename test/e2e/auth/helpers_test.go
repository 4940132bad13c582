package auth_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/auth/app"
	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeep/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * Each test gets its own service instance on a fresh sqlite database, served
 * over a real HTTP listener and driven through the authsdk client.
 */

const (
	adminEmail    = "admin@example.com"
	adminPassword = "Admin123!"
	userPassword  = "User1234!"
)

// setupAuthService starts the auth service with a seeded admin account and
// returns its base URL.
func setupAuthService(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	cfg := app.Config{
		Issuer:               "gatekeep-e2e",
		Audience:             "gatekeep-api",
		SigningKey:           []byte(strings.Repeat("e", 48)),
		AccessTokenTTL:       5 * time.Minute,
		RefreshTokenTTL:      time.Hour,
		RefreshTokenLength:   64,
		HashIterations:       10000,
		PepperFile:           filepath.Join(dir, "pepper"),
		DatabaseDriver:       app.DriverSQLite,
		DatabaseFile:         filepath.Join(dir, "auth.db"),
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "json",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}

	// Seed the admin the same way authctl seed-admin does
	admin, err := app.OpenAdmin(ctx, cfg)
	require.NoError(t, err)
	res, err := admin.Accounts.Register(ctx, adminEmail, []byte(adminPassword), domain.RoleAdmin)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	require.NoError(t, admin.Close())

	application, err := app.New(cfg)
	require.NoError(t, err)

	server := httptest.NewServer(application.Handler())

	cleanup := func() {
		server.Close()
		if err := application.Close(); err != nil {
			t.Logf("failed to close application: %v", err)
		}
	}

	return server.URL, cleanup
}

// registerAndLogin creates a user account and opens a session for it.
func registerAndLogin(t *testing.T, client *authsdk.SDKClient, email string) *authsdk.Session {
	t.Helper()

	acc, err := client.Register(t.Context(), email, userPassword)
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, acc.Role)

	session, err := client.AuthenticateWithPassword(t.Context(), email, userPassword)
	require.NoError(t, err)
	require.Equal(t, acc.ID, session.AccountID())
	return session
}

// assertTokenResponse verifies a token response has all required fields.
func assertTokenResponse(t *testing.T, resp *authsdk.TokenResponse) {
	t.Helper()
	require.NotNil(t, resp)
	require.NotEmpty(t, resp.AccountID, "Account ID should not be empty")
	require.NotEmpty(t, resp.AccessToken, "Access token should not be empty")
	require.NotEmpty(t, resp.RefreshToken, "Refresh token should not be empty")
	require.Equal(t, "Bearer", resp.TokenType, "Token type should be Bearer")
	require.True(t, resp.AccessTokenExpiry.Before(resp.RefreshTokenExpiry),
		"Access token should expire before the refresh token")
}

// assertRejected checks that err is an API error with the given status and message.
func assertRejected(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)

	var apiErr *authsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected an API error, got: %v", err)
	require.Equal(t, status, apiErr.StatusCode)
	if message != "" {
		require.Equal(t, message, apiErr.Message)
	}
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
