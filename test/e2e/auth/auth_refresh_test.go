package auth_test

import (
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aussiebroadwan/gatekeep/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRefresh tests the complete flow:
// 1. Register an account
// 2. Login with password grant
// 3. Refresh the token
// 4. Verify token rotation and that the old refresh token is burnt
func TestLoginRefresh(t *testing.T) {
	baseURL, cleanup := setupAuthService(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	_, err := client.Register(t.Context(), "rotate@example.com", userPassword)
	require.NoError(t, err)

	first, err := client.PasswordGrant(t.Context(), "rotate@example.com", userPassword)
	require.NoError(t, err)
	assertTokenResponse(t, first)

	second, err := client.RefreshGrant(t.Context(), first.AccountID, first.RefreshToken)
	require.NoError(t, err)
	assertTokenResponse(t, second)

	require.Equal(t, first.AccountID, second.AccountID)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken, "Refresh token should be rotated")

	// Replaying the consumed refresh token fails
	_, err = client.RefreshGrant(t.Context(), first.AccountID, first.RefreshToken)
	assertRejected(t, err, http.StatusUnauthorized, "Invalid token.")

	// The replacement still works
	third, err := client.RefreshGrant(t.Context(), second.AccountID, second.RefreshToken)
	require.NoError(t, err)
	assertTokenResponse(t, third)
}

// TestSessionRefreshAndRevoke drives the SDK session through rotation and revocation.
func TestSessionRefreshAndRevoke(t *testing.T) {
	baseURL, cleanup := setupAuthService(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	session := registerAndLogin(t, client, "session@example.com")

	oldRefresh := session.RefreshToken()
	require.NoError(t, session.Refresh(t.Context()))
	require.NotEqual(t, oldRefresh, session.RefreshToken())

	current := session.RefreshToken()
	require.NoError(t, session.Revoke(t.Context()))
	require.ErrorIs(t, session.Refresh(t.Context()), authsdk.ErrNoRefreshToken)

	_, err := client.RefreshGrant(t.Context(), session.AccountID(), current)
	assertRejected(t, err, http.StatusUnauthorized, "Invalid token.")
}

// TestConcurrentRefresh verifies a refresh token can be redeemed exactly once
// even when several clients race with it.
func TestConcurrentRefresh(t *testing.T) {
	baseURL, cleanup := setupAuthService(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	session := registerAndLogin(t, client, "race@example.com")

	accountID, refresh := session.AccountID(), session.RefreshToken()

	const racers = 6
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		rejected  atomic.Int32
	)
	for range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.RefreshGrant(t.Context(), accountID, refresh)
			switch {
			case err == nil:
				successes.Add(1)
			case authsdk.IsUnauthorized(err):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), successes.Load())
	require.Equal(t, int32(racers-1), rejected.Load())
}
