package auth_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/gatekeep/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestInvalidCredentials verifies that bad logins are rejected with the
// documented messages.
func TestInvalidCredentials(t *testing.T) {
	baseURL, cleanup := setupAuthService(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	_, err := client.PasswordGrant(t.Context(), adminEmail, "wrong-password")
	assertRejected(t, err, http.StatusUnauthorized, "Wrong password.")

	_, err = client.PasswordGrant(t.Context(), "nobody@example.com", adminPassword)
	assertRejected(t, err, http.StatusUnauthorized, "Account not found.")

	_, err = client.PasswordGrant(t.Context(), "not-an-email", adminPassword)
	assertRejected(t, err, http.StatusBadRequest, "Request validation failed.")
}

// TestRefreshTokenBoundToAccount verifies a refresh token cannot be redeemed
// under another account id.
func TestRefreshTokenBoundToAccount(t *testing.T) {
	baseURL, cleanup := setupAuthService(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	alice := registerAndLogin(t, client, "alice@example.com")
	bob := registerAndLogin(t, client, "bob@example.com")

	_, err := client.RefreshGrant(t.Context(), bob.AccountID(), alice.RefreshToken())
	assertRejected(t, err, http.StatusUnauthorized, "Invalid token.")

	// The failed attempt did not burn alice's token
	_, err = client.RefreshGrant(t.Context(), alice.AccountID(), alice.RefreshToken())
	require.NoError(t, err)
}

// TestAccessTokenRequired verifies protected endpoints reject missing or
// forged bearer tokens.
func TestAccessTokenRequired(t *testing.T) {
	baseURL, cleanup := setupAuthService(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	session := registerAndLogin(t, client, "forged@example.com")

	// A refresh code is not an access token
	forged, err := client.AuthenticateWithPassword(t.Context(), "forged@example.com", userPassword)
	require.NoError(t, err)
	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, baseURL+"/v1/accounts/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+forged.RefreshToken())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// None at all
	resp, err = http.Get(baseURL + "/v1/accounts/me")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The genuine session still works
	me, err := session.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, "forged@example.com", me.Email)
}
