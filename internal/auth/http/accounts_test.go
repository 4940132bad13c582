package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeep/internal/auth/service"
	"github.com/aussiebroadwan/gatekeep/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeep/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/v1/accounts", authsdk.RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var acc authsdk.AccountResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&acc))
	require.NotEmpty(t, acc.ID)
	require.Equal(t, "new@example.com", acc.Email)
	require.Equal(t, domain.RoleUser, acc.Role)

	// The new account can log in
	tok := ts.login(t, "new@example.com", "password123")
	require.Equal(t, acc.ID, tok.AccountID)

	t.Run("duplicate", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/v1/accounts", authsdk.RegisterRequest{
			Email:    "NEW@example.com",
			Password: "password123",
		})
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, service.MsgEmailRegistered, decodeMessage(t, rec))
	})

	t.Run("short password", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/v1/accounts", authsdk.RegisterRequest{
			Email:    "short@example.com",
			Password: "short",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body httpx.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, "must be at least 8 characters long", body.Details["password"])
	})
}

func TestMe(t *testing.T) {
	ts := newTestServer(t)
	p := ts.register(t, "me@example.com", "password123", domain.RoleUser)
	tok := ts.login(t, "me@example.com", "password123")

	rec := ts.do(t, http.MethodGet, "/v1/accounts/me", nil, bearer(tok.AccessToken))
	require.Equal(t, http.StatusOK, rec.Code)

	var acc authsdk.AccountResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&acc))
	require.Equal(t, authsdk.AccountResponse{ID: p.ID, Email: p.Email, Role: domain.RoleUser}, acc)

	t.Run("no token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/v1/accounts/me", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh code is not a bearer token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/v1/accounts/me", nil, bearer(tok.RefreshToken))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestChangePassword(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "pw@example.com", "password123", domain.RoleUser)
	tok := ts.login(t, "pw@example.com", "password123")

	t.Run("wrong current password", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/v1/accounts/me/password", authsdk.ChangePasswordRequest{
			CurrentPassword: "not-my-password",
			NewPassword:     "brand-new-pass",
		}, bearer(tok.AccessToken))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, service.MsgWrongPassword, decodeMessage(t, rec))
	})

	t.Run("same password", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/v1/accounts/me/password", authsdk.ChangePasswordRequest{
			CurrentPassword: "password123",
			NewPassword:     "password123",
		}, bearer(tok.AccessToken))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("changed", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/v1/accounts/me/password", authsdk.ChangePasswordRequest{
			CurrentPassword: "password123",
			NewPassword:     "brand-new-pass",
		}, bearer(tok.AccessToken))
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

		ts.login(t, "pw@example.com", "brand-new-pass")

		rec = ts.do(t, http.MethodPost, "/v1/auth/token", authsdk.TokenRequest{
			GrantType: "password",
			Email:     "pw@example.com",
			Password:  "password123",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestChangeRole(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "admin@example.com", "password123", domain.RoleAdmin)
	target := ts.register(t, "target@example.com", "password123", domain.RoleUser)

	admin := ts.login(t, "admin@example.com", "password123")
	user := ts.login(t, "target@example.com", "password123")

	path := "/v1/accounts/" + target.ID + "/role"

	t.Run("user forbidden", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, path, authsdk.ChangeRoleRequest{Role: domain.RoleAdmin}, bearer(user.AccessToken))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, path, authsdk.ChangeRoleRequest{Role: "superuser"}, bearer(admin.AccessToken))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, service.MsgRoleNotFound, decodeMessage(t, rec))
	})

	t.Run("same role", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, path, authsdk.ChangeRoleRequest{Role: domain.RoleUser}, bearer(admin.AccessToken))
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, service.MsgSameRole, decodeMessage(t, rec))
	})

	t.Run("unknown account", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, "/v1/accounts/01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV/role",
			authsdk.ChangeRoleRequest{Role: domain.RoleAdmin}, bearer(admin.AccessToken))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("promoted", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, path, authsdk.ChangeRoleRequest{Role: domain.RoleAdmin}, bearer(admin.AccessToken))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var acc authsdk.AccountResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&acc))
		require.Equal(t, domain.RoleAdmin, acc.Role)

		// Tokens minted after the change carry the new role
		refreshed := ts.do(t, http.MethodPost, "/v1/auth/refresh", authsdk.RefreshRequest{
			AccountID:    user.AccountID,
			RefreshToken: user.RefreshToken,
		})
		require.Equal(t, http.StatusOK, refreshed.Code)

		var tok authsdk.TokenResponse
		require.NoError(t, json.NewDecoder(refreshed.Body).Decode(&tok))
		claims, err := ts.verifier.Verify(tok.AccessToken)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, claims.Role)
	})
}
