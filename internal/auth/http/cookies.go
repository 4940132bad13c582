package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/auth/service"
	"github.com/aussiebroadwan/gatekeep/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeep/pkg/httpx"
)

// Cookies set alongside every token response so browser clients can refresh
// without handling the refresh token themselves.
const (
	CookieRefreshToken = "X-Refresh-Token"
	CookieUserID       = "X-User-Id"
	CookieCanRefresh   = "X-Can-Refresh"
)

// refreshCookiePath scopes the refresh token cookie to the token endpoints.
const refreshCookiePath = "/v1/auth"

func setTokenCookies(w http.ResponseWriter, tok *service.TokenResponse, secure bool) {
	expires := tok.RefreshTokenExpiry
	maxAge := int(time.Until(expires).Seconds())

	http.SetCookie(w, &http.Cookie{
		Name:     CookieRefreshToken,
		Value:    tok.RefreshToken,
		Path:     refreshCookiePath,
		Expires:  expires,
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     CookieUserID,
		Value:    tok.AccountID,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     CookieCanRefresh,
		Value:    "true",
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearTokenCookies(w http.ResponseWriter, secure bool) {
	for _, c := range []struct{ name, path string }{
		{CookieRefreshToken, refreshCookiePath},
		{CookieUserID, "/"},
		{CookieCanRefresh, "/"},
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     c.name,
			Value:    "",
			Path:     c.path,
			MaxAge:   -1,
			Secure:   secure,
			HttpOnly: c.name == CookieRefreshToken,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// bindRefresh reads the refresh inputs from the JSON body, falling back to
// the cookies for any field the body leaves empty. The body is optional.
func bindRefresh(w http.ResponseWriter, r *http.Request) (authsdk.RefreshRequest, error) {
	var req authsdk.RefreshRequest

	if r.Body != nil && r.ContentLength != 0 {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, httpx.MaxBodyBytes))
		if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return req, err
		}
	}

	if req.AccountID == "" {
		if c, err := r.Cookie(CookieUserID); err == nil {
			req.AccountID = c.Value
		}
	}
	if req.RefreshToken == "" {
		if c, err := r.Cookie(CookieRefreshToken); err == nil {
			req.RefreshToken = c.Value
		}
	}

	return req, httpx.Validate(&req)
}

func toTokenResponse(tok *service.TokenResponse) authsdk.TokenResponse {
	return authsdk.TokenResponse{
		AccountID:          tok.AccountID,
		TokenType:          tok.TokenType,
		AccessToken:        tok.AccessToken,
		AccessTokenExpiry:  tok.AccessTokenExpiry,
		RefreshToken:       tok.RefreshToken,
		RefreshTokenExpiry: tok.RefreshTokenExpiry,
	}
}

// writeTokens sends the token pair as JSON and as cookies.
func writeTokens(w http.ResponseWriter, tok *service.TokenResponse, secure bool) {
	setTokenCookies(w, tok, secure)
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(tok))
}

func writeServerError(w http.ResponseWriter) {
	httpx.WriteMessage(w, http.StatusInternalServerError, "Internal server error.")
}
