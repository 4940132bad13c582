package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/gatekeep/internal/auth/service"
	"github.com/aussiebroadwan/gatekeep/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeep/pkg/httpx"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
)

// MsgUnsupportedGrant is returned for any grant_type other than "password".
const MsgUnsupportedGrant = "Unsupported grant type."

// TokenHandler serves POST /v1/auth/token.
type TokenHandler struct {
	TokenService  *service.TokenService
	SecureCookies bool
}

// ServeHTTP godoc
//
//	@Summary		Password Grant
//	@Description	Exchanges an email and password for an access token and a single-use refresh token.
//	@Description	The refresh token is also set as the HttpOnly X-Refresh-Token cookie, alongside X-User-Id and X-Can-Refresh.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.TokenRequest			true	"grant_type, email, password"
//	@Success		200		{object}	authsdk.TokenResponse			"token pair"
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"validation details"
//	@Failure		401		{object}	authsdk.MessageResponse			"Account not found. / Wrong password."
//	@Failure		500		{object}	authsdk.MessageResponse
//	@Header			200		{string}	Cache-Control	"no-store"
//	@Router			/v1/auth/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// 1. Bind and validate the body
	var req authsdk.TokenRequest
	if err := httpx.Bind(w, r, &req); err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	// 2. Only the password grant exists
	if !strings.EqualFold(req.GrantType, authsdk.GrantTypePassword) {
		httpx.WriteMessage(w, http.StatusUnauthorized, MsgUnsupportedGrant)
		return
	}

	// 3. Exchange the credentials
	res, err := h.TokenService.GetToken(ctx, service.NewCredentials(req.Email, req.Password))
	if err != nil {
		log.Error("password grant failed", "err", err)
		writeServerError(w)
		return
	}
	if !res.Success {
		httpx.WriteMessage(w, http.StatusUnauthorized, res.Message)
		return
	}

	writeTokens(w, res.Value, h.SecureCookies)
}

// RefreshHandler serves POST /v1/auth/refresh.
type RefreshHandler struct {
	TokenService  *service.TokenService
	SecureCookies bool
}

// ServeHTTP godoc
//
//	@Summary		Refresh Grant
//	@Description	Redeems a refresh token for a new token pair. The presented refresh token is burnt.
//	@Description	account_id and refresh_token fall back to the X-User-Id and X-Refresh-Token cookies.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshRequest			false	"account_id, refresh_token"
//	@Success		200		{object}	authsdk.TokenResponse			"rotated token pair"
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"validation details"
//	@Failure		401		{object}	authsdk.MessageResponse			"Invalid token. / Cannot find user."
//	@Failure		500		{object}	authsdk.MessageResponse
//	@Router			/v1/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	req, err := bindRefresh(w, r)
	if err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	res, err := h.TokenService.RefreshToken(ctx, req.AccountID, req.RefreshToken)
	if err != nil {
		log.Error("refresh grant failed", "err", err)
		writeServerError(w)
		return
	}
	if !res.Success {
		clearTokenCookies(w, h.SecureCookies)
		httpx.WriteMessage(w, http.StatusUnauthorized, res.Message)
		return
	}

	writeTokens(w, res.Value, h.SecureCookies)
}

// RevokeHandler serves POST /v1/auth/revoke. Access tokens are not revocable
// and simply expire.
type RevokeHandler struct {
	TokenService  *service.TokenService
	SecureCookies bool
}

// ServeHTTP godoc
//
//	@Summary		Revoke Refresh Token
//	@Description	Burns a refresh token without issuing a replacement and clears the token cookies.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	authsdk.RefreshRequest	false	"account_id, refresh_token"
//	@Success		204		"Token revoked"
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"validation details"
//	@Failure		401		{object}	authsdk.MessageResponse			"Invalid token."
//	@Failure		500		{object}	authsdk.MessageResponse
//	@Router			/v1/auth/revoke [post].
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	req, err := bindRefresh(w, r)
	if err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	res, err := h.TokenService.Revoke(ctx, req.AccountID, req.RefreshToken)
	if err != nil {
		log.Error("revoke failed", "err", err)
		writeServerError(w)
		return
	}

	clearTokenCookies(w, h.SecureCookies)
	if !res.Success {
		httpx.WriteMessage(w, http.StatusUnauthorized, res.Message)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
