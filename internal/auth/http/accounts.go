package http

import (
	"net/http"

	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeep/internal/auth/service"
	"github.com/aussiebroadwan/gatekeep/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeep/pkg/httpx"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
)

// AccountsHandler serves the /v1/accounts endpoints.
type AccountsHandler struct {
	AccountService *service.AccountService

	// DefaultRole is given to self-registered accounts
	DefaultRole string
}

// HandleRegister godoc
//
//	@Summary		Register Account
//	@Description	Creates an account with the default role.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest			true	"email, password"
//	@Success		201		{object}	authsdk.AccountResponse
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"validation details"
//	@Failure		409		{object}	authsdk.MessageResponse			"Email already registered."
//	@Failure		500		{object}	authsdk.MessageResponse
//	@Router			/v1/accounts [post].
func (h *AccountsHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := httpx.Bind(w, r, &req); err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	role := h.DefaultRole
	if role == "" {
		role = domain.RoleUser
	}

	res, err := h.AccountService.Register(ctx, req.Email, []byte(req.Password), role)
	if err != nil {
		log.Error("register failed", "err", err)
		writeServerError(w)
		return
	}
	if !res.Success {
		httpx.WriteMessage(w, statusFor(res.Message), res.Message)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAccountResponse(res.Value))
}

// HandleMe godoc
//
//	@Summary		Current Account
//	@Description	Returns the account the bearer token was issued to.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.AccountResponse
//	@Failure		401	{object}	authsdk.MessageResponse	"Invalid or missing access token"
//	@Failure		404	{object}	authsdk.MessageResponse	"Cannot find user."
//	@Failure		500	{object}	authsdk.MessageResponse
//	@Router			/v1/accounts/me [get].
func (h *AccountsHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	res, err := h.AccountService.Principal(ctx, httpx.AccountIDFromContext(ctx))
	if err != nil {
		log.Error("load principal failed", "err", err)
		writeServerError(w)
		return
	}
	if !res.Success {
		httpx.WriteMessage(w, statusFor(res.Message), res.Message)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(res.Value))
}

// HandleChangePassword godoc
//
//	@Summary		Change Password
//	@Description	Replaces the caller's password after checking the current one.
//	@Description	Refresh tokens issued before the change stay valid until they expire or are used.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	authsdk.ChangePasswordRequest	true	"current_password, new_password"
//	@Success		204		"Password changed"
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"validation details"
//	@Failure		401		{object}	authsdk.MessageResponse			"Wrong password."
//	@Failure		404		{object}	authsdk.MessageResponse			"Cannot find user."
//	@Failure		500		{object}	authsdk.MessageResponse
//	@Router			/v1/accounts/me/password [post].
func (h *AccountsHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.ChangePasswordRequest
	if err := httpx.Bind(w, r, &req); err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	res, err := h.AccountService.ChangePassword(ctx,
		httpx.AccountIDFromContext(ctx),
		[]byte(req.CurrentPassword),
		[]byte(req.NewPassword),
	)
	if err != nil {
		log.Error("change password failed", "err", err)
		writeServerError(w)
		return
	}
	if !res.Success {
		httpx.WriteMessage(w, statusFor(res.Message), res.Message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleChangeRole godoc
//
//	@Summary		Change Role
//	@Description	Moves an account to another role. Requires the admin role.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Account ID"
//	@Param			request	body		authsdk.ChangeRoleRequest		true	"role"
//	@Success		200		{object}	authsdk.AccountResponse
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"validation details"
//	@Failure		401		{object}	authsdk.MessageResponse			"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.MessageResponse			"Caller is not an admin"
//	@Failure		404		{object}	authsdk.MessageResponse			"Cannot find user. / Role not found."
//	@Failure		409		{object}	authsdk.MessageResponse			"Cannot apply the same role for account."
//	@Failure		500		{object}	authsdk.MessageResponse
//	@Router			/v1/accounts/{id}/role [put].
func (h *AccountsHandler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.ChangeRoleRequest
	if err := httpx.Bind(w, r, &req); err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	res, err := h.AccountService.ChangeRole(ctx, r.PathValue("id"), req.Role)
	if err != nil {
		log.Error("change role failed", "err", err)
		writeServerError(w)
		return
	}
	if !res.Success {
		httpx.WriteMessage(w, statusFor(res.Message), res.Message)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(res.Value))
}

func toAccountResponse(p domain.Principal) authsdk.AccountResponse {
	return authsdk.AccountResponse{ID: p.ID, Email: p.Email, Role: p.Role}
}

// statusFor maps an account business failure to its response status.
func statusFor(message string) int {
	switch message {
	case service.MsgCannotFindUser, service.MsgRoleNotFound, service.MsgAccountNotFound:
		return http.StatusNotFound
	case service.MsgEmailRegistered, service.MsgSameRole:
		return http.StatusConflict
	case service.MsgWrongPassword:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}
