package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Me returns the account the session belongs to.
func (s *Session) Me(ctx context.Context) (*AccountResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/accounts/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var account AccountResponse
	if err := decodeJSON(resp, &account, http.StatusOK); err != nil {
		return nil, err
	}

	return &account, nil
}

// ChangePassword replaces the session account's password.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	body, err := jsonBody(ChangePasswordRequest{CurrentPassword: current, NewPassword: next})
	if err != nil {
		return err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/accounts/me/password", body, jsonHeaders)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// ChangeRole moves another account to role. Requires the admin role.
func (s *Session) ChangeRole(ctx context.Context, accountID, role string) (*AccountResponse, error) {
	body, err := jsonBody(ChangeRoleRequest{Role: role})
	if err != nil {
		return nil, err
	}

	path := "/v1/accounts/" + url.PathEscape(accountID) + "/role"
	resp, err := s.doAuthRequest(ctx, http.MethodPut, path, body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var account AccountResponse
	if err := decodeJSON(resp, &account, http.StatusOK); err != nil {
		return nil, err
	}

	return &account, nil
}
