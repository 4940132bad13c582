package authsdk

import (
	"context"
	"net/http"
)

// PasswordGrant exchanges an email and password for a token pair.
func (c *SDKClient) PasswordGrant(ctx context.Context, email, password string) (*TokenResponse, error) {
	return c.requestToken(ctx, "/v1/auth/token", TokenRequest{
		GrantType: GrantTypePassword,
		Email:     email,
		Password:  password,
	})
}

// RefreshGrant redeems a refresh token for a new token pair. The presented
// refresh token is burnt by the server.
func (c *SDKClient) RefreshGrant(ctx context.Context, accountID, refreshToken string) (*TokenResponse, error) {
	return c.requestToken(ctx, "/v1/auth/refresh", RefreshRequest{
		AccountID:    accountID,
		RefreshToken: refreshToken,
	})
}

// RevokeToken burns a refresh token without issuing a replacement.
func (c *SDKClient) RevokeToken(ctx context.Context, accountID, refreshToken string) error {
	body, err := jsonBody(RefreshRequest{AccountID: accountID, RefreshToken: refreshToken})
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/revoke", body, jsonHeaders)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// Register creates an account with the default role.
func (c *SDKClient) Register(ctx context.Context, email, password string) (*AccountResponse, error) {
	body, err := jsonBody(RegisterRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/accounts", body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var account AccountResponse
	if err := decodeJSON(resp, &account, http.StatusCreated); err != nil {
		return nil, err
	}

	return &account, nil
}

func (c *SDKClient) requestToken(ctx context.Context, path string, payload any) (*TokenResponse, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &tokenResp, nil
}
