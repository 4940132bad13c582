package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the gatekeep authentication service.
// It provides access to unauthenticated operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new auth service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AuthenticateWithPassword creates an authenticated session using the password grant.
func (c *SDKClient) AuthenticateWithPassword(ctx context.Context, email, password string) (*Session, error) {
	tokenResp, err := c.PasswordGrant(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return newSession(c, tokenResp), nil
}

// AuthenticateWithRefreshToken creates an authenticated session from an existing refresh token.
func (c *SDKClient) AuthenticateWithRefreshToken(ctx context.Context, accountID, refreshToken string) (*Session, error) {
	tokenResp, err := c.RefreshGrant(ctx, accountID, refreshToken)
	if err != nil {
		return nil, err
	}

	return newSession(c, tokenResp), nil
}
