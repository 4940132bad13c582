package authsdk

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// refreshBuffer is how long before expiry a session refreshes its access token.
const refreshBuffer = 30 * time.Second

// Session represents an authenticated session with automatic token refresh.
// All Session methods automatically handle token expiration and refresh when needed.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accountID    string
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

// Revoke revokes the current refresh token, invalidating this session.
func (s *Session) Revoke(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshToken == "" {
		return ErrNoRefreshToken
	}

	if err := s.client.RevokeToken(ctx, s.accountID, s.refreshToken); err != nil {
		return err
	}
	s.refreshToken = ""
	return nil
}

// newSession creates a new authenticated session from a token response.
func newSession(client *SDKClient, tokenResp *TokenResponse) *Session {
	s := &Session{client: client}
	s.apply(tokenResp)
	return s
}

func (s *Session) apply(tokenResp *TokenResponse) {
	s.accountID = tokenResp.AccountID
	s.accessToken = tokenResp.AccessToken
	s.refreshToken = tokenResp.RefreshToken

	// Refresh slightly before actual expiry
	s.expiresAt = tokenResp.AccessTokenExpiry.Add(-refreshBuffer)
}

// getValidToken returns a valid access token, automatically refreshing if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	// Token expired, need to refresh
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock (another goroutine may have refreshed)
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	if s.refreshToken == "" {
		return "", ErrNoRefreshToken
	}

	tokenResp, err := s.client.RefreshGrant(ctx, s.accountID, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}
	s.apply(tokenResp)

	return s.accessToken, nil
}

// Refresh rotates the token pair now, regardless of expiry.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshToken == "" {
		return ErrNoRefreshToken
	}

	tokenResp, err := s.client.RefreshGrant(ctx, s.accountID, s.refreshToken)
	if err != nil {
		return err
	}
	s.apply(tokenResp)
	return nil
}

// AccountID returns the account the session belongs to.
func (s *Session) AccountID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accountID
}

// AccessToken returns the current access token without checking expiration.
// For most use cases, prefer using the Session methods which handle refresh automatically.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}
