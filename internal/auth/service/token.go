package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeep/internal/auth/store"
	"github.com/aussiebroadwan/gatekeep/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
	"github.com/samber/oops"
)

// Defaults applied when the matching TokenService field is left zero.
const (
	DefaultRefreshTTL    = 7 * 24 * time.Hour
	DefaultRefreshLength = 64
)

// TokenResponse is returned by every successful token operation.
type TokenResponse struct {
	AccountID          string    `json:"account_id"`
	TokenType          string    `json:"token_type"`
	AccessToken        string    `json:"access_token"`
	AccessTokenExpiry  time.Time `json:"access_token_expiry"`
	RefreshToken       string    `json:"refresh_token"`
	RefreshTokenExpiry time.Time `json:"refresh_token_expiry"`
}

// TokenService issues, rotates and revokes tokens. Business failures come
// back as a failed Result; storage, signing and cancellation failures come
// back as errors.
type TokenService struct {
	Store         store.Store
	Authenticator *Authenticator
	Generator     domain.CodeGenerator
	Signer        jwtx.Signer
	Metrics       *Metrics

	Issuer        string
	Audience      []string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	RefreshLength int
}

// GetToken exchanges an email/password pair for an access token and a fresh
// refresh token. Nothing is persisted unless authentication succeeds.
func (s *TokenService) GetToken(ctx context.Context, creds *Credentials) (res Result[*TokenResponse], err error) {
	started := time.Now()
	defer func() { s.Metrics.recordToken("get_token", outcomeOf(res, err), started) }()

	l := slogx.FromContext(ctx)

	// 1. Authenticate the credentials
	auth, err := s.Authenticator.Authenticate(ctx, creds)
	if err != nil {
		return Result[*TokenResponse]{}, err
	}

	switch auth.Status {
	case AuthOK:
	case AuthNotFound:
		return Fail[*TokenResponse](MsgAccountNotFound), nil
	case AuthInvalidCredentials:
		l.Info("token request rejected", slog.String("identifier", auth.Identifier))
		return Fail[*TokenResponse](MsgWrongPassword), nil
	default:
		return Fail[*TokenResponse](MsgAccountDisabled), nil
	}

	// 2. Issue and persist a refresh token
	refresh, err := s.issue(auth.Principal.ID)
	if err != nil {
		return Result[*TokenResponse]{}, err
	}
	if err := s.Store.RefreshTokens().SaveRefreshToken(ctx, refresh); err != nil {
		return Result[*TokenResponse]{}, err
	}

	// 3. Sign the access token
	resp, err := s.respond(auth.Principal, refresh)
	if err != nil {
		return Result[*TokenResponse]{}, err
	}

	l.Info("token issued", slog.String("account_id", auth.Principal.ID))
	return Ok(resp), nil
}

// RefreshToken redeems a refresh code for a new token pair. The presented
// code is burnt and its replacement written in the same transaction, so a
// code can be redeemed once no matter how many callers race for it.
func (s *TokenService) RefreshToken(ctx context.Context, accountID, code string) (res Result[*TokenResponse], err error) {
	started := time.Now()
	defer func() { s.Metrics.recordToken("refresh_token", outcomeOf(res, err), started) }()

	l := slogx.FromContext(ctx)

	var (
		principal domain.Principal
		next      *domain.RefreshToken
	)

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Lookup the account
		p, err := tx.Principals().GetPrincipalByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return reject(MsgCannotFindUser)
			}
			return err
		}
		principal = p

		// 2. Lookup and consume the presented token
		if err := consume(ctx, tx, accountID, code); err != nil {
			return err
		}

		// 3. Issue the replacement
		next, err = s.issue(principal.ID)
		if err != nil {
			return err
		}
		return tx.RefreshTokens().SaveRefreshToken(ctx, next)
	})
	if err != nil {
		var r rejection
		if errors.As(err, &r) {
			l.Info("refresh rejected", slog.String("account_id", accountID), slog.String("reason", r.message))
			return Fail[*TokenResponse](r.message), nil
		}
		return Result[*TokenResponse]{}, err
	}

	// 4. Sign the access token
	resp, err := s.respond(principal, next)
	if err != nil {
		return Result[*TokenResponse]{}, err
	}

	l.Info("token refreshed", slog.String("account_id", accountID))
	return Ok(resp), nil
}

// Revoke burns a refresh code without issuing a replacement.
func (s *TokenService) Revoke(ctx context.Context, accountID, code string) (res Result[struct{}], err error) {
	started := time.Now()
	defer func() { s.Metrics.recordToken("revoke", outcomeOf(res, err), started) }()

	l := slogx.FromContext(ctx)

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return consume(ctx, tx, accountID, code)
	})
	if err != nil {
		var r rejection
		if errors.As(err, &r) {
			l.Info("revoke rejected", slog.String("account_id", accountID))
			return Fail[struct{}](r.message), nil
		}
		return Result[struct{}]{}, err
	}

	l.Info("token revoked", slog.String("account_id", accountID))
	return OkWithMessage(struct{}{}, MsgTokenRevoked), nil
}

// consume finds the token for (accountID, code), burns it and persists the
// burn. Every business failure collapses to MsgInvalidToken.
func consume(ctx context.Context, tx store.Tx, accountID, code string) error {
	if code == "" {
		return reject(MsgInvalidToken)
	}

	tok, err := tx.RefreshTokens().FindRefreshTokenByAccountAndCode(ctx, accountID, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return reject(MsgInvalidToken)
		}
		return err
	}

	if err := tok.Consume(); err != nil {
		// ErrAlreadyConsumed or ErrExpired
		return reject(MsgInvalidToken)
	}

	if err := tx.RefreshTokens().SaveRefreshToken(ctx, tok); err != nil {
		if errors.Is(err, domain.ErrAlreadyConsumed) {
			return reject(MsgInvalidToken)
		}
		return err
	}
	return nil
}

func (s *TokenService) issue(accountID string) (*domain.RefreshToken, error) {
	ttl := s.RefreshTTL
	if ttl == 0 {
		ttl = DefaultRefreshTTL
	}
	length := s.RefreshLength
	if length == 0 {
		length = DefaultRefreshLength
	}

	tok, err := domain.IssueRefreshToken(accountID, ttl, s.Generator, length)
	if err != nil {
		return nil, oops.Code("TOKEN_ISSUE_FAILED").With("account_id", accountID).Wrap(err)
	}
	return tok, nil
}

func (s *TokenService) respond(p domain.Principal, refresh *domain.RefreshToken) (*TokenResponse, error) {
	ttl := s.AccessTTL
	if ttl == 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(p.ID, p.Email, p.Role, ttl, s.Issuer, s.Audience, time.Now().UTC())

	access, err := s.Signer.Sign(claims)
	if err != nil {
		return nil, oops.Code("TOKEN_SIGN_FAILED").With("account_id", p.ID).Wrap(err)
	}

	return &TokenResponse{
		AccountID:          p.ID,
		TokenType:          "Bearer",
		AccessToken:        access,
		AccessTokenExpiry:  claims.Expiry(),
		RefreshToken:       refresh.Code(),
		RefreshTokenExpiry: refresh.Expiry(),
	}, nil
}
