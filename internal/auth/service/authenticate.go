package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeep/internal/auth/store"
	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
	"github.com/samber/oops"
)

// Credentials is an email/password pair submitted for authentication. The
// password buffer is owned by whoever consumes the credentials and is wiped
// once they are done with it.
type Credentials struct {
	Email    string
	Password []byte
}

// NewCredentials copies password into a buffer the caller can let go of.
func NewCredentials(email, password string) *Credentials {
	return &Credentials{Email: email, Password: []byte(password)}
}

// Wipe zeroes the password buffer. Safe to call more than once.
func (c *Credentials) Wipe() {
	if c == nil {
		return
	}
	cryptox.Wipe(c.Password)
	c.Password = nil
}

// AuthStatus is the outcome of a credential check.
type AuthStatus int

const (
	AuthOK AuthStatus = iota
	AuthNotFound
	AuthInvalidCredentials
	AuthDeactivated // reserved
	AuthLocked      // reserved
)

func (s AuthStatus) String() string {
	switch s {
	case AuthOK:
		return "ok"
	case AuthNotFound:
		return "not_found"
	case AuthInvalidCredentials:
		return "invalid_credentials"
	case AuthDeactivated:
		return "deactivated"
	case AuthLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// AuthResult is a tagged outcome. Principal is set for AuthOK; Identifier
// carries the account email for AuthInvalidCredentials so it can be audited.
type AuthResult struct {
	Status     AuthStatus
	Principal  domain.Principal
	Identifier string
}

// Authenticator checks an email/password pair against stored accounts.
type Authenticator struct {
	Store   store.Store
	Hasher  *cryptox.Hasher
	Metrics *Metrics
}

// Authenticate looks up the account by email, verifies the password and
// resolves the principal. The credentials are wiped on every return path.
func (a *Authenticator) Authenticate(ctx context.Context, creds *Credentials) (AuthResult, error) {
	defer creds.Wipe()

	res, err := a.authenticate(ctx, creds)
	if err == nil {
		a.Metrics.recordAuthentication(res.Status)
	}
	return res, err
}

func (a *Authenticator) authenticate(ctx context.Context, creds *Credentials) (AuthResult, error) {
	l := slogx.FromContext(ctx)

	email := strings.TrimSpace(creds.Email)
	if email == "" {
		return AuthResult{Status: AuthNotFound}, nil
	}

	// 1. Lookup the account
	acc, err := a.Store.Accounts().FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("authentication failed: unknown account")
			return AuthResult{Status: AuthNotFound}, nil
		}
		return AuthResult{}, err
	}

	// 2. Verify the password
	ok, err := a.Hasher.Verify(acc.PasswordHash(), creds.Password)
	acc.PasswordHash().Flush()
	if err != nil {
		return AuthResult{}, oops.Code("AUTH_VERIFY_FAILED").With("account_id", acc.ID()).Wrap(err)
	}
	if !ok {
		l.Info("authentication failed: wrong password", slog.String("account_id", acc.ID()))
		return AuthResult{Status: AuthInvalidCredentials, Identifier: acc.Email()}, nil
	}

	// 3. Resolve the principal
	principal, err := a.Store.Principals().GetPrincipalByID(ctx, acc.ID())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Deleted between the two reads
			return AuthResult{Status: AuthNotFound}, nil
		}
		return AuthResult{}, err
	}

	return AuthResult{Status: AuthOK, Principal: principal}, nil
}
