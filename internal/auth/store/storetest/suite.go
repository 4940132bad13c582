// Package storetest holds a behavioural suite every store driver must pass.
package storetest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeep/internal/auth/store"
	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

// Seeded role ids from the initial migration.
const (
	AdminRoleID = "00000000000000000000000001"
	UserRoleID  = "00000000000000000000000002"
)

// Opener returns a freshly migrated, empty store.
type Opener func(t *testing.T) store.Store

// NewAccount builds an unsaved account with a real password hash.
func NewAccount(t *testing.T, email, password, roleID string) *domain.Account {
	t.Helper()

	h, err := cryptox.NewHasher([]byte("storetest-pepper"), cryptox.MinimumIterations)
	require.NoError(t, err)

	hash, err := h.Create([]byte(password))
	require.NoError(t, err)

	acc, err := domain.NewAccount(email, roleID, hash)
	require.NoError(t, err)
	return acc
}

var generator = cryptox.AlphabetGenerator{}

// Run executes the suite against stores produced by open.
func Run(t *testing.T, open Opener) {
	t.Run("roles are seeded", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		roles, err := s.Roles().ListRoles(ctx)
		require.NoError(t, err)
		require.Len(t, roles, 2)
		require.Equal(t, domain.RoleAdmin, roles[0].Name)
		require.Equal(t, domain.RoleUser, roles[1].Name)

		admin, err := s.Roles().GetRoleByName(ctx, domain.RoleAdmin)
		require.NoError(t, err)
		require.Equal(t, AdminRoleID, admin.ID)

		user, err := s.Roles().GetRoleByID(ctx, UserRoleID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleUser, user.Name)

		_, err = s.Roles().GetRoleByName(ctx, "ghost")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("save and find account", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		acc := NewAccount(t, "Alice@Example.com", "hunter2", UserRoleID)
		require.NoError(t, s.Accounts().SaveAccount(ctx, acc))
		require.Zero(t, acc.PendingEvents())

		byID, err := s.Accounts().FindAccountByID(ctx, acc.ID())
		require.NoError(t, err)
		require.Equal(t, "Alice@Example.com", byID.Email())
		require.Equal(t, UserRoleID, byID.RoleID())
		require.Equal(t, acc.PasswordHash().Salt(), byID.PasswordHash().Salt())
		require.Equal(t, acc.PasswordHash().Digest(), byID.PasswordHash().Digest())

		byEmail, err := s.Accounts().FindAccountByEmail(ctx, "  alice@EXAMPLE.com")
		require.NoError(t, err)
		require.Equal(t, acc.ID(), byEmail.ID())

		_, err = s.Accounts().FindAccountByEmail(ctx, "bob@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Accounts().FindAccountByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		require.NoError(t, s.Accounts().SaveAccount(ctx, NewAccount(t, "dup@example.com", "pw", UserRoleID)))

		err := s.Accounts().SaveAccount(ctx, NewAccount(t, "DUP@example.com", "pw", UserRoleID))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("account changes persist", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		acc := NewAccount(t, "carol@example.com", "old", UserRoleID)
		require.NoError(t, s.Accounts().SaveAccount(ctx, acc))

		loaded, err := s.Accounts().FindAccountByID(ctx, acc.ID())
		require.NoError(t, err)

		next := NewAccount(t, "x@example.com", "new", UserRoleID).PasswordHash()
		require.NoError(t, loaded.ChangePassword(next))
		require.NoError(t, loaded.ChangeRole(AdminRoleID))
		require.NoError(t, s.Accounts().SaveAccount(ctx, loaded))

		again, err := s.Accounts().FindAccountByID(ctx, acc.ID())
		require.NoError(t, err)
		require.Equal(t, AdminRoleID, again.RoleID())
		require.Equal(t, next.Digest(), again.PasswordHash().Digest())

		p, err := s.Principals().GetPrincipalByID(ctx, acc.ID())
		require.NoError(t, err)
		require.Equal(t, domain.Principal{ID: acc.ID(), Email: "carol@example.com", Role: domain.RoleAdmin}, p)

		_, err = s.Principals().GetPrincipalByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("refresh token round trip", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		acc := NewAccount(t, "dave@example.com", "pw", UserRoleID)
		require.NoError(t, s.Accounts().SaveAccount(ctx, acc))

		tok, err := domain.IssueRefreshToken(acc.ID(), time.Hour, generator, 64)
		require.NoError(t, err)
		require.NoError(t, s.RefreshTokens().SaveRefreshToken(ctx, tok))

		found, err := s.RefreshTokens().FindRefreshTokenByAccountAndCode(ctx, acc.ID(), tok.Code())
		require.NoError(t, err)
		require.Equal(t, tok.ID(), found.ID())
		require.Equal(t, acc.ID(), found.IssuedTo())
		require.False(t, found.Consumed())
		require.WithinDuration(t, tok.Expiry(), found.Expiry(), time.Millisecond)

		_, err = s.RefreshTokens().FindRefreshTokenByAccountAndCode(ctx, acc.ID(), strings.Repeat("z", 64))
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.RefreshTokens().FindRefreshTokenByAccountAndCode(ctx, "someone-else", tok.Code())
		require.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, found.Consume())
		require.NoError(t, s.RefreshTokens().SaveRefreshToken(ctx, found))

		burnt, err := s.RefreshTokens().FindRefreshTokenByAccountAndCode(ctx, acc.ID(), tok.Code())
		require.NoError(t, err)
		require.True(t, burnt.Consumed())
		require.ErrorIs(t, burnt.Consume(), domain.ErrAlreadyConsumed)
	})

	t.Run("conditional consume rejects the loser", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		acc := NewAccount(t, "erin@example.com", "pw", UserRoleID)
		require.NoError(t, s.Accounts().SaveAccount(ctx, acc))

		tok, err := domain.IssueRefreshToken(acc.ID(), time.Hour, generator, 32)
		require.NoError(t, err)
		require.NoError(t, s.RefreshTokens().SaveRefreshToken(ctx, tok))

		// Both readers observe the token before either writes
		first, err := s.RefreshTokens().FindRefreshTokenByAccountAndCode(ctx, acc.ID(), tok.Code())
		require.NoError(t, err)
		second, err := s.RefreshTokens().FindRefreshTokenByAccountAndCode(ctx, acc.ID(), tok.Code())
		require.NoError(t, err)

		require.NoError(t, first.Consume())
		require.NoError(t, second.Consume())

		require.NoError(t, s.RefreshTokens().SaveRefreshToken(ctx, first))
		require.ErrorIs(t, s.RefreshTokens().SaveRefreshToken(ctx, second), domain.ErrAlreadyConsumed)
	})

	t.Run("transaction rolls back", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		acc := NewAccount(t, "frank@example.com", "pw", UserRoleID)
		boom := errors.New("boom")

		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Accounts().SaveAccount(ctx, acc); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = s.Accounts().FindAccountByID(ctx, acc.ID())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("transaction commits", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		acc := NewAccount(t, "grace@example.com", "pw", UserRoleID)
		var tok *domain.RefreshToken

		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Accounts().SaveAccount(ctx, acc); err != nil {
				return err
			}
			var err error
			tok, err = domain.IssueRefreshToken(acc.ID(), time.Hour, generator, 32)
			if err != nil {
				return err
			}
			return tx.RefreshTokens().SaveRefreshToken(ctx, tok)
		})
		require.NoError(t, err)

		_, err = s.RefreshTokens().FindRefreshTokenByAccountAndCode(ctx, acc.ID(), tok.Code())
		require.NoError(t, err)
	})

	t.Run("delete expired and consumed tokens", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		acc := NewAccount(t, "heidi@example.com", "pw", UserRoleID)
		require.NoError(t, s.Accounts().SaveAccount(ctx, acc))

		live, err := domain.IssueRefreshToken(acc.ID(), time.Hour, generator, 32)
		require.NoError(t, err)
		require.NoError(t, s.RefreshTokens().SaveRefreshToken(ctx, live))

		short, err := domain.IssueRefreshToken(acc.ID(), time.Millisecond, generator, 32)
		require.NoError(t, err)
		require.NoError(t, s.RefreshTokens().SaveRefreshToken(ctx, short))

		used, err := domain.IssueRefreshToken(acc.ID(), time.Hour, generator, 32)
		require.NoError(t, err)
		require.NoError(t, used.Consume())
		require.NoError(t, s.RefreshTokens().SaveRefreshToken(ctx, used))

		n, err := s.RefreshTokens().DeleteExpiredRefreshTokens(ctx, time.Now().Add(time.Minute))
		require.NoError(t, err)
		require.EqualValues(t, 2, n)

		_, err = s.RefreshTokens().FindRefreshTokenByAccountAndCode(ctx, acc.ID(), live.Code())
		require.NoError(t, err)
		_, err = s.RefreshTokens().FindRefreshTokenByAccountAndCode(ctx, acc.ID(), short.Code())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("ping", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Ping(context.Background()))
	})
}
