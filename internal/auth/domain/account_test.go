package domain_test

import (
	"testing"

	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newHash(t *testing.T, password string) *cryptox.PasswordHash {
	t.Helper()
	h, err := cryptox.NewHasher([]byte("pepper"), cryptox.MinimumIterations)
	require.NoError(t, err)

	hash, err := h.Create([]byte(password))
	require.NoError(t, err)
	return hash
}

func TestNewAccount(t *testing.T) {
	hash := newHash(t, "hunter2")

	acc, err := domain.NewAccount("  alice@example.com ", "role-user", hash)
	require.NoError(t, err)
	require.NotEmpty(t, acc.ID())
	require.Equal(t, "alice@example.com", acc.Email())
	require.Equal(t, "role-user", acc.RoleID())
	require.Same(t, hash, acc.PasswordHash())

	ev, ok := acc.DequeueEvent().(domain.AccountCreated)
	require.True(t, ok)
	require.Equal(t, acc.ID(), ev.AccountID)
	require.Equal(t, "alice@example.com", ev.Email)
	require.Equal(t, "role-user", ev.RoleID)
	require.Equal(t, hash.Salt(), ev.Salt)
	require.Equal(t, hash.Digest(), ev.Hash)
	require.Nil(t, acc.DequeueEvent())
}

func TestNewAccount_Invalid(t *testing.T) {
	hash := newHash(t, "hunter2")

	tests := []struct {
		name    string
		email   string
		role    string
		hash    *cryptox.PasswordHash
		wantErr error
	}{
		{"empty email", "", "role-user", hash, domain.ErrInvalidEmail},
		{"whitespace email", "   \t", "role-user", hash, domain.ErrInvalidEmail},
		{"missing role", "a@b.c", "", hash, domain.ErrMissingRole},
		{"missing hash", "a@b.c", "role-user", nil, domain.ErrMissingHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := domain.NewAccount(tt.email, tt.role, tt.hash)
			require.ErrorIs(t, err, tt.wantErr)
			require.Nil(t, acc)
		})
	}
}

func TestAccount_ChangeRole(t *testing.T) {
	acc := domain.ExistingAccount("acc-1", "a@b.c", "role-user", newHash(t, "pw"))

	require.ErrorIs(t, acc.ChangeRole("role-user"), domain.ErrSameRole)
	require.Nil(t, acc.DequeueEvent())

	require.NoError(t, acc.ChangeRole("role-admin"))
	require.Equal(t, "role-admin", acc.RoleID())

	ev, ok := acc.DequeueEvent().(domain.RoleChanged)
	require.True(t, ok)
	require.Equal(t, domain.RoleChanged{AccountID: "acc-1", RoleID: "role-admin"}, ev)
}

func TestAccount_ChangePassword(t *testing.T) {
	old := newHash(t, "old")
	acc := domain.ExistingAccount("acc-1", "a@b.c", "role-user", old)

	require.ErrorIs(t, acc.ChangePassword(nil), domain.ErrMissingHash)

	next := newHash(t, "new")
	require.NoError(t, acc.ChangePassword(next))
	require.Same(t, next, acc.PasswordHash())
	require.True(t, old.Flushed())

	ev, ok := acc.DequeueEvent().(domain.PasswordChanged)
	require.True(t, ok)
	require.Equal(t, "acc-1", ev.AccountID)
	require.Equal(t, next.Salt(), ev.Salt)
	require.Equal(t, next.Digest(), ev.Hash)
}

func TestAccount_EventsAreFIFO(t *testing.T) {
	acc, err := domain.NewAccount("a@b.c", "role-user", newHash(t, "one"))
	require.NoError(t, err)

	require.NoError(t, acc.ChangePassword(newHash(t, "two")))
	require.NoError(t, acc.ChangeRole("role-admin"))
	require.Equal(t, 3, acc.PendingEvents())

	var names []string
	for ev := acc.DequeueEvent(); ev != nil; ev = acc.DequeueEvent() {
		names = append(names, ev.EventName())
	}
	require.Equal(t, []string{
		"account.created",
		"account.password_changed",
		"account.role_changed",
	}, names)
	require.Nil(t, acc.DequeueEvent())
}
