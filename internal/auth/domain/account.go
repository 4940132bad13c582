package domain

import (
	"strings"

	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeep/pkg/idx"
)

// Account is a credential holder: an email, a role and a password hash.
type Account struct {
	outbox

	id     string
	email  string
	roleID string
	hash   *cryptox.PasswordHash
}

// NewAccount creates an account with a fresh id and records AccountCreated.
func NewAccount(email, roleID string, hash *cryptox.PasswordHash) (*Account, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if roleID == "" {
		return nil, ErrMissingRole
	}
	if hash == nil {
		return nil, ErrMissingHash
	}

	a := &Account{
		id:     idx.New().String(),
		email:  email,
		roleID: roleID,
		hash:   hash,
	}

	a.enqueue(AccountCreated{
		AccountID: a.id,
		Email:     a.email,
		RoleID:    a.roleID,
		Salt:      hash.Salt(),
		Hash:      hash.Digest(),
	})

	return a, nil
}

// ExistingAccount rehydrates a stored account. No events are recorded.
func ExistingAccount(id, email, roleID string, hash *cryptox.PasswordHash) *Account {
	return &Account{
		id:     id,
		email:  email,
		roleID: roleID,
		hash:   hash,
	}
}

// ChangePassword replaces the password hash. The previous hash is flushed.
func (a *Account) ChangePassword(hash *cryptox.PasswordHash) error {
	if hash == nil {
		return ErrMissingHash
	}

	if a.hash != nil {
		a.hash.Flush()
	}
	a.hash = hash

	a.enqueue(PasswordChanged{
		AccountID: a.id,
		Salt:      hash.Salt(),
		Hash:      hash.Digest(),
	})
	return nil
}

// ChangeRole moves the account to roleID. Reapplying the current role fails.
func (a *Account) ChangeRole(roleID string) error {
	if roleID == "" {
		return ErrMissingRole
	}
	if roleID == a.roleID {
		return ErrSameRole
	}

	a.roleID = roleID
	a.enqueue(RoleChanged{AccountID: a.id, RoleID: roleID})
	return nil
}

func (a *Account) ID() string { return a.id }
func (a *Account) Email() string { return a.email }
func (a *Account) RoleID() string { return a.roleID }
func (a *Account) PasswordHash() *cryptox.PasswordHash { return a.hash }
