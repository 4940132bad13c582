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
)

// AccountService manages the account lifecycle: registration, password
// changes and role changes. Password buffers passed in are wiped before
// returning.
type AccountService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
}

// Register creates an account with the named role.
func (s *AccountService) Register(ctx context.Context, email string, password []byte, roleName string) (Result[domain.Principal], error) {
	defer cryptox.Wipe(password)
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" {
		return Fail[domain.Principal](MsgEmailEmpty), nil
	}

	// 1. Resolve the role
	role, err := s.Store.Roles().GetRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Fail[domain.Principal](MsgRoleNotFound), nil
		}
		return Result[domain.Principal]{}, err
	}

	// 2. Hash the password
	hash, err := s.Hasher.Create(password)
	if err != nil {
		if errors.Is(err, cryptox.ErrInvalidInput) {
			return Fail[domain.Principal](MsgPasswordEmpty), nil
		}
		return Result[domain.Principal]{}, err
	}
	defer hash.Flush()

	acc, err := domain.NewAccount(email, role.ID, hash)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEmail) {
			return Fail[domain.Principal](MsgEmailEmpty), nil
		}
		return Result[domain.Principal]{}, err
	}

	// 3. Persist
	if err := s.Store.Accounts().SaveAccount(ctx, acc); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return Fail[domain.Principal](MsgEmailRegistered), nil
		}
		return Result[domain.Principal]{}, err
	}

	l.Info("account registered", slog.String("account_id", acc.ID()), slog.String("role", role.Name))
	return OkWithMessage(domain.Principal{ID: acc.ID(), Email: acc.Email(), Role: role.Name}, MsgAccountCreated), nil
}

// ChangePassword replaces the password after checking the current one.
func (s *AccountService) ChangePassword(ctx context.Context, accountID string, current, next []byte) (Result[struct{}], error) {
	defer cryptox.Wipe(current)
	defer cryptox.Wipe(next)
	l := slogx.FromContext(ctx)

	acc, err := s.Store.Accounts().FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Fail[struct{}](MsgCannotFindUser), nil
		}
		return Result[struct{}]{}, err
	}

	ok, err := s.Hasher.Verify(acc.PasswordHash(), current)
	if err != nil {
		return Result[struct{}]{}, err
	}
	if !ok {
		l.Info("password change rejected", slog.String("account_id", accountID))
		return Fail[struct{}](MsgWrongPassword), nil
	}

	hash, err := s.Hasher.Create(next)
	if err != nil {
		if errors.Is(err, cryptox.ErrInvalidInput) {
			return Fail[struct{}](MsgPasswordEmpty), nil
		}
		return Result[struct{}]{}, err
	}
	defer hash.Flush()

	if err := acc.ChangePassword(hash); err != nil {
		return Result[struct{}]{}, err
	}
	if err := s.Store.Accounts().SaveAccount(ctx, acc); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Fail[struct{}](MsgCannotFindUser), nil
		}
		return Result[struct{}]{}, err
	}

	l.Info("password changed", slog.String("account_id", accountID))
	return OkWithMessage(struct{}{}, MsgPasswordChanged), nil
}

// ChangeRole moves an account to the named role.
func (s *AccountService) ChangeRole(ctx context.Context, accountID, roleName string) (Result[domain.Principal], error) {
	l := slogx.FromContext(ctx)

	role, err := s.Store.Roles().GetRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Fail[domain.Principal](MsgRoleNotFound), nil
		}
		return Result[domain.Principal]{}, err
	}

	acc, err := s.Store.Accounts().FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Fail[domain.Principal](MsgCannotFindUser), nil
		}
		return Result[domain.Principal]{}, err
	}
	defer acc.PasswordHash().Flush()

	if err := acc.ChangeRole(role.ID); err != nil {
		if errors.Is(err, domain.ErrSameRole) {
			return Fail[domain.Principal](MsgSameRole), nil
		}
		return Result[domain.Principal]{}, err
	}

	if err := s.Store.Accounts().SaveAccount(ctx, acc); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Fail[domain.Principal](MsgCannotFindUser), nil
		}
		return Result[domain.Principal]{}, err
	}

	l.Info("role changed", slog.String("account_id", accountID), slog.String("role", role.Name))
	return OkWithMessage(domain.Principal{ID: acc.ID(), Email: acc.Email(), Role: role.Name}, MsgRoleChanged), nil
}

// Principal returns the identity projection for an account.
func (s *AccountService) Principal(ctx context.Context, accountID string) (Result[domain.Principal], error) {
	p, err := s.Store.Principals().GetPrincipalByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Fail[domain.Principal](MsgCannotFindUser), nil
		}
		return Result[domain.Principal]{}, err
	}
	return Ok(p), nil
}

// FindByEmail resolves an account id from an email address.
func (s *AccountService) FindByEmail(ctx context.Context, email string) (Result[domain.Principal], error) {
	acc, err := s.Store.Accounts().FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Fail[domain.Principal](MsgAccountNotFound), nil
		}
		return Result[domain.Principal]{}, err
	}
	acc.PasswordHash().Flush()

	return s.Principal(ctx, acc.ID())
}
