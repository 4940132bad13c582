package sqlstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeep/internal/auth/store"
	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/samber/oops"
)

type accountsRepo struct {
	q    queryer
	d    Dialect
	inTx txRunner
}

const selectAccount = `SELECT id, email, role_id, password_salt, password_hash FROM accounts`

func (r *accountsRepo) FindAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.q.QueryRowContext(ctx, r.d.Rebind(selectAccount+` WHERE id = ?`), id)
	return r.scan(row, "id", id)
}

func (r *accountsRepo) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	email = strings.TrimSpace(email)
	row := r.q.QueryRowContext(ctx, r.d.Rebind(selectAccount+` WHERE lower(email) = lower(?)`), email)
	return r.scan(row, "email", email)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *accountsRepo) scan(row rowScanner, key, value string) (*domain.Account, error) {
	var (
		id, email, roleID string
		salt, digest      []byte
	)
	if err := row.Scan(&id, &email, &roleID, &salt, &digest); err != nil {
		err = mapNotFound(err)
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, oops.Code("STORE_FIND_ACCOUNT_FAILED").With(key, value).Wrap(err)
	}

	hash, err := cryptox.NewPasswordHash(salt, digest)
	cryptox.Wipe(salt)
	cryptox.Wipe(digest)
	if err != nil {
		return nil, oops.Code("STORE_CORRUPT_ACCOUNT").With("account_id", id).Wrap(err)
	}

	return domain.ExistingAccount(id, email, roleID, hash), nil
}

// SaveAccount drains the account's events into a single transaction.
func (r *accountsRepo) SaveAccount(ctx context.Context, a *domain.Account) error {
	return r.inTx(ctx, func(q queryer) error {
		now := time.Now().UTC()

		for ev := a.DequeueEvent(); ev != nil; ev = a.DequeueEvent() {
			var err error

			switch e := ev.(type) {
			case domain.AccountCreated:
				_, err = q.ExecContext(ctx, r.d.Rebind(
					`INSERT INTO accounts (id, email, role_id, password_salt, password_hash, created_at, updated_at)
					 VALUES (?, ?, ?, ?, ?, ?, ?)`),
					e.AccountID, e.Email, e.RoleID, e.Salt, e.Hash, now, now,
				)
				if err != nil && r.d.IsUniqueViolation(err) {
					return store.ErrAlreadyExists
				}

			case domain.PasswordChanged:
				err = r.update(ctx, q,
					`UPDATE accounts SET password_salt = ?, password_hash = ?, updated_at = ? WHERE id = ?`,
					e.Salt, e.Hash, now, e.AccountID,
				)

			case domain.RoleChanged:
				err = r.update(ctx, q,
					`UPDATE accounts SET role_id = ?, updated_at = ? WHERE id = ?`,
					e.RoleID, now, e.AccountID,
				)

			default:
				return oops.Code("STORE_UNKNOWN_EVENT").With("event", ev.EventName()).Errorf("unhandled account event")
			}

			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return err
				}
				return oops.Code("STORE_SAVE_ACCOUNT_FAILED").
					With("account_id", a.ID()).
					With("event", ev.EventName()).
					Wrap(err)
			}
		}

		return nil
	})
}

func (r *accountsRepo) update(ctx context.Context, q queryer, query string, args ...any) error {
	res, err := q.ExecContext(ctx, r.d.Rebind(query), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
