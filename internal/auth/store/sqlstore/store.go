// Package sqlstore implements the store interfaces over database/sql. The
// sqlite and postgres drivers construct it with their own Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aussiebroadwan/gatekeep/internal/auth/store"
	"github.com/samber/oops"
)

type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps an open database. The store owns db from here on and closes it
// in Close.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB exposes the underlying handle for drivers and tests.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) ApplyMigrations() error {
	if err := s.dialect.Migrate(s.db); err != nil {
		return oops.Code("STORE_MIGRATION_FAILED").With("driver", s.dialect.Name()).Wrap(err)
	}
	return nil
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, s.dialect.TxOptions())
	if err != nil {
		return nil, oops.Code("STORE_BEGIN_FAILED").With("driver", s.dialect.Name()).Wrap(err)
	}
	return newTx(tx, s.dialect), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Ensure rollback is called if we panic or return early with error
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err // rollback happens in defer
	}

	if err := tx.Commit(); err != nil {
		return oops.Code("STORE_COMMIT_FAILED").With("driver", s.dialect.Name()).Wrap(err)
	}
	return nil
}

func (s *Store) runTx(ctx context.Context, fn func(q queryer) error) error {
	tx, err := s.db.BeginTx(ctx, s.dialect.TxOptions())
	if err != nil {
		return oops.Code("STORE_BEGIN_FAILED").With("driver", s.dialect.Name()).Wrap(err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return oops.Code("STORE_COMMIT_FAILED").With("driver", s.dialect.Name()).Wrap(err)
	}
	return nil
}

func (s *Store) Accounts() store.Accounts {
	return &accountsRepo{q: s.db, d: s.dialect, inTx: s.runTx}
}

func (s *Store) RefreshTokens() store.RefreshTokens {
	return &refreshTokensRepo{q: s.db, d: s.dialect, inTx: s.runTx}
}

func (s *Store) Roles() store.Roles           { return &rolesRepo{q: s.db, d: s.dialect} }
func (s *Store) Principals() store.Principals { return &principalsRepo{q: s.db, d: s.dialect} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
