package sqlstore

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/gatekeep/internal/auth/store"
)

type txStore struct {
	tx      *sql.Tx
	dialect Dialect
}

func newTx(tx *sql.Tx, dialect Dialect) *txStore {
	return &txStore{tx: tx, dialect: dialect}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // nothing to close; caller will commit/rollback and outer DB stays open

// Ping is a no-op for transactions. The connection is already established
// when the transaction is created, so we just return nil.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return sql.ErrTxDone
}

// run executes fn on the open transaction; the caller decides when to commit.
func (t *txStore) run(ctx context.Context, fn func(q queryer) error) error {
	return fn(t.tx)
}

func (t *txStore) Accounts() store.Accounts {
	return &accountsRepo{q: t.tx, d: t.dialect, inTx: t.run}
}

func (t *txStore) RefreshTokens() store.RefreshTokens {
	return &refreshTokensRepo{q: t.tx, d: t.dialect, inTx: t.run}
}

func (t *txStore) Roles() store.Roles           { return &rolesRepo{q: t.tx, d: t.dialect} }
func (t *txStore) Principals() store.Principals { return &principalsRepo{q: t.tx, d: t.dialect} }

func (t *txStore) ApplyMigrations() error { return nil } // no-op; migrations should be applied before starting a tx
