// Package postgres provides the PostgreSQL driver for the auth store, using pgx
// through its database/sql adapter.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/auth/store/sqlstore"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/samber/oops"
)

// NewStore connects to the database at url (postgres:// form) and verifies
// the connection.
func NewStore(ctx context.Context, url string) (*sqlstore.Store, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "open database").Wrap(err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "ping database").Wrap(err)
	}

	return sqlstore.New(db, Dialect{}), nil
}

// Dialect is the sqlstore dialect for PostgreSQL.
type Dialect struct{}

func (Dialect) Name() string { return "postgres" }

func (Dialect) Rebind(query string) string { return sqlstore.RebindDollar(query) }

func (Dialect) TxOptions() *sql.TxOptions {
	return &sql.TxOptions{Isolation: sql.LevelReadCommitted}
}

func (Dialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
