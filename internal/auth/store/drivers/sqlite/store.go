package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/aussiebroadwan/gatekeep/internal/auth/store/sqlstore"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// NewStore opens (or creates) the sqlite database at dsn. Use ":memory:" for
// tests.
func NewStore(dsn string) (*sqlstore.Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single connection serialises writers and keeps ":memory:" databases
	// shared between calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return sqlstore.New(db, Dialect{}), nil
}

// NewStoreFromDB wraps an already open handle, e.g. a sqlmock connection.
func NewStoreFromDB(db *sql.DB) *sqlstore.Store {
	return sqlstore.New(db, Dialect{})
}

// Dialect is the sqlstore dialect for modernc sqlite.
type Dialect struct{}

func (Dialect) Name() string { return "sqlite" }

func (Dialect) Rebind(query string) string { return query }

// TxOptions uses the driver default. sqlite transactions are serializable,
// which is at least as strong as read committed.
func (Dialect) TxOptions() *sql.TxOptions { return nil }

func (Dialect) IsUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}

	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(se.Error(), "UNIQUE constraint failed")
	}
	return false
}
