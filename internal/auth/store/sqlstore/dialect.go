package sqlstore

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// Dialect captures what differs between the database/sql drivers we support.
type Dialect interface {
	// Name identifies the driver in logs and error context.
	Name() string

	// Rebind rewrites '?' placeholders into the driver's native form.
	Rebind(query string) string

	// TxOptions are used for every read/write transaction.
	TxOptions() *sql.TxOptions

	// IsUniqueViolation reports whether err is a unique or primary key conflict.
	IsUniqueViolation(err error) bool

	// Migrate applies the driver's embedded schema migrations.
	Migrate(db *sql.DB) error
}

// RebindDollar turns '?' placeholders into $1, $2, ... for postgres style drivers.
// Queries in this package never contain a literal '?'.
func RebindDollar(query string) string {
	n := strings.Count(query, "?")
	if n == 0 {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + n*2)

	arg := 0
	for _, r := range query {
		if r == '?' {
			arg++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(arg))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// txRunner runs fn atomically. On the root store it opens a transaction; inside
// a transaction it runs fn directly on it.
type txRunner func(ctx context.Context, fn func(q queryer) error) error
