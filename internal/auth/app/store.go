package app

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/gatekeep/internal/auth/store/drivers/postgres"
	"github.com/aussiebroadwan/gatekeep/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/gatekeep/internal/auth/store/sqlstore"
	"github.com/samber/oops"
)

// OpenStore connects to the configured database and applies migrations.
func OpenStore(ctx context.Context, cfg Config) (*sqlstore.Store, error) {
	var (
		st  *sqlstore.Store
		err error
	)

	switch cfg.DatabaseDriver {
	case DriverPostgres:
		st, err = postgres.NewStore(ctx, cfg.DatabaseURL)
	case DriverSQLite, "":
		st, err = sqlite.NewStore(sqliteDSN(cfg.DatabaseFile))
	default:
		return nil, oops.Code("UNKNOWN_DATABASE_DRIVER").With("driver", cfg.DatabaseDriver).
			Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
	if err != nil {
		return nil, oops.Code("DB_OPEN_FAILED").With("driver", cfg.DatabaseDriver).Wrap(err)
	}

	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, err
	}

	return st, nil
}

// sqliteDSN turns a file path into a modernc DSN with a busy timeout and WAL.
func sqliteDSN(file string) string {
	if file == ":memory:" {
		return file
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", file)
}
