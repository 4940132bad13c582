package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so nobody accidently starts a transaction within a
// transaction.
type Store interface {
	Accounts() Accounts
	RefreshTokens() RefreshTokens
	Roles() Roles
	Principals() Principals

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., refresh rotation).
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Accounts persists the account aggregate. Saving drains the aggregate's
// pending events and applies them atomically.
type Accounts interface {
	// FindAccountByID returns the account with the given id.
	FindAccountByID(ctx context.Context, id string) (*domain.Account, error)

	// FindAccountByEmail matches email case-insensitively.
	FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error)

	// SaveAccount applies every pending event. Duplicate emails return ErrAlreadyExists.
	SaveAccount(ctx context.Context, a *domain.Account) error
}

type RefreshTokens interface {
	// FindRefreshTokenByAccountAndCode looks a token up by its owner and plaintext code.
	FindRefreshTokenByAccountAndCode(ctx context.Context, accountID, code string) (*domain.RefreshToken, error)

	// SaveRefreshToken applies every pending event. A consume that loses the
	// race to another writer returns domain.ErrAlreadyConsumed.
	SaveRefreshToken(ctx context.Context, t *domain.RefreshToken) error

	// DeleteExpiredRefreshTokens removes tokens that expired or were consumed
	// before the given time. Returns the number of rows removed.
	DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error)
}

type Roles interface {
	// GetRoleByID fetches a role by its ID
	GetRoleByID(ctx context.Context, id string) (domain.Role, error)

	// GetRoleByName fetches a role by its name
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListRoles returns all roles ordered by name
	ListRoles(ctx context.Context) ([]domain.Role, error)
}

type Principals interface {
	// GetPrincipalByID resolves the id, email and role name for an account.
	GetPrincipalByID(ctx context.Context, accountID string) (domain.Principal, error)
}
