package app

import (
	"context"

	"github.com/aussiebroadwan/gatekeep/internal/auth/service"
	"github.com/aussiebroadwan/gatekeep/internal/auth/store/sqlstore"
	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/samber/oops"
)

// Admin holds what offline tooling needs: the migrated store and an account
// service hashing with the deployment's pepper.
type Admin struct {
	Store    *sqlstore.Store
	Accounts *service.AccountService
}

// OpenAdmin connects to the configured database, applying migrations.
func OpenAdmin(ctx context.Context, cfg Config) (*Admin, error) {
	st, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	hasher, err := NewHasher(cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &Admin{
		Store:    st,
		Accounts: &service.AccountService{Store: st, Hasher: hasher},
	}, nil
}

// Close releases the database.
func (a *Admin) Close() error {
	return a.Store.Close()
}

// NewHasher loads (or creates) the pepper file and builds the password hasher.
func NewHasher(cfg Config) (*cryptox.Hasher, error) {
	pepper, err := cryptox.LoadOrGeneratePepper(cfg.PepperFile)
	if err != nil {
		return nil, oops.Code("PEPPER_UNAVAILABLE").With("path", cfg.PepperFile).Wrap(err)
	}
	defer cryptox.Wipe(pepper)

	hasher, err := cryptox.NewHasher(pepper, cfg.HashIterations)
	if err != nil {
		return nil, oops.Code("HASHER_INIT_FAILED").Wrap(err)
	}
	return hasher, nil
}
