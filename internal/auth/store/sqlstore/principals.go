package sqlstore

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeep/internal/auth/store"
	"github.com/samber/oops"
)

type principalsRepo struct {
	q queryer
	d Dialect
}

func (r *principalsRepo) GetPrincipalByID(ctx context.Context, accountID string) (domain.Principal, error) {
	var p domain.Principal
	err := r.q.QueryRowContext(ctx, r.d.Rebind(
		`SELECT a.id, a.email, r.name
		 FROM accounts a
		 JOIN roles r ON r.id = a.role_id
		 WHERE a.id = ?`),
		accountID,
	).Scan(&p.ID, &p.Email, &p.Role)
	if err != nil {
		err = mapNotFound(err)
		if errors.Is(err, store.ErrNotFound) {
			return domain.Principal{}, err
		}
		return domain.Principal{}, oops.Code("STORE_FIND_PRINCIPAL_FAILED").With("account_id", accountID).Wrap(err)
	}
	return p, nil
}
