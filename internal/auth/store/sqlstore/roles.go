package sqlstore

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeep/internal/auth/store"
	"github.com/samber/oops"
)

type rolesRepo struct {
	q queryer
	d Dialect
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id string) (domain.Role, error) {
	return r.get(ctx, `SELECT id, name, created_at FROM roles WHERE id = ?`, "id", id)
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	return r.get(ctx, `SELECT id, name, created_at FROM roles WHERE name = ?`, "name", name)
}

func (r *rolesRepo) get(ctx context.Context, query, key, value string) (domain.Role, error) {
	var role domain.Role
	err := r.q.QueryRowContext(ctx, r.d.Rebind(query), value).Scan(&role.ID, &role.Name, &role.CreatedAt)
	if err != nil {
		err = mapNotFound(err)
		if errors.Is(err, store.ErrNotFound) {
			return domain.Role{}, err
		}
		return domain.Role{}, oops.Code("STORE_FIND_ROLE_FAILED").With(key, value).Wrap(err)
	}
	return role, nil
}

func (r *rolesRepo) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, created_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, oops.Code("STORE_LIST_ROLES_FAILED").Wrap(err)
	}
	defer func() { _ = rows.Close() }()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
			return nil, oops.Code("STORE_LIST_ROLES_FAILED").Wrap(err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("STORE_LIST_ROLES_FAILED").Wrap(err)
	}
	return roles, nil
}
