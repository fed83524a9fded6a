package postgres

import (
	"context"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"

	"github.com/jackc/pgx/v5"
)

type rolesRepo struct {
	db querier
}

const roleColumns = `id, name, slug, permissions, created_at, updated_at`

func toPermissions(ss []string) []domain.Permission {
	out := make([]domain.Permission, len(ss))
	for i, s := range ss {
		out[i] = domain.Permission(s)
	}
	return out
}

func scanRole(row pgx.Row) (domain.Role, error) {
	var (
		r     domain.Role
		perms []string
	)
	if err := row.Scan(&r.ID, &r.Name, &r.Slug, &perms, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return domain.Role{}, err
	}
	r.Permissions = toPermissions(perms)
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	return r, nil
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id string) (domain.Role, error) {
	role, err := scanRole(r.db.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id))
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) GetRoleBySlug(ctx context.Context, slug string) (domain.Role, error) {
	role, err := scanRole(r.db.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE slug = $1`, slug))
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO roles (id, name, slug, permissions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		role.ID, role.Name, role.Slug, domain.PermissionStrings(role.Permissions),
		role.CreatedAt.UTC(), role.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *rolesRepo) UpdateRole(ctx context.Context, role domain.Role) error {
	return expectOne(r.db.Exec(ctx, `
		UPDATE roles SET name = $1, permissions = $2, updated_at = $3 WHERE id = $4`,
		role.Name, domain.PermissionStrings(role.Permissions), role.UpdatedAt.UTC(), role.ID,
	))
}

func (r *rolesRepo) DeleteRole(ctx context.Context, id string) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id))
}

func (r *rolesRepo) CountRoles(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM roles`).Scan(&n)
	return n, err
}
