package sqlite

import (
	"context"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
)

type rolesRepo struct {
	db dbtx
}

const roleColumns = `id, name, slug, permissions, created_at, updated_at`

func scanRole(row scanner) (domain.Role, error) {
	var (
		r                           domain.Role
		perms, createdAt, updatedAt string
	)
	if err := row.Scan(&r.ID, &r.Name, &r.Slug, &perms, &createdAt, &updatedAt); err != nil {
		return domain.Role{}, err
	}

	var err error
	if r.Permissions, err = decodePermissions(perms); err != nil {
		return domain.Role{}, err
	}
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Role{}, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Role{}, err
	}
	return r, nil
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id string) (domain.Role, error) {
	role, err := scanRole(r.db.QueryRowContext(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = ?`, id))
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) GetRoleBySlug(ctx context.Context, slug string) (domain.Role, error) {
	role, err := scanRole(r.db.QueryRowContext(ctx, `SELECT `+roleColumns+` FROM roles WHERE slug = ?`, slug))
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY created_at DESC, id DESC`)
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
	perms, err := encodePermissions(role.Permissions)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO roles (id, name, slug, permissions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		role.ID, role.Name, role.Slug, perms, formatTime(role.CreatedAt), formatTime(role.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *rolesRepo) UpdateRole(ctx context.Context, role domain.Role) error {
	perms, err := encodePermissions(role.Permissions)
	if err != nil {
		return err
	}
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE roles SET name = ?, permissions = ?, updated_at = ? WHERE id = ?`,
		role.Name, perms, formatTime(role.UpdatedAt), role.ID,
	))
}

func (r *rolesRepo) DeleteRole(ctx context.Context, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, id))
}

func (r *rolesRepo) CountRoles(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roles`).Scan(&n)
	return n, err
}
