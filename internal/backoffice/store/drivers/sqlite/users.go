package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
)

type usersRepo struct {
	db dbtx
}

const userWithRoleColumns = `
	u.id, u.name, u.email, u.password_hash, u.status, u.role_id, u.created_at, u.updated_at,
	r.id, r.name, r.slug, r.permissions, r.created_at, r.updated_at`

const userWithRoleFrom = `FROM users u LEFT JOIN roles r ON r.id = u.role_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner, extra ...any) (domain.User, error) {
	var (
		u                    domain.User
		status               string
		roleID               sql.NullString
		createdAt, updatedAt string
	)
	dest := append([]any{&u.ID, &u.Name, &u.Email, &u.PasswordHash, &status, &roleID, &createdAt, &updatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return domain.User{}, err
	}

	var err error
	u.Status = domain.UserStatus(status)
	u.RoleID = mapNullStringPtr(roleID)
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.User{}, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func scanUserWithRole(row scanner) (domain.UserWithRole, error) {
	var rid, rname, rslug, rperms, rcreated, rupdated sql.NullString
	u, err := scanUser(row, &rid, &rname, &rslug, &rperms, &rcreated, &rupdated)
	if err != nil {
		return domain.UserWithRole{}, err
	}

	out := domain.UserWithRole{User: u}
	if !rid.Valid {
		return out, nil
	}

	role := domain.Role{ID: rid.String, Name: rname.String, Slug: rslug.String}
	if role.Permissions, err = decodePermissions(rperms.String); err != nil {
		return domain.UserWithRole{}, err
	}
	if role.CreatedAt, err = parseTime(rcreated.String); err != nil {
		return domain.UserWithRole{}, err
	}
	if role.UpdatedAt, err = parseTime(rupdated.String); err != nil {
		return domain.UserWithRole{}, err
	}
	out.Role = &role
	return out, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.UserWithRole, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userWithRoleColumns+` `+userWithRoleFrom+` WHERE u.id = ?`, id)
	u, err := scanUserWithRole(row)
	if err != nil {
		return domain.UserWithRole{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.UserWithRole, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userWithRoleColumns+` `+userWithRoleFrom+` WHERE u.email = ?`, email)
	u, err := scanUserWithRole(row)
	if err != nil {
		return domain.UserWithRole{}, mapNotFound(err)
	}
	return u, nil
}

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func userFilterWhere(f domain.UserFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if f.Search != "" {
		pattern := "%" + strings.ToLower(escapeLike(f.Search)) + "%"
		clauses = append(clauses, `(lower(u.name) LIKE ? ESCAPE '\' OR lower(u.email) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if f.RoleID != "" {
		clauses = append(clauses, `u.role_id = ?`)
		args = append(args, f.RoleID)
	}
	if f.Status != "" {
		clauses = append(clauses, `u.status = ?`)
		args = append(args, string(f.Status))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *usersRepo) ListUsers(ctx context.Context, f domain.UserFilter) ([]domain.UserWithRole, int, error) {
	where, args := userFilterWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users u`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + userWithRoleColumns + ` ` + userWithRoleFrom + where +
		` ORDER BY u.created_at DESC, u.id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []domain.UserWithRole{}
	for rows.Next() {
		u, err := scanUserWithRole(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, status, role_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Status), mapOptionalString(u.RoleID),
		formatTime(u.CreatedAt), formatTime(u.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE users
		SET name = ?, email = ?, status = ?, role_id = ?, password_hash = ?, updated_at = ?
		WHERE id = ?`,
		u.Name, u.Email, string(u.Status), mapOptionalString(u.RoleID), u.PasswordHash,
		formatTime(u.UpdatedAt), u.ID,
	))
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id))
}

func (r *usersRepo) CountUsers(ctx context.Context, status domain.UserStatus) (int, error) {
	var n int
	var err error
	if status == "" {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	} else {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE status = ?`, string(status)).Scan(&n)
	}
	return n, err
}

func (r *usersRepo) ListRecentUsers(ctx context.Context, limit int) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, password_hash, status, role_id, created_at, updated_at
		FROM users ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
