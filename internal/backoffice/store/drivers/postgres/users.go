package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"

	"github.com/jackc/pgx/v5"
)

type usersRepo struct {
	db querier
}

const userColumns = `id, name, email, password_hash, status, role_id, created_at, updated_at`

const userWithRoleColumns = `
	u.id, u.name, u.email, u.password_hash, u.status, u.role_id, u.created_at, u.updated_at,
	r.id, r.name, r.slug, r.permissions, r.created_at, r.updated_at`

const userWithRoleFrom = `FROM users u LEFT JOIN roles r ON r.id = u.role_id`

func scanUser(row pgx.Row, extra ...any) (domain.User, error) {
	var (
		u      domain.User
		status string
	)
	dest := append([]any{&u.ID, &u.Name, &u.Email, &u.PasswordHash, &status, &u.RoleID, &u.CreatedAt, &u.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return domain.User{}, err
	}
	u.Status = domain.UserStatus(status)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func scanUserWithRole(row pgx.Row) (domain.UserWithRole, error) {
	var (
		rid, rname, rslug  *string
		rperms             []string
		rcreated, rupdated *time.Time
	)
	u, err := scanUser(row, &rid, &rname, &rslug, &rperms, &rcreated, &rupdated)
	if err != nil {
		return domain.UserWithRole{}, err
	}

	out := domain.UserWithRole{User: u}
	if rid == nil {
		return out, nil
	}

	role := domain.Role{ID: *rid, Permissions: toPermissions(rperms)}
	if rname != nil {
		role.Name = *rname
	}
	if rslug != nil {
		role.Slug = *rslug
	}
	if rcreated != nil {
		role.CreatedAt = rcreated.UTC()
	}
	if rupdated != nil {
		role.UpdatedAt = rupdated.UTC()
	}
	out.Role = &role
	return out, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.UserWithRole, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userWithRoleColumns+` `+userWithRoleFrom+` WHERE u.id = $1`, id)
	u, err := scanUserWithRole(row)
	if err != nil {
		return domain.UserWithRole{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.UserWithRole, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userWithRoleColumns+` `+userWithRoleFrom+` WHERE u.email = $1`, email)
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
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		p := next("%" + strings.ToLower(escapeLike(f.Search)) + "%")
		clauses = append(clauses, `(lower(u.name) LIKE `+p+` ESCAPE '\' OR lower(u.email) LIKE `+p+` ESCAPE '\')`)
	}
	if f.RoleID != "" {
		clauses = append(clauses, `u.role_id = `+next(f.RoleID))
	}
	if f.Status != "" {
		clauses = append(clauses, `u.status = `+next(string(f.Status)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *usersRepo) ListUsers(ctx context.Context, f domain.UserFilter) ([]domain.UserWithRole, int, error) {
	where, args := userFilterWhere(f)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`SELECT %s %s%s ORDER BY u.created_at DESC, u.id DESC LIMIT $%d OFFSET $%d`,
		userWithRoleColumns, userWithRoleFrom, where, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, q, append(args, f.Limit, f.Offset)...)
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
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, status, role_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Status), optionalString(u.RoleID),
		u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	return expectOne(r.db.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, status = $3, role_id = $4, password_hash = $5, updated_at = $6
		WHERE id = $7`,
		u.Name, u.Email, string(u.Status), optionalString(u.RoleID), u.PasswordHash,
		u.UpdatedAt.UTC(), u.ID,
	))
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id))
}

func (r *usersRepo) CountUsers(ctx context.Context, status domain.UserStatus) (int, error) {
	var n int
	var err error
	if status == "" {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	} else {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE status = $1`, string(status)).Scan(&n)
	}
	return n, err
}

func (r *usersRepo) ListRecentUsers(ctx context.Context, limit int) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
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
