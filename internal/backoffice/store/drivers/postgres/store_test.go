package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/store"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/store/drivers/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

var userWithRoleCols = []string{
	"id", "name", "email", "password_hash", "status", "role_id", "created_at", "updated_at",
	"id", "name", "slug", "permissions", "created_at", "updated_at",
}

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *postgres.Store) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, postgres.New(mock)
}

func ptr[T any](v T) *T { return &v }

func TestUsers_GetUserByEmail(t *testing.T) {
	mock, st := newMock(t)
	ctx := context.Background()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("with role", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM users u LEFT JOIN roles r").
			WithArgs("ann@example.com").
			WillReturnRows(pgxmock.NewRows(userWithRoleCols).AddRow(
				"u1", "Ann", "ann@example.com", "hash", "ACTIVE", ptr("r1"), now, now,
				ptr("r1"), ptr("Admin"), ptr("admin"), []string{"users.read", "roles.read"}, ptr(now), ptr(now),
			))

		u, err := st.Users().GetUserByEmail(ctx, "ann@example.com")
		require.NoError(t, err)
		require.Equal(t, "u1", u.ID)
		require.Equal(t, domain.UserStatusActive, u.Status)
		require.NotNil(t, u.Role)
		require.Equal(t, "admin", u.Role.Slug)
		require.Equal(t, []domain.Permission{domain.PermUsersRead, domain.PermRolesRead}, u.Permissions())
	})

	t.Run("without role", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM users u LEFT JOIN roles r").
			WithArgs("bob@example.com").
			WillReturnRows(pgxmock.NewRows(userWithRoleCols).AddRow(
				"u2", "Bob", "bob@example.com", "hash", "INACTIVE", (*string)(nil), now, now,
				(*string)(nil), (*string)(nil), (*string)(nil), []string(nil), (*time.Time)(nil), (*time.Time)(nil),
			))

		u, err := st.Users().GetUserByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		require.Nil(t, u.RoleID)
		require.Nil(t, u.Role)
		require.Empty(t, u.Permissions())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM users u LEFT JOIN roles r").
			WithArgs("nobody@example.com").
			WillReturnError(pgx.ErrNoRows)

		_, err := st.Users().GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsers_CreateUser_Constraints(t *testing.T) {
	mock, st := newMock(t)
	ctx := context.Background()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	u := domain.User{
		ID: "u1", Name: "Ann", Email: "ann@example.com", PasswordHash: "hash",
		Status: domain.UserStatusActive, RoleID: ptr("missing"), CreatedAt: now, UpdatedAt: now,
	}
	args := []any{u.ID, u.Name, u.Email, u.PasswordHash, "ACTIVE", u.RoleID, now, now}

	mock.ExpectExec("INSERT INTO users").WithArgs(args...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, st.Users().CreateUser(ctx, u))

	mock.ExpectExec("INSERT INTO users").WithArgs(args...).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, st.Users().CreateUser(ctx, u), store.ErrAlreadyExists)

	mock.ExpectExec("INSERT INTO users").WithArgs(args...).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	require.ErrorIs(t, st.Users().CreateUser(ctx, u), store.ErrInvalidReference)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsers_ListUsers_Filter(t *testing.T) {
	mock, st := newMock(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users u WHERE")).
		WithArgs(`%50\%%`, "ACTIVE").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`ORDER BY u\.created_at DESC, u\.id DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(`%50\%%`, "ACTIVE", 10, 20).
		WillReturnRows(pgxmock.NewRows(userWithRoleCols))

	users, total, err := st.Users().ListUsers(ctx, domain.UserFilter{
		Search: "50%", Status: domain.UserStatusActive, Offset: 20, Limit: 10,
	})
	require.NoError(t, err)
	require.Zero(t, total)
	require.NotNil(t, users)
	require.Empty(t, users)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsers_DeleteUser_NotFound(t *testing.T) {
	mock, st := newMock(t)

	mock.ExpectExec("DELETE FROM users").WithArgs("gone").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.ErrorIs(t, st.Users().DeleteUser(context.Background(), "gone"), store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoles_List(t *testing.T) {
	mock, st := newMock(t)
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM roles ORDER BY created_at DESC").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "slug", "permissions", "created_at", "updated_at"}).
			AddRow("r2", "Viewer", "viewer", []string{"users.read"}, now, now).
			AddRow("r1", "Empty", "empty", []string{}, now, now))

	roles, err := st.Roles().ListRoles(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 2)
	require.Equal(t, []domain.Permission{domain.PermUsersRead}, roles[0].Permissions)
	require.NotNil(t, roles[1].Permissions)
	require.Empty(t, roles[1].Permissions)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoles_CreateRole_SendsTextArray(t *testing.T) {
	mock, st := newMock(t)
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	r := domain.Role{
		ID: "r1", Name: "Viewer", Slug: "viewer",
		Permissions: []domain.Permission{domain.PermUsersRead}, CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO roles").
		WithArgs("r1", "Viewer", "viewer", []string{"users.read"}, now, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, st.Roles().CreateRole(context.Background(), r))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokens_Consume(t *testing.T) {
	mock, st := newMock(t)
	ctx := context.Background()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").WithArgs(now, "hash").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").WithArgs(now, "hash").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, st.RefreshTokens().ConsumeRefreshToken(ctx, "hash", now))
	require.ErrorIs(t, st.RefreshTokens().ConsumeRefreshToken(ctx, "hash", now), store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokens_RevokeUnknownIsNoop(t *testing.T) {
	mock, st := newMock(t)
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").WithArgs(now, "unknown").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, st.RefreshTokens().RevokeRefreshToken(context.Background(), "unknown", now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		mock, st := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM roles").WithArgs("r1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		err := st.WithTx(ctx, func(tx store.Tx) error {
			return tx.Roles().DeleteRole(ctx, "r1")
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		mock, st := newMock(t)
		boom := errors.New("boom")
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM roles").WithArgs("r1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectRollback()

		err := st.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Roles().DeleteRole(ctx, "r1"); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no nesting", func(t *testing.T) {
		mock, st := newMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := st.WithTx(ctx, func(tx store.Tx) error {
			return tx.WithTx(ctx, func(store.Tx) error { return nil })
		})
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApplyMigrations_RequiresPool(t *testing.T) {
	_, st := newMock(t)
	require.Error(t, st.ApplyMigrations())
}
