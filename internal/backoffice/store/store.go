package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
)

var (
	ErrNotFound         = errors.New("store: not found")
	ErrAlreadyExists    = errors.New("store: already exists")
	ErrInvalidReference = errors.New("store: referenced record not found")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so a transaction can't be opened inside another one.
type Store interface {
	Users() Users
	Roles() Roles
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
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

type Users interface {
	// GetUserByID returns a user joined with its role.
	GetUserByID(ctx context.Context, id string) (domain.UserWithRole, error)

	// GetUserByEmail is used during login. Email matching is exact.
	GetUserByEmail(ctx context.Context, email string) (domain.UserWithRole, error)

	// ListUsers returns one page of users, newest first, and the total number
	// of users matching the filter.
	ListUsers(ctx context.Context, f domain.UserFilter) ([]domain.UserWithRole, int, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Duplicate email yields ErrAlreadyExists, unknown role ErrInvalidReference.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser overwrites name, email, status, role and updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	// DeleteUser cascades to refresh_tokens (per schema).
	DeleteUser(ctx context.Context, id string) error

	// CountUsers counts every user, or only those with status when non-empty.
	CountUsers(ctx context.Context, status domain.UserStatus) (int, error)

	// ListRecentUsers returns the newest users by creation time.
	ListRecentUsers(ctx context.Context, limit int) ([]domain.User, error)
}

type Roles interface {
	GetRoleByID(ctx context.Context, id string) (domain.Role, error)
	GetRoleBySlug(ctx context.Context, slug string) (domain.Role, error)

	// ListRoles returns every role, newest first.
	ListRoles(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts a role. Duplicate name or slug yields ErrAlreadyExists.
	CreateRole(ctx context.Context, r domain.Role) error

	// UpdateRole overwrites name, permissions and updated_at.
	UpdateRole(ctx context.Context, r domain.Role) error

	// DeleteRole removes a role; users holding it are left without a role.
	DeleteRole(ctx context.Context, id string) error

	CountRoles(ctx context.Context) (int, error)
}

// RefreshTokens is the refresh token revocation state. Rows are addressed by
// the token fingerprint and are never deleted here.
type RefreshTokens interface {
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RevokeRefreshToken sets revoked_at if it is not already set. Unknown
	// hashes are not an error.
	RevokeRefreshToken(ctx context.Context, hash string, at time.Time) error

	// ConsumeRefreshToken revokes the row only if it is still usable at now.
	// It returns ErrNotFound when nothing was consumed, so of two concurrent
	// callers exactly one succeeds.
	ConsumeRefreshToken(ctx context.Context, hash string, now time.Time) error

	// ListUserRefreshTokens returns a user's rows, newest first.
	ListUserRefreshTokens(ctx context.Context, userID string) ([]domain.RefreshToken, error)
}
