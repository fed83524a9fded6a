package domain

import "time"

// UserStatus gates authentication. Only ACTIVE users may log in or refresh.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// Valid reports whether s is one of the known statuses.
func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}

type User struct {
	ID           string
	Name         string
	Email        string // unique, compared case-sensitively
	PasswordHash string // bcrypt encoded
	Status       UserStatus
	RoleID       *string // nullable FK to roles
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive reports whether the user is allowed to authenticate.
func (u User) IsActive() bool { return u.Status == UserStatusActive }

// UserWithRole is a user joined with its (optional) role.
type UserWithRole struct {
	User
	Role *Role
}

// Permissions returns the role's permission set, or an empty set when the
// user has no role.
func (u UserWithRole) Permissions() []Permission {
	if u.Role == nil {
		return []Permission{}
	}
	out := make([]Permission, len(u.Role.Permissions))
	copy(out, u.Role.Permissions)
	return out
}

// UserFilter narrows user listings.
type UserFilter struct {
	Search string // case-insensitive match on name or email
	RoleID string
	Status UserStatus
	Offset int
	Limit  int
}
