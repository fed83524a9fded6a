package adminsdk

import (
	"encoding/json"
	"time"
)

// Response is the envelope wrapped around every API body.
type Response[T any] struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    T                   `json:"data,omitempty"`
	Meta    *PageMeta           `json:"meta,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// PageMeta describes one page of a paginated listing.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ============================================================================
// Auth
// ============================================================================

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /auth/refresh and POST /auth/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthData is returned by login and refresh.
type AuthData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// MeData is returned by GET /auth/me.
type MeData struct {
	User User `json:"user"`
}

// ============================================================================
// Users and roles
// ============================================================================

// User is the public representation of a back-office user. The password
// hash never leaves the server.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	RoleID    *string   `json:"roleId"`
	Role      *Role     `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Role is a named permission set.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Status   string  `json:"status"`
	RoleID   *string `json:"roleId,omitempty"`
}

// UpdateUserRequest is the body of PUT /users/{id}. Nil fields are left
// untouched. ClearRole sends "roleId": null.
type UpdateUserRequest struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Status    *string `json:"status,omitempty"`
	RoleID    *string `json:"roleId,omitempty"`
	ClearRole bool    `json:"-"`
}

// MarshalJSON writes "roleId": null when ClearRole is set.
func (r UpdateUserRequest) MarshalJSON() ([]byte, error) {
	type plain UpdateUserRequest
	if !r.ClearRole {
		return json.Marshal(plain(r))
	}
	return json.Marshal(struct {
		plain
		RoleID *string `json:"roleId"`
	}{plain: plain(r)})
}

// AssignRoleRequest is the body of PUT /users/{id}/role.
type AssignRoleRequest struct {
	RoleID string `json:"roleId"`
}

// CreateRoleRequest is the body of POST /roles.
type CreateRoleRequest struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Permissions []string `json:"permissions"`
}

// UpdateRoleRequest is the body of PUT /roles/{id}.
type UpdateRoleRequest struct {
	Name        *string  `json:"name,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// ListUsersOptions are the query parameters of GET /users.
type ListUsersOptions struct {
	Page   int
	Limit  int
	Search string
	RoleID string
	Status string
}

// ============================================================================
// Dashboard
// ============================================================================

// Activity is one entry of the dashboard activity feed.
type Activity struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details"`
}

// Stats is returned by GET /stats.
type Stats struct {
	UsersCount       int        `json:"usersCount"`
	RolesCount       int        `json:"rolesCount"`
	ActiveUsersCount int        `json:"activeUsersCount"`
	RecentActivities []Activity `json:"recentActivities"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /health, /livez and /readyz.
type HealthResponse struct {
	// Status is "ok" or "degraded".
	Status string `json:"status"`

	Timestamp *time.Time `json:"timestamp,omitempty"`

	// Uptime is the process uptime (e.g. "1h23m45s").
	Uptime  string `json:"uptime,omitempty"`
	Version string `json:"version,omitempty"`

	// Checks is only set by /readyz.
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks holds per-dependency readiness results.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
