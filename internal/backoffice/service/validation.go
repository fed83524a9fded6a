package service

import (
	"math"
	"regexp"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
	"github.com/aussiebroadwan/backoffice/pkg/idx"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Pagination bounds for list endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit inside int for every allowed limit.
	MaxPage = math.MaxInt / MaxLimit
)

// ParsePagination clamps page to 1..MaxPage and limit to 1..MaxLimit,
// substituting defaults for zero values.
func ParsePagination(page, limit int) (int, int) {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	return min(MaxPage, max(1, page)), min(MaxLimit, max(1, limit))
}

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateLogin checks the shape of a login request before any lookup.
func ValidateLogin(email, password string) error {
	fe := fieldErrors{}
	if !IsValidEmail(email) {
		fe.add("email", "Invalid email format")
	}
	if password == "" {
		fe.add("password", "Password is required")
	}
	return fe.err()
}

// ValidateRefreshToken checks that a refresh/logout body carried a token.
func ValidateRefreshToken(token string) error {
	if token == "" {
		return &ValidationError{Fields: map[string][]string{"refreshToken": {"Refresh token is required"}}}
	}
	return nil
}

// ValidateID checks that id is a well formed ULID. field names the id in
// the error, msg is the message reported for it.
func ValidateID(field, id, msg string) error {
	if _, err := idx.Parse(id); err != nil {
		return &ValidationError{Fields: map[string][]string{field: {msg}}}
	}
	return nil
}

func checkName(fe fieldErrors, name string) {
	if len([]rune(name)) < 2 {
		fe.add("name", "Name must be at least 2 characters")
	}
}

func checkEmail(fe fieldErrors, email string) {
	if !IsValidEmail(email) {
		fe.add("email", "Invalid email format")
	}
}

func checkStatus(fe fieldErrors, s domain.UserStatus) {
	if !s.Valid() {
		fe.add("status", "Status must be ACTIVE or INACTIVE")
	}
}

func checkRoleID(fe fieldErrors, id *string) {
	if id == nil || *id == "" {
		return
	}
	if _, err := idx.Parse(*id); err != nil {
		fe.add("roleId", "Invalid role ID")
	}
}

func checkSlug(fe fieldErrors, slug string) {
	if len(slug) < 2 {
		fe.add("slug", "Slug must be at least 2 characters")
	}
	if !domain.IsValidSlug(slug) {
		fe.add("slug", "Slug can only contain lowercase letters, numbers, and hyphens")
	}
}
