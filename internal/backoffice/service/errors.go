package service

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrInvalidCredentials covers unknown email, inactive user and wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrInvalidRefresh covers every refresh rejection: bad signature,
	// expiry, unknown, revoked or reused token, missing or inactive user.
	ErrInvalidRefresh = errors.New("invalid_refresh_token")

	ErrUserNotFound = errors.New("user_not_found")
	ErrRoleNotFound = errors.New("role_not_found")
)

// ValidationError lists per-field problems with caller input.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	return "validation failed: " + strings.Join(keys, ", ")
}

// fieldErrors accumulates messages and converts to a *ValidationError.
type fieldErrors map[string][]string

func (f fieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
