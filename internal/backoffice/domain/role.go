package domain

import (
	"regexp"
	"time"
)

type Role struct {
	ID          string
	Name        string
	Slug        string
	Permissions []Permission // always registry members
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// IsValidSlug reports whether s only holds lowercase letters, digits and hyphens.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
