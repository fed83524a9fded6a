package domain

import "time"

// RefreshTokenTTL is the lifetime of a stored refresh-token row. It is the
// same value the signed refresh token carries in its exp claim.
const RefreshTokenTTL = 7 * 24 * time.Hour

// RefreshToken models the stored refresh token record in the DB. Rows are
// never deleted by the service; RevokedAt is set exactly once.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// UsableAt reports whether the row can still be exchanged at now: not revoked
// and expiring strictly after now.
func (t RefreshToken) UsableAt(now time.Time) bool {
	return t.RevokedAt == nil && t.ExpiresAt.After(now)
}

// TokenPair is what login and refresh hand back to the caller.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
