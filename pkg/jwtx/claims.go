package jwtx

import (
	"slices"
	"time"

	"github.com/aussiebroadwan/backoffice/pkg/cryptox"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants.
const (
	// DefaultAccessTokenTTL is the lifetime of access tokens.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the lifetime of refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims is the payload carried by both access and refresh tokens. The
// subject holds the user id; Permissions is a snapshot taken at issue time
// and is never refreshed for the life of the token.
type Claims struct {
	jwt.RegisteredClaims

	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
}

// Subject is the identity a token is minted for.
type Subject struct {
	UserID      string
	Email       string
	Permissions []string
}

// NewClaims builds claims for sub valid from now for ttl.
func NewClaims(sub Subject, issuer string, ttl time.Duration, now time.Time) Claims {
	perms := make([]string, len(sub.Permissions))
	copy(perms, sub.Permissions)

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email:       sub.Email,
		Permissions: perms,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. Two
// tokens minted in the same second for the same user still differ.
func NewJTI() string {
	jti, err := cryptox.GenerateToken(cryptox.TokenSize)
	if err != nil {
		// crypto/rand does not fail on supported platforms.
		panic(err)
	}
	return jti
}

// UserID is the token subject.
func (c *Claims) UserID() string { return c.Subject }

// HasPermission reports whether p is in the snapshot.
func (c *Claims) HasPermission(p string) bool {
	return slices.Contains(c.Permissions, p)
}

// HasAnyPermission reports whether at least one of ps is in the snapshot.
func (c *Claims) HasAnyPermission(ps ...string) bool {
	return slices.ContainsFunc(ps, c.HasPermission)
}
