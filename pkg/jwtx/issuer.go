package jwtx

import (
	"errors"
	"fmt"
	"time"
)

// TokenIssuer mints and checks the access/refresh pair. The two kinds are
// signed with different secrets so neither verifies as the other.
type TokenIssuer struct {
	access          Signer
	refresh         Signer
	accessVerifier  Verifier
	refreshVerifier Verifier

	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

// IssuerConfig wires a TokenIssuer.
type IssuerConfig struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Now           func() time.Time
}

// NewTokenIssuer builds a TokenIssuer, filling zero TTLs with the defaults.
func NewTokenIssuer(cfg IssuerConfig) (*TokenIssuer, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("jwtx: access and refresh secrets are required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTokenTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTokenTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	ti := &TokenIssuer{
		access:     NewSignerHS256([]byte(cfg.AccessSecret)),
		refresh:    NewSignerHS256([]byte(cfg.RefreshSecret)),
		Issuer:     cfg.Issuer,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
		Now:        cfg.Now,
	}
	// Verifiers read the clock through ti so Now can be swapped later.
	clock := func() time.Time { return ti.Now() }
	ti.accessVerifier = NewVerifierHS256([]byte(cfg.AccessSecret), cfg.Issuer, clock)
	ti.refreshVerifier = NewVerifierHS256([]byte(cfg.RefreshSecret), cfg.Issuer, clock)
	return ti, nil
}

// IssueAccess signs a short-lived access token for sub.
func (t *TokenIssuer) IssueAccess(sub Subject) (string, error) {
	tok, err := t.access.Sign(NewClaims(sub, t.Issuer, t.AccessTTL, t.Now()))
	if err != nil {
		return "", fmt.Errorf("jwtx: sign access token: %w", err)
	}
	return tok, nil
}

// IssueRefresh signs a refresh token for sub and returns its expiry.
func (t *TokenIssuer) IssueRefresh(sub Subject) (string, time.Time, error) {
	claims := NewClaims(sub, t.Issuer, t.RefreshTTL, t.Now())
	tok, err := t.refresh.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwtx: sign refresh token: %w", err)
	}
	return tok, claims.ExpiresAt.Time, nil
}

// VerifyAccess checks an access token. Any failure is ErrInvalidToken.
func (t *TokenIssuer) VerifyAccess(token string) (Claims, error) {
	return t.accessVerifier.Verify(token)
}

// VerifyRefresh checks a refresh token. Any failure is ErrInvalidToken.
func (t *TokenIssuer) VerifyRefresh(token string) (Claims, error) {
	return t.refreshVerifier.Verify(token)
}

// Pair is a freshly minted access/refresh token pair.
type Pair struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Issue mints both tokens for sub.
func (t *TokenIssuer) Issue(sub Subject) (Pair, error) {
	access, err := t.IssueAccess(sub)
	if err != nil {
		return Pair{}, err
	}
	refresh, exp, err := t.IssueRefresh(sub)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh, RefreshExpiresAt: exp}, nil
}

// AccessVerifier exposes the access-token verifier for middleware.
func (t *TokenIssuer) AccessVerifier() Verifier { return t.accessVerifier }
