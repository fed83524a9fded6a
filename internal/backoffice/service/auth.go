package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/store"
	"github.com/aussiebroadwan/backoffice/pkg/cryptox"
	"github.com/aussiebroadwan/backoffice/pkg/idx"
	"github.com/aussiebroadwan/backoffice/pkg/jwtx"
	"github.com/aussiebroadwan/backoffice/pkg/metricsx"
	"github.com/aussiebroadwan/backoffice/pkg/slogx"
)

// AuthResult is returned by a successful login or refresh.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         domain.UserWithRole
}

// AuthService orchestrates login, refresh rotation, logout and identity
// lookup on top of the store and the token issuer.
type AuthService struct {
	Store   store.Store
	Tokens  *jwtx.TokenIssuer
	Metrics *metricsx.Metrics // optional

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnPasswordCheck spends the same bcrypt work as a real comparison so an
// unknown email takes as long as a wrong password.
func burnPasswordCheck(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = cryptox.HashPassword("not-a-real-password")
	})
	_, _ = cryptox.VerifyPassword(password, dummyHash)
}

func subjectFor(u domain.UserWithRole) jwtx.Subject {
	return jwtx.Subject{
		UserID:      u.ID,
		Email:       u.Email,
		Permissions: domain.PermissionStrings(u.Permissions()),
	}
}

// issueAndRecord mints a token pair for u and stores the refresh row using
// repo, which may be transaction scoped.
func (s *AuthService) issueAndRecord(
	ctx context.Context,
	repo store.RefreshTokens,
	u domain.UserWithRole,
	now time.Time,
) (jwtx.Pair, error) {
	pair, err := s.Tokens.Issue(subjectFor(u))
	if err != nil {
		return jwtx.Pair{}, err
	}

	err = repo.CreateRefreshToken(ctx, domain.RefreshToken{
		ID:        idx.NewAt(now).String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(pair.RefreshToken),
		ExpiresAt: pair.RefreshExpiresAt,
		CreatedAt: now,
	})
	if err != nil {
		return jwtx.Pair{}, fmt.Errorf("record refresh token: %w", err)
	}
	return pair, nil
}

// Login verifies email and password and issues a fresh token pair. Every
// credential failure is reported as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := slogx.FromContext(ctx)
	now := s.now()

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			burnPasswordCheck(password)
			s.Metrics.AuthEvent("login", false)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// An unreadable hash is logged but answered like a wrong password so
	// callers cannot tell accounts apart by the error they get.
	ok, err := cryptox.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		l.Warn("stored password hash unreadable", slog.String("user_id", user.ID), slog.Any("err", err))
	}
	if !ok || !user.IsActive() {
		l.Info("login rejected", slog.String("user_id", user.ID), slog.String("status", string(user.Status)))
		s.Metrics.AuthEvent("login", false)
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issueAndRecord(ctx, s.Store.RefreshTokens(), user, now)
	if err != nil {
		return nil, err
	}

	s.Metrics.AuthEvent("login", true)
	l.Info("login succeeded", slog.String("user_id", user.ID))
	return &AuthResult{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken, User: user}, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// consumed inside the same transaction that records its successor, so a
// token can be exchanged at most once even under concurrent use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	l := slogx.FromContext(ctx)
	now := s.now()

	claims, err := s.Tokens.VerifyRefresh(refreshToken)
	if err != nil {
		s.Metrics.AuthEvent("refresh", false)
		return nil, ErrInvalidRefresh
	}

	hash := cryptox.FingerprintToken(refreshToken)
	var result *AuthResult

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		row, err := tx.RefreshTokens().GetRefreshTokenByHash(ctx, hash)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}
		if !row.UsableAt(now) || row.UserID != claims.UserID() {
			return ErrInvalidRefresh
		}

		if err := tx.RefreshTokens().ConsumeRefreshToken(ctx, hash, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}

		user, err := tx.Users().GetUserByID(ctx, row.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}
		if !user.IsActive() {
			return ErrInvalidRefresh
		}

		pair, err := s.issueAndRecord(ctx, tx.RefreshTokens(), user, now)
		if err != nil {
			return err
		}

		result = &AuthResult{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken, User: user}
		return nil
	})
	if err != nil {
		s.Metrics.AuthEvent("refresh", false)
		if errors.Is(err, ErrInvalidRefresh) {
			l.Info("refresh rejected", slog.String("user_id", claims.UserID()))
		}
		return nil, err
	}

	s.Metrics.AuthEvent("refresh", true)
	return result, nil
}

// Logout revokes the given refresh token. Unknown or already revoked tokens
// succeed without changes.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	err := s.Store.RefreshTokens().RevokeRefreshToken(ctx, cryptox.FingerprintToken(refreshToken), s.now())
	s.Metrics.AuthEvent("logout", err == nil)
	return err
}

// GetMe returns the current record for userID, with its role.
func (s *AuthService) GetMe(ctx context.Context, userID string) (domain.UserWithRole, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserWithRole{}, ErrUserNotFound
		}
		return domain.UserWithRole{}, err
	}
	return u, nil
}
