package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/service"
	"github.com/aussiebroadwan/backoffice/pkg/cryptox"
	"github.com/aussiebroadwan/backoffice/pkg/jwtx"
	"github.com/aussiebroadwan/backoffice/pkg/metricsx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	viewer := e.role(t, "viewer", "users.read", "roles.read")
	active := e.user(t, "jane@example.com", "Secret123!", domain.UserStatusActive, viewer.ID)
	e.user(t, "bob@example.com", "Secret123!", domain.UserStatusInactive, viewer.ID)
	e.user(t, "norole@example.com", "Secret123!", domain.UserStatusActive, "")

	t.Run("success issues tokens and records refresh row", func(t *testing.T) {
		res, err := e.auth.Login(ctx, "jane@example.com", "Secret123!")
		require.NoError(t, err)
		require.Equal(t, active.ID, res.User.ID)

		claims, err := e.tokens.VerifyAccess(res.AccessToken)
		require.NoError(t, err)
		require.Equal(t, active.ID, claims.UserID())
		require.Equal(t, "jane@example.com", claims.Email)
		require.Equal(t, []string{"users.read", "roles.read"}, claims.Permissions)

		row, err := e.store.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(res.RefreshToken))
		require.NoError(t, err)
		require.Nil(t, row.RevokedAt)
		require.WithinDuration(t, e.clock.Now().Add(7*24*time.Hour), row.ExpiresAt, time.Second)
	})

	t.Run("user without role gets empty permissions", func(t *testing.T) {
		res, err := e.auth.Login(ctx, "norole@example.com", "Secret123!")
		require.NoError(t, err)
		claims, err := e.tokens.VerifyAccess(res.AccessToken)
		require.NoError(t, err)
		require.Empty(t, claims.Permissions)
	})

	failures := []struct {
		name, email, password string
	}{
		{"unknown email", "ghost@example.com", "Secret123!"},
		{"wrong password", "jane@example.com", "wrong"},
		{"inactive user with correct password", "bob@example.com", "Secret123!"},
		{"email case differs", "JANE@example.com", "Secret123!"},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.auth.Login(ctx, tt.email, tt.password)
			require.ErrorIs(t, err, service.ErrInvalidCredentials)
			require.Nil(t, res)
		})
	}

	require.Equal(t, float64(4), testutil.ToFloat64(e.metrics.AuthEvents().WithLabelValues("login", metricsx.OutcomeFailure)))
}

func TestLogin_UnreadableHashLooksLikeWrongPassword(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	now := time.Now().UTC()
	require.NoError(t, e.store.Users().CreateUser(ctx, domain.User{
		ID: "01HZZZZZZZZZZZZZZZZZZZZZZZ", Name: "Broken", Email: "broken@example.com",
		PasswordHash: "not-a-bcrypt-hash", Status: domain.UserStatusActive,
		CreatedAt: now, UpdatedAt: now,
	}))

	_, err := e.auth.Login(ctx, "broken@example.com", "anything")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLogin_SnapshotIgnoresLaterRoleEdits(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	role := e.role(t, "editor", "users.read", "users.update")
	e.user(t, "ed@example.com", "Secret123!", domain.UserStatusActive, role.ID)

	res, err := e.auth.Login(ctx, "ed@example.com", "Secret123!")
	require.NoError(t, err)

	_, err = e.roles.Update(ctx, role.ID, service.UpdateRoleInput{Permissions: []string{}})
	require.NoError(t, err)

	claims, err := e.tokens.VerifyAccess(res.AccessToken)
	require.NoError(t, err)
	require.Equal(t, []string{"users.read", "users.update"}, claims.Permissions)

	// A refresh picks up the new, empty permission set.
	next, err := e.auth.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	claims, err = e.tokens.VerifyAccess(next.AccessToken)
	require.NoError(t, err)
	require.Empty(t, claims.Permissions)
}

func TestRefresh_Rotation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.user(t, "jane@example.com", "Secret123!", domain.UserStatusActive, "")

	login, err := e.auth.Login(ctx, "jane@example.com", "Secret123!")
	require.NoError(t, err)

	e.clock.Advance(time.Minute)
	next, err := e.auth.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, login.RefreshToken, next.RefreshToken)
	require.NotEqual(t, login.AccessToken, next.AccessToken)

	old, err := e.store.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(login.RefreshToken))
	require.NoError(t, err)
	require.NotNil(t, old.RevokedAt)

	t.Run("old token is single use", func(t *testing.T) {
		_, err := e.auth.Refresh(ctx, login.RefreshToken)
		require.ErrorIs(t, err, service.ErrInvalidRefresh)
	})

	t.Run("new token still works", func(t *testing.T) {
		_, err := e.auth.Refresh(ctx, next.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := e.auth.Refresh(ctx, next.AccessToken)
		require.ErrorIs(t, err, service.ErrInvalidRefresh)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := e.auth.Refresh(ctx, "garbage")
		require.ErrorIs(t, err, service.ErrInvalidRefresh)
	})
}

func TestRefresh_ValidSignatureButNeverRecorded(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "jane@example.com", "Secret123!", domain.UserStatusActive, "")

	tok, _, err := e.tokens.IssueRefresh(jwtx.Subject{UserID: u.ID, Email: u.Email})
	require.NoError(t, err)

	_, err = e.auth.Refresh(ctx, tok)
	require.ErrorIs(t, err, service.ErrInvalidRefresh)
}

func TestRefresh_ExpiredOneSecondAgo(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.user(t, "jane@example.com", "Secret123!", domain.UserStatusActive, "")

	login, err := e.auth.Login(ctx, "jane@example.com", "Secret123!")
	require.NoError(t, err)

	e.clock.Advance(jwtx.DefaultRefreshTokenTTL + time.Second)
	_, err = e.auth.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, service.ErrInvalidRefresh)

	row, err := e.store.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(login.RefreshToken))
	require.NoError(t, err)
	require.Nil(t, row.RevokedAt, "a rejected refresh must not mutate state")
}

func TestRefresh_InactiveUserCannotRefresh(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "jane@example.com", "Secret123!", domain.UserStatusActive, "")

	login, err := e.auth.Login(ctx, "jane@example.com", "Secret123!")
	require.NoError(t, err)

	inactive := domain.UserStatusInactive
	_, err = e.users.Update(ctx, u.ID, service.UpdateUserInput{Status: &inactive})
	require.NoError(t, err)

	_, err = e.auth.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, service.ErrInvalidRefresh)

	row, err := e.store.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(login.RefreshToken))
	require.NoError(t, err)
	require.Nil(t, row.RevokedAt, "the consume is rolled back with the rest of the rotation")
}

func TestRefresh_ConcurrentUseExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.user(t, "jane@example.com", "Secret123!", domain.UserStatusActive, "")

	login, err := e.auth.Login(ctx, "jane@example.com", "Secret123!")
	require.NoError(t, err)

	const n = 10
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		wins     int
		rejected int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.auth.Refresh(ctx, login.RefreshToken)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, service.ErrInvalidRefresh):
				rejected++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, wins)
	require.Equal(t, n-1, rejected)
}

func TestRefresh_ConcurrentUseOnFileStore(t *testing.T) {
	ctx := context.Background()
	e := newEnvAt(t, filepath.Join(t.TempDir(), "backoffice.db"))
	e.user(t, "jane@example.com", "Secret123!", domain.UserStatusActive, "")

	for round := range 5 {
		login, err := e.auth.Login(ctx, "jane@example.com", "Secret123!")
		require.NoError(t, err)

		const n = 20
		var (
			wg    sync.WaitGroup
			start = make(chan struct{})
			errs  = make([]error, n)
		)
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, errs[i] = e.auth.Refresh(ctx, login.RefreshToken)
			}()
		}
		close(start)
		wg.Wait()

		wins, rejected := 0, 0
		for _, err := range errs {
			switch {
			case err == nil:
				wins++
			case errors.Is(err, service.ErrInvalidRefresh):
				rejected++
			default:
				t.Fatalf("round %d: unexpected error: %v", round, err)
			}
		}
		require.Equal(t, 1, wins, "round %d", round)
		require.Equal(t, n-1, rejected, "round %d", round)
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.user(t, "jane@example.com", "Secret123!", domain.UserStatusActive, "")

	login, err := e.auth.Login(ctx, "jane@example.com", "Secret123!")
	require.NoError(t, err)

	require.NoError(t, e.auth.Logout(ctx, login.RefreshToken))
	row, err := e.store.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(login.RefreshToken))
	require.NoError(t, err)
	require.NotNil(t, row.RevokedAt)
	first := *row.RevokedAt

	e.clock.Advance(time.Minute)
	require.NoError(t, e.auth.Logout(ctx, login.RefreshToken), "second logout is a no-op")
	require.NoError(t, e.auth.Logout(ctx, "never-issued"))

	row, err = e.store.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(login.RefreshToken))
	require.NoError(t, err)
	require.True(t, row.RevokedAt.Equal(first))

	_, err = e.auth.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, service.ErrInvalidRefresh)
}

func TestGetMe(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "jane@example.com", "Secret123!", domain.UserStatusActive, "")

	got, err := e.auth.GetMe(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", got.Email)

	require.NoError(t, e.users.Delete(ctx, u.ID))
	_, err = e.auth.GetMe(ctx, u.ID)
	require.ErrorIs(t, err, service.ErrUserNotFound)
}
