package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/store/drivers/sqlite"
	"github.com/aussiebroadwan/backoffice/pkg/adminsdk"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"15m": 15 * time.Minute,
		"7d":  7 * 24 * time.Hour,
		"1h":  time.Hour,
		"30":  30 * time.Minute,
	}
	for in, want := range cases {
		got, err := parseDuration(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := parseDuration("soon")
	require.Error(t, err)
	_, err = parseDuration("xd")
	require.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"ENV", "PORT", "DATABASE_DRIVER", "JWT_ACCESS_EXPIRATION", "JWT_REFRESH_EXPIRATION", "CORS_ORIGIN"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, 15*time.Minute, cfg.AccessTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	require.Equal(t, "http://localhost:5173", cfg.CORSOrigin)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("JWT_REFRESH_EXPIRATION", "30d")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "bogus")

	cfg := LoadConfig()
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, 30*24*time.Hour, cfg.RefreshTTL)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}

func TestLoadConfig_MalformedTokenLifetime(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRATION", "15x")
	t.Setenv("JWT_REFRESH_EXPIRATION", "")

	cfg := LoadConfig()
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_ACCESS_EXPIRATION")
	require.Contains(t, err.Error(), `"15x"`)

	t.Setenv("JWT_ACCESS_EXPIRATION", "")
	t.Setenv("JWT_REFRESH_EXPIRATION", "weekly")
	cfg = LoadConfig()
	err = cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_REFRESH_EXPIRATION")
}

func validConfig() Config {
	return Config{
		Env:            "dev",
		DatabaseDriver: DriverSQLite,
		DatabaseFile:   sqlite.MemoryDSN,
		AccessTTL:      15 * time.Minute,
		RefreshTTL:     time.Hour,
		Issuer:         "backoffice",
	}
}

func TestValidate(t *testing.T) {
	t.Run("dev fills placeholder secrets", func(t *testing.T) {
		cfg := validConfig()
		require.NoError(t, cfg.Validate())
		require.True(t, cfg.InsecureSecrets)
		require.NotEmpty(t, cfg.AccessSecret)
		require.NotEqual(t, cfg.AccessSecret, cfg.RefreshSecret)
	})

	t.Run("production requires secrets", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		require.ErrorIs(t, cfg.Validate(), ErrMissingSecrets)

		cfg.AccessSecret, cfg.RefreshSecret = "same", "same"
		require.ErrorIs(t, cfg.Validate(), ErrSharedSecret)

		cfg.RefreshSecret = "different"
		require.NoError(t, cfg.Validate())
		require.False(t, cfg.InsecureSecrets)
	})

	t.Run("postgres requires url", func(t *testing.T) {
		cfg := validConfig()
		cfg.DatabaseDriver = DriverPostgres
		require.Error(t, cfg.Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := validConfig()
		cfg.DatabaseDriver = "mysql"
		require.Error(t, cfg.Validate())
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		cfg := validConfig()
		cfg.AccessTTL = 0
		require.Error(t, cfg.Validate())
	})
}

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	st, err := OpenStore(ctx, validConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	res, err := Seed(ctx, st, logger)
	require.NoError(t, err)
	require.Equal(t, SeedResult{RolesCreated: 3, UsersCreated: 4}, res)

	res, err = Seed(ctx, st, logger)
	require.NoError(t, err)
	require.Zero(t, res.RolesCreated)
	require.Zero(t, res.UsersCreated)

	admin, err := st.Users().GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, admin.Role)
	require.Equal(t, "super-admin", admin.Role.Slug)
	require.Len(t, admin.Permissions(), 8)

	bob, err := st.Users().GetUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.False(t, bob.IsActive())
}

func TestApplication_Handler(t *testing.T) {
	application, err := New(validConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Store().Close() })

	_, err = Seed(context.Background(), application.Store(), application.logger)
	require.NoError(t, err)

	body, _ := json.Marshal(adminsdk.LoginRequest{Email: "admin@example.com", Password: "Admin123!"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp adminsdk.Response[adminsdk.AuthData]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Data.AccessToken)
	require.Equal(t, "admin@example.com", resp.Data.User.Email)

	req = httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec = httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseDriver = ""
	_, err := New(cfg)
	require.Error(t, err)
}
