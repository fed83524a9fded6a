package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/service"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/store/drivers/sqlite"
	"github.com/aussiebroadwan/backoffice/pkg/jwtx"
	"github.com/aussiebroadwan/backoffice/pkg/metricsx"
	"github.com/stretchr/testify/require"
)

// clock is a settable time source shared by the services and the issuer.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type env struct {
	store   *sqlite.Store
	clock   *clock
	tokens  *jwtx.TokenIssuer
	metrics *metricsx.Metrics
	auth    *service.AuthService
	users   *service.UserService
	roles   *service.RolesService
	stats   *service.StatsService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvAt(t, sqlite.MemoryDSN)
}

// newEnvAt builds an env over the database at path. File-backed stores use a
// connection pool, so transactions really run side by side.
func newEnvAt(t *testing.T, path string) *env {
	t.Helper()

	st, err := sqlite.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	c := &clock{t: time.Now().UTC().Truncate(time.Second)}
	ti, err := jwtx.NewTokenIssuer(jwtx.IssuerConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		Now:           c.Now,
	})
	require.NoError(t, err)

	m := metricsx.New("test")
	return &env{
		store:   st,
		clock:   c,
		tokens:  ti,
		metrics: m,
		auth:    &service.AuthService{Store: st, Tokens: ti, Metrics: m, Now: c.Now},
		users:   &service.UserService{Store: st, Now: c.Now},
		roles:   &service.RolesService{Store: st, Now: c.Now},
		stats:   &service.StatsService{Store: st},
	}
}

func (e *env) role(t *testing.T, slug string, perms ...string) domain.Role {
	t.Helper()
	r, err := e.roles.Create(context.Background(), service.CreateRoleInput{Name: slug, Slug: slug, Permissions: perms})
	require.NoError(t, err)
	return r
}

func (e *env) user(t *testing.T, email, password string, status domain.UserStatus, roleID string) domain.UserWithRole {
	t.Helper()
	var rid *string
	if roleID != "" {
		rid = &roleID
	}
	u, err := e.users.Create(context.Background(), service.CreateUserInput{
		Name: "Test User", Email: email, Password: password, Status: status, RoleID: rid,
	})
	require.NoError(t, err)
	return u
}
