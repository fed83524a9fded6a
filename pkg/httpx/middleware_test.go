package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/backoffice/pkg/httpx"
	"github.com/aussiebroadwan/backoffice/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newIssuer(t *testing.T) *jwtx.TokenIssuer {
	t.Helper()
	ti, err := jwtx.NewTokenIssuer(jwtx.IssuerConfig{AccessSecret: "a-secret", RefreshSecret: "r-secret"})
	require.NoError(t, err)
	return ti
}

func bearer(t *testing.T, ti *jwtx.TokenIssuer, perms ...string) string {
	t.Helper()
	tok, err := ti.IssueAccess(jwtx.Subject{UserID: "u1", Email: "u1@example.com", Permissions: perms})
	require.NoError(t, err)
	return "Bearer " + tok
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) httpx.Envelope {
	t.Helper()
	var env httpx.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("first"), mw("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestAuthzGates(t *testing.T) {
	ti := newIssuer(t)
	reached := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		claims, ok := httpx.ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "u1", httpx.UserIDFromContext(r.Context()))
		require.Equal(t, "u1@example.com", claims.Email)
		w.WriteHeader(http.StatusNoContent)
	})

	deleteGate := httpx.Chain(handler,
		httpx.AuthnMiddleware(ti.AccessVerifier()),
		httpx.RequirePermission("users.delete"),
	)
	anyGate := httpx.Chain(handler,
		httpx.AuthnMiddleware(ti.AccessVerifier()),
		httpx.RequireAnyPermission("roles.create", "roles.update"),
	)

	tests := []struct {
		name    string
		h       http.Handler
		auth    string
		code    int
		message string
	}{
		{"no header", deleteGate, "", http.StatusUnauthorized, "Unauthorized"},
		{"not bearer", deleteGate, "Basic Zm9vOmJhcg==", http.StatusUnauthorized, "Unauthorized"},
		{"bad token", deleteGate, "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
		{"missing permission", deleteGate, bearer(t, ti, "users.read", "roles.read"), http.StatusForbidden, "Missing permission: users.delete"},
		{"has permission", deleteGate, bearer(t, ti, "users.delete"), http.StatusNoContent, ""},
		{"any: none held", anyGate, bearer(t, ti, "users.read"), http.StatusForbidden, "Insufficient permissions"},
		{"any: one held", anyGate, bearer(t, ti, "roles.update"), http.StatusNoContent, ""},
		{"any: bad token beats missing permission", anyGate, "Bearer x.y.z", http.StatusUnauthorized, "Invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			tt.h.ServeHTTP(rec, req)

			require.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusNoContent {
				require.True(t, reached)
				return
			}
			require.False(t, reached, "handler must not run on rejection")
			env := decode(t, rec)
			require.False(t, env.Success)
			require.Equal(t, tt.message, env.Message)
		})
	}
}

func TestRequirePermission_WithoutAuthn(t *testing.T) {
	h := httpx.Chain(http.NotFoundHandler(), httpx.RequirePermission("users.read"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthn_ExpiredToken(t *testing.T) {
	now := time.Now()
	ti, err := jwtx.NewTokenIssuer(jwtx.IssuerConfig{
		AccessSecret: "a", RefreshSecret: "r",
		Now: func() time.Time { return now },
	})
	require.NoError(t, err)
	auth := bearer(t, ti, "users.read")
	now = now.Add(jwtx.DefaultAccessTokenTTL + time.Second)

	h := httpx.Chain(http.NotFoundHandler(), httpx.AuthnMiddleware(ti.AccessVerifier()))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", auth)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid or expired token", decode(t, rec).Message)
}

func TestCORS(t *testing.T) {
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), httpx.CORS("http://localhost:5173"))

	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewPageMeta(t *testing.T) {
	require.Equal(t, 3, httpx.NewPageMeta(1, 10, 21).TotalPages)
	require.Equal(t, 0, httpx.NewPageMeta(1, 10, 0).TotalPages)
	require.Equal(t, 1, httpx.NewPageMeta(1, 10, 10).TotalPages)
}
