package httpx

import (
	"net/http"
	"strings"
)

const MsgInsufficientPermissions = "Insufficient permissions"

// RequirePermission lets the request through only if the caller's token
// carries p. It must run after AuthnMiddleware; without claims it answers 401.
func RequirePermission(p string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				WriteError(w, http.StatusUnauthorized, MsgUnauthorized)
				return
			}
			if !claims.HasPermission(p) {
				writeForbidden(w, "Missing permission: "+p, p)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyPermission lets the request through if the caller holds at
// least one of ps.
func RequireAnyPermission(ps ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				WriteError(w, http.StatusUnauthorized, MsgUnauthorized)
				return
			}
			if !claims.HasAnyPermission(ps...) {
				writeForbidden(w, MsgInsufficientPermissions, ps...)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeForbidden(w http.ResponseWriter, msg string, required ...string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(required, " ")+`"`)
	WriteError(w, http.StatusForbidden, msg)
}
