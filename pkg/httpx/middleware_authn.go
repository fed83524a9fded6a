package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/backoffice/pkg/jwtx"
	"github.com/aussiebroadwan/backoffice/pkg/slogx"
)

const (
	MsgUnauthorized = "Unauthorized"
	MsgInvalidToken = "Invalid or expired token"
)

// AuthnMiddleware requires a valid "Authorization: Bearer <token>" header and
// stores the verified claims in the request context.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, MsgUnauthorized)
				return
			}
			raw := strings.TrimPrefix(authz, "Bearer ")

			claims, err := v.Verify(raw)
			if err != nil {
				slogx.FromContext(ctx).Debug("access token rejected", "err", err)
				writeBearerError(w, MsgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(ctx, claims)))
		})
	}
}

// RFC 6750 style challenge with the JSON envelope as body.
func writeBearerError(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteError(w, http.StatusUnauthorized, msg)
}
