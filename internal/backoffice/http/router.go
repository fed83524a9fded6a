package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/service"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/store"
	"github.com/aussiebroadwan/backoffice/pkg/httpx"
	"github.com/aussiebroadwan/backoffice/pkg/jwtx"
	"github.com/aussiebroadwan/backoffice/pkg/metricsx"
	"github.com/aussiebroadwan/backoffice/pkg/slogx"

	_ "github.com/aussiebroadwan/backoffice/api/backoffice" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokens       *jwtx.TokenIssuer
	verifier     jwtx.Verifier
	metrics      *metricsx.Metrics
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService  *service.AuthService
	UserService  *service.UserService
	RolesService *service.RolesService
	StatsService *service.StatsService
}

// RouterConfig carries the values NewRouter needs besides the services.
type RouterConfig struct {
	BuildVersion string
	CORSOrigin   string
	Logger       *slog.Logger
	Metrics      *metricsx.Metrics // optional
}

func NewRouter(tokens *jwtx.TokenIssuer, st store.Store, cfg RouterConfig) *Router {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		tokens:       tokens,
		verifier:     tokens.AccessVerifier(),
		metrics:      cfg.Metrics,
		buildVersion: cfg.BuildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.SecurityHeaders(),
	}
	if cfg.CORSOrigin != "" {
		r.middlewares = append(r.middlewares, httpx.CORS(cfg.CORSOrigin))
	}
	// Innermost so it sees the pattern matched by the mux.
	if r.metrics != nil {
		r.middlewares = append(r.middlewares, r.metrics.Instrument)
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerRoles()
	r.registerDashboard()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
	r.Mux.Handle("/", NotFoundHandler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Back-office API
//	@version		0.1.0
//	@description	Authentication, user and role management for the back-office dashboard.
//	@description
//	@description				Access tokens are HS256 JWTs valid for 15 minutes. Refresh tokens are single use.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/backoffice
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// guard wraps h in authentication and, when perm is set, a permission gate.
func (r *Router) guard(h http.HandlerFunc, perm domain.Permission) http.Handler {
	mw := []httpx.Middleware{httpx.AuthnMiddleware(r.verifier)}
	if perm != "" {
		mw = append(mw, httpx.RequirePermission(string(perm)))
	}
	return httpx.Chain(h, mw...)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	r.Mux.HandleFunc("POST /auth/login", h.HandleLogin)
	r.Mux.HandleFunc("POST /auth/refresh", h.HandleRefresh)
	r.Mux.HandleFunc("POST /auth/logout", h.HandleLogout)
	r.Mux.Handle("GET /auth/me", r.guard(h.HandleMe, ""))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /users", r.guard(h.HandleList, domain.PermUsersRead))
	r.Mux.Handle("GET /users/{id}", r.guard(h.HandleGet, domain.PermUsersRead))
	r.Mux.Handle("POST /users", r.guard(h.HandleCreate, domain.PermUsersCreate))
	r.Mux.Handle("PUT /users/{id}", r.guard(h.HandleUpdate, domain.PermUsersUpdate))
	r.Mux.Handle("DELETE /users/{id}", r.guard(h.HandleDelete, domain.PermUsersDelete))
	r.Mux.Handle("PUT /users/{id}/role", r.guard(h.HandleAssignRole, domain.PermUsersUpdate))
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RolesService: r.RolesService}

	r.Mux.Handle("GET /roles", r.guard(h.HandleList, domain.PermRolesRead))
	r.Mux.Handle("GET /roles/{id}", r.guard(h.HandleGet, domain.PermRolesRead))
	r.Mux.Handle("POST /roles", r.guard(h.HandleCreate, domain.PermRolesCreate))
	r.Mux.Handle("PUT /roles/{id}", r.guard(h.HandleUpdate, domain.PermRolesUpdate))
	r.Mux.Handle("DELETE /roles/{id}", r.guard(h.HandleDelete, domain.PermRolesDelete))
}

func (r *Router) registerDashboard() {
	stats := &StatsHandler{StatsService: r.StatsService}

	r.Mux.Handle("GET /permissions", r.guard(PermissionsHandler(), ""))
	r.Mux.Handle("GET /stats", r.guard(stats.ServeHTTP, ""))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /health", HealthHandler(time.Now))
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.tokens))
	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
