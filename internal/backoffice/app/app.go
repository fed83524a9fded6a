package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/backoffice/internal/backoffice/http"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/service"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/store"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/store/drivers/postgres"
	"github.com/aussiebroadwan/backoffice/internal/backoffice/store/drivers/sqlite"
	"github.com/aussiebroadwan/backoffice/pkg/jwtx"
	"github.com/aussiebroadwan/backoffice/pkg/metricsx"
	"github.com/aussiebroadwan/backoffice/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	metricsNamespace = "backoffice"
)

// Application encapsulates the back-office API with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	tokens  *jwtx.TokenIssuer
	metrics *metricsx.Metrics

	authService  *service.AuthService
	userService  *service.UserService
	rolesService *service.RolesService
	statsService *service.StatsService

	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger for cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "backoffice-api",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New validates cfg, opens and migrates the database, and wires the
// services and HTTP server.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}
	if cfg.InsecureSecrets {
		app.logger.Warn("JWT secrets not configured, using insecure development defaults")
	}

	ctx := context.Background()
	db, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.db = db
	app.logger.Info("database migrations applied successfully", "driver", cfg.DatabaseDriver)

	if err := app.initServices(); err != nil {
		_ = db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// OpenStore opens the configured driver and applies its migrations.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	var (
		db  store.Store
		err error
	)
	switch cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, cfg.DatabaseURL)
	case DriverSQLite:
		db, err = sqlite.NewStore(cfg.DatabaseFile)
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// Handler exposes the fully wired router, mostly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Store exposes the open store.
func (app *Application) Store() store.Store { return app.db }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("backoffice api starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down backoffice api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("backoffice api stopped")
	return nil
}

func (app *Application) initServices() error {
	tokens, err := jwtx.NewTokenIssuer(jwtx.IssuerConfig{
		AccessSecret:  app.cfg.AccessSecret,
		RefreshSecret: app.cfg.RefreshSecret,
		Issuer:        app.cfg.Issuer,
		AccessTTL:     app.cfg.AccessTTL,
		RefreshTTL:    app.cfg.RefreshTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize token issuer: %w", err)
	}
	app.tokens = tokens
	app.metrics = metricsx.New(metricsNamespace)

	app.authService = &service.AuthService{Store: app.db, Tokens: tokens, Metrics: app.metrics}
	app.userService = &service.UserService{Store: app.db}
	app.rolesService = &service.RolesService{Store: app.db}
	app.statsService = &service.StatsService{Store: app.db}
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.tokens, app.db, httpapi.RouterConfig{
		BuildVersion: BuildVersion,
		CORSOrigin:   app.cfg.CORSOrigin,
		Logger:       app.logger,
		Metrics:      app.metrics,
	})

	router.AuthService = app.authService
	router.UserService = app.userService
	router.RolesService = app.rolesService
	router.StatsService = app.statsService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
