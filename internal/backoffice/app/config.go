package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/backoffice/pkg/jwtx"
)

// Supported DATABASE_DRIVER values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Placeholder secrets used outside production when none are configured.
const (
	devAccessSecret  = "insecure-dev-access-secret-do-not-use-in-production"
	devRefreshSecret = "insecure-dev-refresh-secret-do-not-use-in-production"
)

var (
	ErrMissingSecrets = errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set in production")
	ErrSharedSecret   = errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ in production")
)

type Config struct {
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	Port                int           // HTTP server port (default: 3000)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	DatabaseDriver      string        // sqlite or postgres (default: sqlite)
	DatabaseFile        string        // SQLite database path (default: ./backoffice.db)
	DatabaseURL         string        // Postgres connection string, required for postgres
	AccessSecret        string        // HMAC secret for access tokens
	RefreshSecret       string        // HMAC secret for refresh tokens, must differ from AccessSecret
	AccessTTL           time.Duration // Access token lifetime (default: 15m)
	RefreshTTL          time.Duration // Refresh token lifetime (default: 7d)
	Issuer              string        // iss claim (default: backoffice)
	CORSOrigin          string        // Allowed browser origins, comma separated (default: http://localhost:5173)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	// InsecureSecrets is set by Validate when dev placeholders were filled in.
	InsecureSecrets bool

	// loadErr holds values LoadConfig could not parse; Validate reports it.
	loadErr error
}

func LoadConfig() Config {
	accessTTL, accessErr := getEnvDuration("JWT_ACCESS_EXPIRATION", jwtx.DefaultAccessTokenTTL)
	refreshTTL, refreshErr := getEnvDuration("JWT_REFRESH_EXPIRATION", jwtx.DefaultRefreshTokenTTL)

	return Config{
		Env:                 getEnvOrDefault("ENV", "dev"),
		Port:                getEnvIntOrDefault("PORT", 3000),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		DatabaseDriver:      strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", DriverSQLite)),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "backoffice.db"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		AccessSecret:        os.Getenv("JWT_ACCESS_SECRET"),
		RefreshSecret:       os.Getenv("JWT_REFRESH_SECRET"),
		AccessTTL:           accessTTL,
		RefreshTTL:          refreshTTL,
		Issuer:              getEnvOrDefault("JWT_ISSUER", "backoffice"),
		CORSOrigin:          getEnvOrDefault("CORS_ORIGIN", "http://localhost:5173"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		loadErr:             errors.Join(accessErr, refreshErr),
	}
}

// IsProduction reports whether Env names a production deployment.
func (c Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

// Validate checks the configuration. Outside production, missing token
// secrets are replaced with placeholders and InsecureSecrets is set.
func (c *Config) Validate() error {
	if c.loadErr != nil {
		return c.loadErr
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			return errors.New("DATABASE_FILE must not be empty")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when DATABASE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}

	if c.IsProduction() {
		if c.AccessSecret == "" || c.RefreshSecret == "" {
			return ErrMissingSecrets
		}
		if c.AccessSecret == c.RefreshSecret {
			return ErrSharedSecret
		}
		return nil
	}

	if c.AccessSecret == "" {
		c.AccessSecret = devAccessSecret
		c.InsecureSecrets = true
	}
	if c.RefreshSecret == "" {
		c.RefreshSecret = devRefreshSecret
		c.InsecureSecrets = true
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	d, _ := getEnvDuration(key, defaultValue)
	return d
}

// getEnvDuration is getEnvDurationOrDefault that also reports a value it
// could not parse.
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := parseDuration(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// parseDuration accepts time.ParseDuration syntax plus a whole-day suffix
// ("7d") and bare integers as minutes.
func parseDuration(value string) (time.Duration, error) {
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}

	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute, nil
	}

	return 0, fmt.Errorf("invalid duration %q", value)
}
