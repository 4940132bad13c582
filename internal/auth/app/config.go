package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/auth/service"
	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeep/pkg/jwtx"
)

// Supported AUTH_DATABASE_DRIVER values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Bounds on AUTH_REFRESH_TOKEN_LENGTH.
const (
	MinRefreshTokenLength = 16
	MaxRefreshTokenLength = 512
)

type Config struct {
	Issuer     string // Optional: issuer claim for tokens (default: gatekeep-auth)
	Audience   string // Optional: audience claim for tokens (default: gatekeep-api)
	SigningKey []byte // Required: HMAC key for HS256, at least 32 bytes

	AccessTokenTTL     time.Duration // Optional: access token lifespan (default: 20m)
	RefreshTokenTTL    time.Duration // Optional: refresh token lifespan (default: 168h)
	RefreshTokenLength int           // Optional: refresh code length, 16 to 512 (default: 64)
	HashIterations     int           // Optional: PBKDF2 iterations, at least 10000 (default: 10000)
	PepperFile         string        // Optional: path to file containing pepper for password hashing (default: ./pepper)

	DatabaseDriver string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./auth.db)
	DatabaseURL    string // Required for postgres: connection URL

	CookieSecure bool // Optional: Secure flag on token cookies (default: true)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads the service configuration from the environment. Every
// invalid value is reported in the returned error.
func LoadConfig() (Config, error) {
	cfg, errs := parseEnv()
	errs = append(errs, cfg.Validate())
	return cfg, errors.Join(errs...)
}

// LoadAdminConfig is LoadConfig for tools that only touch the database and
// never sign tokens, so AUTH_SIGNING_KEY is not required.
func LoadAdminConfig() (Config, error) {
	cfg, errs := parseEnv()
	errs = append(errs, cfg.validateStorage())
	return cfg, errors.Join(errs...)
}

func parseEnv() (Config, []error) {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	cfg := Config{
		Issuer:         getEnvOrDefault("AUTH_ISSUER", "gatekeep-auth"),
		Audience:       getEnvOrDefault("AUTH_AUDIENCE", "gatekeep-api"),
		SigningKey:     []byte(os.Getenv("AUTH_SIGNING_KEY")),
		PepperFile:     getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		DatabaseDriver: strings.ToLower(getEnvOrDefault("AUTH_DATABASE_DRIVER", DriverSQLite)),
		DatabaseFile:   getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		DatabaseURL:    os.Getenv("AUTH_DATABASE_URL"),
		Env:            getEnvOrDefault("ENV", "dev"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "json"),
	}

	var err error
	cfg.AccessTokenTTL, err = getEnvDurationOrDefault("AUTH_ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL)
	collect(err)
	cfg.RefreshTokenTTL, err = getEnvDurationOrDefault("AUTH_REFRESH_TOKEN_TTL", service.DefaultRefreshTTL)
	collect(err)
	cfg.RefreshTokenLength, err = getEnvIntOrDefault("AUTH_REFRESH_TOKEN_LENGTH", service.DefaultRefreshLength)
	collect(err)
	cfg.HashIterations, err = getEnvIntOrDefault("AUTH_HASH_ITERATIONS", cryptox.MinimumIterations)
	collect(err)
	cfg.CookieSecure, err = getEnvBoolOrDefault("AUTH_COOKIE_SECURE", true)
	collect(err)
	cfg.Port, err = getEnvIntOrDefault("PORT", 8080)
	collect(err)
	cfg.ShutdownGracePeriod, err = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second)
	collect(err)
	cfg.HousekeepingInterval, err = getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour)
	collect(err)

	return cfg, errs
}

// Validate checks every setting the HTTP service depends on.
func (cfg Config) Validate() error {
	return errors.Join(cfg.validateTokens(), cfg.validateStorage())
}

func (cfg Config) validateTokens() error {
	var errs []error

	if len(cfg.SigningKey) == 0 {
		errs = append(errs, errors.New("AUTH_SIGNING_KEY is required"))
	} else if len(cfg.SigningKey) < jwtx.MinSymmetricKeyLength {
		errs = append(errs, fmt.Errorf("AUTH_SIGNING_KEY must be at least %d bytes", jwtx.MinSymmetricKeyLength))
	}

	if cfg.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("AUTH_ACCESS_TOKEN_TTL must be positive"))
	}
	if cfg.RefreshTokenTTL <= 0 {
		errs = append(errs, errors.New("AUTH_REFRESH_TOKEN_TTL must be positive"))
	}
	if cfg.RefreshTokenLength < MinRefreshTokenLength || cfg.RefreshTokenLength > MaxRefreshTokenLength {
		errs = append(errs, fmt.Errorf("AUTH_REFRESH_TOKEN_LENGTH must be between %d and %d",
			MinRefreshTokenLength, MaxRefreshTokenLength))
	}

	return errors.Join(errs...)
}

func (cfg Config) validateStorage() error {
	var errs []error

	if cfg.HashIterations < cryptox.MinimumIterations {
		errs = append(errs, fmt.Errorf("AUTH_HASH_ITERATIONS must be at least %d", cryptox.MinimumIterations))
	}

	switch cfg.DatabaseDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_DATABASE_DRIVER %q is not supported", cfg.DatabaseDriver))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %q is not an integer", key, value)
	}
	return intValue, nil
}

func getEnvBoolOrDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %q is not a boolean", key, value)
	}
	return b, nil
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration, nil
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute, nil
	}

	return defaultValue, fmt.Errorf("%s: %q is not a duration", key, value)
}
