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

	httpapi "github.com/aussiebroadwan/gatekeep/internal/auth/http"
	"github.com/aussiebroadwan/gatekeep/internal/auth/service"
	"github.com/aussiebroadwan/gatekeep/internal/auth/store"
	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeep/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/oops"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	hasher   *cryptox.Hasher
	signer   *jwtx.HS256Signer
	verifier *jwtx.HS256Verifier
	registry *prometheus.Registry
	metrics  *service.Metrics

	// Services
	tokenService        *service.TokenService
	accountService      *service.AccountService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, oops.Code("INVALID_CONFIG").Wrap(err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "gatekeep-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initCrypto(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initMetrics()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the HTTP handler serving every route.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	return app.Close()
}

// Close releases the database. Use it when the application was built but
// never run, e.g. in tests.
func (app *Application) Close() error {
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase() error {
	db, err := OpenStore(context.Background(), app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initCrypto loads the pepper and builds the hasher and token keys
func (app *Application) initCrypto() error {
	var err error
	app.hasher, err = NewHasher(app.cfg)
	if err != nil {
		return err
	}

	app.signer, err = jwtx.NewSignerHS256(app.cfg.SigningKey)
	if err != nil {
		return oops.Code("SIGNER_INIT_FAILED").Wrap(err)
	}
	app.verifier = jwtx.NewVerifierHS256(app.cfg.SigningKey, jwtx.VerifyOptions{
		Issuer:   app.cfg.Issuer,
		Audience: []string{app.cfg.Audience},
	})

	return nil
}

// initMetrics builds a private registry so tests can create several
// applications in one process
func (app *Application) initMetrics() {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = service.NewMetrics(app.registry)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	authenticator := &service.Authenticator{
		Store:   app.db,
		Hasher:  app.hasher,
		Metrics: app.metrics,
	}

	app.tokenService = &service.TokenService{
		Store:         app.db,
		Authenticator: authenticator,
		Generator:     cryptox.AlphabetGenerator{},
		Signer:        app.signer,
		Metrics:       app.metrics,
		Issuer:        app.cfg.Issuer,
		Audience:      []string{app.cfg.Audience},
		AccessTTL:     app.cfg.AccessTokenTTL,
		RefreshTTL:    app.cfg.RefreshTokenTTL,
		RefreshLength: app.cfg.RefreshTokenLength,
	}

	app.accountService = &service.AccountService{
		Store:  app.db,
		Hasher: app.hasher,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		app.signer,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.TokenService = app.tokenService
	router.AccountService = app.accountService
	router.Gatherer = app.registry
	router.SecureCookies = app.cfg.CookieSecure
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
