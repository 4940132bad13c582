package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeep/internal/auth/service"
	"github.com/aussiebroadwan/gatekeep/internal/auth/store"
	"github.com/aussiebroadwan/gatekeep/pkg/httpx"
	"github.com/aussiebroadwan/gatekeep/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/aussiebroadwan/gatekeep/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	signer       jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	TokenService   *service.TokenService
	AccountService *service.AccountService

	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// SecureCookies sets the Secure flag on token cookies
	SecureCookies bool
}

func NewRouter(
	verifier jwtx.Verifier,
	signer jwtx.Signer,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		verifier:      verifier,
		signer:        signer,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
		SecureCookies: true,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAccounts()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Gatekeep Authentication Service API
//	@version		0.1.0
//	@description	Password authentication with short-lived HS256 access tokens and single-use rotating refresh tokens.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/gatekeep
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
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

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /v1/auth/token", &TokenHandler{
		TokenService:  r.TokenService,
		SecureCookies: r.SecureCookies,
	})
	r.Mux.Handle("POST /v1/auth/refresh", &RefreshHandler{
		TokenService:  r.TokenService,
		SecureCookies: r.SecureCookies,
	})
	r.Mux.Handle("POST /v1/auth/revoke", &RevokeHandler{
		TokenService:  r.TokenService,
		SecureCookies: r.SecureCookies,
	})
}

func (r *Router) registerAccounts() {
	h := &AccountsHandler{
		AccountService: r.AccountService,
		DefaultRole:    domain.RoleUser,
	}

	r.Mux.Handle("POST /v1/accounts", http.HandlerFunc(h.HandleRegister))

	r.Mux.Handle("GET /v1/accounts/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.AuthnMiddleware(r.verifier),
		),
	)
	r.Mux.Handle("POST /v1/accounts/me/password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			httpx.AuthnMiddleware(r.verifier),
		),
	)

	// Admin only
	r.Mux.Handle("PUT /v1/accounts/{id}/role",
		httpx.Chain(http.HandlerFunc(h.HandleChangeRole),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleAdmin),
		),
	)
}

func (r *Router) registerSystem() {
	gatherer := r.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer))
	r.Mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
