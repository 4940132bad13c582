package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/auth/store"
	"github.com/aussiebroadwan/gatekeep/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeep/pkg/httpx"
	"github.com/aussiebroadwan/gatekeep/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
)

// readinessTimeout bounds the database ping made by /readyz.
const readinessTimeout = 2 * time.Second

// The values reported per check and overall.
const (
	healthOK       = "ok"
	healthError    = "error"
	healthDegraded = "degraded"
)

func healthResponse(startTime time.Time, version, status string) authsdk.HealthResponse {
	return authsdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(startTime).Round(time.Second).String(),
		Version: version,
	}
}

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe endpoint returning basic service health status, uptime, and version information
//	@Description	This endpoint always returns 200 OK if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, healthResponse(startTime, version, healthOK))
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	signer jwtx.Signer,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := slogx.FromContext(r.Context())

		checks := &authsdk.HealthChecks{Database: healthOK, Signer: healthOK}

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			log.Warn("readiness: database ping failed", "err", err)
			checks.Database = healthError
		}

		// A signer without a usable key cannot mint tokens
		if signer == nil || signer.Validate() != nil {
			checks.Signer = healthError
		}

		status, code := healthOK, http.StatusOK
		if checks.Database != healthOK || checks.Signer != healthOK {
			status, code = healthDegraded, http.StatusServiceUnavailable
		}

		response := healthResponse(startTime, version, status)
		response.Checks = checks
		httpx.WriteJSON(w, code, response)
	}
}
