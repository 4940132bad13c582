package httpx

import (
	"net/http"
	"slices"
	"strings"
)

// RequireRole lets the request through when the caller holds one of roles.
// It must run after AuthnMiddleware.
func RequireRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := roleFromCtx(r.Context())
			if have != "" && slices.Contains(roles, have) {
				next.ServeHTTP(w, r)
				return
			}

			writeBearerRoleError(w, roles...)
		})
	}
}

// RFC 6750-compliant error response for bearer insufficient_scope.
func writeBearerRoleError(w http.ResponseWriter, required ...string) {
	w.Header().
		Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(required, " ")+`"`)
	WriteMessage(w, http.StatusForbidden, "Forbidden.")
}
