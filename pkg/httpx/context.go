package httpx

import (
	"context"

	"github.com/aussiebroadwan/gatekeep/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyAccountID ctxKey = "account_id"
	CtxKeyRole      ctxKey = "role"
	CtxKeyClaims    ctxKey = "claims"
)

// ContextWithClaims stores verified access-token claims on ctx.
func ContextWithClaims(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyAccountID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyRole, c.Role)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// ClaimsFromContext returns the claims stored by AuthnMiddleware.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

// AccountIDFromContext returns the authenticated account id, or "".
func AccountIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyAccountID).(string); ok {
		return v
	}
	return ""
}

func roleFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyRole).(string); ok {
		return v
	}
	return ""
}
