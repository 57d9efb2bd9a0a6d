package middleware

import (
	"context"

	"github.com/foodhubhq/storefront-gateway/pkg/types"
)

type contextKey string

const (
	ctxSession   contextKey = "session"
	ctxCartOwner contextKey = "cart_owner"
)

// SessionFromContext returns the resolved session, or nil when the
// request is anonymous or resolution was skipped.
func SessionFromContext(ctx context.Context) *types.Session {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxSession).(*types.Session); ok {
		return v
	}
	return nil
}

// CartOwnerFromContext returns the cart owner scope resolved for this
// request ("" when none was resolved).
func CartOwnerFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCartOwner).(string); ok {
		return v
	}
	return ""
}

// WithSession injects the resolved session for downstream handlers.
func WithSession(ctx context.Context, session *types.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, session)
}

// WithCartOwner injects the cart owner scope for downstream handlers.
func WithCartOwner(ctx context.Context, owner string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCartOwner, owner)
}
