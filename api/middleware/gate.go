package middleware

import (
	"net/http"
	"strings"

	"github.com/foodhubhq/storefront-gateway/internal/gate"
	"github.com/foodhubhq/storefront-gateway/pkg/logger"
	"github.com/foodhubhq/storefront-gateway/pkg/metrics"
)

// GateOptions configures the access gate middleware.
type GateOptions struct {
	// Prefixes lists the protected path prefixes. Empty falls back to
	// gate.DefaultPrefixes.
	Prefixes []string
	// StripPrefix is removed from the request path before matching, so
	// routes mounted under "/api" still gate on their storefront paths.
	StripPrefix string
}

// Gate enforces the role decision table on protected paths. A session
// lookup failure fails OPEN: the request proceeds unchanged and the next
// navigation re-checks. Redirects are 307 so the client re-issues the
// request against the target unchanged.
func Gate(opts GateOptions, resolver gate.Resolver, gm *metrics.GateMetrics, logg *logger.Logger) func(http.Handler) http.Handler {
	prefixes := opts.Prefixes
	if len(prefixes) == 0 {
		prefixes = gate.DefaultPrefixes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if opts.StripPrefix != "" {
				path = strings.TrimPrefix(path, opts.StripPrefix)
			}

			if !gate.Gated(prefixes, path) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			session, err := resolver.Resolve(ctx)
			if err != nil {
				gm.IncFailOpen()
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "error", err.Error()), "session lookup failed, gate failing open")
				}
				next.ServeHTTP(w, r)
				return
			}

			decision := gate.Decide(session, path)
			if !decision.Allowed() {
				gm.IncRedirect()
				if logg != nil {
					logg.Info(logg.WithField(ctx, "redirect", decision.Target()), "gate.redirect")
				}
				http.Redirect(w, r, decision.Target(), http.StatusTemporaryRedirect)
				return
			}

			gm.IncAllow()
			if session != nil {
				ctx = WithSession(ctx, session)
				if logg != nil {
					ctx = logg.WithUserID(ctx, session.UserID)
					ctx = logg.WithActorRole(ctx, string(session.Role))
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
