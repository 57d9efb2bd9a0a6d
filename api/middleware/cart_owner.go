package middleware

import (
	"net/http"
	"time"

	"github.com/foodhubhq/storefront-gateway/internal/gate"
	"github.com/foodhubhq/storefront-gateway/pkg/config"
	"github.com/foodhubhq/storefront-gateway/pkg/guest"
	"github.com/foodhubhq/storefront-gateway/pkg/logger"
)

// CartOwner resolves the cart owner scope for the request: the session's
// user id when one resolves, otherwise a stable guest id carried by a
// signed cookie. A failed session lookup degrades to the guest scope
// rather than erroring, mirroring the gate's fail-open stance; the cart
// must keep working through an auth blip.
func CartOwner(cfg config.GuestConfig, resolver gate.Resolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			session, err := resolver.Resolve(ctx)
			if err != nil && logg != nil {
				logg.Warn(logg.WithField(ctx, "error", err.Error()), "session lookup failed, using guest cart scope")
			}

			var owner string
			if session != nil {
				owner = session.UserID
				ctx = WithSession(ctx, session)
				if logg != nil {
					ctx = logg.WithUserID(ctx, session.UserID)
				}
			} else {
				owner = guestOwner(w, r, cfg, logg)
			}

			ctx = WithCartOwner(ctx, owner)
			if logg != nil {
				ctx = logg.WithOwnerID(ctx, owner)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// guestOwner returns the guest id from a valid guest cookie, minting and
// setting a fresh one otherwise.
func guestOwner(w http.ResponseWriter, r *http.Request, cfg config.GuestConfig, logg *logger.Logger) string {
	if cookie, err := r.Cookie(cfg.CookieName); err == nil {
		if id, err := guest.Parse(cfg, cookie.Value); err == nil {
			return id
		}
	}

	id := guest.NewID()
	token, err := guest.Mint(cfg, time.Now(), id)
	if err != nil {
		if logg != nil {
			logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "minting guest token failed, scope will not persist")
		}
		return id
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.TTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
