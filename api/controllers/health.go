package controllers

import (
	"context"
	"net/http"

	"github.com/foodhubhq/storefront-gateway/api/responses"
	"github.com/foodhubhq/storefront-gateway/pkg/config"
	pkgerrors "github.com/foodhubhq/storefront-gateway/pkg/errors"
	"github.com/foodhubhq/storefront-gateway/pkg/logger"
)

// Pinger is anything readiness can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FoodHub-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the cart storage answers. The
// backend API is deliberately not probed: the gateway stays up through
// backend outages and surfaces them per request instead.
func HealthReady(cfg *config.Config, logg *logger.Logger, storage Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FoodHub-Env", cfg.App.Env)

		if storage != nil {
			if err := storage.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart storage unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
