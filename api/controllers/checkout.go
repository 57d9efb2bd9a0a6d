package controllers

import (
	"net/http"

	"github.com/foodhubhq/storefront-gateway/api/middleware"
	"github.com/foodhubhq/storefront-gateway/api/responses"
	"github.com/foodhubhq/storefront-gateway/api/validators"
	checkoutsvc "github.com/foodhubhq/storefront-gateway/internal/checkout"
	pkgerrors "github.com/foodhubhq/storefront-gateway/pkg/errors"
	"github.com/foodhubhq/storefront-gateway/pkg/logger"
)

// Checkout places an order from the caller's cart scope.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutsvc.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		owner := middleware.CartOwnerFromContext(r.Context())
		raw, err := svc.PlaceOrder(r.Context(), owner, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, raw)
	}
}
