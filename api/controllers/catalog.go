package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foodhubhq/storefront-gateway/api/responses"
	"github.com/foodhubhq/storefront-gateway/api/validators"
	catalogsvc "github.com/foodhubhq/storefront-gateway/internal/catalog"
	pkgerrors "github.com/foodhubhq/storefront-gateway/pkg/errors"
	"github.com/foodhubhq/storefront-gateway/pkg/logger"
)

// ListMeals proxies the storefront meal listing with its filters.
func ListMeals(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := r.URL.Query()
		params := catalogsvc.ListMealsParams{
			CategoryID: validators.SanitizeString(query.Get("categoryId"), 100),
			Search:     validators.SanitizeString(query.Get("search"), 200),
			ProviderID: validators.SanitizeString(query.Get("providerId"), 100),
			Dietary:    validators.SanitizeString(query.Get("dietary"), 50),
			MinPrice:   validators.SanitizeString(query.Get("minPrice"), 20),
			MaxPrice:   validators.SanitizeString(query.Get("maxPrice"), 20),
		}
		// Availability is only forwarded when the caller filters on it;
		// the browse page sends no filter and expects every meal back.
		if raw := query.Get("isAvailable"); raw == "true" || raw == "false" {
			available := raw == "true"
			params.Available = &available
		}

		raw, err := svc.ListMeals(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteRaw(w, raw)
	}
}

func GetMeal(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		raw, err := svc.GetMeal(r.Context(), chi.URLParam(r, "mealId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteRaw(w, raw)
	}
}

func ListCategories(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		raw, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteRaw(w, raw)
	}
}

func ListProviders(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		raw, err := svc.ListProviders(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteRaw(w, raw)
	}
}

func GetProviderProfile(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		raw, err := svc.GetProviderProfile(r.Context(), chi.URLParam(r, "providerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteRaw(w, raw)
	}
}

func ListReviews(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		raw, err := svc.ListReviews(r.Context(), r.URL.Query().Get("mealId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteRaw(w, raw)
	}
}

func SubmitReview(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload catalogsvc.ReviewInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw, err := svc.SubmitReview(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, raw)
	}
}
