package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/foodhubhq/storefront-gateway/api/middleware"
	"github.com/foodhubhq/storefront-gateway/api/responses"
	"github.com/foodhubhq/storefront-gateway/api/validators"
	"github.com/foodhubhq/storefront-gateway/internal/cart"
	pkgerrors "github.com/foodhubhq/storefront-gateway/pkg/errors"
	"github.com/foodhubhq/storefront-gateway/pkg/logger"
)

// maxLineQuantity is the per-line cap enforced at the HTTP edge. The
// store itself does not clamp.
const maxLineQuantity = 99

type cartView struct {
	Items      []cart.Line     `json:"items"`
	TotalItems int             `json:"totalItems"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type addCartItemRequest struct {
	MealID   string          `json:"mealId" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price" validate:"required"`
	Quantity int             `json:"quantity" validate:"required,min=1,max=99"`
	Image    *string         `json:"image,omitempty"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0,max=99"`
}

// ownerScope binds the store to the request's owner. Every operation on
// the returned scope carries the owner with it, so a concurrent request
// for a different owner can never land lines in the wrong scope.
func ownerScope(r *http.Request, store *cart.Store) cart.Scope {
	return store.For(middleware.CartOwnerFromContext(r.Context()))
}

func viewOf(ctx context.Context, scope cart.Scope) cartView {
	lines := scope.Lines(ctx)
	items := 0
	subtotal := decimal.Zero
	for _, line := range lines {
		items += line.Quantity
		subtotal = subtotal.Add(line.Subtotal())
	}
	return cartView{
		Items:      lines,
		TotalItems: items,
		Subtotal:   subtotal,
	}
}

func GetCart(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}
		responses.WriteSuccess(w, viewOf(r.Context(), ownerScope(r, store)))
	}
}

func AddCartItem(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Price.IsNegative() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative"))
			return
		}

		scope := ownerScope(r, store)
		scope.AddItem(r.Context(), cart.Item{
			MealID:    payload.MealID,
			Name:      payload.Name,
			UnitPrice: payload.Price,
			Image:     payload.Image,
		}, payload.Quantity)

		responses.WriteSuccessStatus(w, http.StatusCreated, viewOf(r.Context(), scope))
	}
}

func UpdateCartItem(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		mealID := chi.URLParam(r, "mealId")
		if mealID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "meal id is required"))
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		scope := ownerScope(r, store)
		scope.UpdateQuantity(r.Context(), mealID, payload.Quantity)
		responses.WriteSuccess(w, viewOf(r.Context(), scope))
	}
}

func RemoveCartItem(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		mealID := chi.URLParam(r, "mealId")
		if mealID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "meal id is required"))
			return
		}

		scope := ownerScope(r, store)
		scope.RemoveItem(r.Context(), mealID)
		responses.WriteSuccess(w, viewOf(r.Context(), scope))
	}
}

func ClearCart(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		scope := ownerScope(r, store)
		scope.Clear(r.Context())
		responses.WriteSuccess(w, viewOf(r.Context(), scope))
	}
}
