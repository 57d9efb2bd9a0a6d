package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/foodhubhq/storefront-gateway/api/middleware"
	"github.com/foodhubhq/storefront-gateway/internal/cart"
)

func cartRouter(store *cart.Store) http.Handler {
	r := chi.NewRouter()
	r.Get("/cart", GetCart(store, nil))
	r.Post("/cart/items", AddCartItem(store, nil))
	r.Patch("/cart/items/{mealId}", UpdateCartItem(store, nil))
	r.Delete("/cart/items/{mealId}", RemoveCartItem(store, nil))
	r.Delete("/cart", ClearCart(store, nil))
	return r
}

func newStore() *cart.Store {
	return cart.NewStore(context.Background(), "foodhub_cart", cart.NewMemoryStorage(), nil, nil)
}

func doCart(t *testing.T, handler http.Handler, method, path, owner, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req = req.WithContext(middleware.WithCartOwner(req.Context(), owner))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartView {
	t.Helper()
	var envelope struct {
		Data cartView `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding cart view: %v", err)
	}
	return envelope.Data
}

func TestCartAddAndFetch(t *testing.T) {
	handler := cartRouter(newStore())

	rec := doCart(t, handler, http.MethodPost, "/cart/items", "alice",
		`{"mealId":"meal-1","name":"Margherita","price":"9.50","quantity":2}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	view := decodeCart(t, doCart(t, handler, http.MethodGet, "/cart", "alice", ""))
	if view.TotalItems != 2 || len(view.Items) != 1 {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.Subtotal.String() != "19" {
		t.Fatalf("unexpected subtotal %s", view.Subtotal)
	}
}

func TestCartQuantityBounds(t *testing.T) {
	handler := cartRouter(newStore())

	rec := doCart(t, handler, http.MethodPost, "/cart/items", "alice",
		`{"mealId":"meal-1","name":"Margherita","price":"9.50","quantity":100}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected quantity above 99 rejected, got %d", rec.Code)
	}

	rec = doCart(t, handler, http.MethodPost, "/cart/items", "alice",
		`{"mealId":"meal-1","name":"Margherita","price":"9.50","quantity":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected zero quantity rejected, got %d", rec.Code)
	}
}

func TestCartUpdateSetsAndRemoves(t *testing.T) {
	handler := cartRouter(newStore())

	doCart(t, handler, http.MethodPost, "/cart/items", "alice",
		`{"mealId":"meal-1","name":"Margherita","price":"9.50","quantity":2}`)

	view := decodeCart(t, doCart(t, handler, http.MethodPatch, "/cart/items/meal-1", "alice", `{"quantity":5}`))
	if view.TotalItems != 5 {
		t.Fatalf("expected quantity set to 5, got %d", view.TotalItems)
	}

	view = decodeCart(t, doCart(t, handler, http.MethodPatch, "/cart/items/meal-1", "alice", `{"quantity":0}`))
	if len(view.Items) != 0 {
		t.Fatalf("expected zero quantity to remove line, got %+v", view.Items)
	}
}

func TestCartScopesByOwner(t *testing.T) {
	handler := cartRouter(newStore())

	doCart(t, handler, http.MethodPost, "/cart/items", "alice",
		`{"mealId":"meal-1","name":"Margherita","price":"9.50","quantity":2}`)

	view := decodeCart(t, doCart(t, handler, http.MethodGet, "/cart", "bob", ""))
	if len(view.Items) != 0 {
		t.Fatalf("expected bob's cart empty, got %+v", view.Items)
	}

	// Switching back restores alice's lines untouched.
	view = decodeCart(t, doCart(t, handler, http.MethodGet, "/cart", "alice", ""))
	if view.TotalItems != 2 {
		t.Fatalf("expected alice's cart restored, got %+v", view)
	}
}

func TestCartConcurrentOwnersDoNotCrossScopes(t *testing.T) {
	handler := cartRouter(newStore())

	owners := []string{"alice", "bob"}
	var wg sync.WaitGroup
	for _, owner := range owners {
		wg.Add(1)
		go func(owner string) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				rec := doCart(t, handler, http.MethodPost, "/cart/items", owner,
					`{"mealId":"meal-`+owner+`","name":"Dish","price":"9.50","quantity":1}`)
				if rec.Code != http.StatusCreated {
					t.Errorf("owner %s: unexpected status %d", owner, rec.Code)
				}
			}
		}(owner)
	}
	wg.Wait()

	for _, owner := range owners {
		view := decodeCart(t, doCart(t, handler, http.MethodGet, "/cart", owner, ""))
		if len(view.Items) != 1 || view.Items[0].MealID != "meal-"+owner {
			t.Fatalf("owner %s: expected only own line, got %+v", owner, view.Items)
		}
		if view.TotalItems != 25 {
			t.Fatalf("owner %s: expected 25 items, got %d", owner, view.TotalItems)
		}
	}
}

func TestCartClear(t *testing.T) {
	handler := cartRouter(newStore())

	doCart(t, handler, http.MethodPost, "/cart/items", "alice",
		`{"mealId":"meal-1","name":"Margherita","price":"9.50","quantity":2}`)

	view := decodeCart(t, doCart(t, handler, http.MethodDelete, "/cart", "alice", ""))
	if len(view.Items) != 0 {
		t.Fatalf("expected cleared cart, got %+v", view.Items)
	}
}
