package controllers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	catalogsvc "github.com/foodhubhq/storefront-gateway/internal/catalog"
)

type stubCatalogService struct {
	gotParams catalogsvc.ListMealsParams
}

func (s *stubCatalogService) ListMeals(_ context.Context, params catalogsvc.ListMealsParams) (json.RawMessage, error) {
	s.gotParams = params
	return json.RawMessage(`{"data":[]}`), nil
}

func (s *stubCatalogService) GetMeal(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (s *stubCatalogService) ListCategories(context.Context) (json.RawMessage, error) {
	return json.RawMessage(`[]`), nil
}

func (s *stubCatalogService) ListProviders(context.Context) (json.RawMessage, error) {
	return json.RawMessage(`[]`), nil
}

func (s *stubCatalogService) GetProviderProfile(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (s *stubCatalogService) ListReviews(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`[]`), nil
}

func (s *stubCatalogService) SubmitReview(context.Context, catalogsvc.ReviewInput) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func TestListMealsForwardsBrowseFilters(t *testing.T) {
	stub := &stubCatalogService{}
	handler := ListMeals(stub, nil)

	req := httptest.NewRequest("GET", "/api/meals?categoryId=cat-1&search=noodles&dietary=vegan&minPrice=100&maxPrice=500", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != 200 {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	got := stub.gotParams
	if got.CategoryID != "cat-1" || got.Search != "noodles" || got.Dietary != "vegan" {
		t.Fatalf("unexpected params %+v", got)
	}
	if got.MinPrice != "100" || got.MaxPrice != "500" {
		t.Fatalf("expected price bounds forwarded, got %+v", got)
	}
	if got.Available != nil {
		t.Fatal("expected no availability filter when the caller sends none")
	}
}

func TestListMealsForwardsExplicitAvailability(t *testing.T) {
	stub := &stubCatalogService{}
	handler := ListMeals(stub, nil)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/meals?isAvailable=true", nil))
	if stub.gotParams.Available == nil || !*stub.gotParams.Available {
		t.Fatalf("expected isAvailable=true forwarded, got %+v", stub.gotParams.Available)
	}

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/meals?isAvailable=false", nil))
	if stub.gotParams.Available == nil || *stub.gotParams.Available {
		t.Fatalf("expected isAvailable=false forwarded, got %+v", stub.gotParams.Available)
	}

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/meals?isAvailable=maybe", nil))
	if stub.gotParams.Available != nil {
		t.Fatal("expected malformed availability value to be dropped")
	}
}
